// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/danielhkuo/idea-board/board"
	"github.com/danielhkuo/idea-board/models"
)

var (
	faint       = color.New(color.Faint).SprintFunc()
	bold        = color.New(color.Bold).SprintFunc()
	cyan        = color.New(color.FgCyan).SprintFunc()
	successText = color.New(color.FgGreen).SprintFunc()
	warningText = color.New(color.FgYellow).SprintFunc()
	errorText   = color.New(color.FgRed).SprintFunc()
)

func printIdeas(w io.Writer, ideas []models.Idea) {
	if len(ideas) == 0 {
		fmt.Fprintln(w, "No ideas yet.")
		return
	}
	for _, idea := range ideas {
		fmt.Fprintf(w, "  %s  %s  %s\n",
			faint(fmt.Sprintf("#%-4d", idea.ID)),
			cyan(fmt.Sprintf("%3d ▲", idea.Upvotes)),
			bold(idea.Text))
	}
}

func printStale(w io.Writer, b *board.Board) {
	if b.Stale() {
		fmt.Fprintln(w, warningText("Could not reload the list; it may be out of date."))
	}
}
