// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Command ideactl is a terminal client for the Idea Board API.
package main

import (
	"fmt"
	"os"

	"github.com/danielhkuo/idea-board/transport"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorText(transport.Describe(err)))
		os.Exit(1)
	}
}
