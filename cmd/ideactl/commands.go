// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newListCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List ideas, most upvoted first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.board.Refresh(cmd.Context()); err != nil {
				return err
			}
			printIdeas(cmd.OutOrStdout(), c.board.Ideas())
			return nil
		},
	}
}

func newSubmitCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "submit <text>",
		Short: "Submit a new idea",
		Long:  `Submit a new idea. Multiple arguments are joined with spaces.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idea, err := c.board.Submit(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, successText(fmt.Sprintf("Added idea #%d", idea.ID)))
			printIdeas(out, c.board.Ideas())
			printStale(out, c.board)
			return nil
		},
	}
}

func newUpvoteCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "upvote <id>",
		Short: "Upvote an idea",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := c.board.Refresh(cmd.Context()); err != nil {
				return err
			}
			if err := c.board.Upvote(cmd.Context(), id); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, successText(fmt.Sprintf("Upvoted idea #%d", id)))
			printIdeas(out, c.board.Ideas())
			printStale(out, c.board)
			return nil
		},
	}
}

func newDeleteCmd(c *cli) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an idea",
		Long:  `Delete an idea. Asks for confirmation unless --force is given.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := c.board.Refresh(cmd.Context()); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !force {
				label := fmt.Sprintf("#%d", id)
				for _, idea := range c.board.Ideas() {
					if idea.ID == id {
						label = fmt.Sprintf("#%d %q", id, idea.Text)
						break
					}
				}
				fmt.Fprintf(out, "Delete idea %s? [y/N] ", label)

				reader := bufio.NewReader(cmd.InOrStdin())
				response, _ := reader.ReadString('\n')
				response = strings.TrimSpace(strings.ToLower(response))
				if response != "y" && response != "yes" {
					fmt.Fprintln(out, "Cancelled.")
					return nil
				}
			}

			if err := c.board.Delete(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(out, successText(fmt.Sprintf("Deleted idea #%d", id)))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation")
	return cmd
}
