// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/danielhkuo/idea-board/board"
	"github.com/danielhkuo/idea-board/cliparse"
	"github.com/danielhkuo/idea-board/transport"
)

// cli holds the flags shared by every command and the board built from them.
type cli struct {
	apiURL    string
	retries   int
	baseDelay time.Duration

	board *board.Board
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "ideactl",
		Short:         "Share and vote on ideas",
		Long:          `ideactl lists, submits, upvotes and deletes ideas on an Idea Board server.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cliparse.NewClientConfig(c.apiURL, c.retries, c.baseDelay)
			if err != nil {
				return err
			}
			client := transport.New(transport.Config{
				BaseURL:    cfg.BaseURL,
				MaxRetries: cfg.MaxRetries,
				BaseDelay:  cfg.BaseDelay,
			})
			c.board = board.New(client)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&c.apiURL, "api-url", "", "API base URL (default $IDEABOARD_API_URL)")
	root.PersistentFlags().IntVar(&c.retries, "retries", transport.DefaultMaxRetries, "retries after a rate limit or connection failure")
	root.PersistentFlags().DurationVar(&c.baseDelay, "base-delay", transport.DefaultBaseDelay, "wait before the first retry, doubled for each one after")

	root.AddCommand(
		newListCmd(c),
		newSubmitCmd(c),
		newUpvoteCmd(c),
		newDeleteCmd(c),
	)
	return root
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid idea id %q", arg)
	}
	return id, nil
}
