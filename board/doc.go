// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package board keeps a client-side copy of the idea list in sync with the
server.

# Optimistic Commands

Upvote and Delete change the cached list before the server answers, so a
display built on Ideas reacts at once:

	b := board.New(client)
	if err := b.Refresh(ctx); err != nil { ... }
	err := b.Upvote(ctx, 7) // cache shows the extra vote immediately

When the server confirms, the board refreshes to pick up changes made by
other clients. When it fails, the local patch is undone (unless a refresh
already replaced it) and the board refreshes anyway, then returns the
error. A NotFound from Delete is not undone, since the idea is gone.

Submit waits for the server, inserts the new idea at its local rank and
refreshes.

# Staleness

Refresh failures keep the old list and set Stale. Late list responses
that were overtaken by a newer refresh are dropped.

Pending lists commands that are still in flight, each with its own id.
*/
package board
