// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package transport is the HTTP client for the Idea Board API.

# Retries

Every method is one logical command. Only two outcomes are retried:

  - 429 Too Many Requests (ErrRateLimited)
  - no response at all, e.g. connection refused (ErrTransportFailure)

Before retry k the client waits BaseDelay * 2^k, so the defaults
(3 retries, 1s) wait 1s, 2s and 4s. When the budget is spent the call
returns *ExhaustedError, which matches ErrExhausted and the last cause:

	_, err := client.Upvote(ctx, 7)
	if errors.Is(err, transport.ErrExhausted) {
		// terminal, do not retry again
	}

The wait honors ctx, and no state is shared between calls.

# Terminal Responses

Everything else is returned at once as *APIError:

	400, other 4xx → store.ErrInvalidInput
	404            → store.ErrNotFound
	5xx            → ErrServer

# Messages

Describe maps any error from the client to a short message for end users,
such as "server unreachable" or "request rejected: text: This field may
not be blank.".
*/
package transport
