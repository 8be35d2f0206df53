// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Idea Board API.

# Handler Types

IdeaHandler serves the idea collection on top of a store.Store:

	ideaHandler := handlers.NewIdeaHandler(st)

# Endpoints

	GET    /ideas/              → ListIdeas (ranked array)
	POST   /ideas/              → CreateIdea (201 with the new idea)
	GET    /ideas/{id}/         → GetIdea
	PATCH  /ideas/{id}/upvote/  → UpvoteIdea (200 with the updated idea)
	DELETE /ideas/{id}/         → DeleteIdea (204)

The board is anonymous: no handler requires credentials.

# Errors

Validation failures are reported per field:

	400 {"text": ["This field may not be blank."]}
	400 {"text": ["Ensure this field has no more than 280 characters."]}
	400 {"text": ["This field is required."]}

Bodies over 64 KiB:

	413 {"detail": "Request body too large."}

Unknown or malformed ids:

	404 {"detail": "Not found."}

Store failures are logged and reported as 500 with a generic detail.
*/
package handlers
