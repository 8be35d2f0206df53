// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/danielhkuo/idea-board/models"
	"github.com/danielhkuo/idea-board/store"
)

// TestFullIdeaWorkflow tests the complete end-to-end workflow:
// 1. Submit two ideas
// 2. List them, newest first on equal votes
// 3. Upvote the older idea twice
// 4. Verify the ranking flipped
// 5. Reject a blank idea without changing the board
// 6. Delete an idea, then delete it again
// 7. Verify the final board
func TestFullIdeaWorkflow(t *testing.T) {
	forEachStore(t, func(t *testing.T, st store.Store) {
		ideaHandler := NewIdeaHandler(st)

		list := func(step string) []models.Idea {
			t.Helper()
			req := httptest.NewRequest("GET", "/ideas/", nil)
			w := httptest.NewRecorder()
			ideaHandler.ListIdeas(w, req)
			if w.Code != http.StatusOK {
				t.Fatalf("%s - List failed: %d - %s", step, w.Code, w.Body.String())
			}
			var ideas []models.Idea
			json.NewDecoder(w.Body).Decode(&ideas)
			return ideas
		}

		// Step 1: Submit two ideas
		texts := []string{"Build a rocket", "Paint it red"}
		ids := make([]int64, 0, len(texts))
		for _, text := range texts {
			body, _ := json.Marshal(map[string]string{"text": text})
			req := httptest.NewRequest("POST", "/ideas/", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			ideaHandler.CreateIdea(w, req)

			if w.Code != http.StatusCreated {
				t.Fatalf("Step 1 - Create idea '%s' failed: %d - %s", text, w.Code, w.Body.String())
			}

			var idea models.Idea
			json.NewDecoder(w.Body).Decode(&idea)
			ids = append(ids, idea.ID)
		}
		if ids[0] != 1 || ids[1] != 2 {
			t.Fatalf("Step 1 - Expected ids 1 and 2, got %v", ids)
		}
		t.Logf("Step 1 - Created ideas %v", ids)

		// Step 2: Newest first while votes are tied
		ideas := list("Step 2")
		if len(ideas) != 2 || ideas[0].ID != 2 || ideas[1].ID != 1 {
			t.Fatalf("Step 2 - Expected order [2 1], got %+v", ideas)
		}

		// Step 3: Upvote idea 1 twice
		for i := 0; i < 2; i++ {
			req := httptest.NewRequest("PATCH", "/ideas/1/upvote/", nil)
			req.SetPathValue("id", "1")
			w := httptest.NewRecorder()
			ideaHandler.UpvoteIdea(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("Step 3 - Upvote failed: %d - %s", w.Code, w.Body.String())
			}
		}
		t.Log("Step 3 - Upvoted idea 1 twice")

		// Step 4: Ranking flipped
		ideas = list("Step 4")
		if ideas[0].ID != 1 || ideas[0].Upvotes != 2 {
			t.Errorf("Step 4 - Expected idea 1 with 2 upvotes first, got %+v", ideas[0])
		}
		if ideas[1].ID != 2 || ideas[1].Upvotes != 0 {
			t.Errorf("Step 4 - Expected idea 2 with 0 upvotes second, got %+v", ideas[1])
		}

		// Step 5: Blank idea is rejected
		req := httptest.NewRequest("POST", "/ideas/", bytes.NewReader([]byte(`{"text":"   "}`)))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		ideaHandler.CreateIdea(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("Step 5 - Expected 400, got %d - %s", w.Code, w.Body.String())
		}
		if n := len(list("Step 5")); n != 2 {
			t.Errorf("Step 5 - Expected 2 ideas after rejection, got %d", n)
		}

		// Step 6: Delete idea 2, twice
		statuses := make([]int, 0, 2)
		for i := 0; i < 2; i++ {
			req := httptest.NewRequest("DELETE", "/ideas/2/", nil)
			req.SetPathValue("id", strconv.FormatInt(ids[1], 10))
			w := httptest.NewRecorder()
			ideaHandler.DeleteIdea(w, req)
			statuses = append(statuses, w.Code)
		}
		if statuses[0] != http.StatusNoContent || statuses[1] != http.StatusNotFound {
			t.Fatalf("Step 6 - Expected [204 404], got %v", statuses)
		}

		// Step 7: Final board
		ideas = list("Step 7")
		if len(ideas) != 1 || ideas[0].ID != 1 || ideas[0].Upvotes != 2 {
			t.Errorf("Step 7 - Expected only idea 1 with 2 upvotes, got %+v", ideas)
		}
	})
}
