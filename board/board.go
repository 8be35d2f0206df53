// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package board

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/danielhkuo/idea-board/models"
	"github.com/danielhkuo/idea-board/store"
)

// API is the authoritative side of the board. *transport.Client
// implements it over HTTP and store.Store implementations satisfy it
// in-process.
type API interface {
	List(ctx context.Context) ([]models.Idea, error)
	Create(ctx context.Context, text string) (models.Idea, error)
	Upvote(ctx context.Context, id int64) (models.Idea, error)
	Delete(ctx context.Context, id int64) error
}

type CommandKind string

const (
	KindSubmit CommandKind = "submit"
	KindUpvote CommandKind = "upvote"
	KindDelete CommandKind = "delete"
)

// Command is a mutation that has been sent and not yet resolved.
type Command struct {
	ID      uuid.UUID
	Kind    CommandKind
	IdeaID  int64
	Started time.Time
}

// Board is a locally cached, ranked view of the ideas. Upvote and Delete
// patch the cache before the server answers. Every mutation ends in a
// refresh or a rollback, so the cache never stays wrong.
type Board struct {
	api API

	mu      sync.Mutex
	ideas   []models.Idea
	pending map[uuid.UUID]Command
	// epoch counts wholesale replacements of the cache. An optimistic
	// patch is only undone locally if no replacement happened since.
	epoch uint64
	// issued and applied sequence List calls so an older response never
	// overwrites a newer one or undoes a confirmed delete.
	issued  uint64
	applied uint64
	stale   bool
}

func New(api API) *Board {
	return &Board{
		api:     api,
		ideas:   []models.Idea{},
		pending: make(map[uuid.UUID]Command),
	}
}

// Ideas returns a copy of the cached ideas in canonical order.
func (b *Board) Ideas() []models.Idea {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.ideas)
}

// Stale reports whether the last refresh failed, meaning the cache may lag
// behind the server.
func (b *Board) Stale() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stale
}

// Pending returns the in-flight commands, oldest first.
func (b *Board) Pending() []Command {
	b.mu.Lock()
	defer b.mu.Unlock()

	cmds := make([]Command, 0, len(b.pending))
	for _, cmd := range b.pending {
		cmds = append(cmds, cmd)
	}
	slices.SortFunc(cmds, func(a, c Command) int { return a.Started.Compare(c.Started) })
	return cmds
}

// Refresh replaces the cache with the server's list. On failure the cache
// is kept as is and the board is marked stale. A response overtaken by a
// newer list or a confirmed delete is dropped, error or not.
func (b *Board) Refresh(ctx context.Context) error {
	b.mu.Lock()
	b.issued++
	seq := b.issued
	b.mu.Unlock()

	ideas, err := b.api.List(ctx)

	b.mu.Lock()
	defer b.mu.Unlock()

	if seq <= b.applied {
		// A newer list, or a confirmed delete, already superseded this one.
		slog.Debug("dropping out-of-date list", "seq", seq, "applied", b.applied, "error", err)
		return nil
	}
	if err != nil {
		b.stale = true
		return err
	}

	ideas = slices.Clone(ideas)
	store.SortIdeas(ideas)
	b.ideas = ideas
	b.applied = seq
	b.epoch++
	b.stale = false
	return nil
}

// Submit creates an idea, places it locally and then refreshes to learn
// its true rank. On failure the cache is untouched.
func (b *Board) Submit(ctx context.Context, text string) (models.Idea, error) {
	cmd := b.begin(KindSubmit, 0)
	defer b.finish(cmd)

	idea, err := b.api.Create(ctx, text)
	if err != nil {
		return models.Idea{}, err
	}

	b.mu.Lock()
	if b.indexOf(idea.ID) < 0 {
		b.ideas = append(b.ideas, idea)
		store.SortIdeas(b.ideas)
	}
	b.mu.Unlock()

	b.reconcile(ctx, KindSubmit, idea.ID)
	return idea, nil
}

// Upvote adds one vote locally, then asks the server. A failed call
// removes the local vote again before refreshing.
func (b *Board) Upvote(ctx context.Context, id int64) error {
	cmd := b.begin(KindUpvote, id)
	defer b.finish(cmd)

	b.mu.Lock()
	epoch := b.epoch
	patched := false
	if i := b.indexOf(id); i >= 0 {
		b.ideas[i].Upvotes++
		store.SortIdeas(b.ideas)
		patched = true
	}
	b.mu.Unlock()

	if _, err := b.api.Upvote(ctx, id); err != nil {
		b.mu.Lock()
		if patched && b.epoch == epoch {
			if i := b.indexOf(id); i >= 0 {
				b.ideas[i].Upvotes--
				store.SortIdeas(b.ideas)
			}
		}
		b.mu.Unlock()

		b.reconcile(ctx, KindUpvote, id)
		return err
	}

	b.reconcile(ctx, KindUpvote, id)
	return nil
}

// Delete removes the idea locally, then asks the server. If the server
// still has it after a failure, the idea is put back.
func (b *Board) Delete(ctx context.Context, id int64) error {
	cmd := b.begin(KindDelete, id)
	defer b.finish(cmd)

	b.mu.Lock()
	epoch := b.epoch
	var removed models.Idea
	i := b.indexOf(id)
	had := i >= 0
	if had {
		removed = b.ideas[i]
		b.ideas = slices.Delete(b.ideas, i, i+1)
	}
	b.mu.Unlock()

	err := b.api.Delete(ctx, id)
	if err == nil {
		// Lists sent before the delete may still hold the idea.
		b.mu.Lock()
		b.applied = b.issued
		b.mu.Unlock()
		return nil
	}

	// A missing idea is gone for good; only the refresh can tell what else changed.
	if !errors.Is(err, store.ErrNotFound) {
		b.mu.Lock()
		if had && b.epoch == epoch && b.indexOf(id) < 0 {
			b.ideas = append(b.ideas, removed)
			store.SortIdeas(b.ideas)
		}
		b.mu.Unlock()
	}

	b.reconcile(ctx, KindDelete, id)
	return err
}

// reconcile refreshes after a command resolved. A failure here leaves the
// board stale and is logged; the command's own outcome stands.
func (b *Board) reconcile(ctx context.Context, kind CommandKind, id int64) {
	if err := b.Refresh(ctx); err != nil {
		slog.Warn("refresh after command failed, board is stale", "command", kind, "idea_id", id, "error", err)
	}
}

func (b *Board) begin(kind CommandKind, id int64) Command {
	cmd := Command{ID: uuid.New(), Kind: kind, IdeaID: id, Started: time.Now()}

	b.mu.Lock()
	b.pending[cmd.ID] = cmd
	b.mu.Unlock()

	slog.Debug("command started", "command_id", cmd.ID, "command", kind, "idea_id", id)
	return cmd
}

func (b *Board) finish(cmd Command) {
	b.mu.Lock()
	delete(b.pending, cmd.ID)
	b.mu.Unlock()
}

// indexOf must be called with mu held.
func (b *Board) indexOf(id int64) int {
	return slices.IndexFunc(b.ideas, func(idea models.Idea) bool { return idea.ID == id })
}
