// Package controller holds the per-page view-model controllers: the fetched
// collection, loading/saving flags, the local filter and the confirmation
// gate, plus the actions that call the gateway and resynchronize state.
// The fetch/save/delete/notify cycle every page repeats lives once in
// ListController; the page types configure it with their resource operations.
package controller

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"librarium/internal/notify"
)

var (
	// ErrSaveInFlight rejects a second submit while a mutation is running.
	ErrSaveInFlight = errors.New("a save is already in progress")
	// ErrClosed is returned by operations on a closed controller.
	ErrClosed = errors.New("controller is closed")
)

// Ops wires a ListController to one resource's gateway operations. Create,
// Update and Delete may be nil for resources that do not support them.
type Ops[E any] struct {
	List   func(ctx context.Context) ([]E, error)
	Create func(ctx context.Context, draft E) (E, error)
	Update func(ctx context.Context, id int64, draft E) (E, error)
	Delete func(ctx context.Context, id int64) error

	// ID extracts the backend identifier; 0 means not yet created.
	ID func(E) int64
	// Match reports whether the entity matches a lowercased filter string.
	Match func(E, string) bool
	// Label renders the entity for confirmation prompts.
	Label func(E) string
}

// Names feed the user-facing notification messages.
type Names struct {
	Singular string // "book"
	Plural   string // "books"
}

// ListController is the generic list-resource view model. All state sits
// behind one mutex; network calls happen outside it.
type ListController[E any] struct {
	ops  Ops[E]
	name Names
	sink notify.Sink

	// aux runs alongside List during Refresh for pages that need related
	// collections loaded together (the books page loads authors for its
	// selector). A failing aux fails the whole refresh. It receives the
	// fetch epoch and must check epochCurrent before applying its result.
	aux func(ctx context.Context, epoch uint64) error

	mu         sync.Mutex
	collection []E
	loading    bool
	saving     bool
	filterText string
	confirm    ConfirmGate
	epoch      uint64
	closed     bool
}

func NewListController[E any](name Names, ops Ops[E], sink notify.Sink) *ListController[E] {
	return &ListController[E]{ops: ops, name: name, sink: sink}
}

// Refresh replaces the collection from the backend. The epoch counter guards
// against a slow fetch overwriting the result of a newer one, or landing on
// a controller that has since been closed.
func (c *ListController[E]) Refresh(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.loading = true
	c.epoch++
	epoch := c.epoch
	c.mu.Unlock()

	var (
		wg      sync.WaitGroup
		items   []E
		listErr error
		auxErr  error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		items, listErr = c.ops.List(ctx)
	}()
	if c.aux != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			auxErr = c.aux(ctx, epoch)
		}()
	}
	wg.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || epoch != c.epoch {
		// A superseding refresh owns the loading flag; only a closed
		// controller has nobody left to reset it.
		if c.closed {
			c.loading = false
		}
		log.Debug().Str("resource", c.name.Plural).Msg("discarding stale fetch result")
		return nil
	}
	c.loading = false

	err := listErr
	if err == nil {
		err = auxErr
	}
	if err != nil {
		c.sink.Error("Failed to load " + c.name.Plural)
		return err
	}
	c.collection = items
	return nil
}

// Save creates the draft when it has no id yet, updates it otherwise, then
// refreshes. On failure the collection and draft are untouched so the user
// can correct and resubmit.
func (c *ListController[E]) Save(ctx context.Context, draft E) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.saving {
		c.mu.Unlock()
		return ErrSaveInFlight
	}
	c.saving = true
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		c.saving = false
		c.mu.Unlock()
	}()

	id := c.ops.ID(draft)
	var err error
	if id != 0 {
		_, err = c.ops.Update(ctx, id, draft)
	} else {
		_, err = c.ops.Create(ctx, draft)
	}
	if err != nil {
		c.sink.Error("Failed to save " + c.name.Singular)
		return err
	}

	if id != 0 {
		c.sink.Success(capitalize(c.name.Singular) + " updated successfully!")
	} else {
		c.sink.Success(capitalize(c.name.Singular) + " created successfully!")
	}
	return c.Refresh(ctx)
}

// RequestDelete records the target awaiting confirmation. No network call.
func (c *ListController[E]) RequestDelete(entity E) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.confirm.Request(c.ops.ID(entity), c.ops.Label(entity))
}

func (c *ListController[E]) PendingDelete() (PendingConfirmation, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.confirm.Pending()
}

// CancelDelete resets the gate. No network call.
func (c *ListController[E]) CancelDelete() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.confirm.Cancel()
}

// ConfirmDelete fires the delete recorded by RequestDelete, then refreshes.
func (c *ListController[E]) ConfirmDelete(ctx context.Context) error {
	c.mu.Lock()
	pending, err := c.confirm.Confirm()
	c.mu.Unlock()
	if err != nil {
		return err
	}

	if err := c.ops.Delete(ctx, pending.ID); err != nil {
		c.sink.Error("Failed to delete " + c.name.Singular)
		return err
	}
	c.sink.Success(capitalize(c.name.Singular) + " deleted successfully!")
	return c.Refresh(ctx)
}

// SetFilter updates the local filter. Never issues a network call.
func (c *ListController[E]) SetFilter(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filterText = text
}

func (c *ListController[E]) FilterText() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filterText
}

// Visible is the displayed list: the collection filtered by the current
// filter text, computed fresh on every call. An empty filter shows all.
func (c *ListController[E]) Visible() []E {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.filterText == "" {
		return append([]E(nil), c.collection...)
	}
	needle := strings.ToLower(c.filterText)
	var visible []E
	for _, entity := range c.collection {
		if c.ops.Match(entity, needle) {
			visible = append(visible, entity)
		}
	}
	return visible
}

func (c *ListController[E]) Collection() []E {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]E(nil), c.collection...)
}

func (c *ListController[E]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

func (c *ListController[E]) Saving() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saving
}

// Close marks the controller dismounted: in-flight fetches are discarded on
// arrival and new operations are rejected.
func (c *ListController[E]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	c.epoch++
}

// epochCurrent reports whether a fetch started at epoch may still apply its
// result.
func (c *ListController[E]) epochCurrent(epoch uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return !c.closed && epoch == c.epoch
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
