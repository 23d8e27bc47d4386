// Package roster owns the set of tracked competitor identifiers.
//
// The set is loaded once from a Store, mutated only through Roster methods
// (serialized by a mutex) and saved after every mutation before the method
// returns. Ranking works on a List snapshot.
package roster

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/limchunyik/wca-psych-sheet-generator/internal/domain/identifier"
	"github.com/limchunyik/wca-psych-sheet-generator/pkg/logger"
	"github.com/limchunyik/wca-psych-sheet-generator/pkg/metrics"
)

// Store persists the identifier list.
type Store interface {
	Load(ctx context.Context) ([]string, error)
	Save(ctx context.Context, ids []string) error
	Delete(ctx context.Context) error
}

// Validator confirms that the provider knows an identifier. It returns
// ErrCompetitorNotFound (possibly wrapped) when it does not.
type Validator interface {
	Exists(ctx context.Context, id identifier.ID) error
}

// AddResult is the outcome of a manual add.
type AddResult struct {
	ID             identifier.ID
	AlreadyPresent bool
}

// BulkResult is the outcome of a bulk extraction.
type BulkResult struct {
	Added   []identifier.ID
	Skipped int
}

// Roster is an ordered set of identifiers with durable storage.
type Roster struct {
	mu        sync.Mutex
	ids       []identifier.ID
	index     map[identifier.ID]struct{}
	store     Store
	validator Validator
	logger    logger.Logger
}

// Option applies a configuration option to the Roster.
type Option func(*Roster)

// WithLogger sets a custom logger for the roster.
func WithLogger(l logger.Logger) Option {
	return func(r *Roster) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates an empty roster. Call Load before use to restore saved state.
func New(store Store, validator Validator, opts ...Option) *Roster {
	r := &Roster{
		index:     make(map[identifier.ID]struct{}),
		store:     store,
		validator: validator,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logger.Get().Named("roster")
	}
	return r
}

// Load replaces the in-memory set with the persisted one. Malformed and
// repeated entries are dropped.
func (r *Roster) Load(ctx context.Context) error {
	raw, err := r.store.Load(ctx)
	metrics.RecordStoreOperation("load", err)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoad, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.ids = r.ids[:0]
	r.index = make(map[identifier.ID]struct{}, len(raw))
	for _, s := range raw {
		id, err := identifier.Normalize(s)
		if err != nil {
			r.logger.Warn(ctx, "dropping malformed stored identifier", logger.String("value", s))
			continue
		}
		if _, dup := r.index[id]; dup {
			continue
		}
		r.index[id] = struct{}{}
		r.ids = append(r.ids, id)
	}
	metrics.UpdateTrackedIdentifiers(len(r.ids))
	r.logger.Debug(ctx, "loaded tracked competitors", logger.Int("count", len(r.ids)))
	return nil
}

// Add validates raw with the provider and tracks it. An identifier that is
// already tracked is reported as such without a lookup. The lookup runs
// without holding the roster lock; membership is checked again before
// inserting.
func (r *Roster) Add(ctx context.Context, raw string) (AddResult, error) {
	id, err := identifier.Normalize(raw)
	if err != nil {
		return AddResult{}, err
	}

	if r.Contains(id) {
		return AddResult{ID: id, AlreadyPresent: true}, nil
	}

	if err := r.validator.Exists(ctx, id); err != nil {
		if errors.Is(err, ErrCompetitorNotFound) {
			return AddResult{ID: id}, err
		}
		return AddResult{ID: id}, fmt.Errorf("%w: %w", ErrLookupFailed, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.index[id]; ok {
		return AddResult{ID: id, AlreadyPresent: true}, nil
	}

	prev := r.snapshot()
	r.insert(id)
	if err := r.persist(ctx, prev); err != nil {
		return AddResult{ID: id}, err
	}
	metrics.RecordRosterMutation("add")
	r.logger.Info(ctx, "tracking competitor", logger.String("id", string(id)))
	return AddResult{ID: id}, nil
}

// AddBulk tracks every identifier found in text. Extracted identifiers are
// not validated with the provider. Matches that are already tracked, or
// repeated within text, are counted as skipped.
func (r *Roster) AddBulk(ctx context.Context, text string) (BulkResult, error) {
	found := identifier.Extract(text)

	r.mu.Lock()
	defer r.mu.Unlock()

	prev := r.snapshot()
	var res BulkResult
	for _, id := range found {
		if _, ok := r.index[id]; ok {
			res.Skipped++
			continue
		}
		r.insert(id)
		res.Added = append(res.Added, id)
	}

	if err := r.persist(ctx, prev); err != nil {
		return BulkResult{}, err
	}
	metrics.RecordRosterMutation("bulk")
	r.logger.Info(ctx, "bulk extraction",
		logger.Int("added", len(res.Added)),
		logger.Int("skipped", res.Skipped),
	)
	return res, nil
}

// Remove stops tracking raw. Removing an identifier that is not tracked is
// not an error.
func (r *Roster) Remove(ctx context.Context, raw string) (bool, error) {
	id := identifier.ID(strings.ToUpper(strings.TrimSpace(raw)))

	r.mu.Lock()
	defer r.mu.Unlock()

	prev := r.snapshot()
	_, removed := r.index[id]
	if removed {
		delete(r.index, id)
		kept := r.ids[:0]
		for _, v := range r.ids {
			if v != id {
				kept = append(kept, v)
			}
		}
		r.ids = kept
	}

	if err := r.persist(ctx, prev); err != nil {
		return false, err
	}
	metrics.RecordRosterMutation("remove")
	return removed, nil
}

// Clear stops tracking everything and deletes the persisted list.
func (r *Roster) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	err := r.store.Delete(ctx)
	metrics.RecordStoreOperation("delete", err)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	r.ids = nil
	r.index = make(map[identifier.ID]struct{})
	metrics.UpdateTrackedIdentifiers(0)
	metrics.RecordRosterMutation("clear")
	return nil
}

// List returns a copy of the tracked identifiers in insertion order.
func (r *Roster) List() []identifier.ID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshot()
}

// Len returns the number of tracked identifiers.
func (r *Roster) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.ids)
}

// Contains reports whether id is tracked.
func (r *Roster) Contains(id identifier.ID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.index[id]
	return ok
}

// snapshot must be called with mu held.
func (r *Roster) snapshot() []identifier.ID {
	out := make([]identifier.ID, len(r.ids))
	copy(out, r.ids)
	return out
}

// insert must be called with mu held.
func (r *Roster) insert(id identifier.ID) {
	r.index[id] = struct{}{}
	r.ids = append(r.ids, id)
}

// persist saves the current set, restoring prev on failure. Must be called
// with mu held.
func (r *Roster) persist(ctx context.Context, prev []identifier.ID) error {
	err := r.store.Save(ctx, identifier.Strings(r.ids))
	metrics.RecordStoreOperation("save", err)
	if err != nil {
		r.ids = prev
		r.index = make(map[identifier.ID]struct{}, len(prev))
		for _, id := range prev {
			r.index[id] = struct{}{}
		}
		r.logger.Error(ctx, "failed to save tracked competitors", logger.Error(err))
		return fmt.Errorf("%w: %w", ErrPersist, err)
	}
	metrics.UpdateTrackedIdentifiers(len(r.ids))
	return nil
}
