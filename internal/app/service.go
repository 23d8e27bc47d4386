// Package service runs ranking batches over the tracked competitors and
// fronts the roster for the CLI.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/limchunyik/wca-psych-sheet-generator/internal/adapters/provider"
	"github.com/limchunyik/wca-psych-sheet-generator/internal/domain/event"
	"github.com/limchunyik/wca-psych-sheet-generator/internal/domain/identifier"
	"github.com/limchunyik/wca-psych-sheet-generator/internal/domain/model"
	"github.com/limchunyik/wca-psych-sheet-generator/internal/domain/ranking"
	"github.com/limchunyik/wca-psych-sheet-generator/internal/domain/roster"
	"github.com/limchunyik/wca-psych-sheet-generator/pkg/logger"
	"github.com/limchunyik/wca-psych-sheet-generator/pkg/metrics"
)

// Progress receives one call per settled fetch, in settle order, from the
// goroutine that called Rank.
type Progress interface {
	Loaded(completed, total int, rec model.CompetitorRecord)
}

// ProgressFunc adapts a function to Progress.
type ProgressFunc func(completed, total int, rec model.CompetitorRecord)

func (f ProgressFunc) Loaded(completed, total int, rec model.CompetitorRecord) {
	f(completed, total, rec)
}

type noProgress struct{}

func (noProgress) Loaded(int, int, model.CompetitorRecord) {}

// Leaderboard is the outcome of one ranking batch.
type Leaderboard struct {
	BatchID   string
	Kind      event.Kind
	Rows      []model.RankedRow
	Requested int
	Failed    []identifier.ID
	Duration  time.Duration
}

// Service implements the use cases behind the CLI.
type Service struct {
	roster   *roster.Roster
	fetcher  provider.Fetcher
	progress Progress
	logger   logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRoster sets the tracked competitor set.
func WithRoster(r *roster.Roster) Option {
	return func(s *Service) {
		s.roster = r
	}
}

// WithFetcher sets the fetcher used by ranking batches. It is normally a
// *provider.Retrying.
func WithFetcher(f provider.Fetcher) Option {
	return func(s *Service) {
		s.fetcher = f
	}
}

// WithProgress sets the progress reporter used by Rank.
func WithProgress(p Progress) Option {
	return func(s *Service) {
		if p != nil {
			s.progress = p
		}
	}
}

// New constructs a Service.
func New(opts ...Option) *Service {
	s := &Service{progress: noProgress{}}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	return s
}

type settled struct {
	index int
	rec   model.CompetitorRecord
	err   error
}

// Rank fetches every tracked competitor concurrently and ranks those that
// could be retrieved for kind. Competitors whose retrieval failed are
// reported in Leaderboard.Failed and left out of the rows.
func (s *Service) Rank(ctx context.Context, kind event.Kind) (Leaderboard, error) {
	if s.roster == nil || s.fetcher == nil {
		return Leaderboard{}, ErrNotConfigured
	}
	if !kind.Valid() {
		metrics.RecordBatchFailure()
		return Leaderboard{}, fmt.Errorf("%w: %w", ErrBatchFailure, event.ErrUnknownEvent)
	}

	start := time.Now()
	ids := s.roster.List()
	board := Leaderboard{
		BatchID:   uuid.NewString(),
		Kind:      kind,
		Requested: len(ids),
	}
	log := s.logger.With(
		logger.String("batch_id", board.BatchID),
		logger.String("event", kind.String()),
	)
	log.Debug(ctx, "starting batch", logger.Int("competitors", len(ids)))

	out := make(chan settled, len(ids))
	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id identifier.ID) {
			defer wg.Done()
			out <- s.fetchOne(ctx, i, id, kind)
		}(i, id)
	}
	go func() {
		wg.Wait()
		close(out)
	}()

	slots := make([]settled, len(ids))
	completed := 0
	for r := range out {
		completed++
		slots[r.index] = r
		if r.err != nil {
			log.Warn(ctx, "excluding competitor",
				logger.String("id", string(r.rec.ID)),
				logger.Error(r.err),
			)
		}
		s.progress.Loaded(completed, len(ids), r.rec)
	}

	records := make([]model.CompetitorRecord, 0, len(ids))
	for _, r := range slots {
		if r.rec.Fetched {
			records = append(records, r.rec)
		} else {
			board.Failed = append(board.Failed, r.rec.ID)
		}
	}

	rows, err := rankSafely(records, kind)
	if err != nil {
		metrics.RecordBatchFailure()
		log.Error(ctx, "ranking failed", logger.Error(err))
		return Leaderboard{}, err
	}
	board.Rows = rows
	board.Duration = time.Since(start)

	metrics.RecordBatch(board.Requested, len(rows), len(board.Failed), float64(board.Duration.Milliseconds()))
	log.Info(ctx, "batch complete",
		logger.Int("ranked", len(rows)),
		logger.Int("failed", len(board.Failed)),
		logger.Duration("took", board.Duration),
	)
	return board, nil
}

func (s *Service) fetchOne(ctx context.Context, i int, id identifier.ID, kind event.Kind) (r settled) {
	r = settled{index: i, rec: model.Failed(id)}
	defer func() {
		if p := recover(); p != nil {
			r.rec = model.Failed(id)
			r.err = fmt.Errorf("fetch panicked: %v", p)
		}
	}()

	person, err := s.fetcher.Fetch(ctx, id)
	if err != nil {
		r.err = err
		return r
	}
	single, average := person.Project(kind)
	r.rec = model.CompetitorRecord{
		ID:      id,
		Name:    person.Name,
		Single:  single,
		Average: average,
		Fetched: true,
	}
	return r
}

func rankSafely(records []model.CompetitorRecord, kind event.Kind) (rows []model.RankedRow, err error) {
	defer func() {
		if p := recover(); p != nil {
			rows = nil
			err = fmt.Errorf("%w: %v", ErrBatchFailure, p)
		}
	}()
	return ranking.Rank(records, kind), nil
}

// Load restores the tracked competitors from storage.
func (s *Service) Load(ctx context.Context) error {
	if s.roster == nil {
		return ErrNotConfigured
	}
	return s.roster.Load(ctx)
}

// Add tracks a single competitor after confirming it exists.
func (s *Service) Add(ctx context.Context, raw string) (roster.AddResult, error) {
	if s.roster == nil {
		return roster.AddResult{}, ErrNotConfigured
	}
	return s.roster.Add(ctx, raw)
}

// AddBulk tracks every identifier found in text.
func (s *Service) AddBulk(ctx context.Context, text string) (roster.BulkResult, error) {
	if s.roster == nil {
		return roster.BulkResult{}, ErrNotConfigured
	}
	return s.roster.AddBulk(ctx, text)
}

// Remove stops tracking a competitor.
func (s *Service) Remove(ctx context.Context, raw string) (bool, error) {
	if s.roster == nil {
		return false, ErrNotConfigured
	}
	return s.roster.Remove(ctx, raw)
}

// Clear stops tracking every competitor.
func (s *Service) Clear(ctx context.Context) error {
	if s.roster == nil {
		return ErrNotConfigured
	}
	return s.roster.Clear(ctx)
}

// List returns the tracked identifiers.
func (s *Service) List() []identifier.ID {
	if s.roster == nil {
		return nil
	}
	return s.roster.List()
}
