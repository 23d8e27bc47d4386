package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/limchunyik/wca-psych-sheet-generator/internal/adapters/provider"
	"github.com/limchunyik/wca-psych-sheet-generator/internal/domain/identifier"
	"github.com/limchunyik/wca-psych-sheet-generator/internal/domain/roster"
)

// validatorAdapter adapts a provider.Fetcher to roster.Validator.
type validatorAdapter struct {
	fetcher provider.Fetcher
}

// NewValidator returns a roster.Validator that performs a single lookup
// through f. Pass the plain client, not a retrying one.
func NewValidator(f provider.Fetcher) roster.Validator {
	return &validatorAdapter{fetcher: f}
}

func (a *validatorAdapter) Exists(ctx context.Context, id identifier.ID) error {
	_, err := a.fetcher.Fetch(ctx, id)
	if err == nil {
		return nil
	}
	if errors.Is(err, provider.ErrNotFound) {
		return fmt.Errorf("%w: %s", roster.ErrCompetitorNotFound, id)
	}
	return err
}
