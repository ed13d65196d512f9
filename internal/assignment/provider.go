// Package assignment produces participant-to-room mappings for a session.
package assignment

import (
	"context"
	"fmt"

	"examhall/pkg/types"
)

// BlockProvider assigns participants to rooms in contiguous blocks:
// participants 1..capacity fill room 0, the next capacity fill room 1, and
// so on. The last room holds the remainder when the capacity does not
// divide the population evenly.
type BlockProvider struct{}

// NewBlockProvider returns the default in-process assignment provider.
func NewBlockProvider() *BlockProvider {
	return &BlockProvider{}
}

// ProvideAssignments builds the complete mapping for the given population
// and per-room capacity. The mapping is delivered whole; the caller sees
// either every assignment or an error.
func (p *BlockProvider) ProvideAssignments(ctx context.Context, population, roomCapacity int) (types.Mapping, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if population <= 0 {
		return nil, fmt.Errorf("%w: %d", types.ErrInvalidPopulation, population)
	}
	if roomCapacity <= 0 {
		return nil, fmt.Errorf("%w: %d", types.ErrInvalidCapacity, roomCapacity)
	}

	mapping := make(types.Mapping, population)
	for i := 0; i < population; i++ {
		mapping[types.ParticipantID(i+1)] = types.RoomID(i / roomCapacity)
	}
	return mapping, nil
}

// ProviderFunc adapts a plain function to the AssignmentProvider interface.
// Scenario tests use it to inject deliberately faulty mappings.
type ProviderFunc func(ctx context.Context, population, roomCapacity int) (types.Mapping, error)

// ProvideAssignments calls f.
func (f ProviderFunc) ProvideAssignments(ctx context.Context, population, roomCapacity int) (types.Mapping, error) {
	return f(ctx, population, roomCapacity)
}
