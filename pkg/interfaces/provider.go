package interfaces

import (
	"context"

	"examhall/pkg/types"
)

// AssignmentProvider produces the participant→room mapping consumed by the
// session coordinator. The allocation step is an external collaborator: it
// may compute the mapping in-process, in another process, or behind any
// other boundary, as long as the finished mapping is delivered atomically
// before any participant unit is spawned.
type AssignmentProvider interface {
	// ProvideAssignments returns a complete mapping for the given
	// population distributed over rooms of the given capacity. The call
	// blocks until the mapping is ready. An error aborts the session
	// before spawning; partial mappings are never returned.
	ProvideAssignments(ctx context.Context, population, roomCapacity int) (types.Mapping, error)
}
