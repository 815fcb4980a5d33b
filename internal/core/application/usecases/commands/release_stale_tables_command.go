package commands

import (
	"errors"

	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/pkg/guard"
)

var ErrReleaseStaleTablesCommandIsNotConstructed = errors.New(
	"ReleaseStaleTablesCommand must be created via NewReleaseStaleTablesCommand constructor",
)

// ReleaseStaleTablesCommand represents the occupancy sweep: every occupied
// table whose bound order reached a terminal status (or no longer exists) is
// released. Run periodically to self-heal orphaned occupancy state.
type ReleaseStaleTablesCommand struct { //nolint:recvcheck //using for validation
	actorID kernel.UUID

	guard guard.ConstructorGuard
}

// NewReleaseStaleTablesCommand creates a sweep command attributed to the given
// system actor.
func NewReleaseStaleTablesCommand(actorID kernel.UUID) (ReleaseStaleTablesCommand, error) {
	if err := actorID.Validate(); err != nil {
		return ReleaseStaleTablesCommand{}, err
	}

	return ReleaseStaleTablesCommand{
		actorID: actorID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReleaseStaleTablesCommand) Validate() error {
	return c.guard.Validate(ErrReleaseStaleTablesCommandIsNotConstructed)
}

// ActorID returns the system actor the sweep's audit entries are attributed to.
func (c ReleaseStaleTablesCommand) ActorID() kernel.UUID { return c.actorID }
