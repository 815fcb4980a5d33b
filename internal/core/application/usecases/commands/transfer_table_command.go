package commands

import (
	"errors"

	"comanda/internal/core/domain/model/kernel"
	"comanda/internal/pkg/guard"
)

var (
	ErrTransferTableCommandIsNotConstructed = errors.New(
		"TransferTableCommand must be created via NewTransferTableCommand constructor",
	)
	ErrTransferToSameTable = errors.New("source and target tables must differ")
)

// TransferTableCommand represents a request to move a seated order from one
// table to another, preserving the original occupation time.
type TransferTableCommand struct { //nolint:recvcheck //using for validation
	tenantID      kernel.UUID
	actorID       kernel.UUID
	sourceTableID kernel.UUID
	targetTableID kernel.UUID

	guard guard.ConstructorGuard
}

// NewTransferTableCommand creates a command to transfer a table's order.
func NewTransferTableCommand(
	tenantID, actorID, sourceTableID, targetTableID kernel.UUID,
) (TransferTableCommand, error) {
	cmd := TransferTableCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		tenantID.Validate(),
		actorID.Validate(),
		sourceTableID.Validate(),
		targetTableID.Validate(),
	); err != nil {
		return TransferTableCommand{}, err
	}
	if sourceTableID.IsEqual(targetTableID) {
		return TransferTableCommand{}, ErrTransferToSameTable
	}

	cmd.tenantID = tenantID
	cmd.actorID = actorID
	cmd.sourceTableID = sourceTableID
	cmd.targetTableID = targetTableID
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TransferTableCommand) Validate() error {
	return c.guard.Validate(ErrTransferTableCommandIsNotConstructed)
}

// TenantID returns the tenant the tables belong to.
func (c TransferTableCommand) TenantID() kernel.UUID { return c.tenantID }

// ActorID returns the operator performing the transfer.
func (c TransferTableCommand) ActorID() kernel.UUID { return c.actorID }

// SourceTableID returns the table the order currently sits on.
func (c TransferTableCommand) SourceTableID() kernel.UUID { return c.sourceTableID }

// TargetTableID returns the table the order moves to.
func (c TransferTableCommand) TargetTableID() kernel.UUID { return c.targetTableID }
