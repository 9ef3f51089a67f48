package ledger

import (
	"context"
	"fmt"
)

// StateProvider supplies point-in-time ledger snapshots and the dry-run
// capability. Calls either complete or fail outright; retries, if any, belong
// behind this interface, not in front of it.
type StateProvider interface {
	GetLpPool(ctx context.Context) (*Pool, error)
	GetStakePool(ctx context.Context) (*StakePool, error)
	// GetUserStake returns nil, nil when the address has no stake record.
	GetUserStake(ctx context.Context, address string) (*UserStake, error)
	// GetUserStakeByID returns nil, nil when no record has that position id.
	GetUserStakeByID(ctx context.Context, shareID string) (*UserStake, error)
	GetCoins(ctx context.Context, owner, coinType string) ([]string, error)
	// DryRun executes the encoded transaction against current ledger state
	// without committing it and returns the events it would emit.
	DryRun(ctx context.Context, txBytes []byte, sender string) ([]Event, error)
}

// SimulationError is the evaluator rejecting a transaction during dry-run
// (insufficient balance, invalid object reference, protocol abort).
type SimulationError struct {
	Status string
	Detail string
}

func (e *SimulationError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("simulation rejected: %s", e.Status)
	}
	return fmt.Sprintf("simulation rejected: %s: %s", e.Status, e.Detail)
}

// RPCError is a non-OK response from the ledger RPC endpoint.
type RPCError struct {
	Code    int
	Message string
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("ledger rpc error (%d): %s", e.Code, e.Message)
}
