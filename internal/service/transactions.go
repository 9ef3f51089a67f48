package service

import (
	"context"

	"go.uber.org/zap"

	"earnapi/internal/ledger"
	"earnapi/internal/settle"
	"earnapi/internal/txn"
)

// TransactionService assembles, simulates and settles deposit and withdraw
// transactions. It holds no cross-request state; every call re-fetches its
// own ledger snapshots.
type TransactionService struct {
	Provider ledger.StateProvider
	Logger   *zap.Logger
}

type DepositParams struct {
	Sender   string
	CoinType string
	Amount   uint64
}

type WithdrawParams struct {
	Sender     string
	PositionID string
	CoinType   string
	Shares     uint64
}

// TransactionResult carries the canonical unsigned transaction bytes plus the
// settlement figures derived from its simulation.
type TransactionResult struct {
	Bytes      []byte
	Settlement *settle.Settlement
}

func (s *TransactionService) Deposit(ctx context.Context, params DepositParams) (*TransactionResult, error) {
	snap, err := fetchSnapshots(ctx, s.Provider, params.Sender, params.CoinType, true)
	if err != nil {
		return nil, err
	}

	graph, err := txn.ComposeDeposit(snap.pool, snap.stakePool, snap.stake, txn.DepositIntent{
		CoinType: params.CoinType,
		Amount:   params.Amount,
		Coins:    snap.coins,
		User:     params.Sender,
	})
	if err != nil {
		return nil, err
	}
	bytes := graph.Encode()

	events, err := s.Provider.DryRun(ctx, bytes, params.Sender)
	if err != nil {
		return nil, err
	}

	settlement, err := settle.ExtractDeposit(events, snap.pool.TokenType)
	if err != nil {
		return nil, err
	}

	if s.Logger != nil {
		s.Logger.Info("deposit composed",
			zap.String("sender", params.Sender),
			zap.String("coin_type", params.CoinType),
			zap.Uint64("amount", params.Amount),
			zap.Float64("value_usd", settlement.Principal.ValueUsd),
		)
	}
	return &TransactionResult{Bytes: bytes, Settlement: settlement}, nil
}

func (s *TransactionService) Withdraw(ctx context.Context, params WithdrawParams) (*TransactionResult, error) {
	snap, err := fetchSnapshots(ctx, s.Provider, params.Sender, params.CoinType, false)
	if err != nil {
		return nil, err
	}

	graph, err := txn.ComposeWithdraw(snap.pool, snap.stakePool, snap.stake, txn.WithdrawIntent{
		CoinType: params.CoinType,
		Shares:   params.Shares,
		User:     params.Sender,
	})
	if err != nil {
		return nil, err
	}
	bytes := graph.Encode()

	events, err := s.Provider.DryRun(ctx, bytes, params.Sender)
	if err != nil {
		return nil, err
	}

	settlement, err := settle.ExtractWithdraw(events, params.CoinType)
	if err != nil {
		return nil, err
	}

	if s.Logger != nil {
		s.Logger.Info("withdraw composed",
			zap.String("sender", params.Sender),
			zap.Uint64("shares", params.Shares),
			zap.Float64("net_usd", settlement.Principal.ValueUsd),
		)
	}
	return &TransactionResult{Bytes: bytes, Settlement: settlement}, nil
}
