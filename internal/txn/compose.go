package txn

import (
	"fmt"
	"strconv"
	"strings"

	"earnapi/internal/ledger"
)

// DepositIntent is a validated deposit request ready for composition.
type DepositIntent struct {
	CoinType string
	Amount   uint64
	Coins    []string // coin object ids funding the deposit
	User     string
}

// ComposeDeposit builds the deposit graph: a single composite operation that
// mints pool shares from collateral and stakes them in one step. When the user
// already holds a stake record the mint compounds into it; otherwise the
// position id arg stays empty and the protocol opens a new record.
// Auto-compounding of rewards is always on.
func ComposeDeposit(pool *ledger.Pool, stakePool *ledger.StakePool, existing *ledger.UserStake, intent DepositIntent) (*Graph, error) {
	if intent.Amount == 0 {
		return nil, &ValidationError{Message: "deposit amount must be positive"}
	}
	collateral, ok := pool.Collateral(intent.CoinType)
	if !ok {
		return nil, &ValidationError{Message: fmt.Sprintf("coin type %s is not accepted as pool collateral", intent.CoinType)}
	}
	shareID := ""
	if existing != nil {
		shareID = existing.ShareID
	}
	return &Graph{
		Sender: intent.User,
		Ops: []Operation{
			{
				Kind: OpMintStakeLp,
				Args: []Arg{
					{Key: "lp_pool", Value: pool.ID},
					{Key: "stake_pool", Value: stakePool.ID},
					{Key: "coin_type", Value: collateral},
					{Key: "coins", Value: strings.Join(intent.Coins, ",")},
					{Key: "amount", Value: strconv.FormatUint(intent.Amount, 10)},
					{Key: "user", Value: intent.User},
					{Key: "user_share_id", Value: shareID},
					{Key: "stake", Value: "true"},
					{Key: "auto_compound", Value: "true"},
				},
			},
		},
	}, nil
}

// WithdrawIntent is a validated withdraw request ready for composition.
type WithdrawIntent struct {
	CoinType string
	Shares   uint64
	User     string
}

// ComposeWithdraw builds the withdraw graph: unstake-and-redeem followed by
// claim, in that order. Redeem must precede claim so the simulated claim
// reflects post-redemption reward state.
func ComposeWithdraw(pool *ledger.Pool, stakePool *ledger.StakePool, position *ledger.UserStake, intent WithdrawIntent) (*Graph, error) {
	if position == nil {
		return nil, &PreconditionError{Message: fmt.Sprintf("no stake position found for %s", intent.User)}
	}
	if intent.Shares == 0 {
		return nil, &ValidationError{Message: "withdraw share amount must be positive"}
	}
	if intent.Shares > position.Shares {
		return nil, &ValidationError{Message: fmt.Sprintf("withdraw share amount %d exceeds position total %d", intent.Shares, position.Shares)}
	}
	return &Graph{
		Sender: intent.User,
		Ops: []Operation{
			{
				Kind: OpUnstakeRedeem,
				Args: []Arg{
					{Key: "user_share_id", Value: position.ShareID},
					{Key: "lp_pool", Value: pool.ID},
					{Key: "stake_pool", Value: stakePool.ID},
					{Key: "share", Value: strconv.FormatUint(intent.Shares, 10)},
					{Key: "user", Value: intent.User},
				},
			},
			{
				Kind: OpClaim,
				Args: []Arg{
					{Key: "lp_pool", Value: pool.ID},
					{Key: "stake_pool", Value: stakePool.ID},
					{Key: "coin_type", Value: intent.CoinType},
					{Key: "user", Value: intent.User},
				},
			},
		},
	}, nil
}
