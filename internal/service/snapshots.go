package service

import (
	"context"
	"sync"

	"earnapi/internal/ledger"
)

// snapshots groups the independent per-request ledger reads. The reads run
// concurrently and are not atomic with respect to each other: two of them may
// reflect different ledger heights under concurrent on-chain activity. That
// staleness window is accepted; composition only starts once all reads are in.
type snapshots struct {
	pool      *ledger.Pool
	stakePool *ledger.StakePool
	stake     *ledger.UserStake
	coins     []string
}

func fetchSnapshots(ctx context.Context, provider ledger.StateProvider, sender, coinType string, withCoins bool) (*snapshots, error) {
	var (
		snap snapshots
		wg   sync.WaitGroup
		errs [4]error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		snap.pool, errs[0] = provider.GetLpPool(ctx)
	}()
	go func() {
		defer wg.Done()
		snap.stakePool, errs[1] = provider.GetStakePool(ctx)
	}()
	go func() {
		defer wg.Done()
		snap.stake, errs[2] = provider.GetUserStake(ctx, sender)
	}()
	if withCoins {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snap.coins, errs[3] = provider.GetCoins(ctx, sender, coinType)
		}()
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return &snap, nil
}
