package service

import (
	"context"
	"math"
	"testing"

	"earnapi/internal/config"
	"earnapi/internal/ledger"
	"earnapi/internal/yield"
)

type fakeProvider struct {
	pool      *ledger.Pool
	stakePool *ledger.StakePool
	stake     *ledger.UserStake
}

func (f *fakeProvider) GetLpPool(ctx context.Context) (*ledger.Pool, error) { return f.pool, nil }

func (f *fakeProvider) GetStakePool(ctx context.Context) (*ledger.StakePool, error) {
	return f.stakePool, nil
}

func (f *fakeProvider) GetUserStake(ctx context.Context, address string) (*ledger.UserStake, error) {
	return f.stake, nil
}

func (f *fakeProvider) GetUserStakeByID(ctx context.Context, shareID string) (*ledger.UserStake, error) {
	if f.stake != nil && f.stake.ShareID == shareID {
		return f.stake, nil
	}
	return nil, nil
}

func (f *fakeProvider) GetCoins(ctx context.Context, owner, coinType string) ([]string, error) {
	return nil, nil
}

func (f *fakeProvider) DryRun(ctx context.Context, txBytes []byte, sender string) ([]ledger.Event, error) {
	return nil, nil
}

type fakeFeeSource struct {
	series []yield.FeeSample
}

func (f *fakeFeeSource) Series(ctx context.Context) ([]yield.FeeSample, error) {
	return f.series, nil
}

func steadySeries(n int, delta float64) []yield.FeeSample {
	series := make([]yield.FeeSample, n)
	for i := range series {
		series[i] = yield.FeeSample{Timestamp: int64(i) * 3600, CumulativeUsd: float64(i) * delta}
	}
	return series
}

func testProvider() *fakeProvider {
	return &fakeProvider{
		pool: &ledger.Pool{
			ID:              "0xpool",
			TokenType:       "0xabc::tlp::TLP",
			TvlUsd:          1_000_000_000_000, // 1000 USD
			ShareSupply:     500_000_000_000,
			DepositFeeBps:   10,
			WithdrawFeeBps:  20,
			DepositorsCount: 123,
			Volume24hUsd:    50_000_000_000,
			CollateralTypes: []string{"0xdef::usdc::USDC"},
		},
		stakePool: &ledger.StakePool{
			ID:          "0xstake",
			TotalShares: 400_000_000_000,
			Incentives: []ledger.IncentiveConfig{
				{PeriodAmount: 400_000_000, PeriodMs: 86_400_000},
			},
		},
	}
}

func TestStrategyServiceGet(t *testing.T) {
	svc := &StrategyService{
		Provider: testProvider(),
		Fees:     &fakeFeeSource{series: steadySeries(721, 0.1)},
		Pool:     config.PoolConfig{StrategyID: "tlp-main", MinDepositRaw: "1000000"},
	}

	view, err := svc.Get(context.Background(), "tlp-main")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if view == nil {
		t.Fatalf("view is nil")
	}
	if view.TvlUsd != 1000 {
		t.Fatalf("tvlUsd = %v, want 1000", view.TvlUsd)
	}
	if view.Fees.DepositBps != "10" || view.Fees.WithdrawBps != "20" {
		t.Fatalf("fees = %+v", view.Fees)
	}
	if len(view.MinDeposit) != 1 || view.MinDeposit[0].Amount != "1000000" {
		t.Fatalf("minDeposit = %+v", view.MinDeposit)
	}

	// Steady series: every window is delta*24*365/tvl plus the incentive APR.
	incentive := yield.IncentiveAPR(svc.Provider.(*fakeProvider).stakePool)
	want := 0.1*24*365/1000 + incentive
	if math.Abs(view.Apy.Current-want) > 1e-9 {
		t.Fatalf("apy.current = %v, want %v", view.Apy.Current, want)
	}
	if view.Apy.Current != view.Apy.Avg24h || view.Apy.Avg24h != view.Apy.Avg7d {
		t.Fatalf("steady-state windows differ: %+v", view.Apy)
	}
}

func TestStrategyServiceUnknownID(t *testing.T) {
	svc := &StrategyService{
		Provider: testProvider(),
		Fees:     &fakeFeeSource{series: steadySeries(721, 0.1)},
		Pool:     config.PoolConfig{StrategyID: "tlp-main"},
	}
	view, err := svc.Get(context.Background(), "other")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if view != nil {
		t.Fatalf("view = %+v, want nil for unknown id", view)
	}
}

func TestStrategyServiceShortHistory(t *testing.T) {
	svc := &StrategyService{
		Provider: testProvider(),
		Fees:     &fakeFeeSource{series: steadySeries(100, 0.1)},
		Pool:     config.PoolConfig{StrategyID: "tlp-main"},
	}
	if _, err := svc.List(context.Background()); err == nil {
		t.Fatalf("expected error for short fee history")
	}
}

func TestPositionServiceView(t *testing.T) {
	provider := testProvider()
	provider.stake = &ledger.UserStake{
		ShareID:         "42",
		Shares:          10_000_000_000, // 2% of supply
		PendingReward:   3_000_000_000,
		Harvested:       1_000_000_000,
		RewardTokenType: "0x2::sui::SUI",
		RewardPriceUsd:  2_000_000_000, // 2 USD per token
	}
	svc := &PositionService{
		Provider: provider,
		Pool:     config.PoolConfig{StrategyID: "tlp-main"},
		Partner:  config.PartnerConfig{PositionURLBase: "https://partner.example/positions"},
	}

	views, err := svc.ListByAddress(context.Background(), "0xuser")
	if err != nil {
		t.Fatalf("ListByAddress: %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("views = %d, want 1", len(views))
	}
	view := views[0]
	if view.ID != "42" || view.StrategyID != "tlp-main" {
		t.Fatalf("view = %+v", view)
	}
	// 10e9 shares of a 500e9 supply against 1000 USD TVL = 20 USD.
	if math.Abs(view.Principal[0].ValueUsd-20) > 1e-9 {
		t.Fatalf("principal valueUsd = %v, want 20", view.Principal[0].ValueUsd)
	}
	// 3 tokens pending at 2 USD each.
	if math.Abs(view.PendingRewards[0].ValueUsd-6) > 1e-9 {
		t.Fatalf("pending valueUsd = %v, want 6", view.PendingRewards[0].ValueUsd)
	}
	// Total = pending + harvested = 4 tokens = 8 USD.
	if view.TotalRewards[0].Amount != "4000000000" {
		t.Fatalf("total reward amount = %s", view.TotalRewards[0].Amount)
	}
	if math.Abs(view.TotalRewards[0].ValueUsd-8) > 1e-9 {
		t.Fatalf("total valueUsd = %v, want 8", view.TotalRewards[0].ValueUsd)
	}
	if view.URL != "https://partner.example/positions/42" {
		t.Fatalf("url = %s", view.URL)
	}
}

func TestPositionServiceNoPosition(t *testing.T) {
	svc := &PositionService{
		Provider: testProvider(),
		Pool:     config.PoolConfig{StrategyID: "tlp-main"},
	}

	views, err := svc.ListByAddress(context.Background(), "0xuser")
	if err != nil {
		t.Fatalf("ListByAddress: %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("views = %+v, want empty", views)
	}

	view, err := svc.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if view != nil {
		t.Fatalf("view = %+v, want nil", view)
	}
}
