package service

import (
	"context"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"earnapi/internal/config"
	"earnapi/internal/feehistory"
	"earnapi/internal/ledger"
	"earnapi/internal/stream"
	"earnapi/internal/yield"
)

type MinDepositView struct {
	CoinType string `json:"coinType"`
	Amount   string `json:"amount"`
}

type APYView struct {
	Current float64 `json:"current"`
	Avg24h  float64 `json:"avg24h"`
	Avg7d   float64 `json:"avg7d"`
	Avg30d  float64 `json:"avg30d"`
}

type FeeRatesView struct {
	DepositBps  string `json:"depositBps"`
	WithdrawBps string `json:"withdrawBps"`
}

type StrategyView struct {
	ID              string           `json:"id"`
	Type            string           `json:"type"`
	StrategyType    string           `json:"strategyType"`
	CoinType        string           `json:"coinType"`
	MinDeposit      []MinDepositView `json:"minDeposit"`
	Apy             APYView          `json:"apy"`
	DepositorsCount uint64           `json:"depositorsCount"`
	TvlUsd          float64          `json:"tvlUsd"`
	Volume24hUsd    float64          `json:"volume24hUsd"`
	Fees            FeeRatesView     `json:"fees"`
}

// StrategyService renders the single vault strategy from fresh pool state,
// the cached fee series and the stake pool's incentive schedule.
type StrategyService struct {
	Provider ledger.StateProvider
	Fees     feehistory.Source
	TVL      *stream.TVLWatcher
	Pool     config.PoolConfig
	Logger   *zap.Logger
}

func (s *StrategyService) List(ctx context.Context) ([]StrategyView, error) {
	view, err := s.build(ctx)
	if err != nil {
		return nil, err
	}
	return []StrategyView{*view}, nil
}

// Get returns nil, nil for an unknown strategy id.
func (s *StrategyService) Get(ctx context.Context, strategyID string) (*StrategyView, error) {
	if strategyID != s.Pool.StrategyID {
		return nil, nil
	}
	return s.build(ctx)
}

func (s *StrategyService) build(ctx context.Context) (*StrategyView, error) {
	var (
		wg        sync.WaitGroup
		pool      *ledger.Pool
		stakePool *ledger.StakePool
		series    []yield.FeeSample
		errs      [3]error
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		pool, errs[0] = s.Provider.GetLpPool(ctx)
	}()
	go func() {
		defer wg.Done()
		stakePool, errs[1] = s.Provider.GetStakePool(ctx)
	}()
	go func() {
		defer wg.Done()
		series, errs[2] = s.Fees.Series(ctx)
	}()
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	tvlRaw := pool.TvlUsd
	if s.TVL != nil {
		if streamed, ok := s.TVL.TvlUsd(); ok {
			tvlRaw = streamed
		}
	}
	tvlUsd := float64(tvlRaw) / 1e9

	estimate, err := yield.Compute(series, tvlUsd, stakePool)
	if err != nil {
		return nil, err
	}

	minDeposit := []MinDepositView{}
	if len(pool.CollateralTypes) > 0 {
		minDeposit = append(minDeposit, MinDepositView{
			CoinType: pool.CollateralTypes[0],
			Amount:   s.Pool.MinDepositRaw,
		})
	}

	return &StrategyView{
		ID:           s.Pool.StrategyID,
		Type:         "StrategyV1",
		StrategyType: "VAULT",
		CoinType:     pool.TokenType,
		MinDeposit:   minDeposit,
		Apy: APYView{
			Current: estimate.Current,
			Avg24h:  estimate.Avg24h,
			Avg7d:   estimate.Avg7d,
			Avg30d:  estimate.Avg30d,
		},
		DepositorsCount: pool.DepositorsCount,
		TvlUsd:          tvlUsd,
		Volume24hUsd:    float64(pool.Volume24hUsd) / 1e9,
		Fees: FeeRatesView{
			DepositBps:  strconv.FormatUint(pool.DepositFeeBps, 10),
			WithdrawBps: strconv.FormatUint(pool.WithdrawFeeBps, 10),
		},
	}, nil
}
