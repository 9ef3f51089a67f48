package service

import (
	"context"
	"strconv"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"earnapi/internal/config"
	"earnapi/internal/ledger"
)

type PositionAmount struct {
	CoinType string  `json:"coinType"`
	Amount   string  `json:"amount"`
	ValueUsd float64 `json:"valueUsd"`
}

type PositionView struct {
	ID             string           `json:"id"`
	StrategyID     string           `json:"strategyId"`
	Type           string           `json:"type"`
	Principal      []PositionAmount `json:"principal"`
	PendingRewards []PositionAmount `json:"pendingRewards"`
	TotalRewards   []PositionAmount `json:"totalRewards"`
	URL            string           `json:"url"`
}

// PositionService renders stake records as wallet-facing position views.
type PositionService struct {
	Provider ledger.StateProvider
	Pool     config.PoolConfig
	Partner  config.PartnerConfig
	Logger   *zap.Logger
}

// ListByAddress returns the address's positions; an address with no stake
// record yields an empty list, not an error.
func (s *PositionService) ListByAddress(ctx context.Context, address string) ([]PositionView, error) {
	stake, err := s.Provider.GetUserStake(ctx, address)
	if err != nil {
		return nil, err
	}
	if stake == nil {
		return []PositionView{}, nil
	}
	pool, err := s.Provider.GetLpPool(ctx)
	if err != nil {
		return nil, err
	}
	return []PositionView{s.view(stake, pool)}, nil
}

// Get returns nil, nil for an unknown position id.
func (s *PositionService) Get(ctx context.Context, positionID string) (*PositionView, error) {
	stake, err := s.Provider.GetUserStakeByID(ctx, positionID)
	if err != nil {
		return nil, err
	}
	if stake == nil {
		return nil, nil
	}
	pool, err := s.Provider.GetLpPool(ctx)
	if err != nil {
		return nil, err
	}
	view := s.view(stake, pool)
	return &view, nil
}

func (s *PositionService) view(stake *ledger.UserStake, pool *ledger.Pool) PositionView {
	principalUsd := shareValueUsd(stake.Shares, pool)
	rewardPrice := decU64(stake.RewardPriceUsd)
	totalReward := stake.Harvested + stake.PendingReward

	view := PositionView{
		ID:         stake.ShareID,
		StrategyID: s.Pool.StrategyID,
		Type:       "PositionV1",
		Principal: []PositionAmount{
			{
				CoinType: pool.TokenType,
				Amount:   strconv.FormatUint(stake.Shares, 10),
				ValueUsd: principalUsd,
			},
		},
		PendingRewards: []PositionAmount{
			{
				CoinType: stake.RewardTokenType,
				Amount:   strconv.FormatUint(stake.PendingReward, 10),
				ValueUsd: rewardValueUsd(stake.PendingReward, rewardPrice),
			},
		},
		TotalRewards: []PositionAmount{
			{
				CoinType: stake.RewardTokenType,
				Amount:   strconv.FormatUint(totalReward, 10),
				ValueUsd: rewardValueUsd(totalReward, rewardPrice),
			},
		},
	}
	if s.Partner.PositionURLBase != "" {
		view.URL = s.Partner.PositionURLBase + "/" + stake.ShareID
	}
	return view
}

// shareValueUsd prices raw shares through the pool's TVL/supply ratio, then
// applies the 9-decimal rule once to land in USD.
func shareValueUsd(shares uint64, pool *ledger.Pool) float64 {
	if pool.ShareSupply == 0 {
		return 0
	}
	value := decU64(shares).
		Mul(decU64(pool.TvlUsd)).
		Div(decU64(pool.ShareSupply)).
		Div(decimal.New(1, 9))
	f, _ := value.Float64()
	return f
}

// rewardValueUsd scales both the raw amount and the raw per-token price by
// 10^9, hence the single 10^18 divisor.
func rewardValueUsd(amount uint64, price decimal.Decimal) float64 {
	value := decU64(amount).Mul(price).Div(decimal.New(1, 18))
	f, _ := value.Float64()
	return f
}

func decU64(v uint64) decimal.Decimal {
	d, _ := decimal.NewFromString(strconv.FormatUint(v, 10))
	return d
}
