package ledger

// Raw on-chain amounts are unsigned 64-bit integers scaled by 10^9. Conversion
// to USD-denominated decimals happens at the edges (settle, service), never here.

// Pool is a point-in-time snapshot of the liquidity pool. Fetched fresh per
// request; never cached across requests except by the TVL stream watcher.
type Pool struct {
	ID              string
	TokenType       string // share token minted against deposits
	TvlUsd          uint64 // 9-dec raw
	ShareSupply     uint64
	DepositFeeBps   uint64
	WithdrawFeeBps  uint64
	DepositorsCount uint64
	Volume24hUsd    uint64 // 9-dec raw
	CollateralTypes []string
}

// Collateral reports whether coinType is accepted as deposit collateral and
// returns the canonical type string the protocol uses for it.
func (p *Pool) Collateral(coinType string) (string, bool) {
	for _, t := range p.CollateralTypes {
		if t == coinType {
			return t, true
		}
	}
	return "", false
}

// SharePriceUsd is TVL over supply, both 9-dec raw, so the ratio is USD per
// raw share unit times 10^9 over 10^9 and cancels out.
func (p *Pool) SharePriceUsd() float64 {
	if p.ShareSupply == 0 {
		return 0
	}
	return float64(p.TvlUsd) / float64(p.ShareSupply)
}

// IncentiveConfig is one token-incentive schedule on the stake pool: a fixed
// raw amount emitted per interval.
type IncentiveConfig struct {
	TokenType    string
	PeriodAmount uint64 // 9-dec raw per interval
	PeriodMs     uint64 // interval duration in milliseconds
}

type StakePool struct {
	ID          string
	TotalShares uint64
	Incentives  []IncentiveConfig
}

// UserStake is one user's stake record. Harvested mirrors the record's fixed
// auxiliary slot holding the cumulative historically-claimed reward amount.
// RewardPriceUsd is the gateway-quoted 9-dec USD price per whole reward token.
type UserStake struct {
	ShareID         string
	Shares          uint64
	PendingReward   uint64
	Harvested       uint64
	RewardTokenType string
	RewardPriceUsd  uint64
}
