package ledger

import (
	"encoding/json"
	"strings"
)

// Event is one domain event emitted by a dry-run. Type is the fully qualified
// on-chain event type; matching is by suffix since the package address prefix
// varies between deployments.
type Event struct {
	Type   string          `json:"type"`
	Parsed json.RawMessage `json:"parsedJson"`
}

func (e Event) Is(suffix string) bool {
	return strings.HasSuffix(e.Type, suffix)
}

// FindEvent returns the first event whose type ends with suffix, or nil.
func FindEvent(events []Event, suffix string) *Event {
	for i := range events {
		if events[i].Is(suffix) {
			return &events[i]
		}
	}
	return nil
}

// TypeName wraps the on-chain type-name struct `{name: "..."}`.
type TypeName struct {
	Name string `json:"name"`
}

// Numeric event fields arrive as decimal strings; they stay strings here and
// are parsed where the settlement math happens.

type MintLpEvent struct {
	MintedLpAmount   string `json:"minted_lp_amount"`
	DepositAmountUsd string `json:"deposit_amount_usd"`
}

type BurnLpEvent struct {
	BurnAmountUsd       string   `json:"burn_amount_usd"`
	BurnFeeUsd          string   `json:"burn_fee_usd"`
	WithdrawTokenAmount string   `json:"withdraw_token_amount"`
	LiquidityTokenType  TypeName `json:"liquidity_token_type"`
}

type HarvestEvent struct {
	HarvestedAmount  string   `json:"harvested_amount"`
	HarvestAmountUsd string   `json:"harvest_amount_usd"`
	TokenType        TypeName `json:"token_type"`
}

const (
	EventMintLp  = "MintLpEvent"
	EventStake   = "StakeEvent"
	EventRedeem  = "RedeemEvent"
	EventBurnLp  = "BurnLpEvent"
	EventHarvest = "HarvestPerLpEvent"
)
