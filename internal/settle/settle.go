// Package settle derives user-facing settlement figures from simulated
// transaction events. All on-chain USD fields are 9-decimal fixed point; the
// single scaling rule here is divide-by-1e9, applied uniformly to principal,
// rewards and fees.
package settle

import (
	"encoding/json"
	"math"
	"strconv"

	"earnapi/internal/ledger"
)

type Leg struct {
	CoinType string
	Amount   uint64 // raw on-chain units
	ValueUsd float64
}

type Settlement struct {
	Principal Leg
	Rewards   []Leg
	Fees      []Leg
}

// ExtractDeposit reads the mint event: the minted share amount is reported
// raw as-is, the deposit USD value scaled by the 9-decimal rule. The protocol
// charges no deposit fee in this flow.
func ExtractDeposit(events []ledger.Event, shareTokenType string) (*Settlement, error) {
	ev := ledger.FindEvent(events, ledger.EventMintLp)
	if ev == nil {
		return nil, &MissingEventError{Event: ledger.EventMintLp}
	}
	var mint ledger.MintLpEvent
	if err := json.Unmarshal(ev.Parsed, &mint); err != nil {
		return nil, &MissingEventError{Event: ledger.EventMintLp, Cause: err}
	}
	return &Settlement{
		Principal: Leg{
			CoinType: shareTokenType,
			Amount:   rawAmount(mint.MintedLpAmount),
			ValueUsd: usdFromRaw(mint.DepositAmountUsd),
		},
	}, nil
}

// ExtractWithdraw reads the burn event for the principal/fee split and the
// optional harvest event for a reward leg.
//
// The fee's raw amount is reconstructed from its USD value through the
// token price implied by the burn event:
//
//	netUsd     = burnAmountUsd - burnFeeUsd        (both /1e9)
//	tokenPrice = netUsd / withdrawTokenAmount       (USD per raw unit)
//	feeRaw     = round(feeUsd / tokenPrice)
//
// Rounding is math.Round: half away from zero, deterministic.
// The fee leg is denominated in the withdrawal's requested principal coin
// type; the principal leg's coin type comes from the burn event itself.
func ExtractWithdraw(events []ledger.Event, requestedCoinType string) (*Settlement, error) {
	ev := ledger.FindEvent(events, ledger.EventBurnLp)
	if ev == nil {
		return nil, &MissingEventError{Event: ledger.EventBurnLp}
	}
	var burn ledger.BurnLpEvent
	if err := json.Unmarshal(ev.Parsed, &burn); err != nil {
		return nil, &MissingEventError{Event: ledger.EventBurnLp, Cause: err}
	}

	totalUsd := usdFromRaw(burn.BurnAmountUsd)
	feeUsd := usdFromRaw(burn.BurnFeeUsd)
	netUsd := totalUsd - feeUsd

	withdrawAmt := rawAmount(burn.WithdrawTokenAmount)
	if withdrawAmt == 0 {
		return nil, &DegenerateSettlementError{Message: "burn event reports zero withdraw token amount"}
	}
	tokenPrice := netUsd / float64(withdrawAmt)
	feeRaw := uint64(math.Round(feeUsd / tokenPrice))

	result := &Settlement{
		Principal: Leg{
			CoinType: burn.LiquidityTokenType.Name,
			Amount:   withdrawAmt,
			ValueUsd: netUsd,
		},
		Fees: []Leg{
			{
				CoinType: requestedCoinType,
				Amount:   feeRaw,
				ValueUsd: feeUsd,
			},
		},
	}

	if harvestEv := ledger.FindEvent(events, ledger.EventHarvest); harvestEv != nil {
		var harvest ledger.HarvestEvent
		if err := json.Unmarshal(harvestEv.Parsed, &harvest); err == nil {
			if amount := rawAmount(harvest.HarvestedAmount); amount > 0 {
				result.Rewards = append(result.Rewards, Leg{
					CoinType: harvest.TokenType.Name,
					Amount:   amount,
					ValueUsd: usdFromRaw(harvest.HarvestAmountUsd),
				})
			}
		}
	}

	return result, nil
}

func rawAmount(s string) uint64 {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return v
}

func usdFromRaw(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v / 1e9
}
