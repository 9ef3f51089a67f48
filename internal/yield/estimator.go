// Package yield converts a cumulative fee-accrual series plus the stake
// pool's incentive schedule into annualized yield fractions (0.05 = 5%/year).
package yield

import (
	"fmt"

	"earnapi/internal/ledger"
)

// FeeSample is one point of the hourly fee series: a timestamp in seconds and
// the cumulative protocol fee value in USD at that time. Series are expected
// time-ordered and monotonically non-decreasing, most-recent last; the
// estimator assumes this and does not guard against violations.
type FeeSample struct {
	Timestamp     int64
	CumulativeUsd float64
}

// Estimate holds the four annualized yield figures over different lookback
// windows. Each is fee-derived APR plus the incentive APR, which is identical
// across windows.
type Estimate struct {
	Current float64
	Avg24h  float64
	Avg7d   float64
	Avg30d  float64
}

const (
	hoursPerYear = 365 * 24
	msPerYear    = 365 * 24 * 3600 * 1000

	// MinSamples is the shortest series the full estimate can be computed
	// from: the 7-day window reaches back 168 hours plus the current sample.
	MinSamples = 169

	samples30d = 721
)

// InsufficientHistoryError is a fee series too short for the 7-day window.
type InsufficientHistoryError struct {
	Have int
	Need int
}

func (e *InsufficientHistoryError) Error() string {
	return fmt.Sprintf("fee history has %d samples, need %d", e.Have, e.Need)
}

// InstantRate annualizes the last hour's fee delta. It needs two samples.
func InstantRate(series []FeeSample, tvlUsd float64) float64 {
	n := len(series)
	return (series[n-1].CumulativeUsd - series[n-2].CumulativeUsd) * hoursPerYear / tvlUsd
}

// Rate24h annualizes the trailing 24-hour fee delta.
func Rate24h(series []FeeSample, tvlUsd float64) float64 {
	n := len(series)
	return (series[n-1].CumulativeUsd - series[n-1-24].CumulativeUsd) * 365 / tvlUsd
}

// Rate7d annualizes the trailing 7-day fee delta.
func Rate7d(series []FeeSample, tvlUsd float64) float64 {
	n := len(series)
	return (series[n-1].CumulativeUsd - series[n-1-168].CumulativeUsd) * 365 / 7 / tvlUsd
}

// Rate30d annualizes the trailing 30-day fee delta. Series shorter than a full
// 30-day window fall back to their first sample.
func Rate30d(series []FeeSample, tvlUsd float64) float64 {
	n := len(series)
	start := 0
	if n >= samples30d {
		start = n - samples30d
	}
	return (series[n-1].CumulativeUsd - series[start].CumulativeUsd) * 365 / 30 / tvlUsd
}

// IncentiveAPR annualizes the stake pool's token emission schedules against
// total staked shares. Empty schedules or an empty pool yield zero.
func IncentiveAPR(stakePool *ledger.StakePool) float64 {
	if stakePool == nil || stakePool.TotalShares == 0 {
		return 0
	}
	var apr float64
	for _, inc := range stakePool.Incentives {
		if inc.PeriodMs == 0 {
			continue
		}
		ratio := float64(inc.PeriodAmount) / float64(stakePool.TotalShares)
		periodsPerYear := float64(msPerYear) / float64(inc.PeriodMs)
		apr += ratio * periodsPerYear
	}
	return apr
}

// Compute produces the full estimate. It requires at least MinSamples points
// and assumes tvlUsd > 0.
func Compute(series []FeeSample, tvlUsd float64, stakePool *ledger.StakePool) (*Estimate, error) {
	if len(series) < MinSamples {
		return nil, &InsufficientHistoryError{Have: len(series), Need: MinSamples}
	}
	incentive := IncentiveAPR(stakePool)
	return &Estimate{
		Current: InstantRate(series, tvlUsd) + incentive,
		Avg24h:  Rate24h(series, tvlUsd) + incentive,
		Avg7d:   Rate7d(series, tvlUsd) + incentive,
		Avg30d:  Rate30d(series, tvlUsd) + incentive,
	}, nil
}
