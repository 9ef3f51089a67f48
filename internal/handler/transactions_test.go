package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"earnapi/internal/ledger"
	"earnapi/internal/service"
)

type fakeProvider struct {
	pool      *ledger.Pool
	stakePool *ledger.StakePool
	stake     *ledger.UserStake
	coins     []string
	events    []ledger.Event
	poolErr   error
	dryRunErr error
}

func (f *fakeProvider) GetLpPool(ctx context.Context) (*ledger.Pool, error) {
	return f.pool, f.poolErr
}

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
	return f.coins, nil
}

func (f *fakeProvider) DryRun(ctx context.Context, txBytes []byte, sender string) ([]ledger.Event, error) {
	if f.dryRunErr != nil {
		return nil, f.dryRunErr
	}
	return f.events, nil
}

func testEvent(t *testing.T, eventType string, payload any) ledger.Event {
	t.Helper()
	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal event payload: %v", err)
	}
	return ledger.Event{Type: "0xabc::pool::" + eventType, Parsed: raw}
}

func newTestRouter(provider ledger.StateProvider) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	h := &TransactionHandler{
		Service:    &service.TransactionService{Provider: provider},
		StrategyID: "tlp-main",
	}
	h.Register(engine)
	return engine
}

func defaultProvider(t *testing.T) *fakeProvider {
	return &fakeProvider{
		pool: &ledger.Pool{
			ID:              "0xpool",
			TokenType:       "0xabc::tlp::TLP",
			TvlUsd:          1_000_000_000_000,
			ShareSupply:     500_000_000_000,
			CollateralTypes: []string{"0xdef::usdc::USDC"},
		},
		stakePool: &ledger.StakePool{ID: "0xstake", TotalShares: 400_000_000_000},
		stake:     &ledger.UserStake{ShareID: "42", Shares: 10_000_000_000},
		coins:     []string{"0xc1"},
	}
}

func postJSON(t *testing.T, engine *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorBody {
	t.Helper()
	var body ErrorBody
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body
}

func TestDepositMissingFields(t *testing.T) {
	engine := newTestRouter(defaultProvider(t))

	cases := []map[string]any{
		{},
		{"strategyId": "tlp-main", "senderAddress": "0xuser", "coinType": "0xdef::usdc::USDC"},
		{"strategyId": "tlp-main", "coinType": "0xdef::usdc::USDC", "nativeAmount": "1000"},
		{"strategyId": "tlp-main", "senderAddress": "0xuser", "nativeAmount": 1000},
	}
	for i, body := range cases {
		rec := postJSON(t, engine, "/v1/deposit", body)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("case %d: status = %d, want 422", i, rec.Code)
		}
		errBody := decodeError(t, rec)
		if errBody.Tag != "TransactionBuildError" {
			t.Fatalf("case %d: _tag = %q", i, errBody.Tag)
		}
		if errBody.Message == "" {
			t.Fatalf("case %d: empty message", i)
		}
	}
}

func TestDepositSuccess(t *testing.T) {
	provider := defaultProvider(t)
	provider.events = []ledger.Event{
		testEvent(t, "MintLpEvent", map[string]any{
			"minted_lp_amount":   "5000000000",
			"deposit_amount_usd": "123000000000",
		}),
		testEvent(t, "StakeEvent", map[string]any{}),
	}
	engine := newTestRouter(provider)

	rec := postJSON(t, engine, "/v1/deposit", map[string]any{
		"strategyId":    "tlp-main",
		"senderAddress": "0xuser",
		"coinType":      "0xdef::usdc::USDC",
		"nativeAmount":  "1000000000",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp DepositResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Bytes) == 0 {
		t.Fatalf("empty transaction bytes")
	}
	if math.Abs(resp.NetDeposit.ValueUsd-123) > 1e-9 {
		t.Fatalf("netDeposit.valueUsd = %v, want 123", resp.NetDeposit.ValueUsd)
	}
	if resp.NetDeposit.Amount != "5000000000" {
		t.Fatalf("netDeposit.amount = %s", resp.NetDeposit.Amount)
	}
	if resp.NetDeposit.CoinType != "0xabc::tlp::TLP" {
		t.Fatalf("netDeposit.coinType = %s", resp.NetDeposit.CoinType)
	}
	if resp.Fees == nil || len(resp.Fees) != 0 {
		t.Fatalf("fees = %v, want empty array", resp.Fees)
	}
}

func TestWithdrawMissingFields(t *testing.T) {
	engine := newTestRouter(defaultProvider(t))

	rec := postJSON(t, engine, "/v1/withdraw", map[string]any{
		"positionId":    "42",
		"senderAddress": "0xuser",
		"principal":     map[string]any{"coinType": "0xdef::usdc::USDC"},
		"mode":          "as-is",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	errBody := decodeError(t, rec)
	if errBody.Tag != "TransactionBuildError" || errBody.Message == "" {
		t.Fatalf("error body = %+v", errBody)
	}
}

func TestWithdrawSuccess(t *testing.T) {
	provider := defaultProvider(t)
	provider.events = []ledger.Event{
		testEvent(t, "RedeemEvent", map[string]any{}),
		testEvent(t, "BurnLpEvent", map[string]any{
			"burn_amount_usd":       "250000000000",
			"burn_fee_usd":          "10000000000",
			"withdraw_token_amount": "2400000000",
			"liquidity_token_type":  map[string]string{"name": "USDC"},
		}),
	}
	engine := newTestRouter(provider)

	rec := postJSON(t, engine, "/v1/withdraw", map[string]any{
		"positionId":    "42",
		"senderAddress": "0xuser",
		"principal":     map[string]any{"coinType": "0xdef::usdc::USDC", "amount": "1000000000"},
		"mode":          "as-is",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp WithdrawResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if math.Abs(resp.Principal.ValueUsd-240) > 1e-9 {
		t.Fatalf("principal.valueUsd = %v, want 240", resp.Principal.ValueUsd)
	}
	if len(resp.Fees) != 1 {
		t.Fatalf("fees = %v, want one leg", resp.Fees)
	}
	if resp.Fees[0].Amount != "100000000" {
		t.Fatalf("fee amount = %s, want 100000000", resp.Fees[0].Amount)
	}
	// Principal plus fee reconstructs the simulated burn total.
	if math.Abs(resp.Principal.ValueUsd+resp.Fees[0].ValueUsd-250) > 1e-9 {
		t.Fatalf("principal+fee = %v, want 250", resp.Principal.ValueUsd+resp.Fees[0].ValueUsd)
	}
	if resp.Rewards == nil {
		t.Fatalf("rewards should be an empty array, not null")
	}
}

func TestWithdrawAbsentPosition(t *testing.T) {
	provider := defaultProvider(t)
	provider.stake = nil
	engine := newTestRouter(provider)

	rec := postJSON(t, engine, "/v1/withdraw", map[string]any{
		"positionId":    "42",
		"senderAddress": "0xuser",
		"principal":     map[string]any{"coinType": "0xdef::usdc::USDC", "amount": "1000"},
		"mode":          "as-is",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if errBody := decodeError(t, rec); errBody.Tag != "TransactionBuildError" {
		t.Fatalf("_tag = %q", errBody.Tag)
	}
}

func TestWithdrawSimulationRejected(t *testing.T) {
	provider := defaultProvider(t)
	provider.dryRunErr = &ledger.SimulationError{Status: "failure", Detail: "insufficient balance"}
	engine := newTestRouter(provider)

	rec := postJSON(t, engine, "/v1/withdraw", map[string]any{
		"positionId":    "42",
		"senderAddress": "0xuser",
		"principal":     map[string]any{"coinType": "0xdef::usdc::USDC", "amount": "1000"},
		"mode":          "as-is",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	errBody := decodeError(t, rec)
	if errBody.Tag != "TransactionBuildError" || errBody.Message == "" {
		t.Fatalf("error body = %+v", errBody)
	}
}

func TestWithdrawMissingSimulatedEvents(t *testing.T) {
	provider := defaultProvider(t)
	// Simulation succeeds but the burn event never shows up: the handler must
	// still answer, not hang.
	provider.events = []ledger.Event{testEvent(t, "RedeemEvent", map[string]any{})}
	engine := newTestRouter(provider)

	rec := postJSON(t, engine, "/v1/withdraw", map[string]any{
		"positionId":    "42",
		"senderAddress": "0xuser",
		"principal":     map[string]any{"coinType": "0xdef::usdc::USDC", "amount": "1000"},
		"mode":          "as-is",
	})
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if errBody := decodeError(t, rec); errBody.Tag != "TransactionBuildError" {
		t.Fatalf("_tag = %q", errBody.Tag)
	}
}

func TestDepositUpstreamFailure(t *testing.T) {
	provider := defaultProvider(t)
	provider.poolErr = &ledger.RPCError{Code: 503, Message: "node unavailable"}
	engine := newTestRouter(provider)

	rec := postJSON(t, engine, "/v1/deposit", map[string]any{
		"strategyId":    "tlp-main",
		"senderAddress": "0xuser",
		"coinType":      "0xdef::usdc::USDC",
		"nativeAmount":  1000,
	})
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	if errBody := decodeError(t, rec); errBody.Tag != "UpstreamError" {
		t.Fatalf("_tag = %q", errBody.Tag)
	}
}
