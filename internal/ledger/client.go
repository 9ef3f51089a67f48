package ledger

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// Client talks JSON-RPC to the ledger gateway node.
type Client struct {
	host       string
	httpClient *http.Client
}

func NewClient(httpClient *http.Client, host string) *Client {
	host = strings.TrimRight(host, "/")
	return &Client{
		host:       host,
		httpClient: httpClient,
	}
}

type rpcRequest struct {
	JSONRPC string `json:"jsonrpc"`
	ID      int    `json:"id"`
	Method  string `json:"method"`
	Params  []any  `json:"params"`
}

type rpcResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (c *Client) call(ctx context.Context, method string, params []any, out any) error {
	payload, err := json.Marshal(rpcRequest{JSONRPC: "2.0", ID: 1, Method: method, Params: params})
	if err != nil {
		return fmt.Errorf("failed to encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.host, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return &RPCError{Code: resp.StatusCode, Message: string(body)}
	}
	var rr rpcResponse
	if err := json.Unmarshal(body, &rr); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if rr.Error != nil {
		return &RPCError{Code: rr.Error.Code, Message: rr.Error.Message}
	}
	if out != nil {
		if err := json.Unmarshal(rr.Result, out); err != nil {
			return fmt.Errorf("failed to decode result: %w", err)
		}
	}
	return nil
}

// Wire types: the node serializes u64 fields as decimal strings.

type poolWire struct {
	ID              string   `json:"id"`
	TokenType       string   `json:"liquidityTokenType"`
	TvlUsd          string   `json:"tvlUsd"`
	ShareSupply     string   `json:"lpSupply"`
	DepositFeeBps   string   `json:"mintFeeBps"`
	WithdrawFeeBps  string   `json:"burnFeeBps"`
	DepositorsCount string   `json:"depositorsCount"`
	Volume24hUsd    string   `json:"volume24hUsd"`
	CollateralTypes []string `json:"collateralTypes"`
}

type incentiveWire struct {
	TokenType    string `json:"tokenType"`
	PeriodAmount string `json:"periodIncentiveAmount"`
	PeriodMs     string `json:"incentiveIntervalTsMs"`
}

type stakePoolWire struct {
	ID          string          `json:"id"`
	TotalShares string          `json:"totalShare"`
	Incentives  []incentiveWire `json:"incentives"`
}

type userStakeWire struct {
	UserShareID     string   `json:"userShareId"`
	Shares          string   `json:"totalShares"`
	PendingReward   string   `json:"pendingReward"`
	RewardTokenType string   `json:"rewardTokenType"`
	RewardPriceUsd  string   `json:"rewardTokenPriceUsd"`
	U64Padding      []string `json:"u64Padding"`
}

func (w userStakeWire) toUserStake() *UserStake {
	stake := &UserStake{
		ShareID:         w.UserShareID,
		Shares:          parseU64(w.Shares),
		PendingReward:   parseU64(w.PendingReward),
		RewardTokenType: w.RewardTokenType,
		RewardPriceUsd:  parseU64(w.RewardPriceUsd),
	}
	// Cumulative harvested rewards live in the record's first padding slot.
	if len(w.U64Padding) > 0 {
		stake.Harvested = parseU64(w.U64Padding[0])
	}
	return stake
}

func (c *Client) GetLpPool(ctx context.Context) (*Pool, error) {
	var wire poolWire
	if err := c.call(ctx, "earn_getLpPool", nil, &wire); err != nil {
		return nil, err
	}
	return &Pool{
		ID:              wire.ID,
		TokenType:       wire.TokenType,
		TvlUsd:          parseU64(wire.TvlUsd),
		ShareSupply:     parseU64(wire.ShareSupply),
		DepositFeeBps:   parseU64(wire.DepositFeeBps),
		WithdrawFeeBps:  parseU64(wire.WithdrawFeeBps),
		DepositorsCount: parseU64(wire.DepositorsCount),
		Volume24hUsd:    parseU64(wire.Volume24hUsd),
		CollateralTypes: wire.CollateralTypes,
	}, nil
}

func (c *Client) GetStakePool(ctx context.Context) (*StakePool, error) {
	var wire stakePoolWire
	if err := c.call(ctx, "earn_getStakePool", nil, &wire); err != nil {
		return nil, err
	}
	pool := &StakePool{
		ID:          wire.ID,
		TotalShares: parseU64(wire.TotalShares),
	}
	for _, inc := range wire.Incentives {
		pool.Incentives = append(pool.Incentives, IncentiveConfig{
			TokenType:    inc.TokenType,
			PeriodAmount: parseU64(inc.PeriodAmount),
			PeriodMs:     parseU64(inc.PeriodMs),
		})
	}
	return pool, nil
}

func (c *Client) GetUserStake(ctx context.Context, address string) (*UserStake, error) {
	if address == "" {
		return nil, fmt.Errorf("address is required")
	}
	var wires []userStakeWire
	if err := c.call(ctx, "earn_getUserStake", []any{address}, &wires); err != nil {
		return nil, err
	}
	if len(wires) == 0 {
		return nil, nil
	}
	return wires[0].toUserStake(), nil
}

func (c *Client) GetUserStakeByID(ctx context.Context, shareID string) (*UserStake, error) {
	if shareID == "" {
		return nil, fmt.Errorf("share id is required")
	}
	var wire *userStakeWire
	if err := c.call(ctx, "earn_getUserStakeById", []any{shareID}, &wire); err != nil {
		return nil, err
	}
	if wire == nil {
		return nil, nil
	}
	return wire.toUserStake(), nil
}

func (c *Client) GetCoins(ctx context.Context, owner, coinType string) ([]string, error) {
	if owner == "" || coinType == "" {
		return nil, fmt.Errorf("owner and coinType are required")
	}
	var wire struct {
		Data []struct {
			CoinObjectID string `json:"coinObjectId"`
		} `json:"data"`
	}
	if err := c.call(ctx, "earn_getCoins", []any{owner, coinType}, &wire); err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(wire.Data))
	for _, coin := range wire.Data {
		ids = append(ids, coin.CoinObjectID)
	}
	return ids, nil
}

func (c *Client) DryRun(ctx context.Context, txBytes []byte, sender string) ([]Event, error) {
	if sender == "" {
		return nil, fmt.Errorf("sender is required")
	}
	var wire struct {
		Status string  `json:"status"`
		Detail string  `json:"error"`
		Events []Event `json:"events"`
	}
	encoded := base64.StdEncoding.EncodeToString(txBytes)
	if err := c.call(ctx, "earn_dryRunTransaction", []any{encoded, sender}, &wire); err != nil {
		return nil, err
	}
	if wire.Status != "success" {
		return nil, &SimulationError{Status: wire.Status, Detail: wire.Detail}
	}
	return wire.Events, nil
}

func parseU64(s string) uint64 {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0
	}
	return v
}
