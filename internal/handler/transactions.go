package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"earnapi/internal/service"
	"earnapi/internal/settle"
)

type TransactionHandler struct {
	Service    *service.TransactionService
	StrategyID string
}

func (h *TransactionHandler) Register(r *gin.Engine) {
	group := r.Group("/v1")
	group.POST("/deposit", h.deposit)
	group.POST("/withdraw", h.withdraw)
}

// Amounts arrive from wallets as either JSON numbers or decimal strings,
// hence the any-typed fields and explicit parsing.

type DepositRequest struct {
	StrategyID    string `json:"strategyId"`
	SenderAddress string `json:"senderAddress"`
	CoinType      string `json:"coinType"`
	NativeAmount  any    `json:"nativeAmount"`
}

type WithdrawPrincipal struct {
	CoinType string `json:"coinType"`
	Amount   any    `json:"amount"`
}

type WithdrawRequest struct {
	PositionID    string            `json:"positionId"`
	SenderAddress string            `json:"senderAddress"`
	Principal     WithdrawPrincipal `json:"principal"`
	Mode          string            `json:"mode"`
}

type LegView struct {
	CoinType string  `json:"coinType"`
	Amount   string  `json:"amount"`
	ValueUsd float64 `json:"valueUsd"`
}

type DepositResponse struct {
	Bytes      []int     `json:"bytes"`
	Fees       []LegView `json:"fees"`
	NetDeposit LegView   `json:"netDeposit"`
}

type WithdrawResponse struct {
	Bytes     []int     `json:"bytes"`
	Principal LegView   `json:"principal"`
	Rewards   []LegView `json:"rewards"`
	Fees      []LegView `json:"fees"`
}

// @Summary Create deposit transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body handler.DepositRequest true "Deposit request"
// @Success 200 {object} handler.DepositResponse
// @Failure 422 {object} handler.ErrorBody "TransactionBuildError"
// @Failure 502 {object} handler.ErrorBody
// @Router /v1/deposit [post]
func (h *TransactionHandler) deposit(c *gin.Context) {
	var req DepositRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BuildError(c, "Missing required fields in deposit request")
		return
	}
	amount, ok := parseAmount(req.NativeAmount)
	if req.StrategyID == "" || req.SenderAddress == "" || req.CoinType == "" || !ok {
		BuildError(c, "Missing required fields in deposit request")
		return
	}
	if h.StrategyID != "" && req.StrategyID != h.StrategyID {
		BuildError(c, "unknown strategy: "+req.StrategyID)
		return
	}

	result, err := h.Service.Deposit(c.Request.Context(), service.DepositParams{
		Sender:   req.SenderAddress,
		CoinType: req.CoinType,
		Amount:   amount,
	})
	if err != nil {
		writeTransactionError(c, err)
		return
	}

	c.JSON(http.StatusOK, DepositResponse{
		Bytes:      byteValues(result.Bytes),
		Fees:       legViews(result.Settlement.Fees),
		NetDeposit: legView(result.Settlement.Principal),
	})
}

// @Summary Create withdrawal transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param request body handler.WithdrawRequest true "Withdraw request"
// @Success 200 {object} handler.WithdrawResponse
// @Failure 422 {object} handler.ErrorBody "TransactionBuildError"
// @Failure 502 {object} handler.ErrorBody
// @Router /v1/withdraw [post]
func (h *TransactionHandler) withdraw(c *gin.Context) {
	var req WithdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BuildError(c, "Missing or invalid fields in withdraw request")
		return
	}
	shares, ok := parseAmount(req.Principal.Amount)
	if req.PositionID == "" || req.SenderAddress == "" || req.Principal.CoinType == "" || req.Mode == "" || !ok {
		BuildError(c, "Missing or invalid fields in withdraw request")
		return
	}

	result, err := h.Service.Withdraw(c.Request.Context(), service.WithdrawParams{
		Sender:     req.SenderAddress,
		PositionID: req.PositionID,
		CoinType:   req.Principal.CoinType,
		Shares:     shares,
	})
	if err != nil {
		writeTransactionError(c, err)
		return
	}

	c.JSON(http.StatusOK, WithdrawResponse{
		Bytes:     byteValues(result.Bytes),
		Principal: legView(result.Settlement.Principal),
		Rewards:   legViews(result.Settlement.Rewards),
		Fees:      legViews(result.Settlement.Fees),
	})
}

// parseAmount accepts a positive integer amount as a JSON number or string.
func parseAmount(v any) (uint64, bool) {
	switch value := v.(type) {
	case float64:
		if value <= 0 || value != float64(uint64(value)) {
			return 0, false
		}
		return uint64(value), true
	case string:
		parsed, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
		if err != nil || parsed == 0 {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

// byteValues renders tx bytes as a JSON array of numbers for client-side
// signing; Go's default base64 encoding of []byte would break wallets.
func byteValues(raw []byte) []int {
	out := make([]int, len(raw))
	for i, b := range raw {
		out[i] = int(b)
	}
	return out
}

func legView(leg settle.Leg) LegView {
	return LegView{
		CoinType: leg.CoinType,
		Amount:   strconv.FormatUint(leg.Amount, 10),
		ValueUsd: leg.ValueUsd,
	}
}

func legViews(legs []settle.Leg) []LegView {
	out := make([]LegView, 0, len(legs))
	for _, leg := range legs {
		out = append(out, legView(leg))
	}
	return out
}
