package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"earnapi/internal/ledger"
	"earnapi/internal/settle"
	"earnapi/internal/txn"
)

// ErrorBody is the stable error shape: every failure path writes one of
// these, never a hang or an empty response.
type ErrorBody struct {
	Tag     string `json:"_tag"`
	Message string `json:"message"`
}

func BuildError(c *gin.Context, message string) {
	c.JSON(http.StatusUnprocessableEntity, ErrorBody{Tag: "TransactionBuildError", Message: message})
}

func ValidationFailed(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorBody{Tag: "ValidationError", Message: message})
}

func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, ErrorBody{Tag: "NotFoundError", Message: message})
}

func Upstream(c *gin.Context, err error) {
	c.JSON(http.StatusBadGateway, ErrorBody{Tag: "UpstreamError", Message: err.Error()})
}

// writeTransactionError maps the build/simulate/settle error taxonomy onto
// the wire: anything the caller can fix or that the protocol rejected is a
// 422 TransactionBuildError; everything else is an upstream 502.
func writeTransactionError(c *gin.Context, err error) {
	var (
		validationErr   *txn.ValidationError
		preconditionErr *txn.PreconditionError
		simulationErr   *ledger.SimulationError
		missingErr      *settle.MissingEventError
		degenerateErr   *settle.DegenerateSettlementError
	)
	switch {
	case errors.As(err, &validationErr),
		errors.As(err, &preconditionErr),
		errors.As(err, &simulationErr),
		errors.As(err, &missingErr),
		errors.As(err, &degenerateErr):
		BuildError(c, err.Error())
	default:
		Upstream(c, err)
	}
}
