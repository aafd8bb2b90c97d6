// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"seabid/internal/modules/bidding"
	"seabid/internal/modules/routes"
	"seabid/internal/modules/trip"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(c *gin.Context, status int, msg string) {
	c.JSON(status, errorResponse{Error: msg})
}

// writeDomainError maps module sentinel errors onto HTTP status codes.
// Anything unrecognized is an internal invariant violation.
func writeDomainError(c *gin.Context, err error) {
	switch err {
	case trip.ErrBadRequest, bidding.ErrBadRequest, routes.ErrBadRequest, trip.ErrReasonRequired:
		writeError(c, http.StatusBadRequest, err.Error())
	case trip.ErrNotFound, bidding.ErrBidNotFound, routes.ErrNotFound:
		writeError(c, http.StatusNotFound, err.Error())
	case bidding.ErrInvalidState, trip.ErrIllegalTransition:
		writeError(c, http.StatusConflict, err.Error())
	case trip.ErrVerifyCode:
		writeError(c, http.StatusForbidden, err.Error())
	case trip.ErrPaymentDeclined:
		writeError(c, http.StatusPaymentRequired, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
