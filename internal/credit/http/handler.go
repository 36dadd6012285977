package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/courtside/booking-backend/internal/auth"
	"github.com/courtside/booking-backend/internal/credit"
	"github.com/courtside/booking-backend/internal/pkg/request"
	"github.com/courtside/booking-backend/internal/pkg/response"
)

type Handler struct {
	service credit.Service
}

func NewHandler(service credit.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetBalance(c *gin.Context) {
	userID := auth.GetUserID(c)

	balance, err := h.service.GetBalance(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, BalanceResponse{Balance: balance})
}

func (h *Handler) TopUp(c *gin.Context) {
	var req TopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Result{Success: false, Error: "invalid request body"})
		return
	}

	userID := auth.GetUserID(c)

	balance, err := h.service.TopUp(c.Request.Context(), userID, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, http.StatusOK, BalanceResponse{Balance: balance})
}

func (h *Handler) ListTransactions(c *gin.Context) {
	var params request.ListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, response.Result{Success: false, Error: "invalid query parameters"})
		return
	}

	userID := auth.GetUserID(c)

	txs, total, err := h.service.ListTransactions(c.Request.Context(), userID, params.Page, params.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]TransactionResponse, len(txs))
	for i, t := range txs {
		items[i] = NewTransactionResponse(t)
	}

	response.OK(c, http.StatusOK, response.NewPageResponse(items, params.Page, params.PageSize, total))
}
