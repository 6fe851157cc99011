package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/example/tradingapp/internal/domain"
	"github.com/example/tradingapp/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
)

// TradeHandler handles HTTP requests for trade endpoints.
type TradeHandler struct {
	tradeSvc *service.TradeService
}

// NewTradeHandler creates a new TradeHandler.
func NewTradeHandler(tradeSvc *service.TradeService) *TradeHandler {
	return &TradeHandler{tradeSvc: tradeSvc}
}

// createTradeRequest is the JSON request body for POST /api/trades.
// id and timestamp are accepted for shape compatibility but ignored:
// the server assigns both.
type createTradeRequest struct {
	ID         json.RawMessage `json:"id"`
	Symbol     string          `json:"symbol"`
	Quantity   int64           `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	TraderName string          `json:"traderName"`
	Timestamp  json.RawMessage `json:"timestamp"`
}

// CreateTrade handles POST /api/trades.
func (h *TradeHandler) CreateTrade(w http.ResponseWriter, r *http.Request) {
	var req createTradeRequest
	if err := ParseJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	trade, err := h.tradeSvc.CreateTrade(r.Context(), service.CreateTradeInput{
		Symbol:     req.Symbol,
		Quantity:   req.Quantity,
		Price:      req.Price,
		TraderName: req.TraderName,
	})
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "storage_error", "Failed to persist trade")
		return
	}

	w.Header().Set("Location", "/api/trades/"+trade.ID)
	WriteJSON(w, http.StatusCreated, trade)
}

// GetTrade handles GET /api/trades/{id}.
func (h *TradeHandler) GetTrade(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	trade, err := h.tradeSvc.GetTrade(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrTradeNotFound) {
			// Absence is a normal outcome: 404 with an empty body.
			w.WriteHeader(http.StatusNotFound)
			return
		}
		WriteError(w, http.StatusInternalServerError, "storage_error", "Failed to read trade")
		return
	}

	WriteJSON(w, http.StatusOK, trade)
}
