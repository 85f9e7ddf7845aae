package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	interfaces "github.com/sheikh-saqib/account-statement-ledger/internal/interfaces"
	"github.com/sheikh-saqib/account-statement-ledger/internal/ledger"
	"github.com/sheikh-saqib/account-statement-ledger/internal/models"
	"github.com/sheikh-saqib/account-statement-ledger/internal/statement"
)

// LedgerService is the part of ledger.Ledger the HTTP handlers need.
type LedgerService interface {
	Deposit(ctx context.Context, accountID uuid.UUID, amount models.Amount) (models.Operation, error)
	Withdraw(ctx context.Context, accountID uuid.UUID, amount models.Amount) (models.Operation, error)
	Balance(ctx context.Context, accountID uuid.UUID) (decimal.Decimal, error)
	PrintStatementTo(ctx context.Context, accountID uuid.UUID, printer interfaces.StatementPrinter) error
}

type Handler struct {
	ledger LedgerService
	lg     *zap.Logger
}

func NewHandler(l LedgerService, lg *zap.Logger) *Handler {
	return &Handler{ledger: l, lg: lg}
}

type amountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type balanceResponse struct {
	AccountID uuid.UUID       `json:"account_id"`
	Balance   decimal.Decimal `json:"balance"`
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.operate(w, r, h.ledger.Deposit)
}

func (h *Handler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.operate(w, r, h.ledger.Withdraw)
}

func (h *Handler) operate(
	w http.ResponseWriter,
	r *http.Request,
	apply func(context.Context, uuid.UUID, models.Amount) (models.Operation, error),
) {
	accountID, ok := accountIDParam(w, r)
	if !ok {
		return
	}

	var req amountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	amount, err := models.NewAmount(req.Amount)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	op, err := apply(r.Context(), accountID, amount)
	switch {
	case errors.Is(err, ledger.ErrOutOfBalance):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	case err != nil:
		h.lg.Error("operation failed", zap.Stringer("account_id", accountID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, op)
}

func (h *Handler) Balance(w http.ResponseWriter, r *http.Request) {
	accountID, ok := accountIDParam(w, r)
	if !ok {
		return
	}

	balance, err := h.ledger.Balance(r.Context(), accountID)
	if err != nil {
		h.lg.Error("get balance failed", zap.Stringer("account_id", accountID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, balanceResponse{AccountID: accountID, Balance: balance})
}

// Statement writes the grid statement as plain text. It is rendered in full
// before the status line goes out, so a store failure still gets a 500.
func (h *Handler) Statement(w http.ResponseWriter, r *http.Request) {
	accountID, ok := accountIDParam(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.ledger.PrintStatementTo(r.Context(), accountID, statement.NewWriterPrinter(&buf)); err != nil {
		h.lg.Error("print statement failed", zap.Stringer("account_id", accountID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		h.lg.Warn("write statement failed", zap.Stringer("account_id", accountID), zap.Error(err))
	}
}

func accountIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "accountID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "account id must be a uuid")
		return uuid.Nil, false
	}
	return id, true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
