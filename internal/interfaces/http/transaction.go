package http

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"centavo/internal/domain/transaction"
	"centavo/internal/shared/middleware"
)

type TransactionHandler struct {
	svc *transaction.Service
}

func NewTransactionHandler(svc *transaction.Service) *TransactionHandler {
	return &TransactionHandler{svc: svc}
}

type TransactionRequest struct {
	AccountID          int64   `json:"account_id" validate:"required"`
	Amount             float64 `json:"amount" validate:"required"`
	Type               string  `json:"type" validate:"required"`
	Date               *string `json:"date,omitempty"`
	Description        string  `json:"description,omitempty"`
	Category           *string `json:"category,omitempty"`
	PlaidTransactionID *string `json:"plaid_transaction_id,omitempty"`
}

// parseDate accepts date-only or RFC 3339 timestamps; a missing date
// defaults to now.
func parseDate(s *string) (time.Time, bool) {
	if s == nil || *s == "" {
		return time.Now().UTC(), true
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, *s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// HandleTransactions dispatches GET (list) and POST (create) on /transactions/.
func (h *TransactionHandler) HandleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		writeDetail(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// HandleTransactionByID dispatches GET, PUT and DELETE on /transactions/{id}.
func (h *TransactionHandler) HandleTransactionByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeDetail(w, http.StatusNotFound, "Transaction not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.handleGet(w, r, id, userID)
	case http.MethodPut:
		h.handleUpdate(w, r, id, userID)
	case http.MethodDelete:
		h.handleDelete(w, r, id, userID)
	default:
		writeDetail(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *TransactionHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req TransactionRequest
	if msg, ok := decodeAndValidate(r, &req); !ok {
		writeDetail(w, http.StatusBadRequest, msg)
		return
	}

	kind, err := transaction.ParseKind(req.Type)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	date, ok := parseDate(req.Date)
	if !ok {
		writeDetail(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD or RFC 3339)")
		return
	}

	txn, err := h.svc.Create(r.Context(), userID, transaction.CreateParams{
		AccountID:          req.AccountID,
		Amount:             req.Amount,
		Kind:               kind,
		Date:               date,
		Description:        req.Description,
		Category:           req.Category,
		PlaidTransactionID: req.PlaidTransactionID,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, txn)
}

func (h *TransactionHandler) handleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	transactions, err := h.svc.List(r.Context(), userID)
	if err != nil {
		log.Printf("Error listing transactions for user %d: %v", userID, err)
		writeDetail(w, http.StatusInternalServerError, "Failed to list transactions")
		return
	}

	if transactions == nil {
		transactions = []*transaction.Transaction{}
	}
	writeJSON(w, http.StatusOK, transactions)
}

func (h *TransactionHandler) handleGet(w http.ResponseWriter, r *http.Request, id, userID int64) {
	txn, err := h.svc.Get(r.Context(), id, userID)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, txn)
}

func (h *TransactionHandler) handleUpdate(w http.ResponseWriter, r *http.Request, id, userID int64) {
	var req TransactionRequest
	if msg, ok := decodeAndValidate(r, &req); !ok {
		writeDetail(w, http.StatusBadRequest, msg)
		return
	}

	kind, err := transaction.ParseKind(req.Type)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	date, ok := parseDate(req.Date)
	if !ok {
		writeDetail(w, http.StatusBadRequest, "Invalid date format (use YYYY-MM-DD or RFC 3339)")
		return
	}

	txn, err := h.svc.Update(r.Context(), id, userID, transaction.UpdateParams{
		Amount:             req.Amount,
		Kind:               kind,
		Date:               date,
		Category:           req.Category,
		PlaidTransactionID: req.PlaidTransactionID,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, txn)
}

func (h *TransactionHandler) handleDelete(w http.ResponseWriter, r *http.Request, id, userID int64) {
	if err := h.svc.Delete(r.Context(), id, userID); err != nil {
		writeDomainError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
