package http

import (
	"log"
	"net/http"

	"centavo/internal/domain/account"
	"centavo/internal/shared/middleware"
)

type AccountHandler struct {
	svc *account.Service
}

func NewAccountHandler(svc *account.Service) *AccountHandler {
	return &AccountHandler{svc: svc}
}

type CreateAccountRequest struct {
	Name           string  `json:"name" validate:"required"`
	AccountType    string  `json:"account_type" validate:"required"`
	Balance        float64 `json:"balance"`
	PlaidAccountID *string `json:"plaid_account_id,omitempty"`
}

// HandleAccounts dispatches GET (list) and POST (create) on /accounts/.
func (h *AccountHandler) HandleAccounts(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleList(w, r)
	case http.MethodPost:
		h.handleCreate(w, r)
	default:
		writeDetail(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *AccountHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req CreateAccountRequest
	if msg, ok := decodeAndValidate(r, &req); !ok {
		writeDetail(w, http.StatusBadRequest, msg)
		return
	}

	acct, err := h.svc.Create(r.Context(), account.CreateParams{
		UserID:         userID,
		Name:           req.Name,
		AccountType:    req.AccountType,
		Balance:        req.Balance,
		PlaidAccountID: req.PlaidAccountID,
	})
	if err != nil {
		log.Printf("Error creating account for user %d: %v", userID, err)
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, acct)
}

func (h *AccountHandler) handleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := r.Context().Value(middleware.UserIDKey).(int64)
	if !ok {
		writeDetail(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	accounts, err := h.svc.List(r.Context(), userID)
	if err != nil {
		log.Printf("Error listing accounts for user %d: %v", userID, err)
		writeDetail(w, http.StatusInternalServerError, "Failed to list accounts")
		return
	}

	if accounts == nil {
		accounts = []*account.Account{}
	}
	writeJSON(w, http.StatusOK, accounts)
}
