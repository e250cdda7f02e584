package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"centavo/internal/domain/account"
	"centavo/internal/shared/middleware"
)

// MockAccountRepo implements account.Repository for testing
type MockAccountRepo struct {
	CreateFunc       func(ctx context.Context, params account.CreateParams) (*account.Account, error)
	GetForUserFunc   func(ctx context.Context, id, userID int64) (*account.Account, error)
	GetByIDFunc      func(ctx context.Context, id int64) (*account.Account, error)
	ListByUserFunc   func(ctx context.Context, userID int64) ([]*account.Account, error)
	AddToBalanceFunc func(ctx context.Context, id int64, delta float64) error
	SetBalanceFunc   func(ctx context.Context, id int64, balance float64) error
}

func (m *MockAccountRepo) Create(ctx context.Context, params account.CreateParams) (*account.Account, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockAccountRepo) GetForUser(ctx context.Context, id, userID int64) (*account.Account, error) {
	if m.GetForUserFunc != nil {
		return m.GetForUserFunc(ctx, id, userID)
	}
	return nil, account.ErrNotFound
}

func (m *MockAccountRepo) GetByID(ctx context.Context, id int64) (*account.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, account.ErrNotFound
}

func (m *MockAccountRepo) ListByUser(ctx context.Context, userID int64) ([]*account.Account, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockAccountRepo) AddToBalance(ctx context.Context, id int64, delta float64) error {
	if m.AddToBalanceFunc != nil {
		return m.AddToBalanceFunc(ctx, id, delta)
	}
	return nil
}

func (m *MockAccountRepo) SetBalance(ctx context.Context, id int64, balance float64) error {
	if m.SetBalanceFunc != nil {
		return m.SetBalanceFunc(ctx, id, balance)
	}
	return nil
}

func authedRequest(method, path, body string, userID int64) *http.Request {
	var req *http.Request
	if body == "" {
		req, _ = http.NewRequest(method, path, nil)
	} else {
		req, _ = http.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
	return req.WithContext(ctx)
}

func TestHandleListAccounts(t *testing.T) {
	tests := []struct {
		name           string
		mockRepo       func() *MockAccountRepo
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "Success",
			mockRepo: func() *MockAccountRepo {
				return &MockAccountRepo{
					ListByUserFunc: func(ctx context.Context, userID int64) ([]*account.Account, error) {
						return []*account.Account{
							{ID: 1, UserID: userID, Name: "Checking", AccountType: "checking", Balance: 100, InitialBalance: 100},
						}, nil
					},
				}
			},
			expectedStatus: http.StatusOK,
		},
		{
			name: "Empty list serializes as array",
			mockRepo: func() *MockAccountRepo {
				return &MockAccountRepo{
					ListByUserFunc: func(ctx context.Context, userID int64) ([]*account.Account, error) {
						return nil, nil
					},
				}
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "[]",
		},
		{
			name: "Service Error",
			mockRepo: func() *MockAccountRepo {
				return &MockAccountRepo{
					ListByUserFunc: func(ctx context.Context, userID int64) ([]*account.Account, error) {
						return nil, errors.New("db error")
					},
				}
			},
			expectedStatus: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAccountHandler(account.NewService(tt.mockRepo()))

			req := authedRequest(http.MethodGet, "/accounts/", "", 1)
			rr := httptest.NewRecorder()
			handler.HandleAccounts(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("handler returned wrong status code: got %v want %v", rr.Code, tt.expectedStatus)
			}
			if tt.expectedBody != "" && strings.TrimSpace(rr.Body.String()) != tt.expectedBody {
				t.Errorf("handler returned wrong body: got %q want %q", rr.Body.String(), tt.expectedBody)
			}
		})
	}
}

func TestHandleCreateAccount(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{
			name:           "Success",
			body:           `{"name":"Savings","account_type":"savings","balance":2500}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "With plaid account id",
			body:           `{"name":"Linked","account_type":"checking","balance":0,"plaid_account_id":"plaid-abc"}`,
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Missing name",
			body:           `{"account_type":"savings"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing account type",
			body:           `{"name":"Savings"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Malformed JSON",
			body:           `{"name":`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &MockAccountRepo{
				CreateFunc: func(ctx context.Context, params account.CreateParams) (*account.Account, error) {
					return &account.Account{
						ID:             7,
						UserID:         params.UserID,
						Name:           params.Name,
						AccountType:    params.AccountType,
						Balance:        params.Balance,
						InitialBalance: params.Balance,
						PlaidAccountID: params.PlaidAccountID,
					}, nil
				},
			}
			handler := NewAccountHandler(account.NewService(repo))

			req := authedRequest(http.MethodPost, "/accounts/", tt.body, 1)
			rr := httptest.NewRecorder()
			handler.HandleAccounts(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("handler returned wrong status code: got %v want %v (body: %s)", rr.Code, tt.expectedStatus, rr.Body.String())
			}

			if tt.expectedStatus == http.StatusCreated {
				var got account.Account
				if err := json.Unmarshal(rr.Body.Bytes(), &got); err != nil {
					t.Fatalf("invalid response body: %v", err)
				}
				if got.InitialBalance != got.Balance {
					t.Errorf("initial balance %v should equal starting balance %v", got.InitialBalance, got.Balance)
				}
			}
		})
	}
}

func TestHandleAccountsMissingUser(t *testing.T) {
	handler := NewAccountHandler(account.NewService(&MockAccountRepo{}))

	req, _ := http.NewRequest(http.MethodGet, "/accounts/", nil)
	rr := httptest.NewRecorder()
	handler.HandleAccounts(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without user in context, got %v", rr.Code)
	}
}

func TestHandleAccountsMethodNotAllowed(t *testing.T) {
	handler := NewAccountHandler(account.NewService(&MockAccountRepo{}))

	req := authedRequest(http.MethodDelete, "/accounts/", "", 1)
	rr := httptest.NewRecorder()
	handler.HandleAccounts(rr, req)

	if rr.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %v", rr.Code)
	}
}
