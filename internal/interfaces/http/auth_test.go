package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"centavo/internal/domain/user"
	"centavo/internal/shared/auth"
)

// MockUserRepo implements user.Repository for testing
type MockUserRepo struct {
	CreateFunc     func(ctx context.Context, params user.CreateParams) (*user.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*user.User, error)
	GetByIDFunc    func(ctx context.Context, id int64) (*user.User, error)
	ListIDsFunc    func(ctx context.Context) ([]int64, error)
}

func (m *MockUserRepo) Create(ctx context.Context, params user.CreateParams) (*user.User, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return &user.User{ID: 1, Email: params.Email, PasswordHash: params.PasswordHash}, nil
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, user.ErrNotFound
}

func (m *MockUserRepo) GetByID(ctx context.Context, id int64) (*user.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, user.ErrNotFound
}

func (m *MockUserRepo) ListIDs(ctx context.Context) ([]int64, error) {
	if m.ListIDsFunc != nil {
		return m.ListIDsFunc(ctx)
	}
	return nil, nil
}

func testJWT() *auth.JWT {
	return auth.NewJWT("test-secret", time.Hour)
}

func decodeToken(t *testing.T, body []byte) TokenResponse {
	t.Helper()
	var resp TokenResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		t.Fatalf("invalid token response: %v", err)
	}
	return resp
}

func TestHandleSignup(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		mockRepo       func() *MockUserRepo
		expectedStatus int
		expectedDetail string
	}{
		{
			name:           "Success",
			body:           `{"email":"ana@example.com","password":"hunter2"}`,
			mockRepo:       func() *MockUserRepo { return &MockUserRepo{} },
			expectedStatus: http.StatusOK,
		},
		{
			name: "Duplicate email",
			body: `{"email":"ana@example.com","password":"hunter2"}`,
			mockRepo: func() *MockUserRepo {
				return &MockUserRepo{
					CreateFunc: func(ctx context.Context, params user.CreateParams) (*user.User, error) {
						return nil, user.ErrEmailTaken
					},
				}
			},
			expectedStatus: http.StatusBadRequest,
			expectedDetail: "Email already registered",
		},
		{
			name:           "Invalid email",
			body:           `{"email":"not-an-email","password":"hunter2"}`,
			mockRepo:       func() *MockUserRepo { return &MockUserRepo{} },
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing password",
			body:           `{"email":"ana@example.com"}`,
			mockRepo:       func() *MockUserRepo { return &MockUserRepo{} },
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Malformed JSON",
			body:           `{"email":`,
			mockRepo:       func() *MockUserRepo { return &MockUserRepo{} },
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAuthHandler(tt.mockRepo(), testJWT())

			req, _ := http.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()
			handler.HandleSignup(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("handler returned wrong status code: got %v want %v (body: %s)", rr.Code, tt.expectedStatus, rr.Body.String())
			}
			if tt.expectedDetail != "" {
				if got := detailOf(t, rr.Body.Bytes()); got != tt.expectedDetail {
					t.Errorf("detail = %q, want %q", got, tt.expectedDetail)
				}
			}
			if tt.expectedStatus == http.StatusOK {
				resp := decodeToken(t, rr.Body.Bytes())
				if resp.AccessToken == "" || resp.TokenType != "bearer" {
					t.Errorf("unexpected token response: %+v", resp)
				}
			}
		})
	}
}

func TestHandleSignupHashesPassword(t *testing.T) {
	var stored user.CreateParams
	repo := &MockUserRepo{
		CreateFunc: func(ctx context.Context, params user.CreateParams) (*user.User, error) {
			stored = params
			return &user.User{ID: 1, Email: params.Email, PasswordHash: params.PasswordHash}, nil
		},
	}
	handler := NewAuthHandler(repo, testJWT())

	req, _ := http.NewRequest(http.MethodPost, "/auth/signup", strings.NewReader(`{"email":"ana@example.com","password":"hunter2"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	handler.HandleSignup(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %v", rr.Code)
	}
	if stored.PasswordHash == "hunter2" || stored.PasswordHash == "" {
		t.Error("password must be stored as a hash")
	}
	if err := auth.VerifyPassword(stored.PasswordHash, "hunter2"); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
}

func TestHandleLogin(t *testing.T) {
	hash, err := auth.HashPassword("hunter2")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	repo := &MockUserRepo{
		GetByEmailFunc: func(ctx context.Context, email string) (*user.User, error) {
			if email == "ana@example.com" {
				return &user.User{ID: 1, Email: email, PasswordHash: hash}, nil
			}
			return nil, user.ErrNotFound
		},
	}

	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{
			name:           "Success",
			body:           `{"email":"ana@example.com","password":"hunter2"}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Wrong password",
			body:           `{"email":"ana@example.com","password":"wrong"}`,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Unknown email",
			body:           `{"email":"nobody@example.com","password":"hunter2"}`,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Missing fields",
			body:           `{"email":"ana@example.com"}`,
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewAuthHandler(repo, testJWT())

			req, _ := http.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := httptest.NewRecorder()
			handler.HandleLogin(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("handler returned wrong status code: got %v want %v (body: %s)", rr.Code, tt.expectedStatus, rr.Body.String())
			}
		})
	}
}

func TestHandleLoginFormEncoded(t *testing.T) {
	hash, err := auth.HashPassword("hunter2")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	repo := &MockUserRepo{
		GetByEmailFunc: func(ctx context.Context, email string) (*user.User, error) {
			if email == "ana@example.com" {
				return &user.User{ID: 1, Email: email, PasswordHash: hash}, nil
			}
			return nil, user.ErrNotFound
		},
	}
	handler := NewAuthHandler(repo, testJWT())

	form := url.Values{}
	form.Set("username", "ana@example.com")
	form.Set("password", "hunter2")

	req, _ := http.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	handler.HandleLogin(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for form-encoded login, got %v (body: %s)", rr.Code, rr.Body.String())
	}
	resp := decodeToken(t, rr.Body.Bytes())
	if resp.AccessToken == "" || resp.TokenType != "bearer" {
		t.Errorf("unexpected token response: %+v", resp)
	}
}

func TestAuthEndpointsRejectGet(t *testing.T) {
	handler := NewAuthHandler(&MockUserRepo{}, testJWT())

	for _, h := range []http.HandlerFunc{handler.HandleSignup, handler.HandleLogin} {
		req, _ := http.NewRequest(http.MethodGet, "/auth/signup", nil)
		rr := httptest.NewRecorder()
		h(rr, req)
		if rr.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405 for GET, got %v", rr.Code)
		}
	}
}
