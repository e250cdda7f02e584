package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"centavo/internal/domain/user"
	"centavo/internal/shared/auth"
)

type AuthHandler struct {
	users user.Repository
	jwt   *auth.JWT
}

func NewAuthHandler(users user.Repository, jwt *auth.JWT) *AuthHandler {
	return &AuthHandler{users: users, jwt: jwt}
}

type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// HandleSignup registers a new user and returns a bearer token.
func (h *AuthHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeDetail(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req SignupRequest
	if msg, ok := decodeAndValidate(r, &req); !ok {
		writeDetail(w, http.StatusBadRequest, msg)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		writeDetail(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	created, err := h.users.Create(r.Context(), user.CreateParams{
		Email:        req.Email,
		PasswordHash: hash,
	})
	if err != nil {
		if !errors.Is(err, user.ErrEmailTaken) {
			log.Printf("Error creating user: %v", err)
		}
		writeDomainError(w, err)
		return
	}

	h.respondWithToken(w, created)
}

// HandleLogin verifies credentials and returns a bearer token. Accepts
// either a JSON body {email, password} or form-encoded username/password.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeDetail(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	email, password, ok := credentialsFromRequest(r)
	if !ok {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	u, err := h.users.GetByEmail(r.Context(), email)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			writeDetail(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		log.Printf("Error looking up user %s: %v", email, err)
		writeDetail(w, http.StatusInternalServerError, "Login failed")
		return
	}

	if err := auth.VerifyPassword(u.PasswordHash, password); err != nil {
		writeDetail(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	h.respondWithToken(w, u)
}

func credentialsFromRequest(r *http.Request) (email, password string, ok bool) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/x-www-form-urlencoded") ||
		strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseForm(); err != nil {
			return "", "", false
		}
		email = r.PostFormValue("username")
		password = r.PostFormValue("password")
	} else {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return "", "", false
		}
		email = req.Email
		password = req.Password
	}

	if email == "" || password == "" {
		return "", "", false
	}
	return email, password, true
}

func (h *AuthHandler) respondWithToken(w http.ResponseWriter, u *user.User) {
	token, err := h.jwt.Generate(u.ID, u.Email)
	if err != nil {
		log.Printf("Error generating token for user %d: %v", u.ID, err)
		writeDetail(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	writeJSON(w, http.StatusOK, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
	})
}
