package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"centavo/internal/domain/account"
	"centavo/internal/domain/transaction"
	"centavo/internal/domain/user"
)

var validate = validator.New()

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeDetail writes an error body of the form {"detail": "..."}.
func writeDetail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg})
}

// decodeAndValidate decodes a JSON body into dst and runs struct
// validation. Returns a client-facing message on failure.
func decodeAndValidate(r *http.Request, dst any) (string, bool) {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return "Invalid request body", false
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return validationMessage(verrs[0]), false
		}
		return "Invalid request body", false
	}
	return "", true
}

func validationMessage(err validator.FieldError) string {
	switch err.Tag() {
	case "required":
		return err.Field() + " is required"
	case "email":
		return "Invalid email format"
	case "gt":
		return err.Field() + " must be greater than " + err.Param()
	default:
		return "Invalid value for " + err.Field()
	}
}

// writeDomainError maps domain errors onto the HTTP taxonomy. Unowned
// resources surface as 404, indistinguishable from absent ones.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, account.ErrNotFound):
		writeDetail(w, http.StatusNotFound, "Account not found or not owned by user")
	case errors.Is(err, transaction.ErrNotFound):
		writeDetail(w, http.StatusNotFound, "Transaction not found")
	case errors.Is(err, transaction.ErrAmountNotPositive):
		writeDetail(w, http.StatusBadRequest, "Transaction amount must be positive")
	case errors.Is(err, transaction.ErrInvalidKind):
		writeDetail(w, http.StatusBadRequest, "Invalid transaction type")
	case errors.Is(err, user.ErrEmailTaken):
		writeDetail(w, http.StatusBadRequest, "Email already registered")
	default:
		writeDetail(w, http.StatusInternalServerError, "Internal server error")
	}
}
