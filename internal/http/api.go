package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/jotmail/jotmail/internal/domain"
	"github.com/jotmail/jotmail/pkg/httpx"
)

// API error codes. This is the closed set of machine-readable failure
// codes the service emits; clients switch on "error", never on the
// description text.
const (
	ErrorCodeInvalidRequest     = "invalid_request"
	ErrorCodeAccountExists      = "account_exists"
	ErrorCodeAccountNotFound    = "account_not_found"
	ErrorCodeInvalidEmail       = "invalid_email"
	ErrorCodeInvalidOTP         = "invalid_otp"
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeUnauthenticated    = "unauthenticated"
	ErrorCodeNotFound           = "not_found"
	ErrorCodeServerError        = "server_error"
)

// APIError is a failure the service reports to a client. Handlers map
// service sentinels onto these once, at the boundary; services never
// see HTTP status codes.
type APIError struct {
	// StatusCode is the HTTP status code for this error
	StatusCode int `json:"-"`

	// Code is the machine-readable error code (e.g. "invalid_otp")
	Code string `json:"error"`

	// Description is a human-readable description of the error
	Description string `json:"error_description"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes this APIError to an HTTP response writer.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             e.Code,
		"error_description": e.Description,
	})
}

var (
	// ErrInvalidRequest is returned when the body is not valid JSON or
	// required fields are missing.
	ErrInvalidRequest = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	// ErrAccountExists is returned when signup is attempted with an email
	// that already has an account.
	ErrAccountExists = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeAccountExists,
		Description: "an account with this email already exists",
	}

	// ErrAccountNotFound is returned when a login challenge is requested
	// for an unregistered email.
	ErrAccountNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeAccountNotFound,
		Description: "no account exists for this email",
	}

	// ErrInvalidEmail is returned when the email is malformed, or on
	// signup completion for an email with no account.
	ErrInvalidEmail = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidEmail,
		Description: "the email address is invalid",
	}

	// ErrInvalidOTP covers every code rejection: wrong, expired, replaced
	// or never issued. The response does not say which.
	ErrInvalidOTP = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidOTP,
		Description: "the one-time code is invalid",
	}

	// ErrInvalidCredentials is returned on login completion when the
	// email has no account.
	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidCredentials,
		Description: "invalid credentials",
	}

	// ErrUnauthenticated is returned when the bearer token is missing,
	// invalid, or no longer resolves to an account.
	ErrUnauthenticated = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeUnauthenticated,
		Description: "a valid session token is required",
	}

	// ErrNotFound is returned when a note does not exist or belongs to
	// another account; the two cases are indistinguishable.
	ErrNotFound = &APIError{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "the requested resource does not exist",
	}

	// ErrServerError is the fallback for unexpected failures.
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// DateFormat is the wire format for date-only fields.
const DateFormat = "2006-01-02"

// SignupOTPRequest is the body for POST /auth/request-signup-otp.
type SignupOTPRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	DateOfBirth string `json:"date_of_birth,omitempty"` // YYYY-MM-DD, optional
}

// SignupRequest is the body for POST /auth/signup.
type SignupRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// LoginOTPRequest is the body for POST /auth/request-otp.
type LoginOTPRequest struct {
	Email string `json:"email"`
}

// LoginRequest is the body for POST /auth/login.
type LoginRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// SuccessResponse acknowledges a challenge request. It never carries
// the code; that travels by email only.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// TokenResponse carries a freshly issued session token.
type TokenResponse struct {
	Success   bool   `json:"success"`
	Token     string `json:"token"`
	TokenType string `json:"token_type"` // always "Bearer"
	ExpiresIn int    `json:"expires_in"` // seconds
}

// AccountResponse describes the authenticated account.
type AccountResponse struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	DateOfBirth string `json:"date_of_birth,omitempty"`
	CreatedAt   string `json:"created_at"`
}

// NoteCreateRequest is the body for POST /notes.
type NoteCreateRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// NoteResponse describes a single note.
type NoteResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// NoteListResponse is the body for GET /notes.
type NoteListResponse struct {
	Notes []NoteResponse `json:"notes"`
}

// HealthResponse is returned by the health probe endpoints.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the state of critical dependencies.
type HealthChecks struct {
	Database string `json:"database"`
}

func accountResponse(a domain.Account) AccountResponse {
	resp := AccountResponse{
		ID:        a.ID,
		Email:     a.Email,
		Name:      a.Name,
		CreatedAt: a.CreatedAt.UTC().Format(time.RFC3339),
	}
	if a.DateOfBirth != nil {
		resp.DateOfBirth = a.DateOfBirth.UTC().Format(DateFormat)
	}
	return resp
}

func noteResponse(n domain.Note) NoteResponse {
	return NoteResponse{
		ID:        n.ID,
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// decodeJSON parses a request body into dst. A false return means the
// error response has already been written.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		ErrInvalidRequest.WriteError(w)
		return false
	}
	return true
}
