package healthsdk

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/aussiebroadwan/providerid/pkg/httpx"
)

var (
	// ErrTransport means the upstream could not be reached or its response
	// could not be read.
	ErrTransport = errors.New("healthsdk: upstream transport failure")

	// ErrTimeout means the upstream did not answer within Client.Timeout.
	ErrTimeout = errors.New("healthsdk: upstream timed out")
)

// classify wraps a failed round trip as ErrTimeout or ErrTransport.
func classify(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w: %v", op, ErrTimeout, err)
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return fmt.Errorf("%s: %w: %v", op, ErrTimeout, err)
	}
	return fmt.Errorf("%s: %w: %v", op, ErrTransport, err)
}

// OAuth2 error codes per RFC 6749, plus the ones this service adds.
const (
	ErrorCodeInvalidRequest         = "invalid_request"
	ErrorCodeServerError            = "server_error"
	ErrorCodeTemporarilyUnavailable = "temporarily_unavailable"
	ErrorCodeNotFound               = "not_found"
)

// OAuth2Error is an RFC 6749 error body. Handlers use it for every JSON error
// that is not part of the profile-read contract.
type OAuth2Error struct {
	StatusCode  int    `json:"-"`
	Code        string `json:"error"`
	Description string `json:"error_description"`
}

func (e *OAuth2Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes e as an uncached JSON response.
func (e *OAuth2Error) WriteError(w http.ResponseWriter) {
	httpx.NoCache(w)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(e.StatusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             e.Code,
		"error_description": e.Description,
	})
}

// NewOAuth2Error creates an OAuth2Error.
func NewOAuth2Error(statusCode int, code, description string) *OAuth2Error {
	return &OAuth2Error{StatusCode: statusCode, Code: code, Description: description}
}

var (
	ErrInvalidRequest = &OAuth2Error{
		StatusCode:  http.StatusBadRequest,
		Code:        ErrorCodeInvalidRequest,
		Description: "the request is malformed or missing required parameters",
	}

	ErrServerError = &OAuth2Error{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}

	ErrUpstreamUnavailable = &OAuth2Error{
		StatusCode:  http.StatusBadGateway,
		Code:        ErrorCodeTemporarilyUnavailable,
		Description: "the identity provider could not be reached",
	}

	ErrNotFound = &OAuth2Error{
		StatusCode:  http.StatusNotFound,
		Code:        ErrorCodeNotFound,
		Description: "not found",
	}
)
