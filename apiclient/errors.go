package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-faster/errors"

	"github.com/aromanza/gateway/utils"
)

// ErrBackendUnavailable is returned while the circuit breaker is open
var ErrBackendUnavailable = errors.New("backend unavailable")

// StatusError is a non-2xx reply from the backend
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend responded %d: %s", e.Status, e.Message)
}

func newStatusError(status int, body []byte) *StatusError {
	return &StatusError{Status: status, Message: errorMessage(status, body)}
}

// errorMessage extracts {error} or {message} from a reply, falling back to the
// raw text and then to the status text.
func errorMessage(status int, body []byte) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
		Mensaje string `json:"mensaje"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		switch {
		case payload.Error != "":
			return payload.Error
		case payload.Message != "":
			return payload.Message
		case payload.Mensaje != "":
			return payload.Mensaje
		}
	}
	text := strings.TrimSpace(string(body))
	if text != "" && !strings.HasPrefix(text, "{") && !strings.HasPrefix(text, "<") {
		if len(text) > maxErrorBody {
			text = text[:maxErrorBody]
		}
		return text
	}
	return http.StatusText(status)
}

// StatusOf returns the backend status carried by err, or 0
func StatusOf(err error) int {
	var serr *StatusError
	if errors.As(err, &serr) {
		return serr.Status
	}
	return 0
}

// AsAppError maps an upstream failure onto the AppError rendered to the
// browser. 4xx keep their status and backend message; 5xx become 502.
func AsAppError(err error, fallback string) *utils.AppError {
	if err == nil {
		return nil
	}
	if appErr := utils.GetAppError(err); appErr != nil {
		return appErr
	}
	if errors.Is(err, ErrBackendUnavailable) {
		return utils.ServiceUnavailableError(utils.ErrBackendUnavailable, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return utils.NewAppError(http.StatusGatewayTimeout, utils.ErrBackendUnavailable, err)
	}

	var serr *StatusError
	if !errors.As(err, &serr) {
		return utils.BadGatewayError(utils.ErrBackendUnavailable, err)
	}
	msg := serr.Message
	if msg == "" || msg == http.StatusText(serr.Status) {
		msg = fallback
	}
	switch {
	case serr.Status == http.StatusBadRequest:
		return utils.BadRequestError(msg, err)
	case serr.Status == http.StatusUnauthorized:
		return utils.UnauthorizedError(msg, err)
	case serr.Status == http.StatusForbidden:
		return utils.ForbiddenError(msg, err)
	case serr.Status == http.StatusNotFound:
		return utils.NotFoundError(msg, err)
	case serr.Status == http.StatusConflict:
		return utils.ConflictError(msg, err)
	case serr.Status == http.StatusUnprocessableEntity:
		return utils.UnprocessableError(msg, err)
	case serr.Status >= 500:
		return utils.BadGatewayError(fallback, err)
	default:
		return utils.NewAppError(serr.Status, msg, err)
	}
}
