package utils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderError(t *testing.T, err error) (int, StandardResponse) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	FromError(c, "fallback", err)

	var body StandardResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestFromError(t *testing.T) {
	dial := errors.New("dial tcp 10.0.3.7:8081: connect: connection refused")

	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantDetail bool
	}{
		{"validation keeps detail", UnprocessableError(ErrInvalidPayload, errors.New("nombre: requerido")), http.StatusUnprocessableEntity, true},
		{"bad request keeps detail", BadRequestError(ErrInvalidID, errors.New("id must be positive")), http.StatusBadRequest, true},
		{"bad gateway hides cause", BadGatewayError(ErrBackendUnavailable, dial), http.StatusBadGateway, false},
		{"unavailable hides cause", ServiceUnavailableError(ErrBackendUnavailable, dial), http.StatusServiceUnavailable, false},
		{"not found hides cause", NotFoundError("Producto no encontrado", errors.New("backend responded 404: x")), http.StatusNotFound, false},
		{"wrapped app error", errors.Wrap(ConflictError("Ya existe", dial), "create"), http.StatusConflict, false},
		{"plain error is 500", dial, http.StatusInternalServerError, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, body := renderError(t, tt.err)
			assert.Equal(t, tt.wantCode, code)
			assert.Equal(t, "error", body.Status)
			if tt.wantDetail {
				assert.NotNil(t, body.Data)
			} else {
				assert.Nil(t, body.Data)
			}
		})
	}
}

func TestFromError_NeverLeaksTransportText(t *testing.T) {
	_, body := renderError(t, BadGatewayError(ErrBackendUnavailable, errors.New("dial tcp 10.0.3.7:8081: refused")))
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "10.0.3.7")
}
