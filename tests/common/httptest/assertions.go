//go:build unit || e2e

package httptest

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"booking-platform/internal/handler/httperr"
	"booking-platform/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, targetStruct any) {
	t.Helper()

	if !assert.Equal(t, expectedStatus, w.Code, "response: %s", w.Body.String()) {
		return
	}
	if expectedStatus >= 200 && expectedStatus < 300 && targetStruct != nil {
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), targetStruct), "decode: %s", w.Body.String())
	}
}

func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedErrorMsg string) {
	t.Helper()

	body := decodeEnvelope(t, w)
	assert.Equal(t, expectedStatus, w.Code, "response: %s", w.Body.String())
	if expectedErrorMsg != "" {
		assert.Contains(t, body.Error.Message, expectedErrorMsg)
	}
}

// AssertAppError checks the status and the stable error code of the envelope
// and returns it so callers can inspect Detail.
func AssertAppError(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, code errs.Code) httperr.Response {
	t.Helper()

	body := decodeEnvelope(t, w)
	assert.Equal(t, expectedStatus, w.Code, "response: %s", w.Body.String())
	assert.Equal(t, code, body.Error.Code, "response: %s", w.Body.String())
	return body
}

func AssertHeaders(t *testing.T, w *httptest.ResponseRecorder, expected map[string]string) {
	t.Helper()
	for k, v := range expected {
		assert.Equal(t, v, w.Header().Get(k), "header %s", k)
	}
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) httperr.Response {
	t.Helper()

	var body httperr.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), "decode error envelope: %s", w.Body.String())
	return body
}
