package testutil

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// HTTPRequest describes a request sent to the in-memory server
type HTTPRequest struct {
	Method      string
	Path        string
	Body        interface{}
	Headers     map[string]string
	AccessToken string
}

// HTTPResponse wraps the recorded response with JSON assertions
type HTTPResponse struct {
	*httptest.ResponseRecorder
	t *testing.T
}

// DoRequest serves the request through echo without opening a socket
func DoRequest(t *testing.T, e *echo.Echo, req HTTPRequest) *HTTPResponse {
	t.Helper()

	var body io.Reader
	if req.Body != nil {
		payload, err := json.Marshal(req.Body)
		require.NoError(t, err)
		body = bytes.NewReader(payload)
	}

	httpReq := httptest.NewRequest(req.Method, req.Path, body)
	httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for key, value := range req.Headers {
		httpReq.Header.Set(key, value)
	}
	if req.AccessToken != "" {
		httpReq.Header.Set(echo.HeaderAuthorization, "Bearer "+req.AccessToken)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httpReq)

	return &HTTPResponse{ResponseRecorder: rec, t: t}
}

// AssertStatus asserts the response status code
func (r *HTTPResponse) AssertStatus(expected int) *HTTPResponse {
	assert.Equal(r.t, expected, r.Code, "unexpected status code, body: %s", r.Body.String())
	return r
}

// AssertJSONPath asserts the value at a dot separated path such as "data.group.id"
func (r *HTTPResponse) AssertJSONPath(path string, expected interface{}) *HTTPResponse {
	assert.Equal(r.t, expected, lookup(r.GetJSON(), path), "JSON path %s mismatch", path)
	return r
}

// AssertJSONError asserts the error envelope code and, when given, its message
func (r *HTTPResponse) AssertJSONError(code, message string) *HTTPResponse {
	errorObj, ok := r.GetJSON()["error"].(map[string]interface{})
	require.True(r.t, ok, "response does not contain error object: %s", r.Body.String())

	assert.Equal(r.t, code, errorObj["code"], "error code mismatch")
	if message != "" {
		assert.Equal(r.t, message, errorObj["message"], "error message mismatch")
	}
	return r
}

// GetJSON parses the response body as a JSON object
func (r *HTTPResponse) GetJSON() map[string]interface{} {
	var result map[string]interface{}
	require.NoError(r.t, json.Unmarshal(r.Body.Bytes(), &result), "body: %s", r.Body.String())
	return result
}

// GetJSONData returns the "data" object of the envelope
func (r *HTTPResponse) GetJSONData() map[string]interface{} {
	data, _ := r.GetJSON()["data"].(map[string]interface{})
	return data
}

// GetJSONDataList returns the "data" array of the envelope
func (r *HTTPResponse) GetJSONDataList() []interface{} {
	data, _ := r.GetJSON()["data"].([]interface{})
	return data
}

func lookup(data map[string]interface{}, path string) interface{} {
	var current interface{} = data
	for _, key := range strings.Split(path, ".") {
		obj, ok := current.(map[string]interface{})
		if !ok {
			return nil
		}
		current = obj[key]
	}
	return current
}
