//nolint:unused
package httpserver_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"movieclub/httpserver"
	"movieclub/pkg/config"
	"movieclub/pkg/jwt"
	"movieclub/user"

	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-jwt-secret"

// testConfig leaves JWT disabled so mutating routes are open.
func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.AllowOrigins = "*"
	cfg.RateLimit = 1000
	return cfg
}

func testAdminConfig() *config.Config {
	cfg := testConfig()
	cfg.Auth.JWTSecret = testJWTSecret
	return cfg
}

func signTestToken(t testing.TB, role user.Role) string {
	t.Helper()
	token, err := jwt.NewJWTProvider(testJWTSecret, time.Hour).GenerateAccessToken(user.User{
		ID:      1,
		LoginID: "root",
		Role:    role,
	})
	require.NoError(t, err)
	return token
}

type apiResponse struct {
	Success bool            `json:"success"`
	Code    string          `json:"code"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

func decodeAPIResponse(t testing.TB, rec *httptest.ResponseRecorder) apiResponse {
	t.Helper()
	var resp apiResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

// decodeResult unmarshals the result of an envelope into out.
func decodeResult(t testing.TB, rec *httptest.ResponseRecorder, out interface{}) apiResponse {
	t.Helper()
	resp := decodeAPIResponse(t, rec)
	require.NoError(t, json.Unmarshal(resp.Result, out), string(resp.Result))
	return resp
}

// decodeList unmarshals result.data of a list envelope into out.
func decodeList(t testing.TB, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	var page struct {
		Data json.RawMessage `json:"data"`
	}
	decodeResult(t, rec, &page)
	require.NoError(t, json.Unmarshal(page.Data, out), string(page.Data))
}

func serveJSON(server *httpserver.Server, method, path string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	server.Router.ServeHTTP(rec, req)
	return rec
}

func serve(server *httpserver.Server, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	server.Router.ServeHTTP(rec, req)
	return rec
}

func newUploadRequest(body io.Reader, contentType string, headers []string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/upload-movie-details", body)
	req.Header.Set("Content-Type", contentType)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	return req
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func bearer(token string) []string {
	return []string{"Authorization", "Bearer " + token}
}

func assertEnvelope(t testing.TB, rec *httptest.ResponseRecorder, status int, message string) apiResponse {
	t.Helper()
	require.Equal(t, status, rec.Code, rec.Body.String())
	resp := decodeAPIResponse(t, rec)
	require.Equal(t, status < http.StatusBadRequest, resp.Success, rec.Body.String())
	if message != "" {
		require.Equal(t, message, resp.Message)
	}
	return resp
}
