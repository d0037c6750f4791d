package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func postDevicePage(t *testing.T, router *Router, code, email, password string) *httptest.ResponseRecorder {
	t.Helper()

	form := url.Values{}
	form.Set("email", email)
	form.Set("password", password)

	req := httptest.NewRequest(http.MethodPost, "/auth/page/"+code, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.RemoteAddr = "10.0.0.1:12345"

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func deviceStatus(t *testing.T, router *Router, code string) *httptest.ResponseRecorder {
	t.Helper()
	return doJSON(t, router, http.MethodGet, "/auth/status/"+code, nil)
}

// The full happy path: a device registers a code, polls while pending, the
// user approves it in a browser, the device collects the token and deletes
// the challenge.
func TestDeviceAuthorizationFlow(t *testing.T) {
	router := newTestRouter(t)
	const code = "dev-42"

	rec := doJSON(t, router, http.MethodPost, "/auth/device",
		map[string]string{"device_code": code})
	require.Equal(t, http.StatusCreated, rec.Code)

	require.Equal(t, http.StatusAccepted, deviceStatus(t, router, code).Code)

	page := postDevicePage(t, router, code, testUser, testPassword)
	require.Equal(t, http.StatusOK, page.Code)
	require.Contains(t, page.Body.String(), "Device authorized")

	rec = deviceStatus(t, router, code)
	require.Equal(t, http.StatusOK, rec.Code)

	var status struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	require.NotEmpty(t, status.AccessToken)

	// The token works against gated endpoints, including the cleanup delete.
	health := doJSON(t, router, http.MethodGet, "/health/auth", nil, withBearer(status.AccessToken))
	require.Equal(t, http.StatusOK, health.Code)

	rec = doJSON(t, router, http.MethodDelete, "/auth/device/"+code, nil, withBearer(status.AccessToken))
	require.Equal(t, http.StatusNoContent, rec.Code)

	require.Equal(t, http.StatusNotFound, deviceStatus(t, router, code).Code)
}

func TestDeviceCreate(t *testing.T) {
	router := newTestRouter(t)

	t.Run("duplicate code", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/auth/device",
			map[string]string{"device_code": "dup"})
		require.Equal(t, http.StatusCreated, rec.Code)

		rec = doJSON(t, router, http.MethodPost, "/auth/device",
			map[string]string{"device_code": "dup"})
		require.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("empty code", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodPost, "/auth/device",
			map[string]string{"device_code": ""})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDeviceStatusUnknownCode(t *testing.T) {
	router := newTestRouter(t)
	require.Equal(t, http.StatusNotFound, deviceStatus(t, router, "never-seen").Code)
}

func TestDeviceDeleteRequiresAuth(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodDelete, "/auth/device/some-code", nil)
	require.Equal(t, http.StatusForbidden, rec.Code)

	token := loginToken(t, router)
	rec = doJSON(t, router, http.MethodDelete, "/auth/device/some-code", nil, withBearer(token))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDevicePage(t *testing.T) {
	router := newTestRouter(t)
	const code = "dev-7"

	rec := doJSON(t, router, http.MethodPost, "/auth/device",
		map[string]string{"device_code": code})
	require.Equal(t, http.StatusCreated, rec.Code)

	t.Run("GET renders the form with the code", func(t *testing.T) {
		rec := doJSON(t, router, http.MethodGet, "/auth/page/"+code, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), code)
		require.Contains(t, rec.Body.String(), `name="password"`)
	})

	t.Run("bad credentials re-render the form with the email", func(t *testing.T) {
		page := postDevicePage(t, router, code, testUser, "wrong")
		require.Equal(t, http.StatusOK, page.Code)
		require.Contains(t, page.Body.String(), "Invalid username or password")
		require.Contains(t, page.Body.String(), testUser)
		require.NotContains(t, page.Body.String(), "wrong")

		// The challenge is untouched.
		require.Equal(t, http.StatusAccepted, deviceStatus(t, router, code).Code)
	})

	t.Run("unknown code renders an error", func(t *testing.T) {
		page := postDevicePage(t, router, "bogus", testUser, testPassword)
		require.Equal(t, http.StatusOK, page.Code)
		require.Contains(t, page.Body.String(), "Device code &#39;bogus&#39; is not valid")
	})
}
