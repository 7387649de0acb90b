package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupHandler(t *testing.T) {
	_, app, _ := newTestServer(t)

	resp, raw := doJSON(t, app, http.MethodPost, "/signup", map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "hunter22",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "alice", body["username"])
	assert.NotEmpty(t, body["token"])

	// Password never appears in the response
	_, present := body["password"]
	assert.False(t, present)
}

func TestSignupHandlerValidation(t *testing.T) {
	_, app, _ := newTestServer(t)

	resp, _ := doJSON(t, app, http.MethodPost, "/signup", map[string]string{
		"username": "alice",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSignupHandlerDuplicateEmail(t *testing.T) {
	_, app, _ := newTestServer(t)

	body := map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "hunter22",
	}
	resp, _ := doJSON(t, app, http.MethodPost, "/signup", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/signup", body)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestLoginHandler(t *testing.T) {
	_, app, _ := newTestServer(t)

	signup := map[string]string{
		"username": "alice",
		"email":    "alice@example.com",
		"password": "hunter22",
	}
	resp, _ := doJSON(t, app, http.MethodPost, "/signup", signup)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, raw := doJSON(t, app, http.MethodPost, "/login", map[string]string{
		"email":    "alice@example.com",
		"password": "hunter22",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]any
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "alice", body["username"])
	assert.NotEmpty(t, body["token"])

	// Wrong password and unknown email get the same answer
	resp, rawWrong := doJSON(t, app, http.MethodPost, "/login", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, rawUnknown := doJSON(t, app, http.MethodPost, "/login", map[string]string{
		"email":    "nobody@example.com",
		"password": "hunter22",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.JSONEq(t, string(rawWrong), string(rawUnknown))
}
