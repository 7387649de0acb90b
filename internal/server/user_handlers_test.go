package server

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleFollowHandler(t *testing.T) {
	_, app, db := newTestServer(t)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	follow := map[string]uint{"userId": alice.ID, "targetUserId": bob.ID}

	resp, raw := doJSON(t, app, http.MethodPost, "/users/follow", follow)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "Followed", body["message"])

	// Same request again unfollows
	resp, raw = doJSON(t, app, http.MethodPost, "/users/follow", follow)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "Unfollowed", body["message"])
}

func TestToggleFollowHandlerSelf(t *testing.T) {
	_, app, db := newTestServer(t)
	alice := seedUser(t, db, "alice")

	resp, raw := doJSON(t, app, http.MethodPost, "/users/follow", map[string]uint{
		"userId": alice.ID, "targetUserId": alice.ID,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, string(raw), "cannot follow yourself")
}

func TestToggleFollowHandlerUnknownTarget(t *testing.T) {
	_, app, db := newTestServer(t)
	alice := seedUser(t, db, "alice")

	resp, _ := doJSON(t, app, http.MethodPost, "/users/follow", map[string]uint{
		"userId": alice.ID, "targetUserId": 424242,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetUsersHandler(t *testing.T) {
	_, app, db := newTestServer(t)

	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	resp, _ := doJSON(t, app, http.MethodPost, "/users/follow", map[string]uint{
		"userId": alice.ID, "targetUserId": bob.ID,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, raw := doJSON(t, app, http.MethodGet, "/users", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var users []struct {
		ID             uint   `json:"id"`
		Username       string `json:"username"`
		FollowersCount []uint `json:"followersCount"`
		FollowingCount []uint `json:"followingCount"`
	}
	require.NoError(t, json.Unmarshal(raw, &users))
	require.Len(t, users, 2)

	assert.Equal(t, "alice", users[0].Username)
	assert.Equal(t, []uint{bob.ID}, users[0].FollowingCount)
	assert.Empty(t, users[0].FollowersCount)
	assert.Equal(t, []uint{alice.ID}, users[1].FollowersCount)

	// Field names are part of the client contract
	assert.Contains(t, string(raw), `"followersCount"`)
	assert.Contains(t, string(raw), `"followingCount"`)
	assert.NotContains(t, string(raw), `"password"`)
	assert.NotContains(t, string(raw), `"email"`)
}
