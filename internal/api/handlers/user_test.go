package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/sam/photo-share-website/internal/api"
	"github.com/sam/photo-share-website/internal/domain"
	"github.com/sam/photo-share-website/internal/repository"
	"github.com/sam/photo-share-website/internal/repository/postgres"
	"github.com/sam/photo-share-website/internal/service"
	"github.com/sam/photo-share-website/internal/storage"
	"github.com/sam/photo-share-website/internal/testutil"
	"github.com/sam/photo-share-website/internal/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserHandler_ListAndGet(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, token := testutil.NewUserBuilder().WithName("Vivian", "Maier").BuildAndLogin(t, ts)
	other, _ := testutil.NewUserBuilder().WithName("Robert", "Frank").WithLocation("Zurich").Build(t, ts.DB.DB)

	t.Run("list returns id and name only", func(t *testing.T) {
		req := testutil.CreateSessionRequest(t, http.MethodGet, ts.URL("/user/list"), nil, token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var users []map[string]interface{}
		testutil.AssertJSONResponse(t, resp, &users)
		require.Len(t, users, 2)
		for _, u := range users {
			assert.Contains(t, u, "_id")
			assert.Contains(t, u, "first_name")
			assert.Contains(t, u, "last_name")
			assert.NotContains(t, u, "login_name")
			assert.NotContains(t, u, "location")
		}
	})

	t.Run("get returns profile without credential", func(t *testing.T) {
		req := testutil.CreateSessionRequest(t, http.MethodGet, ts.URL("/user/"+other.ID.String()), nil, token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var user map[string]interface{}
		testutil.AssertJSONResponse(t, resp, &user)
		assert.Equal(t, "Robert", user["first_name"])
		assert.Equal(t, "Zurich", user["location"])
		assert.NotContains(t, user, "password")
		assert.NotContains(t, user, "password_hash")
	})

	t.Run("malformed id", func(t *testing.T) {
		req := testutil.CreateSessionRequest(t, http.MethodGet, ts.URL("/user/42"), nil, token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
	})

	t.Run("unknown id", func(t *testing.T) {
		req := testutil.CreateSessionRequest(t, http.MethodGet, ts.URL("/user/"+uuid.NewString()), nil, token)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusNotFound)
	})
}

func TestUserHandler_DeleteAccount(t *testing.T) {
	ts := testutil.NewTestServer(t)

	doomed, doomedToken := testutil.NewUserBuilder().BuildAndLogin(t, ts)
	survivor, survivorToken := testutil.NewUserBuilder().BuildAndLogin(t, ts)

	survivorPhoto := testutil.NewPhotoBuilder().WithOwner(survivor).Build(t, ts.DB.DB)
	testutil.AddComment(t, ts.DB.DB, survivorPhoto, doomed, "goodbye")
	testutil.AddLike(t, ts.DB.DB, survivorPhoto, doomed)

	req := testutil.CreateSessionRequest(t, http.MethodDelete, ts.URL("/user/delete"), nil, doomedToken)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	// The deleted session no longer resolves
	req = testutil.CreateSessionRequest(t, http.MethodGet, ts.URL("/user/list"), nil, doomedToken)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusUnauthorized)

	// The account is gone from other users' views
	req = testutil.CreateSessionRequest(t, http.MethodGet, ts.URL("/user/"+doomed.ID.String()), nil, survivorToken)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusNotFound)

	// The survivor's photo remains, stripped of the deleted user's comment and like
	req = testutil.CreateSessionRequest(t, http.MethodGet, ts.URL("/photosOfUser/"+survivor.ID.String()), nil, survivorToken)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var photos []photoResponse
	testutil.AssertJSONResponse(t, resp, &photos)
	require.Len(t, photos, 1)
	assert.Empty(t, photos[0].Comments)
	assert.Equal(t, 0, photos[0].LikeCount)
}

// brokenActivityRepo delegates everything except DeleteByUser, which fails.
type brokenActivityRepo struct {
	repository.ActivityRepository
}

func (r *brokenActivityRepo) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return assert.AnError
}

func TestUserHandler_DeleteAccountPartialFailure(t *testing.T) {
	testDB := testutil.NewTestDB(t)
	cfg := testutil.TestConfig(t)

	repos := postgres.NewRepositories(testDB.DB)
	repos.Activity = &brokenActivityRepo{ActivityRepository: repos.Activity}

	images, err := storage.NewDiskStore(cfg.ImagesDir)
	require.NoError(t, err)
	hub := websocket.NewHub()
	go hub.Run()

	services := service.NewServices(repos, images, hub, cfg)
	server := httptest.NewServer(api.NewRouter(services, hub, images, cfg))
	t.Cleanup(func() {
		server.Close()
		hub.Stop()
	})

	user, password := testutil.NewUserBuilder().Build(t, testDB.DB)
	body, _ := json.Marshal(map[string]string{"login_name": user.LoginName, "password": password})
	loginResp, err := http.Post(server.URL+"/admin/login", "application/json", bytes.NewBuffer(body))
	require.NoError(t, err)
	defer loginResp.Body.Close()
	testutil.AssertStatusCode(t, loginResp, http.StatusOK)
	token := testutil.SessionToken(t, loginResp)

	req := testutil.CreateSessionRequest(t, http.MethodDelete, server.URL+"/user/delete", nil, token)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	testutil.AssertStatusCode(t, resp, http.StatusInternalServerError)

	var result struct {
		Error     string   `json:"error"`
		Step      string   `json:"step"`
		Completed []string `json:"completed"`
	}
	testutil.AssertJSONResponse(t, resp, &result)
	assert.Equal(t, "account deletion incomplete", result.Error)
	assert.Equal(t, "delete-activities", result.Step)
	assert.Equal(t, []string{"delete-owned-photos"}, result.Completed)

	// The identity survives a stopped cascade
	var userCount int64
	require.NoError(t, testDB.DB.Model(&domain.User{}).Where("id = ?", user.ID).Count(&userCount).Error)
	assert.Equal(t, int64(1), userCount)
}
