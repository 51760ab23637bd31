package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	ws "github.com/gorilla/websocket"
	"github.com/sam/photo-share-website/internal/domain"
	"github.com/sam/photo-share-website/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wsURL(ts *testutil.TestServer, token string) string {
	return "ws" + strings.TrimPrefix(ts.BaseURL(), "http") + "/ws?token=" + token
}

func TestWebSocketHandler(t *testing.T) {
	ts := testutil.NewTestServer(t)

	user, token := testutil.NewUserBuilder().WithName("Gordon", "Parks").BuildAndLogin(t, ts)
	photo := testutil.NewPhotoBuilder().WithOwner(user).Build(t, ts.DB.DB)

	t.Run("missing token rejected", func(t *testing.T) {
		_, resp, err := ws.DefaultDialer.Dial(wsURL(ts, ""), nil)
		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("invalid token rejected", func(t *testing.T) {
		_, resp, err := ws.DefaultDialer.Dial(wsURL(ts, "deadbeef"), nil)
		require.Error(t, err)
		require.NotNil(t, resp)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("activity events are pushed", func(t *testing.T) {
		conn, resp, err := ws.DefaultDialer.Dial(wsURL(ts, token), nil)
		require.NoError(t, err)
		if resp != nil && resp.Body != nil {
			resp.Body.Close()
		}
		defer conn.Close()

		// Keep generating activity until an event lands; recording is
		// asynchronous and the subscription may postdate the first write
		stop := make(chan struct{})
		defer close(stop)
		go func() {
			ticker := time.NewTicker(100 * time.Millisecond)
			defer ticker.Stop()
			for i := 0; ; i++ {
				select {
				case <-stop:
					return
				case <-ticker.C:
					ts.Services.Photo.AddComment(context.Background(), photo.ID, user.ID, fmt.Sprintf("tick %d", i))
				}
			}
		}()

		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

		// Earlier events (the login itself) may arrive first; read until a
		// comment event shows up
		for {
			_, data, err := conn.ReadMessage()
			require.NoError(t, err)

			var event struct {
				Type     string `json:"type"`
				Activity struct {
					ID     uuid.UUID `json:"_id"`
					UserID uuid.UUID `json:"user_id"`
					Action string    `json:"action"`
				} `json:"activity"`
			}
			require.NoError(t, json.Unmarshal(data, &event))
			require.Equal(t, "activity", event.Type)

			if event.Activity.Action == string(domain.ActivityNewComment) {
				assert.Equal(t, user.ID, event.Activity.UserID)
				assert.NotEqual(t, uuid.Nil, event.Activity.ID)
				return
			}
		}
	})
}
