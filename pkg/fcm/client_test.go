package fcm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func testClient(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		tokens:   oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "test-token"}),
		client:   &http.Client{},
	}
}

func TestSend_V1Contract(t *testing.T) {
	var got sendRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"projects/gita/messages/msg-1"}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)

	name, err := c.Send(context.Background(), Message{
		Token: "device-token",
		Title: "title",
		Body:  "body",
		Data:  map[string]string{"verse_ref": "2.47"},
	})

	require.NoError(t, err)
	assert.Equal(t, "projects/gita/messages/msg-1", name)
	assert.Equal(t, "device-token", got.Message.Token)
	assert.Equal(t, "title", got.Message.Notification.Title)
	assert.Equal(t, "body", got.Message.Notification.Body)
	assert.Equal(t, "2.47", got.Message.Data["verse_ref"])
}

func TestSend_Rejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"status":"UNREGISTERED","message":"Requested entity was not found."}}`))
	}))
	defer srv.Close()

	c := testClient(srv.URL)

	_, err := c.Send(context.Background(), Message{Token: "stale-token"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "UNREGISTERED")
}
