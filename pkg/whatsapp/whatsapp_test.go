package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Config{
		BaseURL:  server.URL,
		Token:    "test-token",
		SenderID: "store-1",
		Enabled:  true,
	})
}

func TestDeliverPostsDocumentMessage(t *testing.T) {
	var got outboundMessage
	var auth string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/messages", r.URL.Path)
		auth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusAccepted)
	})

	err := client.Deliver(context.Background(), "+919876543210", []byte("INVOICE"), map[string]string{"kind": "invoice"})
	require.NoError(t, err)

	assert.Equal(t, "Bearer test-token", auth)
	assert.Equal(t, "+919876543210", got.To)
	assert.Equal(t, "store-1", got.From)
	assert.Equal(t, "document", got.Type)
	assert.Equal(t, "INVOICE", got.Document)
	assert.Equal(t, "invoice", got.Metadata["kind"])
}

func TestDeliverGatewayTimeoutStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGatewayTimeout)
	})

	err := client.Deliver(context.Background(), "+919876543210", []byte("INVOICE"), nil)
	require.Error(t, err)
	assert.True(t, IsTimeout(err))
}

func TestDeliverRejectionIsNotTimeout(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	err := client.Deliver(context.Background(), "+919876543210", []byte("INVOICE"), nil)
	require.Error(t, err)
	assert.False(t, IsTimeout(err))
}

func TestDeliverDisabledChannelSucceeds(t *testing.T) {
	client := NewClient(Config{Enabled: false})

	err := client.Deliver(context.Background(), "+919876543210", []byte("INVOICE"), nil)
	assert.NoError(t, err)
}

func TestIsTimeoutClassification(t *testing.T) {
	assert.True(t, IsTimeout(ErrTimeout))
	assert.True(t, IsTimeout(context.DeadlineExceeded))
	assert.False(t, IsTimeout(nil))
	assert.False(t, IsTimeout(assert.AnError))
}
