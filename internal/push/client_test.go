package push

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGateway(t *testing.T, calls *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewUnstartedServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		if r.ProtoMajor != 2 || r.Method != http.MethodPost {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		if r.Header.Get("apns-topic") != "pass.com.example.coupon" || r.Header.Get("apns-push-type") != "background" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		token := strings.TrimPrefix(r.URL.Path, "/3/device/")
		w.Header().Set("apns-id", "id-"+token)
		if strings.HasPrefix(token, "gone") {
			w.WriteHeader(http.StatusGone)
			_, _ = w.Write([]byte(`{"reason":"Unregistered","timestamp":1700000000000}`))
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	srv.EnableHTTP2 = true
	srv.StartTLS()
	t.Cleanup(srv.Close)
	return srv
}

func testClient(srv *httptest.Server, concurrency int) *Client {
	return NewClientWithHTTP(srv.Client, Options{
		Host:        srv.URL,
		Topic:       "pass.com.example.coupon",
		Delay:       time.Millisecond,
		Concurrency: concurrency,
	}, zerolog.Nop())
}

func TestPushIsolatesPerTokenFailures(t *testing.T) {
	var calls int32
	srv := newGateway(t, &calls)

	res, err := testClient(srv, 1).Push(context.Background(), []string{"tok-a", "gone-b", "tok-c"})
	require.NoError(t, err)
	require.Len(t, res.Results, 3)
	assert.Equal(t, 2, res.Succeeded())
	assert.Equal(t, 1, res.Failed())
	assert.Equal(t, []string{"gone-b"}, res.UnregisteredTokens())

	assert.True(t, res.Results[0].Success())
	assert.Equal(t, "id-tok-a", res.Results[0].APNsID)
	assert.False(t, res.Results[1].Success())
	assert.Equal(t, http.StatusGone, res.Results[1].Status)
	assert.Equal(t, "Unregistered", res.Results[1].Reason)
	assert.True(t, res.Results[2].Success())
	assert.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestPushPooledKeepsOrder(t *testing.T) {
	var calls int32
	srv := newGateway(t, &calls)

	tokens := []string{"t1", "gone-2", "t3", "t4", "gone-5"}
	res, err := testClient(srv, 3).Push(context.Background(), tokens)
	require.NoError(t, err)
	require.Len(t, res.Results, len(tokens))
	for i, r := range res.Results {
		assert.Equal(t, tokens[i], r.Token)
	}
	assert.Equal(t, 3, res.Succeeded())
	assert.ElementsMatch(t, []string{"gone-2", "gone-5"}, res.UnregisteredTokens())
}

func TestPushConnectionErrorFailsBatch(t *testing.T) {
	var calls int32
	srv := newGateway(t, &calls)
	c := testClient(srv, 1)
	srv.Close()

	res, err := c.Push(context.Background(), []string{"a", "b", "c"})
	assert.Error(t, err)
	require.Len(t, res.Results, 3)
	assert.Equal(t, 3, res.Failed())
	for _, r := range res.Results {
		assert.Error(t, r.Err)
	}
}

func TestPushEmptyBatch(t *testing.T) {
	c := NewClientWithHTTP(func() *http.Client {
		t.Fatal("client must not be created for an empty batch")
		return nil
	}, Options{}, zerolog.Nop())
	res, err := c.Push(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, res.Results)
}

func TestPushHonoursCancellation(t *testing.T) {
	var calls int32
	srv := newGateway(t, &calls)
	c := NewClientWithHTTP(srv.Client, Options{Host: srv.URL, Topic: "pass.com.example.coupon", Delay: time.Hour}, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	res, err := c.Push(ctx, []string{"a", "b"})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	require.Len(t, res.Results, 2)
	assert.True(t, res.Results[0].Success())
	assert.Equal(t, "b", res.Results[1].Token)
	assert.ErrorIs(t, res.Results[1].Err, context.DeadlineExceeded)
	assert.Equal(t, 1, res.Failed())
}
