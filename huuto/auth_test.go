package huuto_test

import (
	"context"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akardes/huutonet-client/huuto"
)

// authJSON returns a credential exchange response in the API's envelope.
func authJSON(token, userLink, expires string) string {
	return fmt.Sprintf(
		`{"authentication":{"token":{"id":%q,"startTime":"2026-08-28T10:00:00+03:00","expires":%q}},"links":{"user":%q}}`,
		token, expires, userLink,
	)
}

// expiredRecord returns a token record whose expiry has already passed.
func expiredRecord() huuto.TokenRecord {
	now := time.Now().UTC()
	return huuto.TokenRecord{
		UserID:    "123456",
		Token:     "stale-token",
		StartTime: now.Add(-2 * time.Hour).Format(time.RFC3339),
		Expires:   now.Add(-time.Hour).Format(time.RFC3339),
	}
}

// newAuthTestClient wires a client to a server that serves the credential
// exchange (counting calls) and echoes an empty document elsewhere.
func newAuthTestClient(t *testing.T, rec huuto.TokenRecord, exchanges *atomic.Int32, authBody string) (*huuto.Client, *huuto.MemoryTokenStore) {
	t.Helper()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/authentication" {
			exchanges.Add(1)
			assert.Equal(t, http.MethodPost, r.Method)
			w.WriteHeader(http.StatusCreated)
			writeJSON(t, w, authBody)
			return
		}
		writeJSON(t, w, `{}`)
	})

	store := huuto.NewMemoryTokenStore(rec)

	return newTestClientWithStore(t, handler, store), store
}

// newTestClientWithStore is newTestClient with an explicit token store.
func newTestClientWithStore(t *testing.T, handler http.Handler, store huuto.TokenStore) *huuto.Client {
	t.Helper()

	srv := newTestServer(t, handler)

	return huuto.New(
		testConfig(),
		huuto.WithBaseURL(srv),
		huuto.WithTokenStore(store),
	)
}

func TestClient_ExpiredTokenTriggersSingleExchange(t *testing.T) {
	t.Parallel()

	var exchanges atomic.Int32
	future := time.Now().UTC().Add(time.Hour).Format(time.RFC3339)
	body := authJSON("fresh-token", "https://api.huuto.net/1.1/users/7654321", future)

	c, store := newAuthTestClient(t, expiredRecord(), &exchanges, body)

	_, err := c.OwnItem(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int32(1), exchanges.Load())

	rec, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", rec.Token)
	assert.Equal(t, "7654321", rec.UserID)

	exp, err := time.Parse(time.RFC3339, rec.Expires)
	require.NoError(t, err)
	assert.True(t, exp.After(time.Now().UTC()))

	// The fresh token is now valid: no further exchange.
	_, err = c.OwnItem(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int32(1), exchanges.Load())
}

func TestClient_ValidTokenSkipsExchange(t *testing.T) {
	t.Parallel()

	var exchanges atomic.Int32
	body := authJSON("unused", "/users/111222", "")

	c, _ := newAuthTestClient(t, validRecord(), &exchanges, body)

	_, err := c.OwnItem(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, int32(0), exchanges.Load())
}

func TestClient_ExchangeFailure(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/authentication" {
			w.WriteHeader(http.StatusBadRequest)
			writeJSON(t, w, `{"error":"invalid credentials"}`)
			return
		}
		writeJSON(t, w, `{}`)
	})

	c := newTestClientWithStore(t, handler, huuto.NewMemoryTokenStore(expiredRecord()))

	_, err := c.OwnItem(context.Background(), 5)
	require.Error(t, err)

	var authErr *huuto.AuthError
	assert.ErrorAs(t, err, &authErr)
	assert.ErrorIs(t, err, huuto.ErrBadRequest)
}

func TestClient_ExchangeRequestFormat(t *testing.T) {
	t.Parallel()

	future := time.Now().UTC().Add(time.Hour).Format(time.RFC3339)

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/authentication", r.URL.Path)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("X-HuutoApiToken"))

		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "test-user", r.FormValue("username"))
		assert.Equal(t, "test-pass", r.FormValue("password"))

		w.WriteHeader(http.StatusCreated)
		writeJSON(t, w, authJSON("tok", "/users/555666", future))
	})

	c := newTestClientWithStore(t, handler, huuto.NewMemoryTokenStore(huuto.TokenRecord{}))

	token, err := c.Authenticate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "tok", token)
}

func TestClient_UserIDExtractionIdempotent(t *testing.T) {
	t.Parallel()

	// Every exchange answers with an already-expired token so each
	// Authenticate performs a fresh exchange over the same response.
	past := time.Now().UTC().Add(-time.Minute).Format(time.RFC3339)
	body := authJSON("short-lived", "https://api.huuto.net/1.1/users/987654", past)

	var exchanges atomic.Int32
	c, store := newAuthTestClient(t, huuto.TokenRecord{}, &exchanges, body)

	_, err := c.Authenticate(context.Background())
	require.NoError(t, err)
	rec1, err := store.Load()
	require.NoError(t, err)

	_, err = c.Authenticate(context.Background())
	require.NoError(t, err)
	rec2, err := store.Load()
	require.NoError(t, err)

	assert.Equal(t, int32(2), exchanges.Load())
	assert.Equal(t, rec1.UserID, rec2.UserID)
	assert.Equal(t, "987654", rec2.UserID)
}

func TestClient_ExchangeResponseWithoutUserLink(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusCreated)
		writeJSON(t, w, `{"authentication":{"token":{"id":"tok","startTime":"","expires":""}},"links":{"user":"no-digits-here"}}`)
	})

	c := newTestClientWithStore(t, handler, huuto.NewMemoryTokenStore(huuto.TokenRecord{}))

	_, err := c.Authenticate(context.Background())
	require.Error(t, err)

	var authErr *huuto.AuthError
	assert.ErrorAs(t, err, &authErr)
	assert.Contains(t, err.Error(), "no user id")
}
