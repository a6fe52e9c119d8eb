package huuto_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akardes/huutonet-client/huuto"
)

func TestClient_UserResourcePaths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		call     func(*huuto.Client, context.Context) (huuto.Document, error)
		wantPath string
	}{
		{
			name: "info",
			call: func(c *huuto.Client, ctx context.Context) (huuto.Document, error) {
				return c.UserInfo(ctx)
			},
			wantPath: "/users/123456/",
		},
		{
			name: "settings",
			call: func(c *huuto.Client, ctx context.Context) (huuto.Document, error) {
				return c.UserSettings(ctx)
			},
			wantPath: "/users/123456/settings",
		},
		{
			name: "feedbacks",
			call: func(c *huuto.Client, ctx context.Context) (huuto.Document, error) {
				return c.UserFeedbacks(ctx)
			},
			wantPath: "/users/123456/feedbacks",
		},
		{
			name: "favorites",
			call: func(c *huuto.Client, ctx context.Context) (huuto.Document, error) {
				return c.UserFavorites(ctx)
			},
			wantPath: "/users/123456/favorites",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, tt.wantPath, r.URL.Path)
				assert.Equal(t, "test-token", r.Header.Get("X-HuutoApiToken"))
				writeJSON(t, w, `{}`)
			}))

			_, err := tt.call(c, context.Background())
			require.NoError(t, err)
		})
	}
}

func TestClient_AddUserFavorite(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/users/123456/favorites", r.URL.Path)
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "450185678", r.PostFormValue("itemid"))

		w.WriteHeader(http.StatusCreated)
		writeJSON(t, w, `{}`)
	}))

	_, err := c.AddUserFavorite(context.Background(), 450185678)
	require.NoError(t, err)
}

func TestClient_AddUserFavorite_RejectsPlain200(t *testing.T) {
	t.Parallel()

	// The favorites endpoint answers 201 on success; anything else is an
	// error even when it looks successful.
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(t, w, `{}`)
	}))

	_, err := c.AddUserFavorite(context.Background(), 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, huuto.ErrAPI)
}

func TestClient_UserPurchases(t *testing.T) {
	t.Parallel()

	// GET, despite upstream docs describing a POST.
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/users/123456/purchases", r.URL.Path)
		assert.Equal(t, "all", r.URL.Query().Get("status"), "status defaults to all")
		writeJSON(t, w, `{"items":[]}`)
	}))

	_, err := c.UserPurchases(context.Background(), "")
	require.NoError(t, err)
}

func TestClient_UserSales_Defaults(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/123456/sales", r.URL.Path)

		q := r.URL.Query()
		assert.Equal(t, "1", q.Get("page"))
		assert.Equal(t, "all", q.Get("status"))
		assert.Equal(t, "0", q.Get("sold"))
		assert.Equal(t, "closing-time", q.Get("sort"))

		writeJSON(t, w, `{"items":[]}`)
	}))

	_, err := c.UserSales(context.Background(), huuto.SalesQuery{})
	require.NoError(t, err)
}

func TestClient_UserSales_Filters(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "open", q.Get("status"))
		assert.Equal(t, "1", q.Get("sold"))
		assert.Equal(t, "bidders", q.Get("sort"))
		writeJSON(t, w, `{"items":[]}`)
	}))

	_, err := c.UserSales(context.Background(), huuto.SalesQuery{
		Status: "open",
		Sold:   huuto.Int(1),
		Sort:   "bidders",
	})
	require.NoError(t, err)
}
