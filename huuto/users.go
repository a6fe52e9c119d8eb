package huuto

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// SalesQuery holds the parameters for listing the user's own items.
type SalesQuery struct {
	Page   int    // result page, default 1
	Status string // all, open, closed, waiting, draft; default all
	// Sold and Republished filter on sold/republished items and are only
	// effective together with status "open" or "closed".
	Sold        *int // 0 or 1
	Republished string
	Sort        string // bidders, closing-time, current-price, list-time
}

// UserInfo retrieves the authenticated user's information. LastLogin is only
// visible to the user; the address additionally to users they have traded
// with.
func (c *Client) UserInfo(ctx context.Context) (Document, error) {
	path, err := c.userPath(ctx, "/")
	if err != nil {
		return nil, err
	}
	return c.get(ctx, path, nil, true)
}

// UserSettings retrieves the user-specific parameter requirements for
// creating items: which parameters are allowed or required and what values
// they accept.
func (c *Client) UserSettings(ctx context.Context) (Document, error) {
	path, err := c.userPath(ctx, "/settings")
	if err != nil {
		return nil, err
	}
	return c.get(ctx, path, nil, true)
}

// UserFeedbacks retrieves the user's feedbacks.
func (c *Client) UserFeedbacks(ctx context.Context) (Document, error) {
	path, err := c.userPath(ctx, "/feedbacks")
	if err != nil {
		return nil, err
	}
	return c.get(ctx, path, nil, true)
}

// UserFavorites retrieves the user's favorite items ("muistilista"). The API
// documents no way to remove a favorite; the web UI does it through an
// undocumented endpoint outside this API.
func (c *Client) UserFavorites(ctx context.Context) (Document, error) {
	path, err := c.userPath(ctx, "/favorites")
	if err != nil {
		return nil, err
	}
	return c.get(ctx, path, nil, true)
}

// AddUserFavorite adds an item to the user's favorite list. The API answers
// 201 on success.
func (c *Client) AddUserFavorite(ctx context.Context, itemID int) (Document, error) {
	path, err := c.userPath(ctx, "/favorites")
	if err != nil {
		return nil, err
	}
	data := url.Values{"itemid": {strconv.Itoa(itemID)}}

	return c.postForm(ctx, path, data, true, http.StatusCreated)
}

// UserPurchases retrieves the items the user has bid on or purchased,
// filtered by status: open, closed, processing or all (the default).
// Upstream docs list this as a POST, but the live API serves it on GET.
func (c *Client) UserPurchases(ctx context.Context, status string) (Document, error) {
	if status == "" {
		status = "all"
	}
	path, err := c.userPath(ctx, "/purchases")
	if err != nil {
		return nil, err
	}
	params := url.Values{"status": {status}}

	return c.get(ctx, path, params, true)
}

// UserSales retrieves the items created by the user.
func (c *Client) UserSales(ctx context.Context, q SalesQuery) (Document, error) {
	if q.Page == 0 {
		q.Page = 1
	}
	if q.Status == "" {
		q.Status = "all"
	}
	if q.Sort == "" {
		q.Sort = "closing-time"
	}
	if q.Sold == nil {
		q.Sold = Int(0)
	}

	path, err := c.userPath(ctx, "/sales")
	if err != nil {
		return nil, err
	}

	params := url.Values{
		"page":        {strconv.Itoa(q.Page)},
		"status":      {q.Status},
		"sold":        {strconv.Itoa(*q.Sold)},
		"sort":        {q.Sort},
		"republished": {q.Republished},
	}

	return c.get(ctx, path, params, true)
}

// userPath resolves a path under the authenticated user's resource. The user
// id only becomes known through the credential exchange, so a valid token is
// ensured first.
func (c *Client) userPath(ctx context.Context, suffix string) (string, error) {
	if _, err := c.ensureToken(ctx); err != nil {
		return "", err
	}

	rec, err := c.store.Load()
	if err != nil {
		return "", fmt.Errorf("loading token record: %w", err)
	}
	if rec.UserID == "" {
		return "", &AuthError{Err: fmt.Errorf("no user id in token record")}
	}

	return "/users/" + rec.UserID + suffix, nil
}
