package huuto

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/akardes/huutonet-client/internal/metrics"
)

// The authentication response carries no structured user id field, only a
// hyperlink to the user's resource. The id has to be matched out of that
// link; observed ids are 3-8 digits. Brittle if the link layout ever changes.
var userIDPattern = regexp.MustCompile(`/([0-9]{3,8})`)

// Layouts accepted for the token expiry timestamp. The API has returned both
// RFC 3339 and a bare local form.
var apiTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

type authResponse struct {
	Authentication struct {
		Token struct {
			ID        string `json:"id"`
			StartTime string `json:"startTime"`
			Expires   string `json:"expires"`
		} `json:"token"`
	} `json:"authentication"`
	Links struct {
		User string `json:"user"`
	} `json:"links"`
}

// Authenticate makes sure a valid token exists, performing the credential
// exchange if the persisted one is missing or expired, and returns it.
// Authenticated calls do this implicitly; calling it directly is only needed
// to warm up the token or to learn the resolved user id early.
func (c *Client) Authenticate(ctx context.Context) (string, error) {
	return c.ensureToken(ctx)
}

// ensureToken returns the persisted token when it is still valid, without
// refreshing ahead of expiry, and exchanges credentials otherwise. A single
// attempt, no retry.
func (c *Client) ensureToken(ctx context.Context) (string, error) {
	rec, err := c.store.Load()
	if err != nil {
		return "", fmt.Errorf("loading token record: %w", err)
	}

	if rec.Token != "" {
		if exp, perr := parseAPITime(rec.Expires); perr == nil && c.nowFunc().UTC().Before(exp) {
			return rec.Token, nil
		}
	}

	return c.exchangeCredentials(ctx)
}

// exchangeCredentials posts username/password to the authentication endpoint
// and persists the returned token record. The endpoint answers 201 on a
// created token; either 200 or 201 is treated as success.
func (c *Client) exchangeCredentials(ctx context.Context) (string, error) {
	form := url.Values{
		"username": {c.username},
		"password": {c.password},
	}

	raw, _, err := c.do(
		ctx,
		http.MethodPost,
		"/authentication",
		nil,
		strings.NewReader(form.Encode()),
		"application/x-www-form-urlencoded",
		false,
		[]int{http.StatusOK, http.StatusCreated},
	)
	if err != nil {
		metrics.TokenRefreshFailuresTotal.Inc()
		return "", &AuthError{Err: err}
	}

	var ar authResponse
	if err := json.Unmarshal(raw, &ar); err != nil {
		metrics.TokenRefreshFailuresTotal.Inc()
		return "", &AuthError{Err: fmt.Errorf("parsing authentication response: %w", err)}
	}

	userID, err := extractUserID(ar.Links.User)
	if err != nil {
		metrics.TokenRefreshFailuresTotal.Inc()
		return "", &AuthError{Err: err}
	}

	rec := TokenRecord{
		UserID:    userID,
		Token:     ar.Authentication.Token.ID,
		StartTime: ar.Authentication.Token.StartTime,
		Expires:   ar.Authentication.Token.Expires,
	}
	if err := c.store.Save(rec); err != nil {
		return "", fmt.Errorf("persisting token record: %w", err)
	}

	metrics.TokenRefreshesTotal.Inc()
	c.log.Info("token refreshed",
		"user_id", rec.UserID,
		"expires", rec.Expires,
	)

	return rec.Token, nil
}

// extractUserID pulls the numeric user id out of the user resource link.
func extractUserID(link string) (string, error) {
	m := userIDPattern.FindStringSubmatch(link)
	if m == nil {
		return "", fmt.Errorf("no user id in link %q", link)
	}
	return m[1], nil
}

func parseAPITime(s string) (time.Time, error) {
	for _, layout := range apiTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
