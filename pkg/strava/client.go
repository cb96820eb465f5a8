// Package strava is a minimal client for the Strava v3 REST API, covering the
// endpoints the activity aggregation pipeline needs.
package strava

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// BaseURL is the production Strava API root.
const BaseURL = "https://www.strava.com/api/v3"

const maxErrorBody = 256

// APIError is returned when Strava answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("strava: unexpected status %d: %s", e.StatusCode, e.Body)
}

// Client issues authenticated requests against the Strava API. Authentication
// is per-call: the caller supplies the access token, the credential lifecycle
// lives elsewhere.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a client against the production API. Passing a nil
// httpClient uses a default with a bounded timeout so a stalled provider
// cannot hang an aggregation indefinitely.
func NewClient(httpClient *http.Client) *Client {
	return NewClientWithBaseURL(httpClient, BaseURL)
}

// NewClientWithBaseURL creates a client against an alternate API root,
// primarily for tests.
func NewClientWithBaseURL(httpClient *http.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
	}
}

// ListActivitiesParams bounds one page of GET /athlete/activities.
type ListActivitiesParams struct {
	After   int64 // epoch seconds, exclusive lower bound
	Before  int64 // epoch seconds, exclusive upper bound
	Page    int
	PerPage int
}

// ListActivities fetches one page of the athlete's activities.
func (c *Client) ListActivities(ctx context.Context, accessToken string, p ListActivitiesParams) ([]SummaryActivity, error) {
	q := url.Values{
		"after":    {strconv.FormatInt(p.After, 10)},
		"before":   {strconv.FormatInt(p.Before, 10)},
		"page":     {strconv.Itoa(p.Page)},
		"per_page": {strconv.Itoa(p.PerPage)},
	}
	var activities []SummaryActivity
	if err := c.getJSON(ctx, accessToken, "/athlete/activities", q, &activities); err != nil {
		return nil, err
	}
	return activities, nil
}

// GetActivity fetches the full detail record for one activity.
func (c *Client) GetActivity(ctx context.Context, accessToken string, id int64) (*DetailedActivity, error) {
	var activity DetailedActivity
	if err := c.getJSON(ctx, accessToken, "/activities/"+strconv.FormatInt(id, 10), nil, &activity); err != nil {
		return nil, err
	}
	return &activity, nil
}

// GetLatLngStream fetches the high-resolution coordinate stream for an
// activity. A (nil, nil) return means Strava has no latlng stream for it,
// which is distinct from a fetch failure.
func (c *Client) GetLatLngStream(ctx context.Context, accessToken string, id int64) ([]LatLng, error) {
	q := url.Values{
		"keys":        {"latlng"},
		"key_by_type": {"true"},
	}
	var set StreamSet
	err := c.getJSON(ctx, accessToken, "/activities/"+strconv.FormatInt(id, 10)+"/streams", q, &set)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	if set.LatLng == nil {
		return nil, nil
	}
	return set.LatLng.Data, nil
}

// GetAthlete fetches the authenticated athlete's profile.
func (c *Client) GetAthlete(ctx context.Context, accessToken string) (*Athlete, error) {
	var athlete Athlete
	if err := c.getJSON(ctx, accessToken, "/athlete", nil, &athlete); err != nil {
		return nil, err
	}
	return &athlete, nil
}

func (c *Client) getJSON(ctx context.Context, accessToken, path string, query url.Values, out interface{}) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	request.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(request)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
