// Package statcast resolves players against the MLB Stats API and fetches
// their pitch-level tracking data from Baseball Savant.
package statcast

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/okian/otvplus/internal/domain/model"
)

const (
	defaultStatsAPIURL = "https://statsapi.mlb.com"
	defaultSavantURL   = "https://baseballsavant.mlb.com"
	defaultTimeout     = 30 * time.Second
	// MLB plus the affiliated minor league levels.
	defaultSportIDs = "1,11,12,13,14,16"
	dateLayout      = "2006-01-02"
	maxErrorBody    = 512
)

// Client talks to both upstreams.
type Client struct {
	statsAPIURL string
	savantURL   string
	sportIDs    string
	timeout     time.Duration
	http        *http.Client
}

// New creates a Client.
func New(opts ...Option) *Client {
	c := &Client{
		statsAPIURL: defaultStatsAPIURL,
		savantURL:   defaultSavantURL,
		sportIDs:    defaultSportIDs,
		timeout:     defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: c.timeout}
	}
	return c
}

type person struct {
	ID              int    `json:"id"`
	FullName        string `json:"fullName"`
	FirstName       string `json:"firstName"`
	LastName        string `json:"lastName"`
	PrimaryPosition struct {
		Abbreviation string `json:"abbreviation"`
	} `json:"primaryPosition"`
}

type peopleResponse struct {
	People []person `json:"people"`
}

// LookupPlayer resolves a name to a tracking id. Among the search hits it
// takes the first pitcher whose last name matches, then any matching last
// name. A search without a last-name match is ErrNoIdentityMatch.
func (c *Client) LookupPlayer(ctx context.Context, first, last string) (int, error) {
	q := url.Values{}
	q.Set("names", strings.TrimSpace(first+" "+last))
	q.Set("sportIds", c.sportIDs)
	endpoint := strings.TrimRight(c.statsAPIURL, "/") + "/api/v1/people/search?" + q.Encode()

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return 0, err
	}
	defer body.Close()

	var resp peopleResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return 0, fmt.Errorf("%w: people search: %w", ErrBadResponse, err)
	}
	if p, ok := pick(resp.People, last); ok {
		return p.ID, nil
	}
	return 0, fmt.Errorf("%s %s: %w", first, last, model.ErrNoIdentityMatch)
}

func pick(people []person, last string) (person, bool) {
	if len(people) == 0 {
		return person{}, false
	}
	var sameLast *person
	for i := range people {
		p := &people[i]
		if !strings.EqualFold(p.LastName, last) {
			continue
		}
		if p.PrimaryPosition.Abbreviation == "P" {
			return *p, true
		}
		if sameLast == nil {
			sameLast = p
		}
	}
	if sameLast != nil {
		return *sameLast, true
	}
	return person{}, false
}

// Pitches fetches the regular-season pitch log of a pitcher in [start, end].
func (c *Client) Pitches(ctx context.Context, playerID int, start, end time.Time) ([]model.PitchEvent, error) {
	q := url.Values{}
	q.Set("all", "true")
	q.Set("type", "details")
	q.Set("player_type", "pitcher")
	q.Set("hfGT", "R|")
	q.Set("game_date_gt", start.Format(dateLayout))
	q.Set("game_date_lt", end.Format(dateLayout))
	q.Set("pitchers_lookup[]", fmt.Sprint(playerID))
	endpoint := strings.TrimRight(c.savantURL, "/") + "/statcast_search/csv?" + q.Encode()

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	events, err := ParseCSV(body)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, fmt.Errorf("player %d %s..%s: %w", playerID,
			start.Format(dateLayout), end.Format(dateLayout), model.ErrEmptySample)
	}
	return events, nil
}

func (c *Client) get(ctx context.Context, endpoint string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	return resp.Body, nil
}
