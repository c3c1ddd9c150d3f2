// Package roster scrapes an organization's current pitchers from a
// public roster page.
package roster

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/okian/otvplus/internal/domain/model"
)

const (
	defaultBaseURL   = "https://www.thebaseballcube.com/content/org_roster_current/"
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "otvplus/1.0"

	// Column layout of the roster table.
	minColumns  = 6
	colName     = 0
	colPosition = 2
	colLevel    = 5
	pitcherPos  = "P"
)

// Scraper reads the first table of an org roster page.
type Scraper struct {
	baseURL   string
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// New creates a Scraper.
func New(opts ...Option) *Scraper {
	s := &Scraper{
		baseURL:   defaultBaseURL,
		timeout:   defaultTimeout,
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.client == nil {
		s.client = &http.Client{Timeout: s.timeout}
	}
	return s
}

// URL returns the roster page address for an org.
func (s *Scraper) URL(orgID string) string {
	return strings.TrimRight(s.baseURL, "/") + "/" + orgID + "/"
}

// Pitchers fetches and parses the org's roster page.
func (s *Scraper) Pitchers(ctx context.Context, orgID string) ([]model.RosterEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL(orgID), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}
	return Parse(resp.Body)
}

// Parse extracts pitchers from the body rows of the first table. Rows with
// fewer than six cells and non-pitchers are skipped. The first name is the
// first word of the name cell and the last name is its last word.
func Parse(r io.Reader) ([]model.RosterEntry, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse roster: %w", err)
	}
	table := find(doc, atom.Table)
	if table == nil {
		return nil, ErrNoTable
	}
	body := find(table, atom.Tbody)
	if body == nil {
		return nil, ErrNoTable
	}

	var out []model.RosterEntry
	for row := body.FirstChild; row != nil; row = row.NextSibling {
		if row.Type != html.ElementNode || row.DataAtom != atom.Tr {
			continue
		}
		cols := cells(row)
		if len(cols) < minColumns || cols[colPosition] != pitcherPos {
			continue
		}
		name := strings.Fields(cols[colName])
		if len(name) == 0 {
			continue
		}
		out = append(out, model.RosterEntry{
			First: name[0],
			Last:  name[len(name)-1],
			Level: cols[colLevel],
		})
	}
	return out, nil
}

// find returns the first element with the given tag in document order.
func find(n *html.Node, a atom.Atom) *html.Node {
	if n.Type == html.ElementNode && n.DataAtom == a {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := find(c, a); found != nil {
			return found
		}
	}
	return nil
}

// cells returns the stripped text of each td in a row.
func cells(row *html.Node) []string {
	var out []string
	for c := row.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Td {
			out = append(out, text(c))
		}
	}
	return out
}

// text concatenates the trimmed text nodes under n with no separator, so
// inline markup is transparent: <a>Name</a> reads "Name" and AA<sup>+</sup>
// reads "AA+".
func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(strings.TrimSpace(n.Data))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}
