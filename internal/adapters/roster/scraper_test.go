package roster

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

const rosterPage = `<html><body>
<table class="grid">
  <thead><tr><th>Name</th><th>Age</th><th>Pos</th><th>B/T</th><th>Team</th><th>Level</th></tr></thead>
  <tbody>
    <tr><td><a href="/p/1">Jacob Misiorowski</a></td><td>22</td><td>P</td><td>R/R</td><td>Nashville</td><td>AAA</td></tr>
    <tr><td>Jackson Chourio</td><td>20</td><td>OF</td><td>R/R</td><td>Milwaukee</td><td>MLB</td></tr>
    <tr><td>Short Row</td><td>P</td></tr>
    <tr><td> Carlos  de la  Rosa </td><td>21</td><td>P</td><td>L/L</td><td>Biloxi</td><td>AA</td></tr>
    <tr><td></td><td>19</td><td>P</td><td>R/R</td><td>DSL</td><td>R</td></tr>
  </tbody>
</table>
<table><tbody><tr><td>Ignored Second</td><td>1</td><td>P</td><td>R/R</td><td>X</td><td>A</td></tr></tbody></table>
</body></html>`

func TestParse(t *testing.T) {
	Convey("Given a roster page", t, func() {
		entries, err := Parse(strings.NewReader(rosterPage))
		So(err, ShouldBeNil)

		Convey("Only pitchers from the first table are returned", func() {
			So(len(entries), ShouldEqual, 2)
		})

		Convey("Names split into first and last word", func() {
			So(entries[0].First, ShouldEqual, "Jacob")
			So(entries[0].Last, ShouldEqual, "Misiorowski")
			So(entries[0].Level, ShouldEqual, "AAA")
			So(entries[1].First, ShouldEqual, "Carlos")
			So(entries[1].Last, ShouldEqual, "Rosa")
			So(entries[1].Level, ShouldEqual, "AA")
		})

		Convey("Rows with fewer than six cells are skipped silently", func() {
			for _, e := range entries {
				So(e.First, ShouldNotEqual, "Short")
			}
		})
	})

	Convey("Given a page without a table", t, func() {
		_, err := Parse(strings.NewReader("<html><body><p>maintenance</p></body></html>"))
		So(errors.Is(err, ErrNoTable), ShouldBeTrue)
	})

	Convey("Given a table whose rows sit directly under it", t, func() {
		page := `<table><tr><td>Tobias Myers</td><td>25</td><td>P</td><td>R/R</td><td>X</td><td>AAA</td></tr></table>`
		entries, err := Parse(strings.NewReader(page))
		So(err, ShouldBeNil)
		So(len(entries), ShouldEqual, 1)
		So(entries[0].Last, ShouldEqual, "Myers")
	})

	Convey("Given a level cell with inline markup", t, func() {
		page := `<table><tr><td><a href="/p/2">Logan Henderson</a></td><td>23</td><td>P</td><td>R/R</td><td>X</td><td>AA<sup>+</sup></td></tr></table>`
		entries, err := Parse(strings.NewReader(page))
		So(err, ShouldBeNil)
		So(len(entries), ShouldEqual, 1)
		So(entries[0].Level, ShouldEqual, "AA+")
		So(entries[0].Last, ShouldEqual, "Henderson")
	})
}

func TestScraperPitchers(t *testing.T) {
	Convey("Given a roster server", t, func() {
		var gotPath, gotUA string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotUA = r.Header.Get("User-Agent")
			if strings.Contains(r.URL.Path, "/99/") {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write([]byte(rosterPage))
		}))
		defer srv.Close()

		s := New(WithBaseURL(srv.URL+"/content/org_roster_current"), WithUserAgent("test-agent"))

		Convey("It requests the org page and parses it", func() {
			entries, err := s.Pitchers(context.Background(), "4")
			So(err, ShouldBeNil)
			So(gotPath, ShouldEqual, "/content/org_roster_current/4/")
			So(gotUA, ShouldEqual, "test-agent")
			So(len(entries), ShouldEqual, 2)
		})

		Convey("Non-2xx responses are upstream errors", func() {
			_, err := s.Pitchers(context.Background(), "99")
			So(errors.Is(err, ErrUpstream), ShouldBeTrue)
		})

		Convey("A cancelled context fails the request", func() {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			_, err := s.Pitchers(ctx, "4")
			So(err, ShouldNotBeNil)
		})
	})
}
