package api

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var staticFS embed.FS

// pages serves the embedded browser views.
type pages struct {
	fs fs.FS
}

func newPages() *pages {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return &pages{fs: sub}
}

// HandleDashboard handles GET /dashboard. The page reads /org/leaderboard
// and /org/levels from the browser.
func (p *pages) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Cache-Control", "no-cache")
	http.ServeFileFS(w, r, p.fs, "dashboard.html")
}
