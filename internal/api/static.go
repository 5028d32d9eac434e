package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"rtref/pkg/logger"
)

// StaticFileHandler serves the static assets (stylesheet, browser shim)
// from a directory, with directory listings disabled.
type StaticFileHandler struct {
	dir    string
	fs     http.Handler
	logger *logger.Logger
}

// NewStaticFileHandler creates a static file handler rooted at dir.
func NewStaticFileHandler(dir string, log *logger.Logger) *StaticFileHandler {
	return &StaticFileHandler{
		dir:    dir,
		fs:     http.FileServer(http.Dir(dir)),
		logger: log.Named("static"),
	}
}

// ServeHTTP serves the requested file, rejecting directory requests and
// paths that escape the root.
func (h *StaticFileHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	reqPath := strings.TrimPrefix(r.URL.Path, "/")
	if reqPath == "" || strings.Contains(reqPath, "..") {
		http.NotFound(w, r)
		return
	}

	full := filepath.Join(h.dir, filepath.FromSlash(reqPath))
	info, err := os.Stat(full)
	if err != nil || info.IsDir() {
		http.NotFound(w, r)
		return
	}

	h.fs.ServeHTTP(w, r)
}
