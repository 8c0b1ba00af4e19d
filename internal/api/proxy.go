package api

import (
	"net/http"
	"strconv"

	"media-repurposer-go/internal/imageproxy"
)

// handleProxyImage fetches a remote image server-side and re-streams
// it with the upstream content type. Optional w/h query parameters cap
// the returned dimensions.
func (s *Server) handleProxyImage(w http.ResponseWriter, r *http.Request) {
	imageURL := r.URL.Query().Get("url")
	if imageURL == "" {
		writeError(w, http.StatusBadRequest, "URL is required", nil)
		return
	}

	res, err := s.fetcher.Fetch(r.Context(), imageURL)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to fetch image", err)
		return
	}

	maxW := intQuery(r, "w")
	maxH := intQuery(r, "h")
	if maxW > 0 || maxH > 0 {
		res = imageproxy.Downscale(res, maxW, maxH)
	}

	w.Header().Set("Content-Type", res.ContentType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Bytes)
}

func intQuery(r *http.Request, key string) int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
