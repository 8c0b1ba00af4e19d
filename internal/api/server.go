package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"media-repurposer-go/internal/cache"
	"media-repurposer-go/internal/config"
	"media-repurposer-go/internal/imageproxy"
	"media-repurposer-go/internal/logger"
	"media-repurposer-go/internal/platform"
	"media-repurposer-go/internal/resolver"
	"media-repurposer-go/internal/store"
)

type Server struct {
	mux     *http.ServeMux
	cache   cache.Cache
	fetcher *imageproxy.Fetcher
}

func NewServer() *Server {
	s := &Server{
		mux:     http.NewServeMux(),
		cache:   cache.NewFromConfig(config.AppConfig),
		fetcher: imageproxy.NewFetcher(),
	}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)
	s.mux.HandleFunc("GET /api/platforms", s.handlePlatforms)
	s.mux.HandleFunc("POST /api/resolve", s.handleResolve)
	s.mux.HandleFunc("POST /api/resolve/tiktok", s.handleResolveTikTok)
	s.mux.HandleFunc("POST /api/resolve/generic", s.handleResolveGeneric)
	s.mux.HandleFunc("GET /api/proxy-image", s.handleProxyImage)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (s *Server) handlePlatforms(w http.ResponseWriter, r *http.Request) {
	tags := platform.Tags()
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		out = append(out, string(t))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"platforms":  out,
		"registered": platform.Names(),
	})
}

type resolveRequest struct {
	URL    string `json:"url"`
	Cookie string `json:"cookie"`
}

func decodeResolveRequest(r *http.Request) (resolveRequest, error) {
	var req resolveRequest
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return req, err
	}
	return req, nil
}

// handleResolve classifies the URL and dispatches to the matching
// resolver, falling back to the aggregator for everything unregistered.
func (s *Server) handleResolve(w http.ResponseWriter, r *http.Request) {
	req, err := decodeResolveRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, "URL is required", nil)
		return
	}

	res, tag, err := platform.ResolverFor(req.URL)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "no resolver available", err)
		return
	}

	bundle, err := s.resolve(r.Context(), res, string(tag), req)
	if err != nil {
		writeResolveError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bundle)
}

func (s *Server) handleResolveTikTok(w http.ResponseWriter, r *http.Request) {
	req, err := decodeResolveRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, "URL is required", nil)
		return
	}

	res, err := platform.New("tiktok")
	if err != nil {
		writeError(w, http.StatusInternalServerError, "tiktok resolver unavailable", err)
		return
	}

	bundle, err := s.resolve(r.Context(), res, "tiktok", req)
	if err != nil {
		writeResolveError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tiktokResponseFromBundle(bundle))
}

func (s *Server) handleResolveGeneric(w http.ResponseWriter, r *http.Request) {
	req, err := decodeResolveRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body", err)
		return
	}
	if req.URL == "" {
		writeError(w, http.StatusBadRequest, "URL is required", nil)
		return
	}

	res, err := platform.Fallback()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "aggregator resolver unavailable", err)
		return
	}

	tag := platform.Classify(req.URL)
	bundle, err := s.resolve(r.Context(), res, string(tag), req)
	if err != nil {
		writeResolveError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, genericResponseFromBundle(bundle))
}

// resolve runs one resolution end to end: cache lookup, upstream call,
// bundle construction, history write. The history write is best-effort
// and never fails the request.
func (s *Server) resolve(ctx context.Context, res resolver.Resolver, tag string, req resolveRequest) (resolver.Bundle, error) {
	cacheKey := "bundle:" + tag + ":" + req.URL
	if s.cache != nil {
		if b, ok, err := s.cache.Get(ctx, cacheKey); err == nil && ok {
			var cached resolver.Bundle
			if err := json.Unmarshal(b, &cached); err == nil {
				return cached, nil
			}
		}
	}

	raw, err := res.Resolve(ctx, req.URL, resolver.Options{Cookie: req.Cookie})
	if err != nil {
		return resolver.Bundle{}, err
	}
	bundle := resolver.Build(req.URL, tag, raw)

	if s.cache != nil {
		if b, err := json.Marshal(bundle); err == nil {
			ttl := time.Duration(config.AppConfig.CacheDefaultTTLSec) * time.Second
			if err := s.cache.Set(ctx, cacheKey, b, ttl); err != nil {
				logger.Warn("bundle cache set failed", "err", err)
			}
		}
	}

	rec := store.Record{
		Platform:   tag,
		InputURL:   req.URL,
		CleanURL:   bundle.CleanURL,
		PrimaryURL: bundle.PrimarySource,
		Shape:      string(bundle.Shape),
		MediaCount: bundle.MediaCount,
		HasAudio:   bundle.HasAudio,
	}
	go func() {
		if err := store.SaveRecord(context.Background(), rec); err != nil {
			logger.Warn("history record failed", "platform", tag, "err", err)
		}
	}()

	return bundle, nil
}

func writeResolveError(w http.ResponseWriter, err error) {
	kind := resolver.KindOf(err)
	status := http.StatusInternalServerError
	if kind == resolver.ErrorKindValidation {
		status = http.StatusBadRequest
	}
	msg := publicErrorMessage(kind)
	// Provider-reported failures carry the upstream's own message; it is
	// caller-facing diagnostics, not internals.
	var re resolver.Error
	if errors.As(err, &re) && re.Kind == resolver.ErrorKindUpstreamProvider && re.Msg != "" {
		msg = re.Msg
	}
	writeError(w, status, msg, err)
}

func publicErrorMessage(kind resolver.ErrorKind) string {
	switch kind {
	case resolver.ErrorKindValidation:
		return "invalid request"
	case resolver.ErrorKindRedirect:
		return "failed to resolve short link"
	case resolver.ErrorKindUpstreamProvider:
		return "upstream provider rejected the URL"
	case resolver.ErrorKindUpstreamUnavailable:
		return "upstream service unavailable"
	case resolver.ErrorKindNoMedia:
		return "no usable media found"
	case resolver.ErrorKindCanceled:
		return "request canceled"
	case resolver.ErrorKindTimeout:
		return "upstream request timed out"
	default:
		return "failed to resolve media"
	}
}

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// writeError hides upstream detail unless diagnostic mode is on.
func writeError(w http.ResponseWriter, status int, msg string, err error) {
	resp := errorResponse{Error: msg}
	if err != nil && config.AppConfig.DebugErrors {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("content-type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
}
