// internal/app/features/bible/handler.go
package bible

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/upliftapp/uplift/internal/app/system/httpjson"
)

// Handler proxies the scripture REST API so the API key stays on the
// server. Read-only passthrough; upstream JSON goes to the client
// unchanged.
type Handler struct {
	BaseURL string
	APIKey  string
	HTTP    *http.Client
	Log     *zap.Logger
}

func NewHandler(baseURL, apiKey string, logger *zap.Logger) *Handler {
	return &Handler{
		BaseURL: baseURL,
		APIKey:  apiKey,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
		Log:     logger,
	}
}

// HandleVersions lists available bible versions.
func (h *Handler) HandleVersions(w http.ResponseWriter, r *http.Request) {
	h.proxy(w, r, "/v1/bibles")
}

// HandleBooks lists the books of one version.
func (h *Handler) HandleBooks(w http.ResponseWriter, r *http.Request) {
	bibleID := url.PathEscape(chi.URLParam(r, "bibleID"))
	h.proxy(w, r, "/v1/bibles/"+bibleID+"/books")
}

// HandleChapter returns one chapter's text.
func (h *Handler) HandleChapter(w http.ResponseWriter, r *http.Request) {
	bibleID := url.PathEscape(chi.URLParam(r, "bibleID"))
	chapterID := url.PathEscape(chi.URLParam(r, "chapterID"))
	h.proxy(w, r, "/v1/bibles/"+bibleID+"/chapters/"+chapterID+"?content-type=text")
}

func (h *Handler) proxy(w http.ResponseWriter, r *http.Request, path string) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.BaseURL+path, nil)
	if err != nil {
		httpjson.Internal(w, h.Log, "could not reach scripture API", err)
		return
	}
	req.Header.Set("api-key", h.APIKey)

	resp, err := h.HTTP.Do(req)
	if err != nil {
		httpjson.Internal(w, h.Log, "could not reach scripture API", err)
		return
	}
	defer resp.Body.Close()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		h.Log.Warn("scripture proxy copy failed", zap.Error(err))
	}
}
