package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"reelfeed/models"
	"reelfeed/services/catalog"
)

// catalogService is the slice of the catalog service the HTTP layer
// consumes.
type catalogService interface {
	HomeFeed(ctx context.Context) (*models.HomeFeedResponse, error)
	Trending(ctx context.Context, mediaType string) ([]models.MediaItem, error)
	Upcoming(ctx context.Context) ([]models.MediaItem, error)
	Search(ctx context.Context, query string) ([]models.MediaItem, error)
	PlatformCatalog(ctx context.Context, platformID string, page int) ([]models.MediaItem, error)
	Details(ctx context.Context, mediaType string, id int64) (*models.DetailResponse, error)
	Trailer(ctx context.Context, mediaType string, id int64, titleHint string) models.TrailerResult
	EnrichDetails(ctx context.Context, items []models.MediaItem) []models.MediaDetail
}

var _ catalogService = (*catalog.Service)(nil)

type CatalogHandler struct {
	Service catalogService
}

func NewCatalogHandler(s catalogService) *CatalogHandler {
	return &CatalogHandler{Service: s}
}

// Register attaches every catalog route to the router.
func (h *CatalogHandler) Register(r *mux.Router) {
	r.HandleFunc("/api/feed/home", h.HomeFeed).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/api/feed/trending", h.Trending).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/api/feed/upcoming", h.Upcoming).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/api/platforms", h.Platforms).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/api/platforms/{id}", h.PlatformCatalog).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/api/search", h.Search).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/api/details", h.Details).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/api/details/batch", h.BatchDetails).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/api/trailer", h.Trailer).Methods(http.MethodGet, http.MethodOptions)
}

func (h *CatalogHandler) HomeFeed(w http.ResponseWriter, r *http.Request) {
	feed, err := h.Service.HomeFeed(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, feed)
}

func (h *CatalogHandler) Trending(w http.ResponseWriter, r *http.Request) {
	mediaType := models.NormalizeMediaType(r.URL.Query().Get("type"))
	items, err := h.Service.Trending(r.Context(), mediaType)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, models.FeedResponse{Items: ensureItems(items), Total: len(items)})
}

func (h *CatalogHandler) Upcoming(w http.ResponseWriter, r *http.Request) {
	items, err := h.Service.Upcoming(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, models.FeedResponse{Items: ensureItems(items), Total: len(items)})
}

func (h *CatalogHandler) Platforms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, catalog.Platforms())
}

func (h *CatalogHandler) PlatformCatalog(w http.ResponseWriter, r *http.Request) {
	platformID := strings.TrimSpace(mux.Vars(r)["id"])

	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "page must be a positive integer")
			return
		}
		page = parsed
	}

	items, err := h.Service.PlatformCatalog(r.Context(), platformID, page)
	if err != nil {
		if errors.Is(err, catalog.ErrUnknownPlatform) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		writeServiceError(w, err)
		return
	}
	writeJSON(w, models.FeedResponse{Items: ensureItems(items), Total: len(items)})
}

func (h *CatalogHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "q is required")
		return
	}
	items, err := h.Service.Search(r.Context(), query)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, models.FeedResponse{Items: ensureItems(items), Total: len(items)})
}

func (h *CatalogHandler) Details(w http.ResponseWriter, r *http.Request) {
	mediaType, id, ok := mediaParams(w, r)
	if !ok {
		return
	}
	detail, err := h.Service.Details(r.Context(), mediaType, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, detail)
}

// batchDetailsLimit caps how many titles one batch request may enrich.
const batchDetailsLimit = 25

func (h *CatalogHandler) BatchDetails(w http.ResponseWriter, r *http.Request) {
	mediaType := models.NormalizeMediaType(r.URL.Query().Get("type"))
	rawIDs := strings.TrimSpace(r.URL.Query().Get("ids"))
	if rawIDs == "" {
		writeError(w, http.StatusBadRequest, "ids is required")
		return
	}

	var items []models.MediaItem
	for _, part := range strings.Split(rawIDs, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id <= 0 {
			writeError(w, http.StatusBadRequest, "ids must be positive integers")
			return
		}
		items = append(items, models.MediaItem{ID: id, MediaType: mediaType})
	}
	if len(items) == 0 {
		writeError(w, http.StatusBadRequest, "ids is required")
		return
	}
	if len(items) > batchDetailsLimit {
		writeError(w, http.StatusBadRequest, "too many ids")
		return
	}

	details := h.Service.EnrichDetails(r.Context(), items)
	writeJSON(w, details)
}

func (h *CatalogHandler) Trailer(w http.ResponseWriter, r *http.Request) {
	mediaType, id, ok := mediaParams(w, r)
	if !ok {
		return
	}
	titleHint := strings.TrimSpace(r.URL.Query().Get("title"))
	// Resolution never fails: a fully empty outcome is the explicit
	// "none" result, which the client renders as "no trailer".
	result := h.Service.Trailer(r.Context(), mediaType, id, titleHint)
	writeJSON(w, result)
}

// mediaParams parses the shared type+id query parameters, writing a 400
// and returning ok=false on invalid input.
func mediaParams(w http.ResponseWriter, r *http.Request) (string, int64, bool) {
	mediaType := models.NormalizeMediaType(r.URL.Query().Get("type"))
	rawID := strings.TrimSpace(r.URL.Query().Get("id"))
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "id must be a positive integer")
		return "", 0, false
	}
	return mediaType, id, true
}

func ensureItems(items []models.MediaItem) []models.MediaItem {
	if items == nil {
		return []models.MediaItem{}
	}
	return items
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[handlers] encode response failed: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// writeServiceError maps provider-side failures onto 502. Anything the
// service returns here means the upstream providers could not serve the
// request; an empty result is not an error and never reaches this path.
func writeServiceError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusBadGateway, err.Error())
}
