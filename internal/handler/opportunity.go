package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/voltra-app/voltra-go/internal/errors"
	"github.com/voltra-app/voltra-go/internal/model"
	"github.com/voltra-app/voltra-go/internal/service"
)

type OpportunityHandler struct {
	opportunities  *service.OpportunityService
	matcher        *service.MatcherService
	sessionService *service.SessionService
}

func NewOpportunityHandler(
	opportunities *service.OpportunityService,
	matcher *service.MatcherService,
	sessionService *service.SessionService,
) *OpportunityHandler {
	return &OpportunityHandler{
		opportunities:  opportunities,
		matcher:        matcher,
		sessionService: sessionService,
	}
}

func (h *OpportunityHandler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/", h.List)
	r.Get("/categories", h.Categories)

	return r
}

// GET /v1/opportunities?category=&q=
//
// The explore/search view: category filter plus keyword relevance ranking.
func (h *OpportunityHandler) List(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	query := r.URL.Query().Get("q")

	results := h.opportunities.Filter(category, query)

	writeJSON(w, http.StatusOK, map[string]any{
		"count":         len(results),
		"opportunities": results,
	})
}

// GET /v1/opportunities/categories
func (h *OpportunityHandler) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, model.Categories)
}

type feedResponse struct {
	Filter        string              `json:"filter"`
	Matching      bool                `json:"matching"`
	Preferred     []model.Opportunity `json:"preferred,omitempty"`
	Opportunities []model.Opportunity `json:"opportunities"`
}

// FeedRoutes serves the home feed.
func (h *OpportunityHandler) FeedRoutes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.Feed)
	return r
}

// GET /v1/feed?filter=all|new|preferred|my-posts
func (h *OpportunityHandler) Feed(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("filter")
	if filter == "" {
		filter = "all"
	}

	all := h.opportunities.All()
	user := h.sessionService.Current()

	switch filter {
	case "all":
		writeJSON(w, http.StatusOK, feedResponse{
			Filter:        filter,
			Matching:      h.matcher.Matching(),
			Opportunities: all,
		})

	case "new":
		writeJSON(w, http.StatusOK, feedResponse{
			Filter:        filter,
			Matching:      h.matcher.Matching(),
			Opportunities: service.NewSince(all, time.Now()),
		})

	case "preferred":
		var interests []string
		if user != nil {
			interests = user.Interests
		}
		// The partition runs over the whole list; the preferred section then
		// keeps only posts from the last 24 hours, matching the home screen.
		result := h.matcher.Match(r.Context(), interests, all)
		writeJSON(w, http.StatusOK, feedResponse{
			Filter:        filter,
			Matching:      h.matcher.Matching(),
			Preferred:     service.NewSince(result.Preferred, time.Now()),
			Opportunities: result.Other,
		})

	case "my-posts":
		if user == nil {
			writeError(w, apperrors.NoSession())
			return
		}
		writeJSON(w, http.StatusOK, feedResponse{
			Filter:        filter,
			Matching:      h.matcher.Matching(),
			Opportunities: service.OwnedBy(all, user.Email),
		})

	default:
		writeError(w, apperrors.InvalidInput("filter", "must be all, new, preferred or my-posts"))
	}
}
