package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedPosting(t *testing.T, env *testEnv, title, category string) {
	t.Helper()
	orgID := createOrg(t, env, title+" Org")
	rec := env.do(t, http.MethodPost, "/v1/organizations/"+orgID+"/postings", map[string]any{
		"title":    title,
		"category": category,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
}

type listResponse struct {
	Count         int              `json:"count"`
	Opportunities []map[string]any `json:"opportunities"`
}

func TestOpportunityEndpoints(t *testing.T) {
	t.Run("list filters by category and query", func(t *testing.T) {
		env := newTestEnv(t)
		env.signup(t)
		seedPosting(t, env, "Tree Planting", "Environment")
		seedPosting(t, env, "Math Tutoring", "Education")

		rec := env.do(t, http.MethodGet, "/v1/opportunities?category=Education", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp listResponse
		decodeBody(t, rec, &resp)
		require.Equal(t, 1, resp.Count)
		assert.Equal(t, "Math Tutoring", resp.Opportunities[0]["title"])

		rec = env.do(t, http.MethodGet, "/v1/opportunities?q=tutoring", nil)
		decodeBody(t, rec, &resp)
		require.Equal(t, 1, resp.Count)
		assert.Equal(t, "Math Tutoring", resp.Opportunities[0]["title"])
	})

	t.Run("categories lists All first", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.do(t, http.MethodGet, "/v1/opportunities/categories", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var categories []string
		decodeBody(t, rec, &categories)
		require.NotEmpty(t, categories)
		assert.Equal(t, "All", categories[0])
	})
}

func TestFeedEndpoints(t *testing.T) {
	t.Run("default filter returns everything", func(t *testing.T) {
		env := newTestEnv(t)
		env.signup(t)
		seedPosting(t, env, "Tree Planting", "Environment")

		rec := env.do(t, http.MethodGet, "/v1/feed", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp feedResponse
		decodeBody(t, rec, &resp)
		assert.Equal(t, "all", resp.Filter)
		assert.Len(t, resp.Opportunities, 1)
	})

	t.Run("new keeps only recent postings", func(t *testing.T) {
		env := newTestEnv(t)
		env.signup(t)
		seedPosting(t, env, "Fresh Posting", "Environment")

		rec := env.do(t, http.MethodGet, "/v1/feed?filter=new", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp feedResponse
		decodeBody(t, rec, &resp)
		assert.Len(t, resp.Opportunities, 1, "a just-created posting is inside the window")
	})

	t.Run("preferred degrades to other without a matcher endpoint", func(t *testing.T) {
		env := newTestEnv(t)
		env.signup(t)
		seedPosting(t, env, "Tree Planting", "Environment")

		rec := env.do(t, http.MethodGet, "/v1/feed?filter=preferred", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp feedResponse
		decodeBody(t, rec, &resp)
		assert.Empty(t, resp.Preferred)
		assert.Len(t, resp.Opportunities, 1)
	})

	t.Run("my-posts requires a session", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.do(t, http.MethodGet, "/v1/feed?filter=my-posts", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("my-posts returns only the session user's postings", func(t *testing.T) {
		env := newTestEnv(t)
		env.signup(t)
		seedPosting(t, env, "Mine", "Environment")

		rec := env.do(t, http.MethodGet, "/v1/feed?filter=my-posts", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp feedResponse
		decodeBody(t, rec, &resp)
		require.Len(t, resp.Opportunities, 1)
		assert.Equal(t, "Mine", resp.Opportunities[0].Title)
	})

	t.Run("unknown filter returns 400", func(t *testing.T) {
		env := newTestEnv(t)

		rec := env.do(t, http.MethodGet, "/v1/feed?filter=bogus", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDataReset(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t)
	seedPosting(t, env, "Tree Planting", "Environment")

	rec := env.do(t, http.MethodDelete, "/v1/data", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.False(t, env.session.IsAuthenticated())
	assert.Empty(t, env.orgs.GetAllPostings())
	assert.Empty(t, env.opps.All())
}
