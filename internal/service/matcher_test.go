package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltra-app/voltra-go/internal/model"
)

func matcherOpps() []model.Opportunity {
	return []model.Opportunity{
		{ID: "o1", Title: "Tree Planting", Category: "Environment", Description: "Plant trees in the park"},
		{ID: "o2", Title: "Math Tutoring", Category: "Education", Description: "Tutor middle schoolers"},
		{ID: "o3", Title: "Dog Walking", Category: "Animal Welfare", Description: "Walk shelter dogs"},
	}
}

func completionServer(t *testing.T, reply func(prompt string) string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req completionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		json.NewEncoder(w).Encode(completionResponse{Text: reply(req.Prompt)})
	}))
}

func TestParseMatchedIndices(t *testing.T) {
	t.Run("comma-separated numbers", func(t *testing.T) {
		matched := parseMatchedIndices("1,3,5", 5)
		assert.Equal(t, map[int]bool{0: true, 2: true, 4: true}, matched)
	})

	t.Run("numbers embedded in prose", func(t *testing.T) {
		matched := parseMatchedIndices("Good matches are 2 and 3.", 3)
		assert.Equal(t, map[int]bool{1: true, 2: true}, matched)
	})

	t.Run("none yields empty set", func(t *testing.T) {
		assert.Empty(t, parseMatchedIndices("none", 3))
		assert.Empty(t, parseMatchedIndices("  NONE \n", 3))
	})

	t.Run("garbage yields empty set", func(t *testing.T) {
		assert.Empty(t, parseMatchedIndices("I cannot help with that.", 3))
	})

	t.Run("out-of-range numbers are dropped", func(t *testing.T) {
		matched := parseMatchedIndices("0, 2, 99", 3)
		assert.Equal(t, map[int]bool{1: true}, matched)
	})
}

func TestBuildMatchPrompt(t *testing.T) {
	prompt := buildMatchPrompt([]string{"Environment", "Education"}, matcherOpps())

	assert.Contains(t, prompt, "Environment, Education")
	assert.Contains(t, prompt, "1. Tree Planting - Environment - Plant trees in the park")
	assert.Contains(t, prompt, "3. Dog Walking - Animal Welfare - Walk shelter dogs")
	assert.Contains(t, prompt, `respond with: "none"`)

	t.Run("long descriptions are truncated", func(t *testing.T) {
		opps := []model.Opportunity{{
			Title:       "Verbose",
			Category:    "Education",
			Description: strings.Repeat("x", 300),
		}}
		prompt := buildMatchPrompt([]string{"Education"}, opps)
		assert.Contains(t, prompt, "1. Verbose - Education - "+strings.Repeat("x", 100)+"\n")
		assert.NotContains(t, prompt, strings.Repeat("x", 101))
	})
}

func TestMatch(t *testing.T) {
	ctx := context.Background()

	t.Run("partitions by returned indices", func(t *testing.T) {
		server := completionServer(t, func(prompt string) string {
			assert.Contains(t, prompt, "Tree Planting")
			return "1,3"
		})
		defer server.Close()

		svc := NewMatcherService(server.URL, 5*time.Second)
		result := svc.Match(ctx, []string{"Environment"}, matcherOpps())

		require.Len(t, result.Preferred, 2)
		assert.Equal(t, "o1", result.Preferred[0].ID)
		assert.Equal(t, "o3", result.Preferred[1].ID)
		require.Len(t, result.Other, 1)
		assert.Equal(t, "o2", result.Other[0].ID)
	})

	t.Run("no interests skips the call", func(t *testing.T) {
		called := false
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
		}))
		defer server.Close()

		svc := NewMatcherService(server.URL, 5*time.Second)
		result := svc.Match(ctx, nil, matcherOpps())

		assert.False(t, called)
		assert.Empty(t, result.Preferred)
		assert.Len(t, result.Other, 3)
	})

	t.Run("no endpoint configured skips the call", func(t *testing.T) {
		svc := NewMatcherService("", 5*time.Second)
		result := svc.Match(ctx, []string{"Environment"}, matcherOpps())
		assert.Empty(t, result.Preferred)
		assert.Len(t, result.Other, 3)
	})

	t.Run("none response puts everything in other", func(t *testing.T) {
		server := completionServer(t, func(string) string { return "none" })
		defer server.Close()

		svc := NewMatcherService(server.URL, 5*time.Second)
		result := svc.Match(ctx, []string{"Environment"}, matcherOpps())
		assert.Empty(t, result.Preferred)
		assert.Len(t, result.Other, 3)
	})

	t.Run("server error falls back to other", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		svc := NewMatcherService(server.URL, 5*time.Second)
		result := svc.Match(ctx, []string{"Environment"}, matcherOpps())
		assert.Empty(t, result.Preferred)
		assert.Len(t, result.Other, 3)
	})

	t.Run("unreachable endpoint falls back to other", func(t *testing.T) {
		svc := NewMatcherService("http://127.0.0.1:1", 500*time.Millisecond)
		result := svc.Match(ctx, []string{"Environment"}, matcherOpps())
		assert.Empty(t, result.Preferred)
		assert.Len(t, result.Other, 3)
	})

	t.Run("plain text body is accepted", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("2"))
		}))
		defer server.Close()

		svc := NewMatcherService(server.URL, 5*time.Second)
		result := svc.Match(ctx, []string{"Education"}, matcherOpps())
		require.Len(t, result.Preferred, 1)
		assert.Equal(t, "o2", result.Preferred[0].ID)
	})
}
