package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/voltra-app/voltra-go/internal/model"
)

const matcherSnippetLen = 100

var digitsRegex = regexp.MustCompile(`\d+`)

// MatchResult partitions the opportunity list into interest-matched entries
// and everything else.
type MatchResult struct {
	Preferred []model.Opportunity `json:"preferred"`
	Other     []model.Opportunity `json:"other"`
}

// MatcherService asks an external text-completion endpoint which
// opportunities fit a user's interests. Every failure mode, from a refused
// connection to an unparseable reply, degrades to "nothing preferred".
type MatcherService struct {
	client   *http.Client
	url      string
	matching atomic.Bool
}

func NewMatcherService(url string, timeout time.Duration) *MatcherService {
	return &MatcherService{
		client: &http.Client{
			Timeout: timeout,
		},
		url: url,
	}
}

// Enabled reports whether a completion endpoint is configured.
func (s *MatcherService) Enabled() bool {
	return s.url != ""
}

// Matching reports whether a classification call is in flight.
func (s *MatcherService) Matching() bool {
	return s.matching.Load()
}

// Match partitions opps by the user's interests. With no interests (or no
// endpoint configured) everything lands in Other without a call being made.
func (s *MatcherService) Match(ctx context.Context, interests []string, opps []model.Opportunity) MatchResult {
	if len(interests) == 0 || len(opps) == 0 || !s.Enabled() {
		return MatchResult{Preferred: []model.Opportunity{}, Other: opps}
	}

	s.matching.Store(true)
	defer s.matching.Store(false)

	response, err := s.complete(ctx, buildMatchPrompt(interests, opps))
	if err != nil {
		log.Error().Err(err).Msg("failed to match opportunities")
		return MatchResult{Preferred: []model.Opportunity{}, Other: opps}
	}

	matched := parseMatchedIndices(response, len(opps))

	result := MatchResult{Preferred: []model.Opportunity{}, Other: []model.Opportunity{}}
	for i, opp := range opps {
		if matched[i] {
			result.Preferred = append(result.Preferred, opp)
		} else {
			result.Other = append(result.Other, opp)
		}
	}

	log.Info().
		Int("preferred", len(result.Preferred)).
		Int("other", len(result.Other)).
		Msg("opportunities matched against interests")
	return result
}

// buildMatchPrompt enumerates opportunities 1-indexed as
// "N. title - category - description snippet" under the user's interests.
func buildMatchPrompt(interests []string, opps []model.Opportunity) string {
	var b strings.Builder

	b.WriteString("You are a volunteer opportunity matching assistant. Given a user's interests and a list of volunteer opportunities, determine which opportunities are a good match for the user.\n\n")
	b.WriteString("User's volunteer interests:\n")
	b.WriteString(strings.Join(interests, ", "))
	b.WriteString("\n\nVolunteer opportunities:\n")

	for i, opp := range opps {
		snippet := opp.Description
		if len(snippet) > matcherSnippetLen {
			snippet = snippet[:matcherSnippetLen]
		}
		fmt.Fprintf(&b, "%d. %s - %s - %s\n", i+1, opp.Title, opp.Category, snippet)
	}

	b.WriteString("\nFor each opportunity, determine if it's a GOOD MATCH for the user's interests. Be flexible - opportunities should match if they are similar or related to the user's interests, not just exact matches.\n\n")
	b.WriteString("Respond with ONLY the numbers of opportunities that are good matches, separated by commas. For example: \"1,3,5\"\n\n")
	b.WriteString("If no opportunities match, respond with: \"none\"")

	return b.String()
}

// parseMatchedIndices extracts 1-indexed numbers from the freeform response
// and converts them to zero-based indices. Out-of-range numbers are dropped;
// the literal "none" (and any reply without digits) yields an empty set.
func parseMatchedIndices(response string, n int) map[int]bool {
	matched := make(map[int]bool)

	if strings.ToLower(strings.TrimSpace(response)) == "none" {
		return matched
	}

	for _, token := range digitsRegex.FindAllString(response, -1) {
		num, err := strconv.Atoi(token)
		if err != nil {
			continue
		}
		idx := num - 1
		if idx >= 0 && idx < n {
			matched[idx] = true
		}
	}
	return matched
}

type completionRequest struct {
	Prompt string `json:"prompt"`
}

type completionResponse struct {
	Text string `json:"text"`
}

// complete posts the prompt to the completion endpoint and returns its text.
// The response body is taken verbatim when it is not the expected JSON shape.
func (s *MatcherService) complete(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(completionRequest{Prompt: prompt})
	if err != nil {
		return "", fmt.Errorf("marshal prompt: %w", err)
	}

	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	elapsed := time.Since(start)

	if err != nil {
		log.Error().Err(err).Dur("elapsed", elapsed).Msg("matcher request error")
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Error().Int("status", resp.StatusCode).Dur("elapsed", elapsed).Msg("matcher request failed")
		return "", fmt.Errorf("completion failed with status %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read completion response: %w", err)
	}

	var parsed completionResponse
	if err := json.Unmarshal(raw, &parsed); err == nil && parsed.Text != "" {
		return parsed.Text, nil
	}
	return string(raw), nil
}
