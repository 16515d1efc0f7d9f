package service

import (
	"sort"
	"strings"
	"time"

	"github.com/voltra-app/voltra-go/internal/config"
	"github.com/voltra-app/voltra-go/internal/model"
)

// defaultOrganizationLogo is shown for organizations that never set one.
const defaultOrganizationLogo = "https://images.unsplash.com/photo-1560179707-f14e90ef3623?w=200"

// Relevance weights for keyword search. Whole-query substring hits score the
// field weight; individual query tokens longer than two characters add the
// token weights on top.
const (
	scoreTitle       = 10
	scoreOrg         = 7
	scoreCategory    = 5
	scoreLocation    = 3
	scoreType        = 2
	scoreDescription = 4

	tokenScoreTitle       = 3
	tokenScoreDescription = 1
	tokenScoreOrg         = 2
)

// OpportunityService is a derived, recomputed-on-read view over the
// organization store plus the built-in sample list. It persists nothing.
type OpportunityService struct {
	orgs    *OrganizationService
	samples []model.Opportunity
}

func NewOpportunityService(orgs *OrganizationService) *OpportunityService {
	return &OpportunityService{
		orgs:    orgs,
		samples: sampleOpportunities,
	}
}

// All merges organization postings (mapped into the opportunity shape) with
// the sample list. Organization-derived entries come first; their applicant
// count is always zero and they are never marked verified.
func (s *OpportunityService) All() []model.Opportunity {
	postings := s.orgs.GetAllPostings()

	all := make([]model.Opportunity, 0, len(postings)+len(s.samples))
	for _, p := range postings {
		logo := p.Organization.Logo
		if logo == "" {
			logo = defaultOrganizationLogo
		}

		var image string
		if len(p.Images) > 0 {
			image = p.Images[0]
		}

		all = append(all, model.Opportunity{
			ID:    p.ID,
			Title: p.Title,
			Organization: model.OrganizationRef{
				ID:       p.Organization.ID,
				Name:     p.Organization.Name,
				Logo:     logo,
				Verified: false,
			},
			Location:      p.Location,
			Type:          string(p.Type),
			Duration:      p.Duration,
			Category:      p.Category,
			Description:   p.Description,
			Requirements:  []string{},
			PostedDate:    p.PostedDate,
			Image:         image,
			Applicants:    0,
			Dates:         p.Dates,
			StartTime:     p.StartTime,
			Website:       p.Website,
			OrganizerName: p.OrganizerName,
			CompanyName:   p.CompanyName,
			OwnerID:       p.Organization.OwnerID,
		})
	}

	return append(all, s.samples...)
}

// Filter applies the category filter and, when the query is non-blank, ranks
// by relevance score, dropping opportunities that match nothing. An empty
// query filters by category only.
func (s *OpportunityService) Filter(category, query string) []model.Opportunity {
	filtered := []model.Opportunity{}
	for _, opp := range s.All() {
		if category != "" && category != "All" && opp.Category != category {
			continue
		}
		filtered = append(filtered, opp)
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return filtered
	}

	type scored struct {
		opp   model.Opportunity
		score int
	}
	ranked := []scored{}
	for _, opp := range filtered {
		if sc := relevanceScore(opp, query); sc > 0 {
			ranked = append(ranked, scored{opp: opp, score: sc})
		}
	}

	// Stable sort: ties keep their pre-sort relative order.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	result := make([]model.Opportunity, len(ranked))
	for i, item := range ranked {
		result[i] = item.opp
	}
	return result
}

func relevanceScore(opp model.Opportunity, query string) int {
	q := strings.ToLower(query)

	title := strings.ToLower(opp.Title)
	org := strings.ToLower(opp.Organization.Name)
	category := strings.ToLower(opp.Category)
	location := strings.ToLower(opp.Location)
	typ := strings.ToLower(opp.Type)
	description := strings.ToLower(opp.Description)

	score := 0
	if strings.Contains(title, q) {
		score += scoreTitle
	}
	if strings.Contains(org, q) {
		score += scoreOrg
	}
	if strings.Contains(category, q) {
		score += scoreCategory
	}
	if strings.Contains(location, q) {
		score += scoreLocation
	}
	if strings.Contains(typ, q) {
		score += scoreType
	}
	if strings.Contains(description, q) {
		score += scoreDescription
	}

	for _, word := range strings.Fields(q) {
		if len(word) <= 2 {
			continue
		}
		if strings.Contains(title, word) {
			score += tokenScoreTitle
		}
		if strings.Contains(description, word) {
			score += tokenScoreDescription
		}
		if strings.Contains(org, word) {
			score += tokenScoreOrg
		}
	}

	return score
}

// NewSince keeps opportunities posted within the last 24 hours.
func NewSince(opps []model.Opportunity, now time.Time) []model.Opportunity {
	cutoff := now.Add(-config.NewPostingWindow)

	recent := []model.Opportunity{}
	for _, opp := range opps {
		if opp.PostedDate.After(cutoff) {
			recent = append(recent, opp)
		}
	}
	return recent
}

// OwnedBy keeps organization-derived opportunities whose parent organization
// belongs to the given account email.
func OwnedBy(opps []model.Opportunity, email string) []model.Opportunity {
	if email == "" {
		return []model.Opportunity{}
	}

	owned := []model.Opportunity{}
	for _, opp := range opps {
		if opp.OwnerID == email {
			owned = append(owned, opp)
		}
	}
	return owned
}
