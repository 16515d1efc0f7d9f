package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	apperrors "github.com/voltra-app/voltra-go/internal/errors"
	"github.com/voltra-app/voltra-go/internal/model"
	"github.com/voltra-app/voltra-go/internal/repository"
)

// OrganizationService holds the organization list in memory and flushes the
// whole list to storage after every mutation. Mutations are serialized behind
// one mutex, so two overlapping edits cannot both start from stale state.
//
// Update and delete operations on ids that no longer exist are silent no-ops:
// the store's contract is "make it so", not "fail if already gone".
type OrganizationService struct {
	repo repository.OrganizationRepository

	mu   sync.RWMutex
	orgs []model.Organization
}

func NewOrganizationService(repo repository.OrganizationRepository) *OrganizationService {
	return &OrganizationService{repo: repo}
}

// Restore loads the persisted organization list at startup.
func (s *OrganizationService) Restore(ctx context.Context) error {
	orgs, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.orgs = orgs
	s.mu.Unlock()

	log.Info().Int("count", len(orgs)).Msg("organizations loaded")
	return nil
}

func (s *OrganizationService) persist(ctx context.Context, orgs []model.Organization) error {
	if err := s.repo.Save(ctx, orgs); err != nil {
		return apperrors.Storage(err)
	}
	s.orgs = orgs
	return nil
}

// Organizations returns a snapshot of the full list in insertion order.
func (s *OrganizationService) Organizations() []model.Organization {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Organization{}, s.orgs...)
}

// CreateOrganization appends a new organization with no postings and returns
// the created record.
func (s *OrganizationService) CreateOrganization(ctx context.Context, params model.CreateOrganizationParams) (*model.Organization, error) {
	if params.Name == "" {
		return nil, apperrors.MissingRequired("name")
	}
	if params.OwnerID == "" {
		return nil, apperrors.MissingRequired("ownerId")
	}

	org := model.Organization{
		ID:          uuid.NewString(),
		Name:        params.Name,
		Logo:        params.Logo,
		Description: params.Description,
		OwnerID:     params.OwnerID,
		CreatedDate: time.Now().UTC(),
		Postings:    []model.OrganizationPosting{},
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.persist(ctx, append(append([]model.Organization{}, s.orgs...), org)); err != nil {
		return nil, err
	}

	log.Info().Str("orgId", org.ID).Str("name", org.Name).Str("ownerId", org.OwnerID).Msg("organization created")
	return &org, nil
}

// UpdateOrganization merges fields into the matching organization.
func (s *OrganizationService) UpdateOrganization(ctx context.Context, orgID string, params model.UpdateOrganizationParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := append([]model.Organization{}, s.orgs...)
	found := false
	for i := range updated {
		if updated[i].ID != orgID {
			continue
		}
		found = true
		if params.Name != nil {
			updated[i].Name = *params.Name
		}
		if params.Logo != nil {
			updated[i].Logo = *params.Logo
		}
		if params.Description != nil {
			updated[i].Description = *params.Description
		}
	}
	if !found {
		log.Warn().Str("orgId", orgID).Msg("update for unknown organization ignored")
		return nil
	}

	if err := s.persist(ctx, updated); err != nil {
		return err
	}
	log.Info().Str("orgId", orgID).Msg("organization updated")
	return nil
}

// DeleteOrganization removes the organization; its nested postings go with it.
func (s *OrganizationService) DeleteOrganization(ctx context.Context, orgID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := make([]model.Organization, 0, len(s.orgs))
	for _, org := range s.orgs {
		if org.ID != orgID {
			updated = append(updated, org)
		}
	}
	if len(updated) == len(s.orgs) {
		log.Warn().Str("orgId", orgID).Msg("delete for unknown organization ignored")
		return nil
	}

	if err := s.persist(ctx, updated); err != nil {
		return err
	}
	log.Info().Str("orgId", orgID).Msg("organization deleted")
	return nil
}

// AddPosting appends a posting to the matching organization. Returns nil
// without error when the organization does not exist.
func (s *OrganizationService) AddPosting(ctx context.Context, orgID string, params model.CreatePostingParams) (*model.OrganizationPosting, error) {
	if params.Title == "" {
		return nil, apperrors.MissingRequired("title")
	}
	if params.Type != "" && !params.Type.Valid() {
		return nil, apperrors.InvalidInput("type", "must be online or in-person")
	}

	posting := model.OrganizationPosting{
		ID:             uuid.NewString(),
		OrganizationID: orgID,
		Title:          params.Title,
		Description:    params.Description,
		Location:       params.Location,
		Type:           params.Type,
		Category:       params.Category,
		Duration:       params.Duration,
		Dates:          params.Dates,
		StartTime:      params.StartTime,
		Website:        params.Website,
		Images:         params.Images,
		OrganizerName:  params.OrganizerName,
		CompanyName:    params.CompanyName,
		PostedDate:     time.Now().UTC(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	updated := append([]model.Organization{}, s.orgs...)
	found := false
	for i := range updated {
		if updated[i].ID != orgID {
			continue
		}
		found = true
		updated[i].Postings = append(append([]model.OrganizationPosting{}, updated[i].Postings...), posting)
	}
	if !found {
		log.Warn().Str("orgId", orgID).Msg("posting for unknown organization ignored")
		return nil, nil
	}

	if err := s.persist(ctx, updated); err != nil {
		return nil, err
	}
	log.Info().Str("orgId", orgID).Str("postingId", posting.ID).Str("title", posting.Title).Msg("posting added")
	return &posting, nil
}

// UpdatePosting merges fields into the matching posting, scoped to the given
// organization.
func (s *OrganizationService) UpdatePosting(ctx context.Context, orgID, postingID string, params model.UpdatePostingParams) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := append([]model.Organization{}, s.orgs...)
	found := false
	for i := range updated {
		if updated[i].ID != orgID {
			continue
		}
		postings := append([]model.OrganizationPosting{}, updated[i].Postings...)
		for j := range postings {
			if postings[j].ID != postingID {
				continue
			}
			found = true
			applyPostingUpdate(&postings[j], params)
		}
		updated[i].Postings = postings
	}
	if !found {
		log.Warn().Str("orgId", orgID).Str("postingId", postingID).Msg("update for unknown posting ignored")
		return nil
	}

	if err := s.persist(ctx, updated); err != nil {
		return err
	}
	log.Info().Str("postingId", postingID).Msg("posting updated")
	return nil
}

func applyPostingUpdate(posting *model.OrganizationPosting, params model.UpdatePostingParams) {
	if params.Title != nil {
		posting.Title = *params.Title
	}
	if params.Description != nil {
		posting.Description = *params.Description
	}
	if params.Location != nil {
		posting.Location = *params.Location
	}
	if params.Type != nil {
		posting.Type = *params.Type
	}
	if params.Category != nil {
		posting.Category = *params.Category
	}
	if params.Duration != nil {
		posting.Duration = *params.Duration
	}
	if params.Dates != nil {
		posting.Dates = *params.Dates
	}
	if params.StartTime != nil {
		posting.StartTime = *params.StartTime
	}
	if params.Website != nil {
		posting.Website = *params.Website
	}
	if params.Images != nil {
		posting.Images = *params.Images
	}
	if params.OrganizerName != nil {
		posting.OrganizerName = *params.OrganizerName
	}
	if params.CompanyName != nil {
		posting.CompanyName = *params.CompanyName
	}
}

// DeletePosting removes the matching posting, scoped to the given
// organization.
func (s *OrganizationService) DeletePosting(ctx context.Context, orgID, postingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated := append([]model.Organization{}, s.orgs...)
	found := false
	for i := range updated {
		if updated[i].ID != orgID {
			continue
		}
		postings := make([]model.OrganizationPosting, 0, len(updated[i].Postings))
		for _, p := range updated[i].Postings {
			if p.ID == postingID {
				found = true
				continue
			}
			postings = append(postings, p)
		}
		updated[i].Postings = postings
	}
	if !found {
		log.Warn().Str("orgId", orgID).Str("postingId", postingID).Msg("delete for unknown posting ignored")
		return nil
	}

	if err := s.persist(ctx, updated); err != nil {
		return err
	}
	log.Info().Str("postingId", postingID).Msg("posting deleted")
	return nil
}

// GetUserOrganizations returns every organization owned by the given account
// email, in store order.
func (s *OrganizationService) GetUserOrganizations(ownerID string) []model.Organization {
	s.mu.RLock()
	defer s.mu.RUnlock()

	owned := []model.Organization{}
	for _, org := range s.orgs {
		if org.OwnerID == ownerID {
			owned = append(owned, org)
		}
	}
	return owned
}

// GetAllPostings flattens every organization's postings, each annotated with
// a snapshot of its parent, sorted newest first.
func (s *OrganizationService) GetAllPostings() []model.PostingWithOrganization {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := []model.PostingWithOrganization{}
	for _, org := range s.orgs {
		for _, posting := range org.Postings {
			all = append(all, model.PostingWithOrganization{
				OrganizationPosting: posting,
				Organization:        org,
			})
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		return all[i].PostedDate.After(all[j].PostedDate)
	})
	return all
}

// ClearAllData wipes the persisted blob and in-memory state.
func (s *OrganizationService) ClearAllData(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.Clear(ctx); err != nil {
		return apperrors.Storage(err)
	}
	s.orgs = nil

	log.Info().Msg("all organizations and postings cleared")
	return nil
}
