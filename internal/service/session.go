package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	apperrors "github.com/voltra-app/voltra-go/internal/errors"
	"github.com/voltra-app/voltra-go/internal/model"
	"github.com/voltra-app/voltra-go/internal/repository"
)

// SessionService owns the single active session slot. Exactly one user is
// logged in at a time, process-wide; every mutation goes through this service
// and is persisted before the in-memory slot changes.
type SessionService struct {
	sessionRepo repository.SessionRepository
	directory   repository.DirectoryRepository

	mu   sync.RWMutex
	user *model.User
}

func NewSessionService(sessionRepo repository.SessionRepository, directory repository.DirectoryRepository) *SessionService {
	return &SessionService{
		sessionRepo: sessionRepo,
		directory:   directory,
	}
}

// Restore loads a previously persisted session at startup. A missing or
// unreadable record leaves the slot empty.
func (s *SessionService) Restore(ctx context.Context) error {
	user, err := s.sessionRepo.Load(ctx)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	if user != nil {
		log.Info().Str("email", user.Email).Msg("session restored")
	}
	return nil
}

// Current returns a copy of the active session user, or nil when logged out.
func (s *SessionService) Current() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	copied := *s.user
	return &copied
}

func (s *SessionService) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// Login replaces the session wholesale and persists it. The slot is only
// updated once the persisted write succeeds.
func (s *SessionService) Login(ctx context.Context, user *model.User) error {
	if err := s.sessionRepo.Save(ctx, user); err != nil {
		return apperrors.Storage(err)
	}

	s.mu.Lock()
	s.user = user
	s.mu.Unlock()

	log.Info().Str("email", user.Email).Msg("user logged in")
	return nil
}

// Logout clears the slot and removes the persisted session record.
func (s *SessionService) Logout(ctx context.Context) error {
	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()

	if err := s.sessionRepo.Remove(ctx); err != nil {
		log.Error().Err(err).Msg("failed to remove persisted session")
		return apperrors.Storage(err)
	}

	log.Info().Msg("user logged out")
	return nil
}

// UpdateUser merges partial fields into the current session, persists the
// merged result, and best-effort mirrors the same fields into the matching
// directory account. A directory failure is logged, not returned.
func (s *SessionService) UpdateUser(ctx context.Context, params model.UpdateAccountParams) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return nil, apperrors.NoSession()
	}

	previousEmail := s.user.Email
	updated := *s.user
	applyUserUpdate(&updated, params)

	if err := s.sessionRepo.Save(ctx, &updated); err != nil {
		return nil, apperrors.Storage(err)
	}
	s.user = &updated

	if _, err := s.directory.UpdateFields(ctx, previousEmail, params); err != nil {
		log.Error().Err(err).Str("email", previousEmail).Msg("failed to mirror profile update into directory")
	}

	log.Info().Str("email", updated.Email).Msg("user updated")
	copied := updated
	return &copied, nil
}

func applyUserUpdate(user *model.User, params model.UpdateAccountParams) {
	if params.FullName != nil {
		user.FullName = *params.FullName
	}
	if params.Interests != nil {
		user.Interests = *params.Interests
	}
	if params.OrganizationName != nil {
		user.OrganizationName = *params.OrganizationName
	}
	if params.ProfileImage != nil {
		user.ProfileImage = *params.ProfileImage
	}
	if params.Bio != nil {
		user.Bio = *params.Bio
	}
}

// UpdateInterests replaces the session user's interest list.
func (s *SessionService) UpdateInterests(ctx context.Context, interests []string) (*model.User, error) {
	return s.UpdateUser(ctx, model.UpdateAccountParams{Interests: &interests})
}

// AddPosting appends to the session-local volunteer posting list. These
// postings have no organization linkage.
func (s *SessionService) AddPosting(ctx context.Context, params model.CreateVolunteerPostingParams) (*model.VolunteerPosting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return nil, apperrors.NoSession()
	}

	posting := model.VolunteerPosting{
		ID:           uuid.NewString(),
		Title:        params.Title,
		Description:  params.Description,
		Location:     params.Location,
		Type:         params.Type,
		Category:     params.Category,
		Requirements: params.Requirements,
		Duration:     params.Duration,
		PostedDate:   time.Now().UTC(),
	}

	updated := *s.user
	updated.Postings = append(append([]model.VolunteerPosting{}, s.user.Postings...), posting)

	if err := s.sessionRepo.Save(ctx, &updated); err != nil {
		return nil, apperrors.Storage(err)
	}
	s.user = &updated

	log.Info().Str("postingId", posting.ID).Str("title", posting.Title).Msg("volunteer posting added")
	return &posting, nil
}

// DeletePosting removes a posting from the session-local list. An unknown id
// leaves the list unchanged.
func (s *SessionService) DeletePosting(ctx context.Context, postingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return apperrors.NoSession()
	}

	updated := *s.user
	updated.Postings = make([]model.VolunteerPosting, 0, len(s.user.Postings))
	for _, p := range s.user.Postings {
		if p.ID != postingID {
			updated.Postings = append(updated.Postings, p)
		}
	}

	if err := s.sessionRepo.Save(ctx, &updated); err != nil {
		return apperrors.Storage(err)
	}
	s.user = &updated

	log.Info().Str("postingId", postingID).Msg("volunteer posting deleted")
	return nil
}

// ClearAllData wipes the account directory and the persisted session. Used
// only for a full app reset.
func (s *SessionService) ClearAllData(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.directory.Clear(ctx); err != nil {
		return apperrors.Storage(err)
	}
	if err := s.sessionRepo.Remove(ctx); err != nil {
		return apperrors.Storage(err)
	}
	s.user = nil

	log.Info().Msg("all account and session data cleared")
	return nil
}
