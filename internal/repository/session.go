package repository

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/voltra-app/voltra-go/internal/model"
	"github.com/voltra-app/voltra-go/internal/storage"
)

// SessionRepository persists the single active session's profile, separate
// from the account directory.
type SessionRepository interface {
	Load(ctx context.Context) (*model.User, error)
	Save(ctx context.Context, user *model.User) error
	Remove(ctx context.Context) error
}

type sessionRepo struct {
	store storage.Store
}

func NewSessionRepository(store storage.Store) SessionRepository {
	return &sessionRepo{store: store}
}

func (r *sessionRepo) Load(ctx context.Context) (*model.User, error) {
	data, err := r.store.Get(ctx, storage.KeyUser)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var user model.User
	if err := json.Unmarshal(data, &user); err != nil {
		log.Error().Err(err).Msg("failed to decode session blob, treating as logged out")
		return nil, nil
	}
	return &user, nil
}

func (r *sessionRepo) Save(ctx context.Context, user *model.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, storage.KeyUser, data)
}

func (r *sessionRepo) Remove(ctx context.Context) error {
	return r.store.Delete(ctx, storage.KeyUser)
}
