package repository

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/voltra-app/voltra-go/internal/model"
	"github.com/voltra-app/voltra-go/internal/storage"
)

// OrganizationRepository persists the full organization list, with nested
// postings, as one blob.
type OrganizationRepository interface {
	Load(ctx context.Context) ([]model.Organization, error)
	Save(ctx context.Context, orgs []model.Organization) error
	Clear(ctx context.Context) error
}

type organizationRepo struct {
	store storage.Store
}

func NewOrganizationRepository(store storage.Store) OrganizationRepository {
	return &organizationRepo{store: store}
}

func (r *organizationRepo) Load(ctx context.Context) ([]model.Organization, error) {
	data, err := r.store.Get(ctx, storage.KeyOrganizations)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var orgs []model.Organization
	if err := json.Unmarshal(data, &orgs); err != nil {
		log.Error().Err(err).Msg("failed to decode organizations blob, falling back to empty list")
		return nil, nil
	}
	return orgs, nil
}

func (r *organizationRepo) Save(ctx context.Context, orgs []model.Organization) error {
	data, err := json.Marshal(orgs)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, storage.KeyOrganizations, data)
}

func (r *organizationRepo) Clear(ctx context.Context) error {
	return r.store.Delete(ctx, storage.KeyOrganizations)
}
