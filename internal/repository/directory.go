package repository

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/voltra-app/voltra-go/internal/model"
	"github.com/voltra-app/voltra-go/internal/storage"
	"github.com/voltra-app/voltra-go/internal/util"
)

// DirectoryRepository holds the full list of registered accounts as one blob.
// It performs no uniqueness enforcement on Append; callers pre-check.
type DirectoryRepository interface {
	FindByEmail(ctx context.Context, email string) (*model.Account, error)
	Append(ctx context.Context, account model.Account) error
	// UpdateFields merges the given partial update into the matching account.
	// The stored email and password hash are always preserved, regardless of
	// what the caller passes. Returns nil without error when no account
	// matches.
	UpdateFields(ctx context.Context, email string, params model.UpdateAccountParams) (*model.Account, error)
	All(ctx context.Context) ([]model.Account, error)
	Clear(ctx context.Context) error
}

type directoryRepo struct {
	store storage.Store

	// mu serializes read-modify-write cycles so two overlapping mutations
	// cannot both start from the same stale blob.
	mu sync.Mutex
}

func NewDirectoryRepository(store storage.Store) DirectoryRepository {
	return &directoryRepo{store: store}
}

func (r *directoryRepo) load(ctx context.Context) ([]model.Account, error) {
	data, err := r.store.Get(ctx, storage.KeyAccounts)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}

	var accounts []model.Account
	if err := json.Unmarshal(data, &accounts); err != nil {
		// A corrupt blob is logged and treated as an empty directory rather
		// than failing every account operation.
		log.Error().Err(err).Msg("failed to decode accounts blob, falling back to empty directory")
		return nil, nil
	}
	return accounts, nil
}

func (r *directoryRepo) save(ctx context.Context, accounts []model.Account) error {
	data, err := json.Marshal(accounts)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, storage.KeyAccounts, data)
}

func (r *directoryRepo) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	accounts, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	normalized := util.NormalizeEmail(email)
	for i := range accounts {
		if util.NormalizeEmail(accounts[i].Email) == normalized {
			return &accounts[i], nil
		}
	}
	return nil, nil
}

func (r *directoryRepo) Append(ctx context.Context, account model.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	accounts, err := r.load(ctx)
	if err != nil {
		return err
	}
	return r.save(ctx, append(accounts, account))
}

func (r *directoryRepo) UpdateFields(ctx context.Context, email string, params model.UpdateAccountParams) (*model.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	accounts, err := r.load(ctx)
	if err != nil {
		return nil, err
	}

	normalized := util.NormalizeEmail(email)
	for i := range accounts {
		if util.NormalizeEmail(accounts[i].Email) != normalized {
			continue
		}

		applyAccountUpdate(&accounts[i], params)
		if err := r.save(ctx, accounts); err != nil {
			return nil, err
		}
		log.Info().Str("email", accounts[i].Email).Msg("account updated in directory")
		return &accounts[i], nil
	}
	return nil, nil
}

func applyAccountUpdate(account *model.Account, params model.UpdateAccountParams) {
	if params.FullName != nil {
		account.FullName = *params.FullName
	}
	if params.Interests != nil {
		account.Interests = *params.Interests
	}
	if params.OrganizationName != nil {
		account.OrganizationName = *params.OrganizationName
	}
	if params.ProfileImage != nil {
		account.ProfileImage = *params.ProfileImage
	}
	if params.Bio != nil {
		account.Bio = *params.Bio
	}
}

func (r *directoryRepo) All(ctx context.Context) ([]model.Account, error) {
	return r.load(ctx)
}

func (r *directoryRepo) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.store.Delete(ctx, storage.KeyAccounts)
}
