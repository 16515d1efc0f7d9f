package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltra-app/voltra-go/internal/model"
	"github.com/voltra-app/voltra-go/internal/repository"
	"github.com/voltra-app/voltra-go/internal/storage"
)

func newOrgFixture(t *testing.T) (*OrganizationService, storage.Store) {
	t.Helper()
	store := storage.NewMemoryStore()
	svc := NewOrganizationService(repository.NewOrganizationRepository(store))
	require.NoError(t, svc.Restore(context.Background()))
	return svc, store
}

func TestCreateOrganization(t *testing.T) {
	ctx := context.Background()
	svc, _ := newOrgFixture(t)

	t.Run("returns the created record with empty postings", func(t *testing.T) {
		org, err := svc.CreateOrganization(ctx, model.CreateOrganizationParams{
			Name:        "Helpers Inc",
			Description: "We help",
			OwnerID:     "a@b.com",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, org.ID)
		assert.Equal(t, "Helpers Inc", org.Name)
		assert.Empty(t, org.Postings)
		assert.False(t, org.CreatedDate.IsZero())
	})

	t.Run("generates distinct ids under rapid creation", func(t *testing.T) {
		seen := map[string]bool{}
		for i := 0; i < 50; i++ {
			org, err := svc.CreateOrganization(ctx, model.CreateOrganizationParams{
				Name: "Org", OwnerID: "a@b.com",
			})
			require.NoError(t, err)
			assert.False(t, seen[org.ID], "duplicate organization id: %s", org.ID)
			seen[org.ID] = true
		}
	})

	t.Run("requires a name and an owner", func(t *testing.T) {
		_, err := svc.CreateOrganization(ctx, model.CreateOrganizationParams{OwnerID: "a@b.com"})
		assert.Error(t, err)
		_, err = svc.CreateOrganization(ctx, model.CreateOrganizationParams{Name: "Org"})
		assert.Error(t, err)
	})
}

func TestUpdateOrganization(t *testing.T) {
	ctx := context.Background()
	svc, _ := newOrgFixture(t)

	org, err := svc.CreateOrganization(ctx, model.CreateOrganizationParams{
		Name: "Before", Description: "old", OwnerID: "a@b.com",
	})
	require.NoError(t, err)

	t.Run("merges partial fields", func(t *testing.T) {
		name := "After"
		require.NoError(t, svc.UpdateOrganization(ctx, org.ID, model.UpdateOrganizationParams{Name: &name}))

		orgs := svc.GetUserOrganizations("a@b.com")
		require.Len(t, orgs, 1)
		assert.Equal(t, "After", orgs[0].Name)
		assert.Equal(t, "old", orgs[0].Description)
	})

	t.Run("unknown id is a silent no-op", func(t *testing.T) {
		name := "Nobody"
		require.NoError(t, svc.UpdateOrganization(ctx, "missing", model.UpdateOrganizationParams{Name: &name}))
	})
}

func TestDeleteOrganizationCascades(t *testing.T) {
	ctx := context.Background()
	svc, _ := newOrgFixture(t)

	org, err := svc.CreateOrganization(ctx, model.CreateOrganizationParams{
		Name: "Helpers Inc", OwnerID: "a@b.com",
	})
	require.NoError(t, err)
	_, err = svc.AddPosting(ctx, org.ID, model.CreatePostingParams{Title: "Park Cleanup"})
	require.NoError(t, err)
	_, err = svc.AddPosting(ctx, org.ID, model.CreatePostingParams{Title: "River Cleanup"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteOrganization(ctx, org.ID))

	for _, p := range svc.GetAllPostings() {
		assert.NotEqual(t, org.ID, p.OrganizationID)
	}
	assert.Empty(t, svc.GetAllPostings())
}

func TestPostings(t *testing.T) {
	ctx := context.Background()

	t.Run("add posting stamps id and posted date", func(t *testing.T) {
		svc, _ := newOrgFixture(t)
		org, err := svc.CreateOrganization(ctx, model.CreateOrganizationParams{Name: "Org", OwnerID: "a@b.com"})
		require.NoError(t, err)

		posting, err := svc.AddPosting(ctx, org.ID, model.CreatePostingParams{
			Title:    "Park Cleanup",
			Category: "Environment",
			Type:     model.PostingTypeInPerson,
		})
		require.NoError(t, err)
		require.NotNil(t, posting)
		assert.NotEmpty(t, posting.ID)
		assert.Equal(t, org.ID, posting.OrganizationID)
		assert.False(t, posting.PostedDate.IsZero())
	})

	t.Run("add posting to unknown organization is a silent no-op", func(t *testing.T) {
		svc, _ := newOrgFixture(t)

		posting, err := svc.AddPosting(ctx, "missing", model.CreatePostingParams{Title: "Orphan"})
		require.NoError(t, err)
		assert.Nil(t, posting)
		assert.Empty(t, svc.GetAllPostings())
	})

	t.Run("update posting is scoped to its organization", func(t *testing.T) {
		svc, _ := newOrgFixture(t)
		org, err := svc.CreateOrganization(ctx, model.CreateOrganizationParams{Name: "Org", OwnerID: "a@b.com"})
		require.NoError(t, err)
		other, err := svc.CreateOrganization(ctx, model.CreateOrganizationParams{Name: "Other", OwnerID: "a@b.com"})
		require.NoError(t, err)
		posting, err := svc.AddPosting(ctx, org.ID, model.CreatePostingParams{Title: "Before"})
		require.NoError(t, err)

		title := "After"
		// Wrong parent: nothing changes.
		require.NoError(t, svc.UpdatePosting(ctx, other.ID, posting.ID, model.UpdatePostingParams{Title: &title}))
		assert.Equal(t, "Before", svc.GetAllPostings()[0].Title)

		require.NoError(t, svc.UpdatePosting(ctx, org.ID, posting.ID, model.UpdatePostingParams{Title: &title}))
		assert.Equal(t, "After", svc.GetAllPostings()[0].Title)
	})

	t.Run("delete posting removes only the target", func(t *testing.T) {
		svc, _ := newOrgFixture(t)
		org, err := svc.CreateOrganization(ctx, model.CreateOrganizationParams{Name: "Org", OwnerID: "a@b.com"})
		require.NoError(t, err)
		keep, err := svc.AddPosting(ctx, org.ID, model.CreatePostingParams{Title: "Keep"})
		require.NoError(t, err)
		drop, err := svc.AddPosting(ctx, org.ID, model.CreatePostingParams{Title: "Drop"})
		require.NoError(t, err)

		require.NoError(t, svc.DeletePosting(ctx, org.ID, drop.ID))

		all := svc.GetAllPostings()
		require.Len(t, all, 1)
		assert.Equal(t, keep.ID, all[0].ID)
	})
}

func TestGetUserOrganizations(t *testing.T) {
	ctx := context.Background()
	svc, _ := newOrgFixture(t)

	first, err := svc.CreateOrganization(ctx, model.CreateOrganizationParams{Name: "First", OwnerID: "a@b.com"})
	require.NoError(t, err)
	_, err = svc.CreateOrganization(ctx, model.CreateOrganizationParams{Name: "Theirs", OwnerID: "c@d.com"})
	require.NoError(t, err)
	second, err := svc.CreateOrganization(ctx, model.CreateOrganizationParams{Name: "Second", OwnerID: "a@b.com"})
	require.NoError(t, err)

	owned := svc.GetUserOrganizations("a@b.com")
	require.Len(t, owned, 2)
	assert.Equal(t, first.ID, owned[0].ID, "insertion order preserved")
	assert.Equal(t, second.ID, owned[1].ID)
}

func TestGetAllPostingsSortedNewestFirst(t *testing.T) {
	ctx := context.Background()
	svc, store := newOrgFixture(t)

	// Two organizations with postings dated January and June; the June
	// posting must come first regardless of insertion order.
	orgs := []model.Organization{
		{
			ID: "org-1", Name: "January Org", OwnerID: "a@b.com",
			Postings: []model.OrganizationPosting{{
				ID: "p-jan", OrganizationID: "org-1", Title: "January drive",
				PostedDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			}},
		},
		{
			ID: "org-2", Name: "June Org", OwnerID: "c@d.com",
			Postings: []model.OrganizationPosting{{
				ID: "p-jun", OrganizationID: "org-2", Title: "June drive",
				PostedDate: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
			}},
		},
	}
	require.NoError(t, repository.NewOrganizationRepository(store).Save(ctx, orgs))
	require.NoError(t, svc.Restore(ctx))

	all := svc.GetAllPostings()
	require.Len(t, all, 2)
	assert.Equal(t, "p-jun", all[0].ID)
	assert.Equal(t, "p-jan", all[1].ID)
	assert.Equal(t, "June Org", all[0].Organization.Name)
}

func TestOrganizationEndToEnd(t *testing.T) {
	ctx := context.Background()
	svc, _ := newOrgFixture(t)

	org, err := svc.CreateOrganization(ctx, model.CreateOrganizationParams{
		Name:        "Helpers Inc",
		Description: "We help",
		OwnerID:     "a@b.com",
	})
	require.NoError(t, err)

	_, err = svc.AddPosting(ctx, org.ID, model.CreatePostingParams{
		Title:    "Park Cleanup",
		Category: "Environment",
		Type:     model.PostingTypeInPerson,
		Location: "Riverside Park",
	})
	require.NoError(t, err)

	all := svc.GetAllPostings()
	require.Len(t, all, 1)
	assert.Equal(t, "Park Cleanup", all[0].Title)
	assert.Equal(t, "Helpers Inc", all[0].Organization.Name)
}

func TestClearAllData(t *testing.T) {
	ctx := context.Background()
	svc, store := newOrgFixture(t)

	_, err := svc.CreateOrganization(ctx, model.CreateOrganizationParams{Name: "Org", OwnerID: "a@b.com"})
	require.NoError(t, err)

	require.NoError(t, svc.ClearAllData(ctx))
	assert.Empty(t, svc.Organizations())

	blob, err := store.Get(ctx, storage.KeyOrganizations)
	require.NoError(t, err)
	assert.Nil(t, blob)
}
