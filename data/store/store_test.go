package store

import (
	"context"
	"testing"

	"admin-dash/data"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestRepository_CRUD(t *testing.T) {
	s := setupTestStore(t)
	repo := NewRepository[data.Vendor](s, "search", "name", "email")
	ctx := context.Background()

	created, err := repo.Create(ctx, data.Payload{"name": "Acme", "email": "hi@acme.example"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.Id)
	assert.False(t, created.CreatedAt.IsZero())

	updated, err := repo.Update(ctx, created.Id, data.Payload{"name": "Acme Corp", "id": "ignored"})
	require.NoError(t, err)
	assert.Equal(t, created.Id, updated.Id)
	assert.Equal(t, "Acme Corp", updated.Name)
	assert.Equal(t, "hi@acme.example", updated.Email)

	require.NoError(t, repo.Delete(ctx, created.Id))
	assert.ErrorIs(t, repo.Delete(ctx, created.Id), data.ErrNotFound)

	_, err = repo.Get(ctx, created.Id)
	assert.ErrorIs(t, err, data.ErrNotFound)
}

func TestRepository_DuplicateIsConflict(t *testing.T) {
	s := setupTestStore(t)
	repo := NewRepository[data.Category](s, "search", "name")
	ctx := context.Background()

	_, err := repo.Create(ctx, data.Payload{"name": "Hardware"})
	require.NoError(t, err)

	_, err = repo.Create(ctx, data.Payload{"name": "Hardware"})
	assert.ErrorIs(t, err, data.ErrConflict)
}

func TestRepository_GetData_PaginatesAndSearches(t *testing.T) {
	s := setupTestStore(t)
	require.NoError(t, s.Seed(context.Background()))
	repo := NewRepository[data.User](s, "PageSearch", "name", "email")
	ctx := context.Background()

	res, err := repo.GetData(ctx, data.NewListParams(2, 10, "PageSearch", ""))
	require.NoError(t, err)
	assert.Len(t, res.Data, 10)
	assert.Equal(t, "User 11", res.Data[0].Name)
	assert.Equal(t, data.PaginationInfo{ItemsCount: 25, PageSize: 10, Page: 2, PagesCount: 3}, res.Pagination)

	res, err = repo.GetData(ctx, data.NewListParams(1, 10, "PageSearch", "user2"))
	require.NoError(t, err)
	assert.Equal(t, 6, res.Pagination.ItemsCount) // user20..user25
	assert.Len(t, res.Data, 6)

	// a term under a different key is not a search
	res, err = repo.GetData(ctx, data.NewListParams(1, 10, "search", "user2"))
	require.NoError(t, err)
	assert.Equal(t, 25, res.Pagination.ItemsCount)
}

func TestSeed_IsIdempotent(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.Seed(ctx))
	require.NoError(t, s.Seed(ctx))

	var count int64
	require.NoError(t, s.DB().Model(&data.User{}).Count(&count).Error)
	assert.Equal(t, int64(25), count)
}

func TestSiteRepository_Tree(t *testing.T) {
	s := setupTestStore(t)
	repo := NewSiteRepository(s, "search")
	ctx := context.Background()

	root, err := repo.Create(ctx, data.Payload{"name": "HQ", "parentId": nil})
	require.NoError(t, err)
	child, err := repo.Create(ctx, data.Payload{"name": "Floor 1", "parentId": root.Id})
	require.NoError(t, err)
	_, err = repo.Create(ctx, data.Payload{"name": "Room 101", "parentId": child.Id})
	require.NoError(t, err)
	_, err = repo.Create(ctx, data.Payload{"name": "Warehouse", "parentId": nil})
	require.NoError(t, err)

	res, err := repo.GetDataTree(ctx, data.NewListParams(1, 10, "search", ""))
	require.NoError(t, err)
	require.Len(t, res.Data, 2)
	assert.Equal(t, "HQ", res.Data[0].Name)
	require.Len(t, res.Data[0].Children, 1)
	require.Len(t, res.Data[0].Children[0].Children, 1)
	assert.Equal(t, "Room 101", res.Data[0].Children[0].Children[0].Name)
	assert.Equal(t, 2, res.Pagination.ItemsCount)

	// matching a leaf keeps its ancestors
	res, err = repo.GetDataTree(ctx, data.NewListParams(1, 10, "search", "room"))
	require.NoError(t, err)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "HQ", res.Data[0].Name)

	res, err = repo.GetDataTree(ctx, data.NewListParams(2, 1, "search", ""))
	require.NoError(t, err)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "Warehouse", res.Data[0].Name)
	assert.Equal(t, 2, res.Pagination.PagesCount)

	require.NoError(t, repo.Delete(ctx, root.Id))
	var count int64
	require.NoError(t, s.DB().Model(&data.Site{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
