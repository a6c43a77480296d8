package store

import (
	"context"
	"strings"

	"admin-dash/data"

	"gorm.io/gorm"
)

// SiteRepository adds forest queries on top of the flat site table.
type SiteRepository struct {
	*Repository[data.Site]
}

func NewSiteRepository(s *Store, searchParam string) *SiteRepository {
	return &SiteRepository{
		Repository: NewRepository[data.Site](s, searchParam, "name", "code"),
	}
}

// GetDataTree paginates root sites. With a search term, a site is kept when it
// or one of its descendants matches.
func (r *SiteRepository) GetDataTree(ctx context.Context, params data.ListParams) (data.ListResponse[data.Site], error) {
	page, pageSize := params.Page(), params.PageSize()

	var sites []data.Site
	if err := r.db.WithContext(ctx).Order("created_at asc, id asc").Find(&sites).Error; err != nil {
		return data.ListResponse[data.Site]{}, mapError(err)
	}

	children := map[string][]data.Site{}
	var roots []data.Site
	for _, s := range sites {
		if s.IsRoot() {
			roots = append(roots, s)
			continue
		}
		children[*s.ParentId] = append(children[*s.ParentId], s)
	}

	term := strings.ToLower(strings.TrimSpace(params.String(r.searchParam)))
	visited := map[string]bool{}
	var build func(s data.Site) (data.Site, bool)
	build = func(s data.Site) (data.Site, bool) {
		if visited[s.Id] {
			return s, false
		}
		visited[s.Id] = true

		matched := term == "" ||
			strings.Contains(strings.ToLower(s.Name), term) ||
			strings.Contains(strings.ToLower(s.Code), term)

		s.Children = nil
		for _, c := range children[s.Id] {
			if child, ok := build(c); ok {
				s.Children = append(s.Children, child)
				matched = true
			}
		}
		return s, matched
	}

	forest := []data.Site{}
	for _, root := range roots {
		if node, ok := build(root); ok {
			forest = append(forest, node)
		}
	}

	start := (page - 1) * pageSize
	end := min(start+pageSize, len(forest))
	pageData := []data.Site{}
	if start < len(forest) {
		pageData = forest[start:end]
	}

	return data.ListResponse[data.Site]{
		Data:       pageData,
		Pagination: data.NewPaginationInfo(len(forest), page, pageSize),
	}, nil
}

// Delete removes the site and its whole subtree.
func (r *SiteRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := []string{id}
		for frontier := []string{id}; len(frontier) > 0; {
			var next []string
			if err := tx.Model(&data.Site{}).Where("parent_id IN ?", frontier).Pluck("id", &next).Error; err != nil {
				return mapError(err)
			}
			ids = append(ids, next...)
			frontier = next
		}

		result := tx.Where("id IN ?", ids).Delete(&data.Site{})
		if result.Error != nil {
			return mapError(result.Error)
		}
		if result.RowsAffected == 0 {
			return data.ErrNotFound
		}
		return nil
	})
}
