package data

import (
	"context"
	"errors"
	"math"
	"strconv"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("already exists")
)

type Item interface {
	GetId() string
}

type TreeItem[T any] interface {
	Item
	GetChildren() []T
}

type PaginationInfo struct {
	ItemsCount int `json:"itemsCount"`
	PageSize   int `json:"pageSize"`
	Page       int `json:"page"`
	PagesCount int `json:"pagesCount"`
}

func NewPaginationInfo(itemsCount int, page int, pageSize int) PaginationInfo {
	pagesCount := 0
	if pageSize > 0 {
		pagesCount = int(math.Ceil(float64(itemsCount) / float64(pageSize)))
	}

	return PaginationInfo{
		ItemsCount: itemsCount,
		PageSize:   pageSize,
		Page:       page,
		PagesCount: pagesCount,
	}
}

type ListResponse[T any] struct {
	Data       []T            `json:"data"`
	Pagination PaginationInfo `json:"pagination"`
}

// ListParams is the query of a list request. The search term is stored under
// a key chosen by the caller since resources disagree on its name.
type ListParams map[string]any

const (
	PageParam     = "page"
	PageSizeParam = "pageSize"
)

func NewListParams(page int, pageSize int, searchParam string, term string) ListParams {
	params := ListParams{
		PageParam:     page,
		PageSizeParam: pageSize,
	}
	if searchParam != "" {
		params[searchParam] = term
	}

	return params
}

func (p ListParams) Page() int {
	return p.int(PageParam, 1)
}

func (p ListParams) PageSize() int {
	return p.int(PageSizeParam, 10)
}

func (p ListParams) String(key string) string {
	switch v := p[key].(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	}

	return ""
}

func (p ListParams) int(key string, fallback int) int {
	switch v := p[key].(type) {
	case int:
		if v > 0 {
			return v
		}
	case string:
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}

	return fallback
}

// Payload is the JSON body of create and update requests.
type Payload map[string]any

type CrudService[T any, C any, U any] interface {
	GetData(ctx context.Context, params ListParams) (ListResponse[T], error)
	Create(ctx context.Context, data C) (T, error)
	Update(ctx context.Context, id string, data U) (T, error)
	Delete(ctx context.Context, id string) error
}

type TreeService[T any, C any, U any] interface {
	CrudService[T, C, U]
	GetDataTree(ctx context.Context, params ListParams) (ListResponse[T], error)
}
