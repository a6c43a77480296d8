package data

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T, handler http.HandlerFunc) *RestService[User] {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := NewClient(server.URL+"/", func() string { return "secret" }, time.Second)
	return NewRestService[User](client, "users")
}

func TestGetData_SendsSearchUnderConfiguredKey(t *testing.T) {
	var query map[string][]string
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		query = r.URL.Query()
		_ = json.NewEncoder(w).Encode(ListResponse[User]{
			Data:       []User{{Id: "1", Name: "Alice"}},
			Pagination: PaginationInfo{ItemsCount: 1, PageSize: 10, Page: 2, PagesCount: 1},
		})
	})

	res, err := svc.GetData(context.Background(), NewListParams(2, 10, "PageSearch", "ali"))
	require.NoError(t, err)

	assert.Equal(t, []string{"2"}, query["page"])
	assert.Equal(t, []string{"10"}, query["pageSize"])
	assert.Equal(t, []string{"ali"}, query["PageSearch"])
	assert.NotContains(t, query, "search")
	require.Len(t, res.Data, 1)
	assert.Equal(t, "Alice", res.Data[0].Name)
	assert.Equal(t, 1, res.Pagination.PagesCount)
}

func TestGetDataTree_UsesTreePath(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/users/tree", r.URL.Path)
		_, _ = w.Write([]byte(`{"pagination":{"itemsCount":0,"pageSize":10,"page":1,"pagesCount":0}}`))
	})

	res, err := svc.GetDataTree(context.Background(), NewListParams(1, 10, "search", ""))
	require.NoError(t, err)
	assert.NotNil(t, res.Data)
	assert.Empty(t, res.Data)
}

func TestCreateUpdateDelete(t *testing.T) {
	type call struct {
		method string
		path   string
		body   map[string]any
	}
	var calls []call

	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		c := call{method: r.Method, path: r.URL.Path}
		if r.Body != nil && r.Method != http.MethodDelete {
			_ = json.NewDecoder(r.Body).Decode(&c.body)
		}
		calls = append(calls, c)

		switch r.Method {
		case http.MethodDelete:
			w.WriteHeader(http.StatusNoContent)
		default:
			_ = json.NewEncoder(w).Encode(User{Id: "7", Name: "Bob"})
		}
	})
	ctx := context.Background()

	created, err := svc.Create(ctx, Payload{"name": "Bob"})
	require.NoError(t, err)
	assert.Equal(t, "7", created.Id)

	_, err = svc.Update(ctx, "7", Payload{"name": "Bobby"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "7"))

	require.Len(t, calls, 3)
	assert.Equal(t, call{method: http.MethodPost, path: "/users", body: map[string]any{"name": "Bob"}}, calls[0])
	assert.Equal(t, call{method: http.MethodPut, path: "/users/7", body: map[string]any{"name": "Bobby"}}, calls[1])
	assert.Equal(t, http.MethodDelete, calls[2].method)
	assert.Equal(t, "/users/7", calls[2].path)
}

func TestErrorResponse(t *testing.T) {
	svc := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such user", http.StatusNotFound)
	})

	err := svc.Delete(context.Background(), "404")
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "no such user", apiErr.Body)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrConflict)
}

func TestNewPaginationInfo(t *testing.T) {
	testCases := []struct {
		items, page, size int
		expected          int
	}{
		{items: 25, page: 1, size: 10, expected: 3},
		{items: 20, page: 1, size: 10, expected: 2},
		{items: 0, page: 1, size: 10, expected: 0},
		{items: 5, page: 1, size: 0, expected: 0},
	}

	for _, tc := range testCases {
		p := NewPaginationInfo(tc.items, tc.page, tc.size)
		assert.Equal(t, tc.expected, p.PagesCount, "items=%d size=%d", tc.items, tc.size)
	}
}

func TestListParams(t *testing.T) {
	p := NewListParams(3, 25, "search", "abc")
	assert.Equal(t, 3, p.Page())
	assert.Equal(t, 25, p.PageSize())
	assert.Equal(t, "abc", p.String("search"))
	assert.Equal(t, "3", p.String("page"))

	empty := ListParams{}
	assert.Equal(t, 1, empty.Page())
	assert.Equal(t, 10, empty.PageSize())

	noSearch := NewListParams(1, 10, "", "ignored")
	assert.Len(t, noSearch, 2)
}
