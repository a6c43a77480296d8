package viewmodel

import (
	"context"
	"sync/atomic"

	"admin-dash/data"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
)

var lastOwnerId atomic.Int64

type fetchFunc[T any] func(ctx context.Context, params data.ListParams) (data.ListResponse[T], error)

// Model is the list view-model of one mounted resource view. All methods are
// meant to be called from the Bubble Tea update loop; work that blocks runs in
// the returned commands.
type Model[T data.Item, C any, U any] struct {
	id      int64
	opts    Options[T]
	service data.CrudService[T, C, U]
	fetch   fetchFunc[T]

	items      []T
	pagination data.PaginationInfo
	loading    bool
	loaded     bool
	err        string
	requestSeq int
	inFlight   int

	search        SearchState
	searchSeq     int
	searchFocused bool
	refocus       bool

	selection Selection

	createOpen bool
	editOpen   bool
	editing    *T

	confirm   ConfirmState
	pending   *PendingDeletion[T]
	lastToken int

	// read by command goroutines after their service call returns
	mounted *atomic.Bool
}

func New[T data.Item, C any, U any](service data.CrudService[T, C, U], opts Options[T]) *Model[T, C, U] {
	return newModel(service, opts, service.GetData)
}

func newModel[T data.Item, C any, U any](
	service data.CrudService[T, C, U],
	opts Options[T],
	fetch fetchFunc[T],
) *Model[T, C, U] {
	opts = opts.withDefaults()
	m := &Model[T, C, U]{
		id:      lastOwnerId.Add(1),
		opts:    opts,
		service: service,
		fetch:   fetch,
		items:   []T{},
		pagination: data.PaginationInfo{
			Page:     1,
			PageSize: opts.PageSize,
		},
		mounted: &atomic.Bool{},
	}
	if m.opts.DisplayName == nil {
		m.opts.DisplayName = func(item T) string { return item.GetId() }
	}
	return m
}

// Init mounts the view-model and loads the first page.
func (m *Model[T, C, U]) Init() tea.Cmd {
	m.mounted.Store(true)
	return m.List()
}

// Unmount stops every pending response from touching the state.
func (m *Model[T, C, U]) Unmount() {
	m.mounted.Store(false)
	m.selection.Clear()
	m.refocus = false
}

func (m *Model[T, C, U]) Mounted() bool {
	return m.mounted.Load()
}

// List fetches the current page for the committed search term. The request is
// built now, from the state as it is at call time.
func (m *Model[T, C, U]) List() tea.Cmd {
	m.requestSeq++
	seq := m.requestSeq
	params := data.NewListParams(
		m.pagination.Page,
		m.pagination.PageSize,
		m.opts.SearchParam,
		m.search.CommittedTerm,
	)
	m.loading = true
	m.inFlight++
	m.refocus = m.searchFocused

	log.Debug("Fetching", "resource", m.opts.Resource, "seq", seq, "params", params)

	owner, fetch, mounted, timeout := m.id, m.fetch, m.mounted, m.opts.RequestTimeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		res, err := fetch(ctx, params)
		if !mounted.Load() {
			return listedMsg[T]{owner: owner, seq: seq, res: data.ListResponse[T]{Data: []T{}}, unmounted: true}
		}
		return listedMsg[T]{owner: owner, seq: seq, res: res, err: err}
	}
}

func (m *Model[T, C, U]) Refresh() tea.Cmd {
	return m.List()
}

func (m *Model[T, C, U]) ChangePage(page int) tea.Cmd {
	m.pagination.Page = page
	return m.List()
}

func (m *Model[T, C, U]) ChangePageSize(size int) tea.Cmd {
	m.pagination.PageSize = size
	m.pagination.Page = 1
	return m.List()
}

func (m *Model[T, C, U]) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case listedMsg[T]:
		if msg.owner != m.id {
			return nil
		}
		return m.applyList(msg)

	case searchDebounceMsg:
		if msg.owner != m.id {
			return nil
		}
		return m.commitSearch(msg)

	case MutationResultMsg:
		if msg.Owner != m.id {
			return nil
		}
		return m.applyMutation(msg)

	case deletedMsg:
		if msg.owner != m.id {
			return nil
		}
		return m.applyDelete(msg)

	case bulkDeletedMsg:
		if msg.owner != m.id {
			return nil
		}
		return m.applyBulkDelete(msg)
	}

	return nil
}

func (m *Model[T, C, U]) applyList(msg listedMsg[T]) tea.Cmd {
	m.inFlight = max(m.inFlight-1, 0)
	if msg.unmounted || !m.mounted.Load() {
		return nil
	}
	if m.opts.GuardStaleResponses && msg.seq != m.requestSeq {
		log.Debug("Dropping stale response", "resource", m.opts.Resource, "seq", msg.seq, "latest", m.requestSeq)
		return nil
	}

	// unguarded, an older request may still be running after this one lands
	m.loading = !m.opts.GuardStaleResponses && m.inFlight > 0

	if msg.err != nil {
		log.Error("Fetch failed", "resource", m.opts.Resource, "err", msg.err)
		m.err = m.opts.Translator.T("crud.fetch_failed", m.opts.Resource) + ": " + msg.err.Error()
		return m.refocusCmd()
	}

	m.err = ""
	m.loaded = true
	m.items = msg.res.Data
	if m.items == nil {
		m.items = []T{}
	}

	// the server's counts are trusted, the page and size the user picked are not
	// overwritten by whatever the server echoes back
	pagination := msg.res.Pagination
	pagination.Page = m.pagination.Page
	pagination.PageSize = m.pagination.PageSize
	m.pagination = pagination

	return m.refocusCmd()
}

func (m *Model[T, C, U]) Id() int64 {
	return m.id
}

func (m *Model[T, C, U]) Items() []T {
	return m.items
}

func (m *Model[T, C, U]) Pagination() data.PaginationInfo {
	return m.pagination
}

func (m *Model[T, C, U]) Loading() bool {
	return m.loading
}

// Loaded reports whether a list request ever succeeded.
func (m *Model[T, C, U]) Loaded() bool {
	return m.loaded
}

func (m *Model[T, C, U]) Err() string {
	return m.err
}

func (m *Model[T, C, U]) Options() Options[T] {
	return m.opts
}

func (m *Model[T, C, U]) DisplayName(item T) string {
	return m.opts.DisplayName(item)
}

func (m *Model[T, C, U]) Find(id string) (T, bool) {
	for _, item := range m.items {
		if item.GetId() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}
