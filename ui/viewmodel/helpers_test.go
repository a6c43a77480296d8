package viewmodel

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"admin-dash/data"

	tea "github.com/charmbracelet/bubbletea"
)

type testItem struct {
	Id   string
	Name string
}

func (i testItem) GetId() string { return i.Id }

type fakeService struct {
	items []testItem

	listCalls   []data.ListParams
	created     []data.Payload
	updated     []string
	deleted     []string
	listErr     error
	createErr   error
	deleteErrs  map[string]error
	respondWith func(params data.ListParams) (data.ListResponse[testItem], error)
}

func newFakeService(n int) *fakeService {
	s := &fakeService{deleteErrs: map[string]error{}}
	for i := 1; i <= n; i++ {
		s.items = append(s.items, testItem{Id: fmt.Sprintf("%d", i), Name: fmt.Sprintf("Item %02d", i)})
	}
	return s
}

func (s *fakeService) GetData(_ context.Context, params data.ListParams) (data.ListResponse[testItem], error) {
	s.listCalls = append(s.listCalls, params)
	if s.respondWith != nil {
		return s.respondWith(params)
	}
	if s.listErr != nil {
		return data.ListResponse[testItem]{}, s.listErr
	}

	term := params.String("search")
	matches := []testItem{}
	for _, item := range s.items {
		if strings.Contains(item.Name, term) {
			matches = append(matches, item)
		}
	}

	page, size := params.Page(), params.PageSize()
	start := min((page-1)*size, len(matches))
	end := min(start+size, len(matches))
	return data.ListResponse[testItem]{
		Data:       matches[start:end],
		Pagination: data.NewPaginationInfo(len(matches), page, size),
	}, nil
}

func (s *fakeService) Create(_ context.Context, payload data.Payload) (testItem, error) {
	if s.createErr != nil {
		return testItem{}, s.createErr
	}
	s.created = append(s.created, payload)
	item := testItem{Id: fmt.Sprintf("new-%d", len(s.created)), Name: fmt.Sprint(payload["name"])}
	s.items = append(s.items, item)
	return item, nil
}

func (s *fakeService) Update(_ context.Context, id string, payload data.Payload) (testItem, error) {
	s.updated = append(s.updated, id)
	for i, item := range s.items {
		if item.Id == id {
			s.items[i].Name = fmt.Sprint(payload["name"])
			return s.items[i], nil
		}
	}
	return testItem{}, data.ErrNotFound
}

func (s *fakeService) Delete(_ context.Context, id string) error {
	if err := s.deleteErrs[id]; err != nil {
		return err
	}
	s.deleted = append(s.deleted, id)
	for i, item := range s.items {
		if item.Id == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	return nil
}

var errBoom = errors.New("boom")

type toast struct {
	kind        string
	title       string
	description string
}

type recordingNotifier struct {
	toasts []toast
}

func (n *recordingNotifier) Success(title string, description string) tea.Cmd {
	n.toasts = append(n.toasts, toast{"success", title, description})
	return nil
}

func (n *recordingNotifier) Error(title string, description string) tea.Cmd {
	n.toasts = append(n.toasts, toast{"error", title, description})
	return nil
}

func testOptions(notifier Notifier) Options[testItem] {
	return Options[testItem]{
		Resource:            "items",
		SearchParam:         "search",
		PageSize:            10,
		Debounce:            time.Millisecond,
		GuardStaleResponses: true,
		DisplayName:         func(i testItem) string { return i.Name },
		Notifier:            notifier,
	}
}

type updater interface {
	Update(msg tea.Msg) tea.Cmd
}

// drain runs cmd and every command produced while handling its messages,
// feeding each message back into m. It returns the messages it saw.
func drain(m updater, cmd tea.Cmd) []tea.Msg {
	var seen []tea.Msg
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}

		msg := c()
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		if msg == nil {
			continue
		}
		seen = append(seen, msg)
		queue = append(queue, m.Update(msg))
	}
	return seen
}

func countRefocus(msgs []tea.Msg) int {
	n := 0
	for _, msg := range msgs {
		if _, ok := msg.(RefocusMsg); ok {
			n++
		}
	}
	return n
}

func itemNames(items []testItem) []string {
	names := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
	}
	return names
}
