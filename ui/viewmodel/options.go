// Package viewmodel holds the list state behind every resource view: paging,
// debounced search, selection, modal flags and confirmed deletion. It talks to
// an injected data.CrudService and reports back through Bubble Tea messages.
package viewmodel

import (
	"strings"
	"time"

	"admin-dash/constants"

	tea "github.com/charmbracelet/bubbletea"
)

type Translator interface {
	T(key string, params ...string) string
}

// Notifier is the toast channel. Both methods are fire-and-forget.
type Notifier interface {
	Success(title string, description string) tea.Cmd
	Error(title string, description string) tea.Cmd
}

type Options[T any] struct {
	// Resource is the plural resource name, used in logs and messages.
	Resource string
	// TypeLabel is the singular, human readable item type ("user").
	TypeLabel string
	// SearchParam is the list query key carrying the committed search term.
	SearchParam string
	PageSize    int
	Debounce    time.Duration
	// RequestTimeout bounds every service call.
	RequestTimeout time.Duration
	// GuardStaleResponses drops list responses that are not for the latest
	// request. When false the last response to arrive wins.
	GuardStaleResponses bool
	DisplayName         func(T) string
	Translator          Translator
	Notifier            Notifier
}

func (o Options[T]) withDefaults() Options[T] {
	if o.PageSize <= 0 {
		o.PageSize = constants.DefaultPageSize
	}
	if o.Debounce <= 0 {
		o.Debounce = constants.DefaultSearchDebounce
	}
	if o.RequestTimeout <= 0 {
		o.RequestTimeout = constants.DefaultRequestTimeout
	}
	if o.TypeLabel == "" {
		o.TypeLabel = strings.TrimSuffix(o.Resource, "s")
	}
	if o.Translator == nil {
		o.Translator = keyTranslator{}
	}
	if o.Notifier == nil {
		o.Notifier = discardNotifier{}
	}
	return o
}

type keyTranslator struct{}

func (keyTranslator) T(key string, params ...string) string {
	if len(params) == 0 {
		return key
	}
	return key + " " + strings.Join(params, " ")
}

type discardNotifier struct{}

func (discardNotifier) Success(string, string) tea.Cmd { return nil }
func (discardNotifier) Error(string, string) tea.Cmd   { return nil }
