package context

import (
	"time"

	"admin-dash/auth"
	"admin-dash/config"
	"admin-dash/data"
	"admin-dash/data/store"
	"admin-dash/i18n"

	tea "github.com/charmbracelet/bubbletea"
)

// ProgramContext is what every section may read: configuration, the signed in
// session, the API client or the local store, and presentation settings.
type ProgramContext struct {
	Config     *config.Config
	ConfigPath string
	Translator *i18n.Translator
	Session    *auth.Session
	Client     *data.Client
	// Store is set in demo mode and replaces the API.
	Store        *store.Store
	Styles       Styles
	ScreenWidth  int
	ScreenHeight int
	StartTask    func(task Task) tea.Cmd
}

// T translates with the context's translator.
func (ctx *ProgramContext) T(key string, params ...string) string {
	if ctx.Translator == nil {
		return key
	}
	return ctx.Translator.T(key, params...)
}

func (ctx *ProgramContext) IsRTL() bool {
	return ctx.Translator != nil && ctx.Translator.Direction() == i18n.RTL
}

type State = int

const (
	TaskStart State = iota
	TaskFinished
	TaskError
)

type Task struct {
	Id           string
	StartText    string
	FinishedText string
	State        State
	Error        error
	StartTime    time.Time
	FinishedTime *time.Time
}
