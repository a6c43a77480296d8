package constants

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

const (
	DefaultPageSize       = 10
	DefaultSearchDebounce = 300 * time.Millisecond
	DefaultRequestTimeout = 30 * time.Second
	ToastTimeout          = 3 * time.Second
	TaskClearTimeout      = 2 * time.Second
)

type TaskFinishedMsg struct {
	SectionId   int
	SectionType string
	TaskId      string
	Err         error
	Msg         tea.Msg
}

type ClearTaskMsg struct {
	TaskId string
}
