package viewmodel

import "admin-dash/data"

type listedMsg[T any] struct {
	owner     int64
	seq       int
	res       data.ListResponse[T]
	err       error
	unmounted bool
}

type searchDebounceMsg struct {
	owner int64
	seq   int
	value string
}

type Operation int

const (
	OpCreate Operation = iota
	OpUpdate
)

func (o Operation) String() string {
	if o == OpCreate {
		return "create"
	}
	return "update"
}

// MutationResultMsg reports a finished create or update. Forms watch it for
// errors; the view-model only acts on success.
type MutationResultMsg struct {
	Owner int64
	Op    Operation
	Id    string
	Err   error
}

type deletedMsg struct {
	owner int64
	token int
	id    string
	err   error
}

type bulkDeletedMsg struct {
	owner  int64
	token  int
	result BulkDeleteResult
}

// RefocusMsg asks the view to give the search input its focus back.
type RefocusMsg struct {
	Owner int64
}
