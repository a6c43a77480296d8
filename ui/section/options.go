package section

import (
	"admin-dash/config"
	"admin-dash/context"
	"admin-dash/ui/toast"
	"admin-dash/ui/viewmodel"
)

// ViewModelOptions builds view-model options for a configured resource.
func ViewModelOptions[T any](
	ctx *context.ProgramContext,
	res config.ConfigResource,
	singular string,
	displayName func(T) string,
) viewmodel.Options[T] {
	opts := viewmodel.Options[T]{
		Resource:            res.Name,
		TypeLabel:           singular,
		SearchParam:         res.SearchParam,
		PageSize:            res.PageSize,
		DisplayName:         displayName,
		Translator:          ctx,
		Notifier:            toast.Notifier{},
		GuardStaleResponses: true,
	}
	if ctx.Config != nil {
		opts.Debounce = ctx.Config.SearchDebounce
		opts.RequestTimeout = ctx.Config.RequestTimeout
		opts.GuardStaleResponses = ctx.Config.StaleGuard()
	}
	return opts
}
