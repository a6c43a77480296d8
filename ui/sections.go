package ui

import (
	"admin-dash/config"
	"admin-dash/context"
	"admin-dash/data"
	"admin-dash/data/store"
	"admin-dash/ui/crudsection"
	"admin-dash/ui/form"
	"admin-dash/ui/section"
	"admin-dash/ui/treesection"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
)

// FetchAllSections builds one section per configured resource the session may
// access. The sections are not mounted yet.
func FetchAllSections(ctx *context.ProgramContext) []section.Section {
	sections := make([]section.Section, 0, len(ctx.Config.Resources))
	for i, r := range ctx.Config.Resources {
		res, _ := ctx.Config.Resource(r.Name)
		if !ctx.Session.Can(res.Permission) {
			log.Debug("Hiding resource", "resource", res.Name, "permission", res.Permission)
			continue
		}
		sections = append(sections, newSection(i+1, ctx, res))
	}
	return sections
}

func newSection(id int, ctx *context.ProgramContext, res config.ConfigResource) section.Section {
	switch res.Name {
	case config.ResourceSites:
		return treesection.NewModel(id, ctx, siteService(ctx, res), sitesConfig(ctx, res))
	case config.ResourceVendors:
		return crudsection.NewModel(id, ctx, crudService[data.Vendor](ctx, res, "name", "email"), vendorsConfig(ctx, res))
	case config.ResourceCategories:
		return crudsection.NewModel(id, ctx, crudService[data.Category](ctx, res, "name"), categoriesConfig(ctx, res))
	case config.ResourceCivilians:
		return crudsection.NewModel(id, ctx, crudService[data.Civilian](ctx, res, "name", "national_id"), civiliansConfig(ctx, res))
	case config.ResourceUserTypes:
		return crudsection.NewModel(id, ctx, crudService[data.UserType](ctx, res, "name"), userTypesConfig(ctx, res))
	default:
		return crudsection.NewModel(id, ctx, crudService[data.User](ctx, res, "name", "email"), usersConfig(ctx, res))
	}
}

// crudService talks to the API, or to the local store in demo mode.
func crudService[T data.Item](
	ctx *context.ProgramContext,
	res config.ConfigResource,
	searchColumns ...string,
) data.CrudService[T, data.Payload, data.Payload] {
	if ctx.Store != nil {
		return store.NewRepository[T](ctx.Store, res.SearchParam, searchColumns...)
	}
	return data.NewRestService[T](ctx.Client, res.Path)
}

func siteService(ctx *context.ProgramContext, res config.ConfigResource) data.TreeService[data.Site, data.Payload, data.Payload] {
	if ctx.Store != nil {
		return store.NewSiteRepository(ctx.Store, res.SearchParam)
	}
	return data.NewRestService[data.Site](ctx.Client, res.Path)
}

func usersConfig(ctx *context.ProgramContext, res config.ConfigResource) crudsection.Config[data.User] {
	return crudsection.Config[data.User]{
		Resource: res,
		Singular: ctx.T("resource.user"),
		Plural:   ctx.T("resource.users"),
		Columns: []table.Column{
			{Title: ctx.T("field.name"), Width: 24},
			{Title: ctx.T("field.email"), Width: 30},
			{Title: ctx.T("field.phone"), Width: 16},
			{Title: ctx.T("field.created"), Width: 16},
		},
		Row: func(u data.User) table.Row {
			return table.Row{u.Name, u.Email, u.Phone, humanize.Time(u.CreatedAt)}
		},
		Fields: func(u *data.User) []form.Field {
			var v data.User
			if u != nil {
				v = *u
			}
			return []form.Field{
				{Key: "name", Label: ctx.T("field.name"), Rules: "required,max=100", Value: v.Name},
				{Key: "email", Label: ctx.T("field.email"), Rules: "required,email", Value: v.Email},
				{Key: "phone", Label: ctx.T("field.phone"), Rules: "omitempty,max=32", Value: v.Phone},
				{Key: "userTypeId", Label: ctx.T("field.user_type"), Rules: "omitempty,max=64", Value: v.UserTypeId},
			}
		},
		DisplayName: data.User.DisplayName,
	}
}

func vendorsConfig(ctx *context.ProgramContext, res config.ConfigResource) crudsection.Config[data.Vendor] {
	return crudsection.Config[data.Vendor]{
		Resource: res,
		Singular: ctx.T("resource.vendor"),
		Plural:   ctx.T("resource.vendors"),
		Columns: []table.Column{
			{Title: ctx.T("field.name"), Width: 24},
			{Title: ctx.T("field.email"), Width: 28},
			{Title: ctx.T("field.phone"), Width: 16},
			{Title: ctx.T("field.address"), Width: 24},
		},
		Row: func(v data.Vendor) table.Row {
			return table.Row{v.Name, v.Email, v.Phone, v.Address}
		},
		Fields: func(v *data.Vendor) []form.Field {
			var cur data.Vendor
			if v != nil {
				cur = *v
			}
			return []form.Field{
				{Key: "name", Label: ctx.T("field.name"), Rules: "required,max=100", Value: cur.Name},
				{Key: "email", Label: ctx.T("field.email"), Rules: "omitempty,email", Value: cur.Email},
				{Key: "phone", Label: ctx.T("field.phone"), Rules: "omitempty,max=32", Value: cur.Phone},
				{Key: "address", Label: ctx.T("field.address"), Rules: "omitempty,max=255", Value: cur.Address},
			}
		},
		DisplayName: data.Vendor.DisplayName,
	}
}

func categoriesConfig(ctx *context.ProgramContext, res config.ConfigResource) crudsection.Config[data.Category] {
	return crudsection.Config[data.Category]{
		Resource: res,
		Singular: ctx.T("resource.category"),
		Plural:   ctx.T("resource.categories"),
		Columns: []table.Column{
			{Title: ctx.T("field.name"), Width: 24},
			{Title: ctx.T("field.description"), Width: 44},
			{Title: ctx.T("field.created"), Width: 16},
		},
		Row: func(c data.Category) table.Row {
			return table.Row{c.Name, c.Description, humanize.Time(c.CreatedAt)}
		},
		Fields: func(c *data.Category) []form.Field {
			var cur data.Category
			if c != nil {
				cur = *c
			}
			return []form.Field{
				{Key: "name", Label: ctx.T("field.name"), Rules: "required,max=100", Value: cur.Name},
				{Key: "description", Label: ctx.T("field.description"), Rules: "omitempty,max=255", Value: cur.Description},
			}
		},
		DisplayName: data.Category.DisplayName,
	}
}

func civiliansConfig(ctx *context.ProgramContext, res config.ConfigResource) crudsection.Config[data.Civilian] {
	return crudsection.Config[data.Civilian]{
		Resource: res,
		Singular: ctx.T("resource.civilian"),
		Plural:   ctx.T("resource.civilians"),
		Columns: []table.Column{
			{Title: ctx.T("field.name"), Width: 24},
			{Title: ctx.T("field.national_id"), Width: 16},
			{Title: ctx.T("field.phone"), Width: 16},
			{Title: ctx.T("field.created"), Width: 16},
		},
		Row: func(c data.Civilian) table.Row {
			return table.Row{c.Name, c.NationalId, c.Phone, humanize.Time(c.CreatedAt)}
		},
		Fields: func(c *data.Civilian) []form.Field {
			var cur data.Civilian
			if c != nil {
				cur = *c
			}
			return []form.Field{
				{Key: "name", Label: ctx.T("field.name"), Rules: "required,max=100", Value: cur.Name},
				{Key: "nationalId", Label: ctx.T("field.national_id"), Rules: "required,numeric,min=6,max=32", Value: cur.NationalId},
				{Key: "phone", Label: ctx.T("field.phone"), Rules: "omitempty,max=32", Value: cur.Phone},
			}
		},
		DisplayName: data.Civilian.DisplayName,
	}
}

func userTypesConfig(ctx *context.ProgramContext, res config.ConfigResource) crudsection.Config[data.UserType] {
	return crudsection.Config[data.UserType]{
		Resource: res,
		Singular: ctx.T("resource.user-type"),
		Plural:   ctx.T("resource.user-types"),
		Columns: []table.Column{
			{Title: ctx.T("field.name"), Width: 24},
			{Title: ctx.T("field.description"), Width: 44},
		},
		Row: func(u data.UserType) table.Row {
			return table.Row{u.Name, u.Description}
		},
		Fields: func(u *data.UserType) []form.Field {
			var cur data.UserType
			if u != nil {
				cur = *u
			}
			return []form.Field{
				{Key: "name", Label: ctx.T("field.name"), Rules: "required,max=100", Value: cur.Name},
				{Key: "description", Label: ctx.T("field.description"), Rules: "omitempty,max=255", Value: cur.Description},
			}
		},
		DisplayName: data.UserType.DisplayName,
	}
}

func sitesConfig(ctx *context.ProgramContext, res config.ConfigResource) treesection.Config[data.Site] {
	return treesection.Config[data.Site]{
		Resource: res,
		Singular: ctx.T("resource.site"),
		Plural:   ctx.T("resource.sites"),
		Label: func(s data.Site) string {
			if s.Code == "" {
				return s.Name
			}
			return s.Name + " (" + s.Code + ")"
		},
		Fields: func(s *data.Site) []form.Field {
			var cur data.Site
			if s != nil {
				cur = *s
			}
			return []form.Field{
				{Key: "name", Label: ctx.T("field.name"), Rules: "required,max=100", Value: cur.Name},
				{Key: "code", Label: ctx.T("field.code"), Rules: "omitempty,alphanum,max=32", Value: cur.Code},
			}
		},
		DisplayName: data.Site.DisplayName,
		ParentField: "parentId",
	}
}
