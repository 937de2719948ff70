package web

import "github.com/erazemk/milams/internal/model"

// Role sets guarding pages. A nil set admits every signed-in user.
var (
	commandRoles = []string{model.RoleAdmin, model.RoleBaseCommander}
	adminRoles   = []string{model.RoleAdmin}
)

// MenuItem is an entry of the side menu.
type MenuItem struct {
	Path  string   `json:"path"`
	Label string   `json:"label"`
	Roles []string `json:"-"`
}

// menu lists every page in display order with the roles that may open it.
// The router guards each page with the same role set.
var menu = []MenuItem{
	{Path: "/dashboard", Label: "Dashboard"},
	{Path: "/purchases", Label: "Purchases"},
	{Path: "/transfers", Label: "Transfers"},
	{Path: "/assignments", Label: "Assignments & Expenditures", Roles: commandRoles},
	{Path: "/assets", Label: "Asset Registry", Roles: commandRoles},
	{Path: "/users", Label: "User Management", Roles: adminRoles},
}

// VisibleMenu returns the menu entries the user may open.
func VisibleMenu(u *model.User) []MenuItem {
	if u == nil {
		return nil
	}
	var out []MenuItem
	for _, item := range menu {
		if model.HasAnyRole(u, item.Roles) {
			out = append(out, item)
		}
	}
	return out
}

// rolesFor returns the role set guarding path.
func rolesFor(path string) []string {
	for _, item := range menu {
		if item.Path == path {
			return item.Roles
		}
	}
	return nil
}
