package web

import (
	"net/http"

	"github.com/erazemk/milams/internal/auth"
	"github.com/erazemk/milams/internal/backend"
	webembed "github.com/erazemk/milams/web"
)

// NewRouter creates the web page router with all page routes registered.
// Every page except login goes through the route guard with the role set of
// its menu entry.
func NewRouter(gateway *auth.Gateway, client *backend.Client) (http.Handler, error) {
	templates, err := LoadTemplates()
	if err != nil {
		return nil, err
	}

	s := &Server{
		Backend:   client,
		Gateway:   gateway,
		Templates: templates,
	}

	mux := http.NewServeMux()
	page := func(pattern, path string, h PageHandler) {
		mux.Handle(pattern, s.Guard(rolesFor(path), h))
	}

	// Static assets.
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(webembed.StaticFS()))))

	// Public routes.
	mux.HandleFunc("GET /{$}", s.Index)
	mux.HandleFunc("GET /login", s.LoginPage)
	mux.HandleFunc("POST /login", s.LoginSubmit)
	mux.HandleFunc("POST /logout", s.Logout)

	// Guarded routes.
	page("GET /dashboard", "/dashboard", s.Dashboard)
	page("GET /dashboard/net-movement", "/dashboard", s.NetMovementPage)

	page("GET /purchases", "/purchases", s.PurchasesPage)
	page("POST /purchases", "/purchases", s.PurchaseCreateSubmit)

	page("GET /transfers", "/transfers", s.TransfersPage)
	page("GET /transfers/new", "/transfers", s.TransferNewPage)
	page("POST /transfers", "/transfers", s.TransferCreateSubmit)

	page("GET /assignments", "/assignments", s.AssignmentsPage)
	page("POST /assignments", "/assignments", s.AssignmentCreateSubmit)
	page("POST /expenditures", "/assignments", s.ExpenditureCreateSubmit)

	page("GET /assets", "/assets", s.AssetsPage)
	page("POST /assets", "/assets", s.AssetCreateSubmit)

	page("GET /users", "/users", s.UsersPage)
	page("POST /users", "/users", s.UserCreateSubmit)
	page("GET /users/{id}/edit", "/users", s.UserEditPage)
	page("POST /users/{id}", "/users", s.UserUpdateSubmit)
	page("POST /users/{id}/delete", "/users", s.UserDeleteSubmit)

	return mux, nil
}
