package web

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"github.com/erazemk/milams/internal/auth"
	"github.com/erazemk/milams/internal/model"
)

type usersData struct {
	PageData
	Users   []model.User
	Bases   []model.Base
	Roles   []string
	Editing *model.User
	Form    url.Values
}

// UsersPage handles GET /users.
func (s *Server) UsersPage(w http.ResponseWriter, r *http.Request, sess *auth.Session) {
	s.renderUsers(w, r, sess, http.StatusOK, "", nil, "")
}

// UserEditPage handles GET /users/{id}/edit.
func (s *Server) UserEditPage(w http.ResponseWriter, r *http.Request, sess *auth.Session) {
	s.renderUsers(w, r, sess, http.StatusOK, r.PathValue("id"), nil, "")
}

// UserCreateSubmit handles POST /users.
func (s *Server) UserCreateSubmit(w http.ResponseWriter, r *http.Request, sess *auth.Session) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	in := userInput(r.PostForm)
	var err error
	if in.Password == "" {
		err = formError("A password is required for new users.")
	} else {
		_, err = s.client(sess).CreateUser(r.Context(), in)
	}
	if err != nil {
		slog.Warn("failed to create user", "user", sess.User.Username, "error", err)
		s.renderUsers(w, r, sess, http.StatusUnprocessableEntity, "", r.PostForm, submitError("create the user", err))
		return
	}

	slog.Info("user created", "user", sess.User.Username, "username", in.Username, "role", in.Role)
	http.Redirect(w, r, savedURL(r, "/users", ""), http.StatusSeeOther)
}

// UserUpdateSubmit handles POST /users/{id}. A blank password keeps the
// current one.
func (s *Server) UserUpdateSubmit(w http.ResponseWriter, r *http.Request, sess *auth.Session) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	id := r.PathValue("id")
	in := userInput(r.PostForm)
	if _, err := s.client(sess).UpdateUser(r.Context(), id, in); err != nil {
		slog.Warn("failed to update user", "user", sess.User.Username, "id", id, "error", err)
		s.renderUsers(w, r, sess, http.StatusUnprocessableEntity, id, r.PostForm, submitError("update the user", err))
		return
	}

	slog.Info("user updated", "user", sess.User.Username, "username", in.Username, "role", in.Role)
	http.Redirect(w, r, savedURL(r, "/users", ""), http.StatusSeeOther)
}

// UserDeleteSubmit handles POST /users/{id}/delete.
func (s *Server) UserDeleteSubmit(w http.ResponseWriter, r *http.Request, sess *auth.Session) {
	id := r.PathValue("id")
	if id == sess.User.ID.String() {
		s.renderUsers(w, r, sess, http.StatusUnprocessableEntity, "", nil, "You cannot delete your own account.")
		return
	}

	if err := s.client(sess).DeleteUser(r.Context(), id); err != nil {
		slog.Warn("failed to delete user", "user", sess.User.Username, "id", id, "error", err)
		s.renderUsers(w, r, sess, http.StatusUnprocessableEntity, "", nil, submitError("delete the user", err))
		return
	}

	slog.Info("user deleted", "user", sess.User.Username, "id", id)
	http.Redirect(w, r, savedURL(r, "/users", ""), http.StatusSeeOther)
}

func userInput(form url.Values) model.UserInput {
	active, _ := strconv.ParseBool(form.Get("isActive"))
	return model.UserInput{
		Name:         formValue(form, "name"),
		Username:     formValue(form, "username"),
		Email:        formValue(form, "email"),
		Password:     form.Get("password"),
		Role:         formValue(form, "role"),
		AssignedBase: formValue(form, "assignedBase"),
		IsActive:     active,
	}
}

// userForm fills the edit form from an existing account.
func userForm(u *model.User) url.Values {
	return url.Values{
		"name":         {u.Name},
		"username":     {u.Username},
		"email":        {u.Email},
		"role":         {u.Role},
		"assignedBase": {u.AssignedBase},
		"isActive":     {strconv.FormatBool(u.IsActive)},
	}
}

func (s *Server) renderUsers(w http.ResponseWriter, r *http.Request, sess *auth.Session, status int, editID string, form url.Values, errMsg string) {
	c := s.client(sess)

	var (
		users []model.User
		ref   reference
	)
	err := fetchAll(r.Context(), sess.User.Username,
		fetch{"users", func(ctx context.Context) (err error) {
			users, err = c.ListUsers(ctx)
			return err
		}},
		fetch{"reference data", func(ctx context.Context) (err error) {
			ref, err = loadReference(ctx, c, refBases|refRoles)
			return err
		}},
	)

	pd := s.pageData(r, sess, "User Management")
	pd.Path = "/users"
	if err != nil {
		pd.Error = loadFailedMsg
	}
	if errMsg != "" {
		pd.Error = errMsg
		pd.Success = ""
	}

	var editing *model.User
	if editID != "" {
		for i := range users {
			if users[i].ID.String() == editID {
				editing = &users[i]
				break
			}
		}
		if editing == nil && err == nil {
			http.NotFound(w, r)
			return
		}
	}
	if editing != nil && form == nil {
		form = userForm(editing)
	}
	if form == nil {
		form = url.Values{"isActive": {"true"}}
	}

	roles := model.AllRoles
	if len(ref.Roles) > 0 {
		roles = make([]string, 0, len(ref.Roles))
		for _, role := range ref.Roles {
			roles = append(roles, role.Name)
		}
	}

	s.Templates.RenderStatus(w, status, "users.html", &usersData{
		PageData: pd,
		Users:    users,
		Bases:    ref.Bases,
		Roles:    roles,
		Editing:  editing,
		Form:     form,
	})
}
