package web

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/erazemk/milams/internal/auth"
	"github.com/erazemk/milams/internal/model"
)

// Tabs of the assignments page.
const (
	tabAssignments  = "assignments"
	tabExpenditures = "expenditures"
)

type custodyData struct {
	PageData
	FilterBar
	Assignments  []model.Assignment
	Expenditures []model.Expenditure
	Assets       []model.Asset
	Reasons      []string
	Form         url.Values
}

// AssignmentsPage handles GET /assignments. The tab query parameter selects
// between assignments and expenditures.
func (s *Server) AssignmentsPage(w http.ResponseWriter, r *http.Request, sess *auth.Session) {
	tab := tabAssignments
	if r.URL.Query().Get("tab") == tabExpenditures {
		tab = tabExpenditures
	}
	s.renderCustody(w, r, sess, http.StatusOK, tab, nil, "")
}

// AssignmentCreateSubmit handles POST /assignments.
func (s *Server) AssignmentCreateSubmit(w http.ResponseWriter, r *http.Request, sess *auth.Session) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form := r.PostForm
	in := model.AssignmentInput{
		AssetID:            formValue(form, "assetId"),
		PersonnelName:      formValue(form, "personnelName"),
		PersonnelRank:      formValue(form, "personnelRank"),
		PersonnelID:        formValue(form, "personnelId"),
		AssignmentDate:     formValue(form, "assignmentDate"),
		ExpectedReturnDate: formValue(form, "expectedReturnDate"),
		Purpose:            formValue(form, "purpose"),
		Notes:              formValue(form, "notes"),
	}

	if _, err := s.client(sess).CreateAssignment(r.Context(), in); err != nil {
		slog.Warn("failed to assign asset", "user", sess.User.Username, "error", err)
		s.renderCustody(w, r, sess, http.StatusUnprocessableEntity, tabAssignments, form, submitError("assign the asset", err))
		return
	}

	slog.Info("asset assigned", "user", sess.User.Username, "asset", in.AssetID, "personnel", in.PersonnelName)
	http.Redirect(w, r, savedURL(r, "/assignments", ""), http.StatusSeeOther)
}

// ExpenditureCreateSubmit handles POST /expenditures.
func (s *Server) ExpenditureCreateSubmit(w http.ResponseWriter, r *http.Request, sess *auth.Session) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	form := r.PostForm
	in, err := expenditureInput(form)
	if err == nil {
		_, err = s.client(sess).CreateExpenditure(r.Context(), in)
	}
	if err != nil {
		slog.Warn("failed to record expenditure", "user", sess.User.Username, "error", err)
		s.renderCustody(w, r, sess, http.StatusUnprocessableEntity, tabExpenditures, form, submitError("record the expenditure", err))
		return
	}

	slog.Info("expenditure recorded", "user", sess.User.Username, "asset", in.AssetID,
		"quantity", in.Quantity, "reason", in.Reason)
	http.Redirect(w, r, savedURL(r, "/assignments", tabExpenditures), http.StatusSeeOther)
}

func expenditureInput(form url.Values) (model.ExpenditureInput, error) {
	qty, err := parseQuantity(form, "quantity")
	if err != nil {
		return model.ExpenditureInput{}, err
	}
	return model.ExpenditureInput{
		AssetID:         formValue(form, "assetId"),
		Quantity:        qty,
		Reason:          formValue(form, "reason"),
		ExpenditureDate: formValue(form, "expenditureDate"),
		AuthorizedBy:    formValue(form, "authorizedBy"),
		Notes:           formValue(form, "notes"),
	}, nil
}

func (s *Server) renderCustody(w http.ResponseWriter, r *http.Request, sess *auth.Session, status int, tab string, form url.Values, errMsg string) {
	c := s.client(sess)
	filter := model.FilterFromQuery(r.URL.Query())

	var (
		assignments  []model.Assignment
		expenditures []model.Expenditure
		ref          reference
	)
	list := fetch{"assignments", func(ctx context.Context) (err error) {
		assignments, err = c.ListAssignments(ctx, filter)
		return err
	}}
	if tab == tabExpenditures {
		list = fetch{"expenditures", func(ctx context.Context) (err error) {
			expenditures, err = c.ListExpenditures(ctx, filter)
			return err
		}}
	}
	err := fetchAll(r.Context(), sess.User.Username, list,
		fetch{"reference data", func(ctx context.Context) (err error) {
			ref, err = loadReference(ctx, c, refBases|refAssets)
			return err
		}},
	)

	pd := s.pageData(r, sess, "Assignments & Expenditures")
	if err != nil {
		pd.Error = loadFailedMsg
	}
	if errMsg != "" {
		pd.Error = errMsg
		pd.Success = ""
	}

	s.Templates.RenderStatus(w, status, "assignments.html", &custodyData{
		PageData: pd,
		FilterBar: FilterBar{
			Filter: filter,
			Bases:  model.AccessibleBases(sess.User, ref.Bases),
			Tab:    tab,
		},
		Assignments:  assignments,
		Expenditures: expenditures,
		Assets:       ref.Assets,
		Reasons:      model.ExpenditureReasons,
		Form:         form,
	})
}
