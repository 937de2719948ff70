package web

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/erazemk/milams/internal/auth"
	"github.com/erazemk/milams/internal/model"
)

var transferStatuses = []string{
	model.TransferStatusPending,
	model.TransferStatusCompleted,
	model.TransferStatusRejected,
}

// TransfersPage handles GET /transfers.
func (s *Server) TransfersPage(w http.ResponseWriter, r *http.Request, sess *auth.Session) {
	c := s.client(sess)
	filter := model.FilterFromQuery(r.URL.Query())

	var (
		transfers []model.Transfer
		ref       reference
	)
	err := fetchAll(r.Context(), sess.User.Username,
		fetch{"transfers", func(ctx context.Context) (err error) {
			transfers, err = c.ListTransfers(ctx, filter)
			return err
		}},
		fetch{"reference data", func(ctx context.Context) (err error) {
			ref, err = loadReference(ctx, c, refBases|refEquipmentTypes)
			return err
		}},
	)

	pd := s.pageData(r, sess, "Transfers")
	if err != nil {
		pd.Error = loadFailedMsg
	}
	s.Templates.Render(w, "transfers.html", &struct {
		PageData
		FilterBar
		Transfers []model.Transfer
	}{
		PageData: pd,
		FilterBar: FilterBar{
			Filter:         filter,
			Bases:          model.AccessibleBases(sess.User, ref.Bases),
			EquipmentTypes: ref.EquipmentTypes,
			Statuses:       transferStatuses,
		},
		Transfers: transfers,
	})
}

// TransferNewPage handles GET /transfers/new. Choosing a source base reloads
// the page with fromBaseId set so the destination list can leave it out.
func (s *Server) TransferNewPage(w http.ResponseWriter, r *http.Request, sess *auth.Session) {
	s.renderTransferForm(w, r, sess, http.StatusOK, r.URL.Query(), "")
}

// TransferCreateSubmit handles POST /transfers.
func (s *Server) TransferCreateSubmit(w http.ResponseWriter, r *http.Request, sess *auth.Session) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	in, err := transferInput(r.PostForm)
	if err == nil {
		_, err = s.client(sess).CreateTransfer(r.Context(), in)
	}
	if err != nil {
		slog.Warn("failed to request transfer", "user", sess.User.Username, "error", err)
		s.renderTransferForm(w, r, sess, http.StatusUnprocessableEntity, r.PostForm, submitError("request the transfer", err))
		return
	}

	slog.Info("transfer requested", "user", sess.User.Username, "asset", in.AssetID,
		"from", in.FromBaseID, "to", in.ToBaseID, "quantity", in.Quantity)
	http.Redirect(w, r, savedURL(r, "/transfers", ""), http.StatusSeeOther)
}

func transferInput(form url.Values) (model.TransferInput, error) {
	qty, err := parseQuantity(form, "quantity")
	if err != nil {
		return model.TransferInput{}, err
	}
	in := model.TransferInput{
		AssetID:    formValue(form, "assetId"),
		FromBaseID: formValue(form, "fromBaseId"),
		ToBaseID:   formValue(form, "toBaseId"),
		Quantity:   qty,
		Reason:     formValue(form, "reason"),
		Notes:      formValue(form, "notes"),
	}
	if in.FromBaseID == "" || in.ToBaseID == "" || in.FromBaseID == in.ToBaseID {
		return model.TransferInput{}, formError("Choose two different bases.")
	}
	return in, nil
}

func (s *Server) renderTransferForm(w http.ResponseWriter, r *http.Request, sess *auth.Session, status int, form url.Values, errMsg string) {
	c := s.client(sess)
	fromBaseID := formValue(form, "fromBaseId")

	var (
		ref    reference
		assets []model.Asset
	)
	fetches := []fetch{
		{"reference data", func(ctx context.Context) (err error) {
			ref, err = loadReference(ctx, c, refBases)
			return err
		}},
	}
	if fromBaseID != "" {
		fetches = append(fetches, fetch{"assets", func(ctx context.Context) (err error) {
			assets, err = c.ListAssets(ctx, model.Filter{BaseID: fromBaseID})
			return err
		}})
	}
	err := fetchAll(r.Context(), sess.User.Username, fetches...)

	pd := s.pageData(r, sess, "New transfer")
	pd.Path = "/transfers"
	if err != nil {
		pd.Error = loadFailedMsg
	}
	if errMsg != "" {
		pd.Error = errMsg
	}

	s.Templates.RenderStatus(w, status, "transfer_new.html", &struct {
		PageData
		SourceBases      []model.Base
		DestinationBases []model.Base
		Assets           []model.Asset
		Reasons          []string
		FromBaseID       string
		Form             url.Values
	}{
		PageData:         pd,
		SourceBases:      model.AccessibleBases(sess.User, ref.Bases),
		DestinationBases: model.DestinationBases(ref.Bases, fromBaseID),
		Assets:           assets,
		Reasons:          model.TransferReasons,
		FromBaseID:       fromBaseID,
		Form:             form,
	})
}
