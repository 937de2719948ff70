package web

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/erazemk/milams/internal/auth"
	"github.com/erazemk/milams/internal/model"
)

// AssetsPage handles GET /assets.
func (s *Server) AssetsPage(w http.ResponseWriter, r *http.Request, sess *auth.Session) {
	s.renderAssets(w, r, sess, http.StatusOK, nil, "")
}

// AssetCreateSubmit handles POST /assets.
func (s *Server) AssetCreateSubmit(w http.ResponseWriter, r *http.Request, sess *auth.Session) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	in, err := assetInput(r.PostForm)
	if err == nil {
		_, err = s.client(sess).CreateAsset(r.Context(), in)
	}
	if err != nil {
		slog.Warn("failed to register asset", "user", sess.User.Username, "error", err)
		s.renderAssets(w, r, sess, http.StatusUnprocessableEntity, r.PostForm, submitError("register the asset", err))
		return
	}

	slog.Info("asset registered", "user", sess.User.Username, "asset", in.Name, "serial", in.SerialNumber)
	http.Redirect(w, r, savedURL(r, "/assets", ""), http.StatusSeeOther)
}

func assetInput(form url.Values) (model.AssetInput, error) {
	qty, err := parseQuantity(form, "quantity")
	if err != nil {
		return model.AssetInput{}, err
	}
	value, err := parseMoney(form, "unitValue")
	if err != nil {
		return model.AssetInput{}, err
	}
	status := formValue(form, "status")
	if status == "" {
		status = model.AssetStatusAvailable
	}
	return model.AssetInput{
		Name:            formValue(form, "name"),
		SerialNumber:    formValue(form, "serialNumber"),
		EquipmentTypeID: formValue(form, "equipmentTypeId"),
		BaseID:          formValue(form, "baseId"),
		Quantity:        qty,
		UnitValue:       value,
		Status:          status,
		Notes:           formValue(form, "notes"),
	}, nil
}

func (s *Server) renderAssets(w http.ResponseWriter, r *http.Request, sess *auth.Session, status int, form url.Values, errMsg string) {
	c := s.client(sess)
	filter := model.FilterFromQuery(r.URL.Query())

	var (
		assets []model.Asset
		ref    reference
	)
	err := fetchAll(r.Context(), sess.User.Username,
		fetch{"assets", func(ctx context.Context) (err error) {
			assets, err = c.ListAssets(ctx, filter)
			return err
		}},
		fetch{"reference data", func(ctx context.Context) (err error) {
			ref, err = loadReference(ctx, c, refBases|refEquipmentTypes)
			return err
		}},
	)

	pd := s.pageData(r, sess, "Asset Registry")
	if err != nil {
		pd.Error = loadFailedMsg
	}
	if errMsg != "" {
		pd.Error = errMsg
		pd.Success = ""
	}

	s.Templates.RenderStatus(w, status, "assets.html", &struct {
		PageData
		FilterBar
		Assets []model.Asset
		Form   url.Values
	}{
		PageData: pd,
		FilterBar: FilterBar{
			Filter:         filter,
			Bases:          model.AccessibleBases(sess.User, ref.Bases),
			EquipmentTypes: ref.EquipmentTypes,
			Statuses:       model.AssetStatuses,
		},
		Assets: assets,
		Form:   form,
	})
}
