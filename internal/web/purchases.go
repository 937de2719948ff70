package web

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/erazemk/milams/internal/auth"
	"github.com/erazemk/milams/internal/model"
)

type purchasesData struct {
	PageData
	FilterBar
	Purchases []model.Purchase
	Form      url.Values
}

// PurchasesPage handles GET /purchases.
func (s *Server) PurchasesPage(w http.ResponseWriter, r *http.Request, sess *auth.Session) {
	s.renderPurchases(w, r, sess, http.StatusOK, nil, "")
}

// PurchaseCreateSubmit handles POST /purchases.
func (s *Server) PurchaseCreateSubmit(w http.ResponseWriter, r *http.Request, sess *auth.Session) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	in, err := purchaseInput(r.PostForm)
	if err == nil {
		_, err = s.client(sess).CreatePurchase(r.Context(), in)
	}
	if err != nil {
		slog.Warn("failed to record purchase", "user", sess.User.Username, "error", err)
		s.renderPurchases(w, r, sess, http.StatusUnprocessableEntity, r.PostForm, submitError("record the purchase", err))
		return
	}

	slog.Info("purchase recorded", "user", sess.User.Username, "equipment", in.EquipmentType,
		"base", in.BaseID, "quantity", in.Quantity, "total", in.TotalCost().StringFixed(2))
	http.Redirect(w, r, savedURL(r, "/purchases", ""), http.StatusSeeOther)
}

func purchaseInput(form url.Values) (model.PurchaseInput, error) {
	qty, err := parseQuantity(form, "quantity")
	if err != nil {
		return model.PurchaseInput{}, err
	}
	cost, err := parseMoney(form, "unitCost")
	if err != nil {
		return model.PurchaseInput{}, err
	}
	return model.PurchaseInput{
		EquipmentType: formValue(form, "equipmentType"),
		BaseID:        formValue(form, "baseId"),
		Quantity:      qty,
		UnitCost:      cost,
		Vendor:        formValue(form, "vendor"),
		PurchaseOrder: formValue(form, "purchaseOrder"),
		Notes:         formValue(form, "notes"),
	}, nil
}

func (s *Server) renderPurchases(w http.ResponseWriter, r *http.Request, sess *auth.Session, status int, form url.Values, errMsg string) {
	c := s.client(sess)
	filter := model.FilterFromQuery(r.URL.Query())

	var (
		purchases []model.Purchase
		ref       reference
	)
	err := fetchAll(r.Context(), sess.User.Username,
		fetch{"purchases", func(ctx context.Context) (err error) {
			purchases, err = c.ListPurchases(ctx, filter)
			return err
		}},
		fetch{"reference data", func(ctx context.Context) (err error) {
			ref, err = loadReference(ctx, c, refBases|refEquipmentTypes)
			return err
		}},
	)

	pd := s.pageData(r, sess, "Purchases")
	if err != nil {
		pd.Error = loadFailedMsg
	}
	if errMsg != "" {
		pd.Error = errMsg
		pd.Success = ""
	}

	s.Templates.RenderStatus(w, status, "purchases.html", &purchasesData{
		PageData: pd,
		FilterBar: FilterBar{
			Filter:         filter,
			Bases:          model.AccessibleBases(sess.User, ref.Bases),
			EquipmentTypes: ref.EquipmentTypes,
		},
		Purchases: purchases,
		Form:      form,
	})
}
