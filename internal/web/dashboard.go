package web

import (
	"context"
	"net/http"

	"github.com/erazemk/milams/internal/auth"
	"github.com/erazemk/milams/internal/model"
)

// FilterBar is embedded by pages with a filter bar.
type FilterBar struct {
	Filter         model.Filter
	Bases          []model.Base
	EquipmentTypes []model.EquipmentType
	Statuses       []string
	// Tab is kept across filter submissions on tabbed pages.
	Tab string
}

// Dashboard handles GET /dashboard.
func (s *Server) Dashboard(w http.ResponseWriter, r *http.Request, sess *auth.Session) {
	c := s.client(sess)
	filter := model.FilterFromQuery(r.URL.Query())

	var (
		metrics *model.DashboardMetrics
		ref     reference
	)
	err := fetchAll(r.Context(), sess.User.Username,
		fetch{"dashboard metrics", func(ctx context.Context) (err error) {
			metrics, err = c.DashboardMetrics(ctx, filter)
			return err
		}},
		fetch{"reference data", func(ctx context.Context) (err error) {
			ref, err = loadReference(ctx, c, refBases|refEquipmentTypes)
			return err
		}},
	)

	pd := s.pageData(r, sess, "Dashboard")
	if err != nil {
		pd.Error = loadFailedMsg
	}
	s.Templates.Render(w, "dashboard.html", &struct {
		PageData
		FilterBar
		Metrics *model.DashboardMetrics
	}{
		PageData: pd,
		FilterBar: FilterBar{
			Filter:         filter,
			Bases:          model.AccessibleBases(sess.User, ref.Bases),
			EquipmentTypes: ref.EquipmentTypes,
		},
		Metrics: metrics,
	})
}

// NetMovementPage handles GET /dashboard/net-movement.
func (s *Server) NetMovementPage(w http.ResponseWriter, r *http.Request, sess *auth.Session) {
	filter := model.FilterFromQuery(r.URL.Query())

	pd := s.pageData(r, sess, "Net movement")
	pd.Path = "/dashboard"

	movement, err := s.client(sess).NetMovement(r.Context(), filter)
	if err != nil {
		logLoadError("net movement", sess, err)
		pd.Error = loadFailedMsg
		movement = &model.NetMovement{}
	}

	s.Templates.Render(w, "net_movement.html", &struct {
		PageData
		Filter   model.Filter
		Movement *model.NetMovement
	}{
		PageData: pd,
		Filter:   filter,
		Movement: movement,
	})
}
