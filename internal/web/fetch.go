package web

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/erazemk/milams/internal/auth"
	"github.com/erazemk/milams/internal/backend"
	"github.com/erazemk/milams/internal/model"
)

const loadFailedMsg = "Some data could not be loaded. Try again later."

// reference holds the selector contents of a page.
type reference struct {
	Bases          []model.Base
	EquipmentTypes []model.EquipmentType
	Assets         []model.Asset
	Roles          []model.Role
}

// Reference lists a page may ask for.
const (
	refBases = 1 << iota
	refEquipmentTypes
	refAssets
	refRoles
)

// loadReference fetches the requested reference lists concurrently. Either
// all of them load or none is returned.
func loadReference(ctx context.Context, c *backend.Client, want int) (reference, error) {
	var ref reference
	g, ctx := errgroup.WithContext(ctx)

	if want&refBases != 0 {
		g.Go(func() (err error) {
			ref.Bases, err = c.ListBases(ctx)
			return err
		})
	}
	if want&refEquipmentTypes != 0 {
		g.Go(func() (err error) {
			ref.EquipmentTypes, err = c.ListEquipmentTypes(ctx)
			return err
		})
	}
	if want&refAssets != 0 {
		g.Go(func() (err error) {
			ref.Assets, err = c.ListAssets(ctx, model.Filter{})
			return err
		})
	}
	if want&refRoles != 0 {
		g.Go(func() (err error) {
			ref.Roles, err = c.ListRoles(ctx)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return reference{}, err
	}
	return ref, nil
}

type fetch struct {
	name string
	run  func(ctx context.Context) error
}

// fetchAll runs independent fetches concurrently and waits for all of them.
// A failing fetch does not cancel the others. Every failure is logged and the
// first one is returned.
func fetchAll(ctx context.Context, user string, fetches ...fetch) error {
	var g errgroup.Group
	for _, f := range fetches {
		g.Go(func() error {
			if err := f.run(ctx); err != nil {
				slog.Error("failed to load", "resource", f.name, "user", user, "error", err)
				return err
			}
			return nil
		})
	}
	return g.Wait()
}

func logLoadError(resource string, sess *auth.Session, err error) {
	slog.Error("failed to load", "resource", resource, "user", sess.User.Username, "error", err)
}
