package backend

import (
	"context"
	"net/http"
	"net/url"

	"github.com/erazemk/milams/internal/model"
)

// Credentials are the login form values.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResult is the backend's answer to a successful login.
type LoginResult struct {
	User  *model.User `json:"user"`
	Token string      `json:"token"`
}

// Login exchanges credentials for a token and profile. No bearer token is sent.
func (c *Client) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	return create[LoginResult](ctx, c.WithToken(""), "login", "/login", creds)
}

// CurrentUser returns the profile the bearer token belongs to.
func (c *Client) CurrentUser(ctx context.Context) (*model.User, error) {
	u := new(model.User)
	if err := c.do(ctx, http.MethodGet, "me", "/me", nil, nil, u); err != nil {
		return nil, err
	}
	return u, nil
}

// DashboardMetrics returns the balance summary for the filtered period.
func (c *Client) DashboardMetrics(ctx context.Context, f model.Filter) (*model.DashboardMetrics, error) {
	m := new(model.DashboardMetrics)
	if err := c.do(ctx, http.MethodGet, "dashboard metrics", "/dashboard/metrics", f.Values(), nil, m); err != nil {
		return nil, err
	}
	return m, nil
}

// NetMovement returns the purchases and transfers behind the net movement.
func (c *Client) NetMovement(ctx context.Context, f model.Filter) (*model.NetMovement, error) {
	n := new(model.NetMovement)
	if err := c.do(ctx, http.MethodGet, "net movement", "/dashboard/net-movement", f.Values(), nil, n); err != nil {
		return nil, err
	}
	return n, nil
}

// ListAssets lists assets.
func (c *Client) ListAssets(ctx context.Context, f model.Filter) ([]model.Asset, error) {
	return list[model.Asset](ctx, c, "assets", "/assets", f.Values())
}

// CreateAsset registers an asset.
func (c *Client) CreateAsset(ctx context.Context, in model.AssetInput) (*model.Asset, error) {
	return create[model.Asset](ctx, c, "assets", "/assets", in)
}

// ListPurchases lists purchases.
func (c *Client) ListPurchases(ctx context.Context, f model.Filter) ([]model.Purchase, error) {
	return list[model.Purchase](ctx, c, "purchases", "/purchases", f.Values())
}

// CreatePurchase records a purchase.
func (c *Client) CreatePurchase(ctx context.Context, in model.PurchaseInput) (*model.Purchase, error) {
	return create[model.Purchase](ctx, c, "purchases", "/purchases", in)
}

// ListTransfers lists transfers.
func (c *Client) ListTransfers(ctx context.Context, f model.Filter) ([]model.Transfer, error) {
	return list[model.Transfer](ctx, c, "transfers", "/transfers", f.Values())
}

// CreateTransfer requests a transfer.
func (c *Client) CreateTransfer(ctx context.Context, in model.TransferInput) (*model.Transfer, error) {
	return create[model.Transfer](ctx, c, "transfers", "/transfers", in)
}

// ListAssignments lists assignments.
func (c *Client) ListAssignments(ctx context.Context, f model.Filter) ([]model.Assignment, error) {
	return list[model.Assignment](ctx, c, "assignments", "/assignments", f.Values())
}

// CreateAssignment assigns an asset to a person.
func (c *Client) CreateAssignment(ctx context.Context, in model.AssignmentInput) (*model.Assignment, error) {
	return create[model.Assignment](ctx, c, "assignments", "/assignments", in)
}

// ListExpenditures lists expenditures.
func (c *Client) ListExpenditures(ctx context.Context, f model.Filter) ([]model.Expenditure, error) {
	return list[model.Expenditure](ctx, c, "expenditures", "/expenditures", f.Values())
}

// CreateExpenditure records an expenditure.
func (c *Client) CreateExpenditure(ctx context.Context, in model.ExpenditureInput) (*model.Expenditure, error) {
	return create[model.Expenditure](ctx, c, "expenditures", "/expenditures", in)
}

// ListUsers lists user accounts.
func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	return list[model.User](ctx, c, "users", "/users", nil)
}

// CreateUser creates a user account.
func (c *Client) CreateUser(ctx context.Context, in model.UserInput) (*model.User, error) {
	return create[model.User](ctx, c, "users", "/users", in)
}

// UpdateUser replaces a user's profile.
func (c *Client) UpdateUser(ctx context.Context, id string, in model.UserInput) (*model.User, error) {
	u := new(model.User)
	if err := c.do(ctx, http.MethodPut, "users", "/users/"+url.PathEscape(id), nil, in, u); err != nil {
		return nil, err
	}
	return u, nil
}

// DeleteUser deletes a user account.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "users", "/users/"+url.PathEscape(id), nil, nil, nil)
}

// ListBases lists the bases.
func (c *Client) ListBases(ctx context.Context) ([]model.Base, error) {
	return list[model.Base](ctx, c, "bases", "/bases", nil)
}

// ListEquipmentTypes lists the equipment types.
func (c *Client) ListEquipmentTypes(ctx context.Context) ([]model.EquipmentType, error) {
	return list[model.EquipmentType](ctx, c, "equipment types", "/equipment-types", nil)
}

// ListRoles lists the roles.
func (c *Client) ListRoles(ctx context.Context) ([]model.Role, error) {
	return list[model.Role](ctx, c, "roles", "/roles", nil)
}
