package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/milams/internal/auth"
	"github.com/erazemk/milams/internal/backend"
	"github.com/erazemk/milams/internal/db"
	"github.com/erazemk/milams/internal/model"
	"github.com/erazemk/milams/internal/session"
)

var accounts = map[string]model.User{
	"admin": {
		ID: "1", Name: "Ada Admin", Username: "admin", Email: "admin@example.mil",
		Role: model.RoleAdmin, IsActive: true,
	},
	"commander": {
		ID: "2", Name: "Cole Commander", Username: "commander", Email: "cc@example.mil",
		Role: model.RoleBaseCommander, AssignedBase: "Fort Alpha", IsActive: true,
	},
	"officer": {
		ID: "3", Name: "Olive Officer", Username: "officer", Email: "lo@example.mil",
		Role: model.RoleLogisticsOfficer, IsActive: true,
	},
}

type recorded struct {
	Query url.Values
	Body  map[string]any
}

// fakeBackend serves canned data for every resource and records the last
// request per route. Every account logs in with password "pw" and receives
// the token "token-<username>".
type fakeBackend struct {
	mu       sync.Mutex
	requests map[string]recorded
	failures map[string]int
	revoked  map[string]bool
	meDelay  atomic.Int64
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		requests: make(map[string]recorded),
		failures: make(map[string]int),
		revoked:  make(map[string]bool),
	}
}

func (f *fakeBackend) fail(route string, status int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[route] = status
}

func (f *fakeBackend) revoke(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revoked[token] = true
}

func (f *fakeBackend) last(route string) (recorded, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.requests[route]
	return rec, ok
}

func (f *fakeBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	route := r.Method + " " + r.URL.Path
	if strings.HasPrefix(r.URL.Path, "/users/") {
		route = r.Method + " /users/{id}"
	}

	var body map[string]any
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&body)
	}

	f.mu.Lock()
	f.requests[route] = recorded{Query: r.URL.Query(), Body: body}
	status, failing := f.failures[route]
	f.mu.Unlock()

	if failing {
		writeJSON(w, status, map[string]string{"message": "Vendor is required"})
		return
	}

	if route == "POST /login" {
		username, _ := body["username"].(string)
		u, ok := accounts[username]
		if !ok || body["password"] != "pw" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid credentials"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"token": "token-" + u.Username, "user": u})
		return
	}

	u, ok := f.authorize(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "unauthorized"})
		return
	}

	switch route {
	case "GET /me":
		if d := f.meDelay.Load(); d > 0 {
			select {
			case <-time.After(time.Duration(d)):
			case <-r.Context().Done():
				return
			}
		}
		writeJSON(w, http.StatusOK, u)
	case "GET /bases":
		writeJSON(w, http.StatusOK, []map[string]any{
			{"id": 1, "name": "Fort Alpha"},
			{"id": 2, "name": "Camp Bravo"},
			{"id": 3, "name": "Outpost Charlie"},
		})
	case "GET /equipment-types":
		writeJSON(w, http.StatusOK, []map[string]any{{"id": 10, "name": "Rifle"}, {"id": 11, "name": "Truck"}})
	case "GET /roles":
		writeJSON(w, http.StatusOK, []map[string]any{
			{"id": 1, "name": model.RoleAdmin},
			{"id": 2, "name": model.RoleBaseCommander},
			{"id": 3, "name": model.RoleLogisticsOfficer},
		})
	case "GET /assets":
		writeJSON(w, http.StatusOK, []map[string]any{{
			"id": 100, "name": "M4 Carbine", "serialNumber": "SN-100", "equipmentType": "Rifle",
			"baseId": 1, "baseName": "Fort Alpha", "quantity": 4, "unitValue": "1200.50", "status": "available",
		}})
	case "GET /purchases":
		writeJSON(w, http.StatusOK, []map[string]any{{
			"id": 1, "equipmentType": "Rifle", "baseName": "Fort Alpha", "quantity": 10,
			"unitCost": 25.5, "vendor": "Acme Arms", "createdAt": "2024-03-01T10:00:00Z",
		}})
	case "GET /transfers", "GET /assignments", "GET /expenditures":
		writeJSON(w, http.StatusOK, []any{})
	case "GET /users":
		writeJSON(w, http.StatusOK, []model.User{accounts["admin"], accounts["commander"], accounts["officer"]})
	case "GET /dashboard/metrics":
		writeJSON(w, http.StatusOK, map[string]any{
			"openingBalance": 100, "closingBalance": 117, "netMovement": 17,
			"assignedAssets": 5, "expendedAssets": 2,
			"recentActivity": []map[string]any{{"description": "Purchased 10 Rifle", "timestamp": "2024-03-01T10:00:00Z"}},
		})
	case "GET /dashboard/net-movement":
		writeJSON(w, http.StatusOK, map[string]any{
			"purchases":    []map[string]any{{"equipmentType": "Rifle", "quantity": 10, "unitCost": "25.50"}},
			"transfersIn":  []map[string]any{{"assetName": "M4 Carbine", "fromBaseName": "Camp Bravo", "quantity": 5}},
			"transfersOut": []map[string]any{{"assetName": "M4 Carbine", "toBaseName": "Outpost Charlie", "quantity": 3}},
		})
	case "POST /assets", "POST /purchases", "POST /transfers", "POST /assignments", "POST /expenditures", "POST /users":
		body["id"] = 99
		writeJSON(w, http.StatusCreated, body)
	case "PUT /users/{id}":
		writeJSON(w, http.StatusOK, body)
	case "DELETE /users/{id}":
		w.WriteHeader(http.StatusNoContent)
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeBackend) authorize(r *http.Request) (model.User, bool) {
	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	f.mu.Lock()
	revoked := f.revoked[token]
	f.mu.Unlock()
	if revoked {
		return model.User{}, false
	}
	u, ok := accounts[strings.TrimPrefix(token, "token-")]
	return u, ok
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

type testEnv struct {
	t       *testing.T
	backend *fakeBackend
	handler http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	fb := newFakeBackend()
	srv := httptest.NewServer(fb)
	t.Cleanup(srv.Close)

	store, err := session.New(db.NewTestDB(t), "test-secret", session.Options{})
	require.NoError(t, err)

	client := backend.New(backend.Config{BaseURL: srv.URL, Timeout: 5 * time.Second})
	gateway := auth.NewGateway(client, store, 100*time.Millisecond)

	handler, err := NewRouter(gateway, client)
	require.NoError(t, err)

	return &testEnv{t: t, backend: fb, handler: handler}
}

func (e *testEnv) do(method, target string, form url.Values, cookies []*http.Cookie) *httptest.ResponseRecorder {
	e.t.Helper()

	var req *http.Request
	if form != nil {
		req = httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) login(username string) []*http.Cookie {
	e.t.Helper()

	rec := e.do(http.MethodPost, "/login", url.Values{"username": {username}, "password": {"pw"}}, nil)
	require.Equal(e.t, http.StatusSeeOther, rec.Code)
	require.Equal(e.t, "/dashboard", rec.Header().Get("Location"))

	cookies := rec.Result().Cookies()
	require.NotEmpty(e.t, cookies)
	return cookies
}

// selectOptions returns the markup of the select named name.
func selectOptions(t *testing.T, body, name string) string {
	t.Helper()

	start := strings.Index(body, `name="`+name+`"`)
	require.NotEqual(t, -1, start, "select %s not found", name)
	end := strings.Index(body[start:], "</select>")
	require.NotEqual(t, -1, end)
	return body[start : start+end]
}

func TestDecide(t *testing.T) {
	admin := accounts["admin"]
	officer := accounts["officer"]

	tests := []struct {
		name  string
		sess  *auth.Session
		roles []string
		want  Decision
	}{
		{"nil session", nil, nil, DecisionLogin},
		{"pending", &auth.Session{State: auth.StatePending}, nil, DecisionWait},
		{"pending with roles", &auth.Session{State: auth.StatePending}, adminRoles, DecisionWait},
		{"anonymous", auth.Anonymous(), nil, DecisionLogin},
		{"authenticated without user", &auth.Session{State: auth.StateAuthenticated}, nil, DecisionLogin},
		{"no role restriction", &auth.Session{State: auth.StateAuthenticated, User: &officer}, nil, DecisionRender},
		{"role in set", &auth.Session{State: auth.StateAuthenticated, User: &admin}, commandRoles, DecisionRender},
		{"role not in set", &auth.Session{State: auth.StateAuthenticated, User: &officer}, commandRoles, DecisionLanding},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.sess, tt.roles))
		})
	}
}

func TestVisibleMenu(t *testing.T) {
	paths := func(items []MenuItem) []string {
		var out []string
		for _, item := range items {
			out = append(out, item.Path)
		}
		return out
	}

	admin := accounts["admin"]
	commander := accounts["commander"]
	officer := accounts["officer"]

	assert.Equal(t, []string{"/dashboard", "/purchases", "/transfers", "/assignments", "/assets", "/users"}, paths(VisibleMenu(&admin)))
	assert.Equal(t, []string{"/dashboard", "/purchases", "/transfers", "/assignments", "/assets"}, paths(VisibleMenu(&commander)))
	assert.Equal(t, []string{"/dashboard", "/purchases", "/transfers"}, paths(VisibleMenu(&officer)))
	assert.Empty(t, VisibleMenu(nil))
}

func TestMenuMatchesGuard(t *testing.T) {
	// A visible menu entry must never lead to a redirect.
	for _, username := range []string{"admin", "commander", "officer"} {
		u := accounts[username]
		sess := &auth.Session{State: auth.StateAuthenticated, User: &u, Token: "t"}
		for _, item := range VisibleMenu(&u) {
			assert.Equal(t, DecisionRender, Decide(sess, rolesFor(item.Path)), "%s on %s", username, item.Path)
		}
	}
}

func TestAnonymousRedirectsToLogin(t *testing.T) {
	e := newTestEnv(t)

	for _, path := range []string{"/", "/dashboard", "/purchases", "/users", "/transfers/new"} {
		rec := e.do(http.MethodGet, path, nil, nil)
		assert.Equal(t, http.StatusSeeOther, rec.Code, path)
		assert.Equal(t, "/login", rec.Header().Get("Location"), path)
	}
}

func TestRoleGuard(t *testing.T) {
	e := newTestEnv(t)
	admin := e.login("admin")
	commander := e.login("commander")
	officer := e.login("officer")

	tests := []struct {
		cookies []*http.Cookie
		path    string
		want    int
	}{
		{officer, "/dashboard", http.StatusOK},
		{officer, "/purchases", http.StatusOK},
		{officer, "/transfers", http.StatusOK},
		{officer, "/assets", http.StatusSeeOther},
		{officer, "/assignments", http.StatusSeeOther},
		{officer, "/users", http.StatusSeeOther},
		{commander, "/assets", http.StatusOK},
		{commander, "/assignments", http.StatusOK},
		{commander, "/users", http.StatusSeeOther},
		{admin, "/users", http.StatusOK},
	}

	for _, tt := range tests {
		rec := e.do(http.MethodGet, tt.path, nil, tt.cookies)
		require.Equal(t, tt.want, rec.Code, tt.path)
		if tt.want == http.StatusSeeOther {
			assert.Equal(t, "/dashboard", rec.Header().Get("Location"), tt.path)
		}
	}

	// Writes are guarded like reads.
	rec := e.do(http.MethodPost, "/users/2/delete", url.Values{}, officer)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	_, called := e.backend.last("DELETE /users/{id}")
	assert.False(t, called)
}

func TestPendingSession(t *testing.T) {
	e := newTestEnv(t)
	cookies := e.login("admin")

	e.backend.meDelay.Store(int64(time.Second))
	rec := e.do(http.MethodGet, "/dashboard", nil, cookies)

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Contains(t, rec.Body.String(), `http-equiv="refresh"`)
	for _, c := range rec.Result().Cookies() {
		assert.NotEqual(t, session.CookieName, c.Name, "pending must keep the session")
	}

	e.backend.meDelay.Store(0)
	rec = e.do(http.MethodGet, "/dashboard", nil, cookies)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogin(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(http.MethodGet, "/login", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `action="/login"`)

	rec = e.do(http.MethodPost, "/login", url.Values{"username": {"admin"}, "password": {"wrong"}}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid username or password.")
	assert.Contains(t, rec.Body.String(), `value="admin"`)
	assert.Empty(t, rec.Result().Cookies())

	rec = e.do(http.MethodPost, "/login", url.Values{"username": {""}, "password": {""}}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	cookies := e.login("admin")
	assert.Equal(t, session.CookieName, cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)

	// Signed in users skip the login form.
	rec = e.do(http.MethodGet, "/login", nil, cookies)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))

	rec = e.do(http.MethodGet, "/", nil, cookies)
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))
}

func TestLoginBackendDown(t *testing.T) {
	e := newTestEnv(t)
	e.backend.fail("POST /login", http.StatusInternalServerError)

	rec := e.do(http.MethodPost, "/login", url.Values{"username": {"admin"}, "password": {"pw"}}, nil)
	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), "Sign in failed.")
}

func TestLogout(t *testing.T) {
	e := newTestEnv(t)
	cookies := e.login("officer")

	rec := e.do(http.MethodPost, "/logout", url.Values{}, cookies)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	rec = e.do(http.MethodGet, "/dashboard", nil, cookies)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRevokedTokenSignsOut(t *testing.T) {
	e := newTestEnv(t)
	cookies := e.login("officer")
	e.backend.revoke("token-officer")

	rec := e.do(http.MethodGet, "/purchases", nil, cookies)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	var cleared bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}

func TestDashboard(t *testing.T) {
	e := newTestEnv(t)
	cookies := e.login("admin")

	rec := e.do(http.MethodGet, "/dashboard?baseId=1&search=&status=+", nil, cookies)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "117")
	assert.Contains(t, body, "Purchased 10 Rifle")
	assert.Contains(t, body, `href="/dashboard/net-movement?baseId=1"`)
	assert.Contains(t, body, "User Management")

	got, ok := e.backend.last("GET /dashboard/metrics")
	require.True(t, ok)
	assert.Equal(t, url.Values{"baseId": {"1"}}, got.Query)
}

func TestDashboardMenuHidesForbiddenPages(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(http.MethodGet, "/dashboard", nil, e.login("officer"))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, `href="/purchases"`)
	assert.NotContains(t, body, `href="/assets"`)
	assert.NotContains(t, body, `href="/users"`)
}

func TestNetMovement(t *testing.T) {
	e := newTestEnv(t)
	cookies := e.login("commander")

	rec := e.do(http.MethodGet, "/dashboard/net-movement?baseId=1", nil, cookies)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "255.00")
	assert.Contains(t, body, "Outpost Charlie")

	got, _ := e.backend.last("GET /dashboard/net-movement")
	assert.Equal(t, "1", got.Query.Get("baseId"))
}

func TestPurchasesList(t *testing.T) {
	e := newTestEnv(t)
	cookies := e.login("officer")

	rec := e.do(http.MethodGet, "/purchases", nil, cookies)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Acme Arms")
	assert.Contains(t, body, "255.00")
	assert.Contains(t, body, "2024-03-01")

	got, _ := e.backend.last("GET /purchases")
	assert.Empty(t, got.Query, "an empty filter sends no parameters")
}

func TestCommanderSeesOnlyOwnBase(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(http.MethodGet, "/purchases", nil, e.login("commander"))
	require.Equal(t, http.StatusOK, rec.Code)

	bases := selectOptions(t, rec.Body.String(), "baseId")
	assert.Contains(t, bases, "Fort Alpha")
	assert.NotContains(t, bases, "Camp Bravo")
}

func TestPurchaseCreate(t *testing.T) {
	e := newTestEnv(t)
	cookies := e.login("officer")

	rec := e.do(http.MethodPost, "/purchases", url.Values{
		"equipmentType": {"10"},
		"baseId":        {"1"},
		"quantity":      {"10"},
		"unitCost":      {"25.50"},
		"vendor":        {" Acme Arms "},
	}, cookies)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/purchases?saved=1", rec.Header().Get("Location"))

	got, ok := e.backend.last("POST /purchases")
	require.True(t, ok)
	assert.Equal(t, "Acme Arms", got.Body["vendor"])
	assert.EqualValues(t, 10, got.Body["quantity"])
	assert.Equal(t, "25.5", got.Body["unitCost"])

	rec = e.do(http.MethodGet, "/purchases?saved=1", nil, cookies)
	assert.Contains(t, rec.Body.String(), "Saved.")
}

func TestPurchaseCreateKeepsFilter(t *testing.T) {
	e := newTestEnv(t)
	cookies := e.login("officer")

	rec := e.do(http.MethodGet, "/purchases?baseId=1", nil, cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `action="/purchases?baseId=1"`)

	rec = e.do(http.MethodPost, "/purchases?baseId=1", url.Values{
		"equipmentType": {"10"},
		"baseId":        {"2"},
		"quantity":      {"1"},
		"unitCost":      {"5"},
		"vendor":        {"Acme Arms"},
	}, cookies)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/purchases?baseId=1&saved=1", rec.Header().Get("Location"))

	got, ok := e.backend.last("POST /purchases")
	require.True(t, ok)
	assert.Equal(t, "2", got.Body["baseId"])
}

func TestPurchaseCreateInvalidQuantity(t *testing.T) {
	e := newTestEnv(t)
	cookies := e.login("officer")

	rec := e.do(http.MethodPost, "/purchases", url.Values{
		"equipmentType": {"10"},
		"baseId":        {"1"},
		"quantity":      {"0"},
		"unitCost":      {"25.50"},
		"vendor":        {"Acme Arms"},
	}, cookies)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Quantity must be a whole number of at least 1.")
	assert.Contains(t, rec.Body.String(), `value="Acme Arms"`)

	_, called := e.backend.last("POST /purchases")
	assert.False(t, called)
}

func TestPurchaseCreateBackendError(t *testing.T) {
	e := newTestEnv(t)
	cookies := e.login("officer")
	e.backend.fail("POST /purchases", http.StatusBadRequest)

	rec := e.do(http.MethodPost, "/purchases", url.Values{
		"equipmentType": {"10"},
		"baseId":        {"1"},
		"quantity":      {"3"},
		"unitCost":      {"9.99"},
		"vendor":        {"Acme Arms"},
	}, cookies)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Could not record the purchase. Vendor is required")
	assert.Contains(t, body, `value="9.99"`)
}

func TestListFailureShowsBanner(t *testing.T) {
	e := newTestEnv(t)
	cookies := e.login("officer")
	e.backend.fail("GET /purchases", http.StatusInternalServerError)

	rec := e.do(http.MethodGet, "/purchases", nil, cookies)
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Some data could not be loaded.")
	assert.Contains(t, body, "No purchases found.")
	// Reference data loads independently of the failed list.
	assert.Contains(t, body, "Camp Bravo")
}

func TestTransferDestinationExcludesSource(t *testing.T) {
	e := newTestEnv(t)
	cookies := e.login("admin")

	rec := e.do(http.MethodGet, "/transfers/new", nil, cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), `name="toBaseId"`)

	rec = e.do(http.MethodGet, "/transfers/new?fromBaseId=1", nil, cookies)
	require.Equal(t, http.StatusOK, rec.Code)

	destinations := selectOptions(t, rec.Body.String(), "toBaseId")
	assert.NotContains(t, destinations, `value="1"`)
	assert.Contains(t, destinations, `value="2"`)
	assert.Contains(t, destinations, `value="3"`)

	assets, _ := e.backend.last("GET /assets")
	assert.Equal(t, "1", assets.Query.Get("baseId"))
}

func TestTransferCreate(t *testing.T) {
	e := newTestEnv(t)
	cookies := e.login("officer")

	form := url.Values{
		"assetId":    {"100"},
		"fromBaseId": {"1"},
		"toBaseId":   {"1"},
		"quantity":   {"2"},
		"reason":     {"Redeployment"},
	}
	rec := e.do(http.MethodPost, "/transfers", form, cookies)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Choose two different bases.")
	_, called := e.backend.last("POST /transfers")
	assert.False(t, called)

	form.Set("toBaseId", "2")
	rec = e.do(http.MethodPost, "/transfers", form, cookies)
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	got, ok := e.backend.last("POST /transfers")
	require.True(t, ok)
	assert.Equal(t, "2", got.Body["toBaseId"])
	assert.EqualValues(t, 2, got.Body["quantity"])
}

func TestAssignmentsTabs(t *testing.T) {
	e := newTestEnv(t)
	cookies := e.login("commander")

	rec := e.do(http.MethodGet, "/assignments", nil, cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No assignments found.")
	_, listed := e.backend.last("GET /expenditures")
	assert.False(t, listed)

	rec = e.do(http.MethodGet, "/assignments?tab=expenditures&status=active", nil, cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No expenditures found.")
	assert.Contains(t, rec.Body.String(), `name="tab" value="expenditures"`)

	got, _ := e.backend.last("GET /expenditures")
	assert.Equal(t, url.Values{"status": {"active"}}, got.Query)
}

func TestExpenditureCreate(t *testing.T) {
	e := newTestEnv(t)
	cookies := e.login("commander")

	rec := e.do(http.MethodPost, "/expenditures", url.Values{
		"assetId":         {"100"},
		"quantity":        {"1"},
		"reason":          {"Training"},
		"expenditureDate": {"2024-03-02"},
		"authorizedBy":    {"Maj. Smith"},
	}, cookies)

	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/assignments?saved=1&tab=expenditures", rec.Header().Get("Location"))

	got, _ := e.backend.last("POST /expenditures")
	assert.Equal(t, "Maj. Smith", got.Body["authorizedBy"])
}

func TestAssetsPage(t *testing.T) {
	e := newTestEnv(t)
	cookies := e.login("commander")

	rec := e.do(http.MethodGet, "/assets?status=available", nil, cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "M4 Carbine")
	assert.Contains(t, rec.Body.String(), "4802.00")

	rec = e.do(http.MethodPost, "/assets", url.Values{
		"name":            {"Humvee"},
		"serialNumber":    {"HV-1"},
		"equipmentTypeId": {"11"},
		"baseId":          {"1"},
		"quantity":        {"1"},
		"unitValue":       {"-5"},
	}, cookies)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Enter a non-negative amount")
}

func TestUserManagement(t *testing.T) {
	e := newTestEnv(t)
	cookies := e.login("admin")

	rec := e.do(http.MethodGet, "/users/2/edit", nil, cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `action="/users/2"`)
	assert.Contains(t, rec.Body.String(), `value="Cole Commander"`)

	rec = e.do(http.MethodGet, "/users/42/edit", nil, cookies)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = e.do(http.MethodPost, "/users/2", url.Values{
		"name":         {"Cole Commander"},
		"username":     {"commander"},
		"email":        {"cc@example.mil"},
		"role":         {model.RoleBaseCommander},
		"assignedBase": {"Camp Bravo"},
		"isActive":     {"true"},
		"password":     {""},
	}, cookies)
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	got, ok := e.backend.last("PUT /users/{id}")
	require.True(t, ok)
	assert.NotContains(t, got.Body, "password")
	assert.Equal(t, "Camp Bravo", got.Body["assignedBase"])
	assert.Equal(t, true, got.Body["isActive"])

	rec = e.do(http.MethodPost, "/users", url.Values{"name": {"New"}, "username": {"new"}, "role": {model.RoleAdmin}}, cookies)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "A password is required for new users.")

	rec = e.do(http.MethodPost, "/users/1/delete", url.Values{}, cookies)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	_, deleted := e.backend.last("DELETE /users/{id}")
	assert.False(t, deleted)

	rec = e.do(http.MethodPost, "/users/3/delete", url.Values{}, cookies)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	_, deleted = e.backend.last("DELETE /users/{id}")
	assert.True(t, deleted)
}

func TestUserUpdateKeepsAssignedBase(t *testing.T) {
	e := newTestEnv(t)
	cookies := e.login("admin")

	rec := e.do(http.MethodPost, "/users/3", url.Values{
		"name":         {"Olive Officer"},
		"username":     {"officer"},
		"email":        {"olive@example.mil"},
		"role":         {model.RoleLogisticsOfficer},
		"assignedBase": {"Fort Alpha"},
		"isActive":     {"true"},
	}, cookies)
	require.Equal(t, http.StatusSeeOther, rec.Code)

	got, ok := e.backend.last("PUT /users/{id}")
	require.True(t, ok)
	assert.Equal(t, "olive@example.mil", got.Body["email"])
	assert.Equal(t, "Fort Alpha", got.Body["assignedBase"])

	in := userInput(url.Values{"role": {model.RoleAdmin}, "assignedBase": {"Camp Bravo"}, "isActive": {"true"}})
	assert.Equal(t, "Camp Bravo", in.AssignedBase)
	assert.True(t, in.IsActive)
}

func TestStaticAssets(t *testing.T) {
	e := newTestEnv(t)

	rec := e.do(http.MethodGet, "/static/style.css", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/css")
}
