package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/farmlog/farm-records/internal/api/middleware"
	"github.com/farmlog/farm-records/internal/core/domain"
	"github.com/farmlog/farm-records/internal/core/service"
	"github.com/farmlog/farm-records/internal/infrastructure/security"
)

// ---------------------------------------------------------------------------
// In-memory repositories
// ---------------------------------------------------------------------------

type memAccounts struct {
	mu     sync.Mutex
	byID   map[int64]*domain.Account
	nextID int64
}

func (r *memAccounts) Create(_ context.Context, a *domain.Account) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.byID {
		if existing.Username == a.Username {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	stored := *a
	stored.ID = r.nextID
	r.byID[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *memAccounts) FindByUsername(_ context.Context, username string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.byID {
		if a.Username == username {
			out := *a
			return &out, nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (r *memAccounts) FindByID(_ context.Context, id int64) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	out := *a
	return &out, nil
}

func (r *memAccounts) UpdatePassword(_ context.Context, id int64, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	a.PasswordHash = hash
	return nil
}

func (r *memAccounts) SoftDelete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return domain.ErrAccountNotFound
	}
	now := time.Now().UTC()
	a.DeletedAt = &now
	return nil
}

func (r *memAccounts) List(_ context.Context) ([]*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Account, 0, len(r.byID))
	for id := int64(1); id <= r.nextID; id++ {
		if a, ok := r.byID[id]; ok {
			c := *a
			out = append(out, &c)
		}
	}
	return out, nil
}

type memFarms struct {
	mu     sync.Mutex
	byID   map[int64]*domain.Farm
	nextID int64
}

func (r *memFarms) Create(_ context.Context, f *domain.Farm) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	f.ID = r.nextID
	stored := *f
	r.byID[f.ID] = &stored
	return nil
}

func (r *memFarms) FindByID(_ context.Context, id int64) (*domain.Farm, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	f, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrFarmNotFound
	}
	out := *f
	return &out, nil
}

func (r *memFarms) ListByOwner(_ context.Context, ownerID int64) ([]*domain.Farm, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Farm
	for id := int64(1); id <= r.nextID; id++ {
		if f, ok := r.byID[id]; ok && f.OwnerID == ownerID {
			c := *f
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memFarms) Update(_ context.Context, f *domain.Farm) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[f.ID]; !ok {
		return domain.ErrFarmNotFound
	}
	stored := *f
	r.byID[f.ID] = &stored
	return nil
}

func (r *memFarms) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrFarmNotFound
	}
	delete(r.byID, id)
	return nil
}

type memCrops struct {
	mu     sync.Mutex
	byID   map[int64]*domain.CropRecord
	nextID int64
}

func (r *memCrops) Create(_ context.Context, c *domain.CropRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	c.ID = r.nextID
	stored := *c
	r.byID[c.ID] = &stored
	return nil
}

func (r *memCrops) FindByID(_ context.Context, id int64) (*domain.CropRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrCropRecordNotFound
	}
	out := *c
	return &out, nil
}

func (r *memCrops) ListByFarm(_ context.Context, farmID int64) ([]*domain.CropRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.CropRecord
	for id := int64(1); id <= r.nextID; id++ {
		if c, ok := r.byID[id]; ok && c.FarmID == farmID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memCrops) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrCropRecordNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *memCrops) DeleteByFarm(_ context.Context, farmID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, c := range r.byID {
		if c.FarmID == farmID {
			delete(r.byID, id)
		}
	}
	return nil
}

type memAudit struct {
	mu     sync.Mutex
	events []domain.AccessDeniedEvent
}

func (a *memAudit) Record(e domain.AccessDeniedEvent) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.events = append(a.events, e)
}

func (a *memAudit) count() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.events)
}

// ---------------------------------------------------------------------------
// Test server
// ---------------------------------------------------------------------------

type testServer struct {
	t     *testing.T
	e     *echo.Echo
	audit *memAudit
	auth  *service.AuthService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := zerolog.Nop()

	accounts := &memAccounts{byID: map[int64]*domain.Account{}}
	farmRepo := &memFarms{byID: map[int64]*domain.Farm{}}
	cropRepo := &memCrops{byID: map[int64]*domain.CropRecord{}}

	hasher := security.NewBcryptHasher(bcrypt.MinCost)
	tokens, err := security.NewTokenService(security.TokenConfig{
		Secret: []byte("router-test-secret"),
		Issuer: "farm-records",
	})
	if err != nil {
		t.Fatalf("token service: %v", err)
	}

	authService := service.NewAuthService(accounts, hasher, tokens, nil, log)
	audit := &memAudit{}
	registry := prometheus.NewRegistry()

	e, err := NewRouter(Dependencies{
		Log:        log,
		Auth:       authService,
		Farms:      service.NewFarmService(farmRepo, cropRepo, log),
		Crops:      service.NewCropRecordService(cropRepo, farmRepo, log),
		Members:    service.NewMemberService(accounts, hasher, log),
		Tokens:     tokens,
		Principals: service.NewPrincipalResolver(accounts, time.Second),
		Audit:      audit,
		Registerer: registry,
		Gatherer:   registry,
	})
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}
	return &testServer{t: t, e: e, audit: audit, auth: authService}
}

func (s *testServer) do(method, path, token, body string) *httptest.ResponseRecorder {
	s.t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) register(username string) {
	s.t.Helper()
	body := `{"username":"` + username + `","password":"s3cret-pass","passwordConfirmation":"s3cret-pass"}`
	if rec := s.do(http.MethodPost, "/v1/auth/register", "", body); rec.Code != http.StatusCreated {
		s.t.Fatalf("register %s: %d %s", username, rec.Code, rec.Body.String())
	}
}

func (s *testServer) login(username string) (token string, principalID int64) {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/v1/auth/login", "", `{"username":"`+username+`","password":"s3cret-pass"}`)
	if rec.Code != http.StatusOK {
		s.t.Fatalf("login %s: %d %s", username, rec.Code, rec.Body.String())
	}
	var resp struct {
		AccessToken string `json:"accessToken"`
		PrincipalID int64  `json:"principalId"`
		TokenType   string `json:"tokenType"`
	}
	decode(s.t, rec, &resp)
	if resp.TokenType != "Bearer" || resp.AccessToken == "" {
		s.t.Fatalf("unexpected login response: %s", rec.Body.String())
	}
	return resp.AccessToken, resp.PrincipalID
}

func (s *testServer) createFarm(token, name string) int64 {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/v1/farms", token, `{"name":"`+name+`","area_hectares":4}`)
	if rec.Code != http.StatusCreated {
		s.t.Fatalf("create farm: %d %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		ID int64 `json:"id"`
	}
	decode(s.t, rec, &resp)
	return resp.ID
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp errorResponse
	decode(t, rec, &resp)
	return resp.Error
}

func path(parts ...any) string {
	var b strings.Builder
	for _, p := range parts {
		switch v := p.(type) {
		case string:
			b.WriteString(v)
		case int64:
			b.WriteString(strconv.FormatInt(v, 10))
		}
	}
	return b.String()
}

// ---------------------------------------------------------------------------
// Scenarios
// ---------------------------------------------------------------------------

func TestRouter_OwnershipScenario(t *testing.T) {
	s := newTestServer(t)
	s.register("alice")
	s.register("bob")
	aliceToken, aliceID := s.login("alice")
	bobToken, _ := s.login("bob")

	farmID := s.createFarm(aliceToken, "North field")

	rec := s.do(http.MethodGet, path("/v1/farms/", farmID), aliceToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("owner GET: expected 200, got %d %s", rec.Code, rec.Body.String())
	}
	var farm struct {
		OwnerID int64 `json:"owner_id"`
	}
	decode(t, rec, &farm)
	if farm.OwnerID != aliceID {
		t.Fatalf("farm owner = %d, want %d", farm.OwnerID, aliceID)
	}

	rec = s.do(http.MethodGet, path("/v1/farms/", farmID), bobToken, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("non-owner GET: expected 403, got %d", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "no access to this resource" {
		t.Fatalf("unexpected denial message %q", msg)
	}
	if s.audit.count() != 1 {
		t.Fatalf("expected one audit event, got %d", s.audit.count())
	}

	rec = s.do(http.MethodPut, path("/v1/farms/", farmID), bobToken, `{"name":"stolen"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("non-owner PUT: expected 403, got %d", rec.Code)
	}

	rec = s.do(http.MethodGet, "/v1/farms/999999", aliceToken, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing farm: expected 404, got %d", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "farm not found" {
		t.Fatalf("unexpected not-found message %q", msg)
	}
	if rec = s.do(http.MethodGet, "/v1/farms/999999", bobToken, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("missing farm for bob: expected 404, got %d", rec.Code)
	}

	rec = s.do(http.MethodGet, path("/v1/farms/", farmID), "", "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("anonymous GET: expected 403, got %d", rec.Code)
	}

	rec = s.do(http.MethodGet, path("/v1/farms/", farmID), "garbage.token.value", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad token GET: expected 401, got %d", rec.Code)
	}

	rec = s.do(http.MethodGet, "/v1/farms/abc", aliceToken, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("non-numeric id: expected 400, got %d", rec.Code)
	}
}

func TestRouter_OwnerComesFromPrincipal(t *testing.T) {
	s := newTestServer(t)
	s.register("alice")
	s.register("bob")
	aliceToken, aliceID := s.login("alice")
	_, bobID := s.login("bob")

	body := `{"name":"Sneaky","owner_id":` + strconv.FormatInt(bobID, 10) + `}`
	rec := s.do(http.MethodPost, "/v1/farms", aliceToken, body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: %d %s", rec.Code, rec.Body.String())
	}
	var farm struct {
		OwnerID int64 `json:"owner_id"`
	}
	decode(t, rec, &farm)
	if farm.OwnerID != aliceID {
		t.Fatalf("owner must be the caller, got %d", farm.OwnerID)
	}
}

func TestRouter_CropRecords(t *testing.T) {
	s := newTestServer(t)
	s.register("alice")
	s.register("bob")
	aliceToken, _ := s.login("alice")
	bobToken, _ := s.login("bob")
	farmID := s.createFarm(aliceToken, "Orchard")

	crop := `{"crop":"apple","planted_at":"2026-03-01T00:00:00Z"}`
	if rec := s.do(http.MethodPost, path("/v1/farms/", farmID, "/crops"), bobToken, crop); rec.Code != http.StatusForbidden {
		t.Fatalf("bob adding crop: expected 403, got %d", rec.Code)
	}

	rec := s.do(http.MethodPost, path("/v1/farms/", farmID, "/crops"), aliceToken, crop)
	if rec.Code != http.StatusCreated {
		t.Fatalf("alice adding crop: %d %s", rec.Code, rec.Body.String())
	}
	var created struct {
		ID int64 `json:"id"`
	}
	decode(t, rec, &created)

	if rec = s.do(http.MethodGet, path("/v1/crops/", created.ID), bobToken, ""); rec.Code != http.StatusForbidden {
		t.Fatalf("bob reading crop: expected 403, got %d", rec.Code)
	}
	if rec = s.do(http.MethodGet, path("/v1/crops/", created.ID), aliceToken, ""); rec.Code != http.StatusOK {
		t.Fatalf("alice reading crop: expected 200, got %d", rec.Code)
	}
	if rec = s.do(http.MethodGet, "/v1/crops/424242", aliceToken, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("missing crop: expected 404, got %d", rec.Code)
	}

	if rec = s.do(http.MethodDelete, path("/v1/farms/", farmID), aliceToken, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("delete farm: expected 204, got %d", rec.Code)
	}
	if rec = s.do(http.MethodGet, path("/v1/crops/", created.ID), aliceToken, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("crop of deleted farm: expected 404, got %d", rec.Code)
	}
}

func TestRouter_MembersAndAdmin(t *testing.T) {
	s := newTestServer(t)
	if err := s.auth.EnsureAdmin(context.Background(), "root", "s3cret-pass"); err != nil {
		t.Fatalf("EnsureAdmin: %v", err)
	}
	s.register("alice")
	s.register("bob")
	aliceToken, aliceID := s.login("alice")
	bobToken, _ := s.login("bob")
	adminToken, _ := s.login("root")

	if rec := s.do(http.MethodGet, path("/v1/members/", aliceID), aliceToken, ""); rec.Code != http.StatusOK {
		t.Fatalf("self read: expected 200, got %d", rec.Code)
	}
	if rec := s.do(http.MethodGet, path("/v1/members/", aliceID), bobToken, ""); rec.Code != http.StatusForbidden {
		t.Fatalf("other member read: expected 403, got %d", rec.Code)
	}
	if rec := s.do(http.MethodGet, path("/v1/members/", aliceID), adminToken, ""); rec.Code != http.StatusOK {
		t.Fatalf("admin read: expected 200, got %d", rec.Code)
	}
	if rec := s.do(http.MethodDelete, path("/v1/members/", aliceID), adminToken, ""); rec.Code != http.StatusForbidden {
		t.Fatalf("admin delete without bypass: expected 403, got %d", rec.Code)
	}

	rec := s.do(http.MethodGet, "/v1/admin/members", bobToken, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("user listing members: expected 403, got %d", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "insufficient permissions" {
		t.Fatalf("unexpected role denial message %q", msg)
	}

	rec = s.do(http.MethodGet, "/v1/admin/members", adminToken, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("admin listing members: expected 200, got %d", rec.Code)
	}
	var list struct {
		Count int `json:"count"`
	}
	decode(t, rec, &list)
	if list.Count != 3 {
		t.Fatalf("expected 3 members, got %d", list.Count)
	}

	if rec = s.do(http.MethodDelete, path("/v1/members/", aliceID), aliceToken, ""); rec.Code != http.StatusNoContent {
		t.Fatalf("self delete: expected 204, got %d", rec.Code)
	}
	if rec = s.do(http.MethodGet, "/v1/farms", aliceToken, ""); rec.Code != http.StatusUnauthorized {
		t.Fatalf("token of deleted account: expected 401, got %d", rec.Code)
	}
	if rec = s.do(http.MethodPost, "/v1/auth/login", "", `{"username":"alice","password":"s3cret-pass"}`); rec.Code != http.StatusUnauthorized {
		t.Fatalf("login of deleted account: expected 401, got %d", rec.Code)
	}
}

func TestRouter_ChangePassword(t *testing.T) {
	s := newTestServer(t)
	s.register("alice")
	token, id := s.login("alice")

	body := `{"currentPassword":"wrong-pass","newPassword":"n3w-password","newPasswordConfirmation":"n3w-password"}`
	if rec := s.do(http.MethodPut, path("/v1/members/", id, "/password"), token, body); rec.Code != http.StatusBadRequest {
		t.Fatalf("wrong current password: expected 400, got %d", rec.Code)
	} else if msg := errorMessage(t, rec); msg != "current password is incorrect" {
		t.Fatalf("unexpected message %q", msg)
	}
	if rec := s.do(http.MethodGet, path("/v1/members/", id), token, ""); rec.Code != http.StatusOK {
		t.Fatalf("session after failed change: expected 200, got %d", rec.Code)
	}

	body = `{"currentPassword":"s3cret-pass","newPassword":"n3w-password","newPasswordConfirmation":"n3w-password"}`
	if rec := s.do(http.MethodPut, path("/v1/members/", id, "/password"), token, body); rec.Code != http.StatusNoContent {
		t.Fatalf("change password: expected 204, got %d %s", rec.Code, rec.Body.String())
	}
	if rec := s.do(http.MethodPost, "/v1/auth/login", "", `{"username":"alice","password":"n3w-password"}`); rec.Code != http.StatusOK {
		t.Fatalf("login with new password: expected 200, got %d", rec.Code)
	}
}

func TestRouter_Registration(t *testing.T) {
	s := newTestServer(t)
	s.register("alice")

	body := `{"username":"alice","password":"s3cret-pass","passwordConfirmation":"s3cret-pass"}`
	if rec := s.do(http.MethodPost, "/v1/auth/register", "", body); rec.Code != http.StatusConflict {
		t.Fatalf("duplicate username: expected 409, got %d", rec.Code)
	}

	body = `{"username":"carol","password":"s3cret-pass","passwordConfirmation":"other-pass"}`
	if rec := s.do(http.MethodPost, "/v1/auth/register", "", body); rec.Code != http.StatusBadRequest {
		t.Fatalf("confirmation mismatch: expected 400, got %d", rec.Code)
	}

	if rec := s.do(http.MethodPost, "/v1/auth/login", "", `{"username":"alice","password":"wrong-pass"}`); rec.Code != http.StatusUnauthorized {
		t.Fatalf("bad password: expected 401, got %d", rec.Code)
	}
	if rec := s.do(http.MethodPost, "/v1/auth/login", "", `{"username":"nobody","password":"wrong-pass"}`); rec.Code != http.StatusUnauthorized {
		t.Fatalf("unknown user: expected 401, got %d", rec.Code)
	}
}

func TestRouter_PublicEndpoints(t *testing.T) {
	s := newTestServer(t)

	if rec := s.do(http.MethodGet, "/health", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("liveness: expected 200, got %d", rec.Code)
	}
	if rec := s.do(http.MethodGet, "/health/ready", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("readiness without checks: expected 200, got %d", rec.Code)
	}
	if rec := s.do(http.MethodGet, "/metrics", "", ""); rec.Code != http.StatusOK {
		t.Fatalf("metrics: expected 200, got %d", rec.Code)
	}
}

func TestRouter_AuthRateLimit(t *testing.T) {
	registry := prometheus.NewRegistry()
	accounts := &memAccounts{byID: map[int64]*domain.Account{}}
	e, err := NewRouter(Dependencies{
		Log:           zerolog.Nop(),
		Auth:          service.NewAuthService(accounts, security.NewBcryptHasher(bcrypt.MinCost), nil, nil, zerolog.Nop()),
		Farms:         service.NewFarmService(&memFarms{byID: map[int64]*domain.Farm{}}, &memCrops{byID: map[int64]*domain.CropRecord{}}, zerolog.Nop()),
		Crops:         service.NewCropRecordService(&memCrops{byID: map[int64]*domain.CropRecord{}}, &memFarms{byID: map[int64]*domain.Farm{}}, zerolog.Nop()),
		Members:       service.NewMemberService(accounts, nil, zerolog.Nop()),
		Principals:    service.NewPrincipalResolver(accounts, time.Second),
		Registerer:    registry,
		Gatherer:      registry,
		AuthRateLimit: 1,
		AuthRateBurst: 2,
	})
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/v1/auth/login", strings.NewReader(`{"username":"nobody","password":"wrong-pass"}`))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}
	if codes[0] != http.StatusUnauthorized || codes[1] != http.StatusUnauthorized || codes[2] != http.StatusTooManyRequests {
		t.Fatalf("unexpected status sequence %v", codes)
	}
}

func TestRouter_RejectsMisconfiguredGuard(t *testing.T) {
	e := echo.New()
	authz := middleware.NewAuthorizer(middleware.AuthorizerConfig{Log: zerolog.Nop()})

	err := middleware.Protect(e, http.MethodGet, "/v1/farms/:id", func(echo.Context) error { return nil },
		authz.Authenticated(),
		authz.Owner(middleware.OwnershipRule{Resource: "farm", Action: "farm.read", Param: "farmId", Lookup: func(context.Context, int64) (int64, error) { return 0, nil }}),
	)
	var cfgErr *domain.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %v", err)
	}
}
