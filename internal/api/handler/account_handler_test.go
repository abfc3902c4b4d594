package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cse-motors/dealership-api/internal/api/middleware"
	"github.com/cse-motors/dealership-api/internal/core/domain"
	"github.com/cse-motors/dealership-api/internal/validate"
)

// stubAccountService records calls and returns scripted results.
type stubAccountService struct {
	registerErr error
	loginToken  string
	loginClaims domain.ClaimSet
	loginErr    error
	updateToken string
	updateErr   error
	passwordErr error

	loggedOut       []string
	registeredEmail string
}

func (s *stubAccountService) Register(ctx context.Context, firstName, lastName, email, password string) (*domain.Account, error) {
	if s.registerErr != nil {
		return nil, s.registerErr
	}
	s.registeredEmail = domain.NormalizeEmail(email)
	return &domain.Account{
		ID:        "acc_new",
		FirstName: firstName,
		LastName:  lastName,
		Email:     s.registeredEmail,
		Role:      domain.RoleClient,
	}, nil
}

func (s *stubAccountService) Login(ctx context.Context, email, password string) (string, domain.ClaimSet, error) {
	if s.loginErr != nil {
		return "", domain.ClaimSet{}, s.loginErr
	}
	return s.loginToken, s.loginClaims, nil
}

func (s *stubAccountService) Logout(ctx context.Context, accountID string) {
	s.loggedOut = append(s.loggedOut, accountID)
}

func (s *stubAccountService) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	if id != "acc_1" {
		return nil, domain.ErrAccountNotFound
	}
	return &domain.Account{ID: "acc_1", FirstName: "Jo", LastName: "Doe", Email: "jo@example.com", Role: domain.RoleClient}, nil
}

func (s *stubAccountService) UpdateProfile(ctx context.Context, caller domain.ClaimSet, id, firstName, lastName, email string) (string, domain.ClaimSet, error) {
	if s.updateErr != nil {
		return "", domain.ClaimSet{}, s.updateErr
	}
	claims := caller
	claims.FirstName = firstName
	claims.LastName = lastName
	claims.Email = domain.NormalizeEmail(email)
	return s.updateToken, claims, nil
}

func (s *stubAccountService) UpdatePassword(ctx context.Context, id, password string) error {
	return s.passwordErr
}

func (s *stubAccountService) MirroredClaims(ctx context.Context, caller domain.ClaimSet) domain.ClaimSet {
	return caller
}

// stubEmailLookup backs the pipeline's uniqueness rules.
type stubEmailLookup struct {
	accounts map[string]*domain.Account
}

func (s *stubEmailLookup) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	if a, ok := s.accounts[email]; ok {
		return a, nil
	}
	return nil, domain.ErrAccountNotFound
}

func newTestHandler(svc *stubAccountService, known map[string]*domain.Account) *AccountHandler {
	if known == nil {
		known = map[string]*domain.Account{}
	}
	pipeline := validate.New(&stubEmailLookup{accounts: known})
	return NewAccountHandler(svc, pipeline, time.Hour, false)
}

func jsonRequest(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func authenticate(c echo.Context, claims domain.ClaimSet) {
	c.Set(middleware.AuthenticatedKey, true)
	c.Set(middleware.ClaimsKey, claims)
}

func TestRegister_Success(t *testing.T) {
	e := echo.New()
	svc := &stubAccountService{}
	h := newTestHandler(svc, nil)

	c, rec := jsonRequest(e, http.MethodPost, "/account/register",
		`{"first_name":"Jo","last_name":"Doe","email":"Jo@Example.com","password":"Str0ng&Secret!"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("got %d, want 201: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, loginView) || !strings.Contains(body, "Congratulations, you're registered Jo") {
		t.Fatalf("unexpected body: %s", body)
	}
	if svc.registeredEmail != "jo@example.com" {
		t.Fatalf("email not normalized: %q", svc.registeredEmail)
	}
	// Registration does not log the caller in.
	if sc := rec.Header().Get(echo.HeaderSetCookie); sc != "" {
		t.Fatalf("registration must not set a session cookie: %q", sc)
	}
}

func TestRegister_ValidationFailure(t *testing.T) {
	e := echo.New()
	h := newTestHandler(&stubAccountService{}, nil)

	c, rec := jsonRequest(e, http.MethodPost, "/account/register",
		`{"first_name":"Jo","last_name":"Doe","email":"jo@example.com","password":"weak"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, registerView) || !strings.Contains(body, "password") {
		t.Fatalf("unexpected body: %s", body)
	}
	// Sticky form: the typed values (minus password) come back.
	if !strings.Contains(body, "jo@example.com") {
		t.Fatalf("echo-back data missing: %s", body)
	}
	if strings.Contains(body, "weak") {
		t.Fatalf("password echoed back: %s", body)
	}
}

func TestRegister_KnownEmail(t *testing.T) {
	e := echo.New()
	known := map[string]*domain.Account{
		"jo@example.com": {ID: "acc_1", Email: "jo@example.com"},
	}
	h := newTestHandler(&stubAccountService{}, known)

	c, rec := jsonRequest(e, http.MethodPost, "/account/register",
		`{"first_name":"Jo","last_name":"Doe","email":"Jo@Example.com","password":"Str0ng&Secret!"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Email exists") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestRegister_RaceLoserConflict(t *testing.T) {
	e := echo.New()
	// The pipeline sees the email as free, but the write loses the race.
	h := newTestHandler(&stubAccountService{registerErr: domain.ErrEmailTaken}, nil)

	c, rec := jsonRequest(e, http.MethodPost, "/account/register",
		`{"first_name":"Jo","last_name":"Doe","email":"jo@example.com","password":"Str0ng&Secret!"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Email exists") || !strings.Contains(body, registerView) {
		t.Fatalf("conflict not surfaced as field error: %s", body)
	}
}

func TestRegister_RolePayloadIgnored(t *testing.T) {
	e := echo.New()
	svc := &stubAccountService{}
	h := newTestHandler(svc, nil)

	c, rec := jsonRequest(e, http.MethodPost, "/account/register",
		`{"first_name":"Jo","last_name":"Doe","email":"jo@example.com","password":"Str0ng&Secret!","role":"Admin"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("got %d, want 201", rec.Code)
	}
}

func TestLogin_Success(t *testing.T) {
	e := echo.New()
	svc := &stubAccountService{
		loginToken:  "issued-token",
		loginClaims: domain.ClaimSet{AccountID: "acc_1", Role: domain.RoleClient},
	}
	h := newTestHandler(svc, nil)

	c, rec := jsonRequest(e, http.MethodPost, "/account/login",
		`{"email":"jo@example.com","password":"Str0ng&Secret!"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/account" {
		t.Fatalf("expected redirect to /account, got %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
	setCookie := rec.Header().Get(echo.HeaderSetCookie)
	for _, want := range []string{middleware.TokenCookie + "=issued-token", "HttpOnly", "SameSite=Lax", "Max-Age=3600"} {
		if !strings.Contains(setCookie, want) {
			t.Fatalf("cookie missing %q: %q", want, setCookie)
		}
	}
}

func TestLogin_FailureIsUniform(t *testing.T) {
	e := echo.New()
	h := newTestHandler(&stubAccountService{loginErr: domain.ErrInvalidCredentials}, nil)

	// The same service error covers both unknown email and wrong password;
	// the response must not hint which one happened.
	var bodies []string
	for _, payload := range []string{
		`{"email":"nobody@example.com","password":"Str0ng&Secret!"}`,
		`{"email":"nobody@example.com","password":"Wr0ng&Secret!!"}`,
	} {
		c, rec := jsonRequest(e, http.MethodPost, "/account/login", payload)
		if err := h.Login(c); err != nil {
			t.Fatalf("login: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("got %d, want 400", rec.Code)
		}
		if sc := rec.Header().Get(echo.HeaderSetCookie); sc != "" {
			t.Fatalf("failed login must not set a cookie: %q", sc)
		}
		bodies = append(bodies, rec.Body.String())
	}
	if bodies[0] != bodies[1] {
		t.Fatalf("failure responses differ:\n%s\n%s", bodies[0], bodies[1])
	}
	if !strings.Contains(bodies[0], "Invalid email or password.") {
		t.Fatalf("unexpected notice: %s", bodies[0])
	}
}

func TestLogout(t *testing.T) {
	e := echo.New()
	svc := &stubAccountService{}
	h := newTestHandler(svc, nil)

	c, rec := jsonRequest(e, http.MethodPost, "/account/logout", "")
	authenticate(c, domain.ClaimSet{AccountID: "acc_1", Role: domain.RoleClient})

	if err := h.Logout(c); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/" {
		t.Fatalf("expected redirect to /, got %d", rec.Code)
	}
	if len(svc.loggedOut) != 1 || svc.loggedOut[0] != "acc_1" {
		t.Fatalf("session mirror not cleared: %v", svc.loggedOut)
	}
	setCookie := rec.Header().Get(echo.HeaderSetCookie)
	if !strings.Contains(setCookie, middleware.TokenCookie+"=") || !strings.Contains(setCookie, "Max-Age=0") {
		t.Fatalf("token cookie not cleared: %q", setCookie)
	}
}

func TestBuildLogin_RedirectsAuthenticated(t *testing.T) {
	e := echo.New()
	h := newTestHandler(&stubAccountService{}, nil)

	c, rec := jsonRequest(e, http.MethodGet, "/account/login", "")
	authenticate(c, domain.ClaimSet{AccountID: "acc_1", Role: domain.RoleClient})

	if err := h.BuildLogin(c); err != nil {
		t.Fatalf("build login: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/account" {
		t.Fatalf("authenticated caller not sent home: %d", rec.Code)
	}
}

func TestUpdate_OtherAccountRedirects(t *testing.T) {
	e := echo.New()
	svc := &stubAccountService{updateToken: "fresh"}
	h := newTestHandler(svc, nil)

	c, rec := jsonRequest(e, http.MethodPost, "/account/update",
		`{"account_id":"acc_2","first_name":"Jo","last_name":"Doe","email":"jo@example.com"}`)
	authenticate(c, domain.ClaimSet{AccountID: "acc_1", Role: domain.RoleClient})

	if err := h.Update(c); err != nil {
		t.Fatalf("update: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/account" {
		t.Fatalf("cross-account update not redirected: %d", rec.Code)
	}
	if sc := rec.Header().Get(echo.HeaderSetCookie); sc != "" {
		t.Fatalf("no token should be issued: %q", sc)
	}
}

func TestUpdate_SelfReissuesToken(t *testing.T) {
	e := echo.New()
	svc := &stubAccountService{updateToken: "fresh-token"}
	h := newTestHandler(svc, nil)

	c, rec := jsonRequest(e, http.MethodPost, "/account/update",
		`{"account_id":"acc_1","first_name":"Joan","last_name":"Doe","email":"joan@example.com"}`)
	authenticate(c, domain.ClaimSet{AccountID: "acc_1", Role: domain.RoleClient})

	if err := h.Update(c); err != nil {
		t.Fatalf("update: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/account" {
		t.Fatalf("expected redirect to /account, got %d", rec.Code)
	}
	if !strings.Contains(rec.Header().Get(echo.HeaderSetCookie), middleware.TokenCookie+"=fresh-token") {
		t.Fatalf("token not reissued: %q", rec.Header().Get(echo.HeaderSetCookie))
	}
}

func TestUpdate_EmailConflict(t *testing.T) {
	e := echo.New()
	known := map[string]*domain.Account{
		"taken@example.com": {ID: "acc_9", Email: "taken@example.com"},
	}
	h := newTestHandler(&stubAccountService{}, known)

	c, rec := jsonRequest(e, http.MethodPost, "/account/update",
		`{"account_id":"acc_1","first_name":"Jo","last_name":"Doe","email":"taken@example.com"}`)
	authenticate(c, domain.ClaimSet{AccountID: "acc_1", Role: domain.RoleClient})

	if err := h.Update(c); err != nil {
		t.Fatalf("update: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("got %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Email already in use.") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestUpdatePassword_FailureReturnsToForm(t *testing.T) {
	e := echo.New()
	h := newTestHandler(&stubAccountService{passwordErr: domain.ErrAccountNotFound}, nil)

	c, rec := jsonRequest(e, http.MethodPost, "/account/update-password",
		`{"account_id":"acc_1","password":"Str0ng&Secret!"}`)
	authenticate(c, domain.ClaimSet{AccountID: "acc_1", Role: domain.RoleClient})

	if err := h.UpdatePassword(c); err != nil {
		t.Fatalf("update password: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/account/update/acc_1" {
		t.Fatalf("failure did not return to the form: %d %q", rec.Code, rec.Header().Get(echo.HeaderLocation))
	}
}

func TestBuildUpdate_UnknownAccount(t *testing.T) {
	e := echo.New()
	h := newTestHandler(&stubAccountService{}, nil)

	c, rec := jsonRequest(e, http.MethodGet, "/account/update/acc_missing", "")
	authenticate(c, domain.ClaimSet{AccountID: "acc_missing", Role: domain.RoleClient})
	c.SetParamNames("accountId")
	c.SetParamValues("acc_missing")

	if err := h.BuildUpdate(c); err != nil {
		t.Fatalf("build update: %v", err)
	}
	if rec.Code != http.StatusSeeOther || rec.Header().Get(echo.HeaderLocation) != "/account" {
		t.Fatalf("missing account not redirected: %d", rec.Code)
	}
}

func TestManagement(t *testing.T) {
	e := echo.New()
	h := newTestHandler(&stubAccountService{}, nil)

	c, rec := jsonRequest(e, http.MethodGet, "/account", "")
	authenticate(c, domain.ClaimSet{AccountID: "acc_1", FirstName: "Jo", Role: domain.RoleClient})

	if err := h.Management(c); err != nil {
		t.Fatalf("management: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, manageView) || !strings.Contains(body, "Jo") {
		t.Fatalf("unexpected body: %s", body)
	}
}
