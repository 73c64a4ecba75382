package http

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/policyauth/policy-auth-api/internal/authz"
	"github.com/policyauth/policy-auth-api/internal/db"
	"github.com/policyauth/policy-auth-api/internal/domain"
	"github.com/policyauth/policy-auth-api/internal/password"
	"github.com/policyauth/policy-auth-api/internal/token"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

var testArgon = password.ArgonParams{
	Memory:      8 * 1024,
	Time:        1,
	Parallelism: 1,
	SaltLen:     16,
	KeyLen:      32,
}

func newTestAPI(clock *fakeClock) *API {
	tokenCfg := token.Config{
		Key:      []byte("test-secret"),
		Issuer:   "policy-auth",
		Audience: "policy-auth-clients",
	}

	accounts := domain.NewAccountService(
		db.NewMemoryStore(),
		password.NewHasher(testArgon),
		password.DefaultPolicy,
		token.NewIssuer(tokenCfg),
		nil,
		clock.Now,
	)
	gate := authz.NewGate(token.NewAuthenticator(tokenCfg), authz.NewRegistry(), clock.Now)

	return NewAPI(slog.New(slog.DiscardHandler), nil, accounts, gate)
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any, bearer string) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func register(t *testing.T, handler http.Handler, email, role, dob, pw string) *httptest.ResponseRecorder {
	t.Helper()
	return doJSON(t, handler, http.MethodPost, "/account/create", RegisterRequest{
		Email:       email,
		Role:        role,
		DateOfBirth: dob,
		Password:    pw,
	}, "")
}

func login(t *testing.T, handler http.Handler, email, pw string) (string, *httptest.ResponseRecorder) {
	t.Helper()

	rec := doJSON(t, handler, http.MethodPost, "/account/login", LoginRequest{Email: email, Password: pw}, "")
	if rec.Code != http.StatusOK {
		return "", rec
	}

	var signed string
	if err := json.NewDecoder(rec.Body).Decode(&signed); err != nil {
		t.Fatalf("decode token response: %v", err)
	}
	return signed, rec
}

func TestRegisterThenDuplicate(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)}
	handler := newTestAPI(clock).Router()

	rec := register(t, handler, "alice@example.com", "user", "2000-01-01", "Passw0rd!")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var ok bool
	if err := json.NewDecoder(rec.Body).Decode(&ok); err != nil || !ok {
		t.Fatalf("expected body true, got %q (err %v)", rec.Body.String(), err)
	}

	rec = register(t, handler, "alice@example.com", "user", "2000-01-01", "Passw0rd!")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate, got %d", rec.Code)
	}
	var msg string
	if err := json.NewDecoder(rec.Body).Decode(&msg); err != nil {
		t.Fatalf("decode duplicate response: %v", err)
	}
	if msg != "User already exists." {
		t.Fatalf("unexpected duplicate message: %q", msg)
	}
}

func TestRegisterValidationProblemsAreListed(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)}
	handler := newTestAPI(clock).Router()

	rec := register(t, handler, "bob@example.com", "user", "1990-03-04", "alllowercase")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var problems []string
	if err := json.NewDecoder(rec.Body).Decode(&problems); err != nil {
		t.Fatalf("decode problems: %v", err)
	}
	if len(problems) != 3 {
		t.Fatalf("expected 3 password problems, got %v", problems)
	}
}

func TestLoginOutcomes(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)}
	handler := newTestAPI(clock).Router()

	if _, rec := login(t, handler, "nobody@example.com", "Passw0rd!"); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown user, got %d", rec.Code)
	}

	if rec := register(t, handler, "alice@example.com", "user", "2000-01-01", "Passw0rd!"); rec.Code != http.StatusOK {
		t.Fatalf("register: expected 200, got %d", rec.Code)
	}

	_, rec := login(t, handler, "alice@example.com", "wrong-password")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for wrong password, got %d", rec.Code)
	}
	var refused bool
	if err := json.NewDecoder(rec.Body).Decode(&refused); err != nil || refused {
		t.Fatalf("expected body false, got %q (err %v)", rec.Body.String(), err)
	}

	signed, rec := login(t, handler, "alice@example.com", "Passw0rd!")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	// The decoded token carries the registration claims.
	auth := token.NewAuthenticator(token.Config{
		Key:      []byte("test-secret"),
		Issuer:   "policy-auth",
		Audience: "policy-auth-clients",
	})
	claims, err := auth.Authenticate(signed, clock.Now())
	if err != nil {
		t.Fatalf("validate issued token: %v", err)
	}
	if role, ok := domain.FindClaim(claims, domain.ClaimRole); !ok || role.Value != "user" {
		t.Fatalf("expected Role=user claim, got %v", claims)
	}
	if dob, ok := domain.FindClaim(claims, domain.ClaimDateOfBirth); !ok || dob.Value != "2000-01-01" {
		t.Fatalf("expected DateOfBirth claim, got %v", claims)
	}
}

func TestProtectedEndpointsRequireToken(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)}
	handler := newTestAPI(clock).Router()

	for _, path := range []string{"/list", "/single", "/home"} {
		rec := doJSON(t, handler, http.MethodGet, path, nil, "")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401 without token, got %d", path, rec.Code)
		}

		rec = doJSON(t, handler, http.MethodGet, path, nil, "not-a-token")
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("%s: expected 401 for garbage token, got %d", path, rec.Code)
		}
	}
}

func TestPolicyRouting(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)}
	handler := newTestAPI(clock).Router()

	if rec := register(t, handler, "alice@example.com", "user", "2000-01-01", "Passw0rd!"); rec.Code != http.StatusOK {
		t.Fatalf("register alice: got %d", rec.Code)
	}
	if rec := register(t, handler, "mel@example.com", "manager", "1985-07-20", "Passw0rd!"); rec.Code != http.StatusOK {
		t.Fatalf("register mel: got %d", rec.Code)
	}

	userToken, rec := login(t, handler, "alice@example.com", "Passw0rd!")
	if rec.Code != http.StatusOK {
		t.Fatalf("login alice: got %d", rec.Code)
	}
	managerToken, rec := login(t, handler, "mel@example.com", "Passw0rd!")
	if rec.Code != http.StatusOK {
		t.Fatalf("login mel: got %d", rec.Code)
	}

	// user: /home and /single yes, /list no
	if rec := doJSON(t, handler, http.MethodGet, "/home", nil, userToken); rec.Code != http.StatusOK {
		t.Fatalf("/home with user token: expected 200, got %d", rec.Code)
	}
	if rec := doJSON(t, handler, http.MethodGet, "/single", nil, userToken); rec.Code != http.StatusOK {
		t.Fatalf("/single with user token: expected 200, got %d", rec.Code)
	}
	if rec := doJSON(t, handler, http.MethodGet, "/list", nil, userToken); rec.Code != http.StatusForbidden {
		t.Fatalf("/list with user token: expected 403, got %d", rec.Code)
	}

	// manager: /home and /list yes, /single no
	if rec := doJSON(t, handler, http.MethodGet, "/list", nil, managerToken); rec.Code != http.StatusOK {
		t.Fatalf("/list with manager token: expected 200, got %d", rec.Code)
	}
	if rec := doJSON(t, handler, http.MethodGet, "/single", nil, managerToken); rec.Code != http.StatusForbidden {
		t.Fatalf("/single with manager token: expected 403, got %d", rec.Code)
	}

	var body string
	rec = doJSON(t, handler, http.MethodGet, "/list", nil, managerToken)
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode /list body: %v", err)
	}
	if body != "Admin and Manager only can have access" {
		t.Fatalf("unexpected /list body: %q", body)
	}
}

func TestSingleEnforcesMinimumAge(t *testing.T) {
	clock := &fakeClock{t: time.Date(2017, 6, 1, 12, 0, 0, 0, time.UTC)}
	handler := newTestAPI(clock).Router()

	// Alice turns 18 on 2018-01-01.
	if rec := register(t, handler, "alice@example.com", "user", "2000-01-01", "Passw0rd!"); rec.Code != http.StatusOK {
		t.Fatalf("register: got %d", rec.Code)
	}

	minorToken, rec := login(t, handler, "alice@example.com", "Passw0rd!")
	if rec.Code != http.StatusOK {
		t.Fatalf("login: got %d", rec.Code)
	}

	if rec := doJSON(t, handler, http.MethodGet, "/single", nil, minorToken); rec.Code != http.StatusForbidden {
		t.Fatalf("/single before 18th birthday: expected 403, got %d", rec.Code)
	}

	// Past the birthday the old token has long expired: token validity is
	// checked before any requirement.
	clock.Set(time.Date(2018, 1, 2, 12, 0, 0, 0, time.UTC))
	if rec := doJSON(t, handler, http.MethodGet, "/single", nil, minorToken); rec.Code != http.StatusUnauthorized {
		t.Fatalf("/single with expired token: expected 401, got %d", rec.Code)
	}

	adultToken, rec := login(t, handler, "alice@example.com", "Passw0rd!")
	if rec.Code != http.StatusOK {
		t.Fatalf("re-login: got %d", rec.Code)
	}
	if rec := doJSON(t, handler, http.MethodGet, "/single", nil, adultToken); rec.Code != http.StatusOK {
		t.Fatalf("/single after 18th birthday: expected 200, got %d", rec.Code)
	}
}
