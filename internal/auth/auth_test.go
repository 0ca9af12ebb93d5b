package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestLogin_CorrectPassword(t *testing.T) {
	a := New("secret")

	token, ok := a.Login("secret")
	if !ok {
		t.Fatal("expected login to succeed")
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	if !a.ValidateSession(token) {
		t.Error("expected fresh token to validate")
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	a := New("secret")

	token, ok := a.Login("wrong")
	if ok {
		t.Error("expected login to fail")
	}
	if token != "" {
		t.Error("expected empty token on failed login")
	}
}

func TestLogin_TokensAreUnique(t *testing.T) {
	a := New("secret")

	t1, _ := a.Login("secret")
	t2, _ := a.Login("secret")
	if t1 == t2 {
		t.Error("expected distinct tokens per login")
	}
}

func TestLogout(t *testing.T) {
	a := New("secret")

	token, _ := a.Login("secret")
	a.Logout(token)
	if a.ValidateSession(token) {
		t.Error("expected token invalid after logout")
	}
}

func TestValidateSession_Expired(t *testing.T) {
	a := New("secret")

	token, _ := a.Login("secret")
	a.mu.Lock()
	a.sessions[token] = time.Now().Add(-time.Minute)
	a.mu.Unlock()

	if a.ValidateSession(token) {
		t.Error("expected expired token to be rejected")
	}
	// Expired tokens are pruned on first check
	a.mu.RLock()
	_, exists := a.sessions[token]
	a.mu.RUnlock()
	if exists {
		t.Error("expected expired token removed from session map")
	}
}

func TestValidateSession_Unknown(t *testing.T) {
	a := New("secret")

	if a.ValidateSession("never-issued") {
		t.Error("expected unknown token to be rejected")
	}
}

func TestGeneratePassword_Format(t *testing.T) {
	for i := 0; i < 20; i++ {
		password := GeneratePassword()
		parts := strings.Split(password, "-")
		if len(parts) != 3 {
			t.Fatalf("expected 3 words, got %q", password)
		}
		for _, word := range parts {
			if word == "" {
				t.Errorf("empty word in password %q", password)
			}
		}
	}
}

func TestGetSessionFromRequest(t *testing.T) {
	a := New("secret")
	token, _ := a.Login("secret")

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	if a.GetSessionFromRequest(req) {
		t.Error("expected no session without cookie")
	}

	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	if !a.GetSessionFromRequest(req) {
		t.Error("expected valid session with cookie")
	}

	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "bogus"})
	if a.GetSessionFromRequest(req) {
		t.Error("expected invalid session with bogus cookie")
	}
}

func TestRequireAuth_Redirects(t *testing.T) {
	a := New("secret")
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := a.RequireAuth(next)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin/login" {
		t.Errorf("expected redirect to /admin/login, got %q", loc)
	}

	token, _ := a.Login("secret")
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 with valid session, got %d", rec.Code)
	}
}

func TestRequireAuthAPI_Returns401(t *testing.T) {
	a := New("secret")
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := a.RequireAuthAPI(next)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/settings", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected JSON error body, got %q", ct)
	}
	if !strings.Contains(rec.Body.String(), "UNAUTHORIZED") {
		t.Errorf("expected UNAUTHORIZED code in body, got %q", rec.Body.String())
	}

	token, _ := a.Login("secret")
	req = httptest.NewRequest(http.MethodGet, "/api/admin/settings", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 with valid session, got %d", rec.Code)
	}
}

func TestSessionCookieHelpers(t *testing.T) {
	rec := httptest.NewRecorder()
	SetSessionCookie(rec, "token-value")

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected 1 cookie, got %d", len(cookies))
	}
	c := cookies[0]
	if c.Name != CookieName || c.Value != "token-value" {
		t.Errorf("unexpected cookie: %+v", c)
	}
	if !c.HttpOnly {
		t.Error("expected HttpOnly cookie")
	}
	if c.MaxAge != int(SessionExpiry.Seconds()) {
		t.Errorf("expected MaxAge %d, got %d", int(SessionExpiry.Seconds()), c.MaxAge)
	}

	rec = httptest.NewRecorder()
	ClearSessionCookie(rec)
	cookies = rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge != -1 {
		t.Error("expected clearing cookie with negative MaxAge")
	}
}
