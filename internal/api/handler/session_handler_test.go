package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/membersys/account-service/internal/core/domain"
)

type stubSessionService struct {
	issued   string
	revoked  []string
	validate func(token string) (string, error)
}

func (s *stubSessionService) Issue(username string) (string, error) {
	s.issued = "token-for-" + username
	return s.issued, nil
}

func (s *stubSessionService) Validate(_ context.Context, token string) (string, error) {
	if s.validate != nil {
		return s.validate(token)
	}
	return "", domain.ErrInvalidCredentials
}

func (s *stubSessionService) Revoke(_ context.Context, token string) error {
	s.revoked = append(s.revoked, token)
	return nil
}

func (s *stubSessionService) TTL() time.Duration { return time.Hour }

func TestSessionHandler_Login_SetsCookie(t *testing.T) {
	accounts := &stubAccountService{
		loginFn: func(_ context.Context, username, password string) (*domain.Account, error) {
			if username != "bob1" || password != "pass" {
				t.Fatalf("unexpected credentials: %s %s", username, password)
			}
			return &domain.Account{ID: "acc1", Username: "bob1"}, nil
		},
	}
	sessions := &stubSessionService{}
	h := NewSessionHandler(accounts, sessions)

	c, rec := postJSON(t, "/form_login", `{"username":"bob1","password":"pass"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	resp := decodeEnvelope(t, rec)
	if resp.Status != "success" {
		t.Fatalf("expected success, got %+v", resp)
	}

	cookies := rec.Result().Cookies()
	var found *http.Cookie
	for _, ck := range cookies {
		if ck.Name == SessionCookie {
			found = ck
		}
	}
	if found == nil || found.Value != sessions.issued {
		t.Fatalf("session cookie not set: %+v", cookies)
	}
	if !found.HttpOnly {
		t.Fatalf("session cookie must be HttpOnly")
	}
}

func TestSessionHandler_Login_Rejected(t *testing.T) {
	accounts := &stubAccountService{
		loginFn: func(_ context.Context, _, _ string) (*domain.Account, error) {
			return nil, domain.Violations{{Field: "password", Message: "Password is not valid"}}
		},
	}
	h := NewSessionHandler(accounts, &stubSessionService{})

	c, rec := postJSON(t, "/form_login", `{"username":"bob1","password":"wrong"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	resp := decodeEnvelope(t, rec)
	if resp.Status != "fail" {
		t.Fatalf("expected fail, got %+v", resp)
	}
	if len(resp.InvalidFields) != 1 || resp.InvalidFields[0].Field != "password" {
		t.Fatalf("unexpected fields: %+v", resp.InvalidFields)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatalf("no cookie on failed login")
	}
}

func TestSessionHandler_Logout_RevokesAndRedirects(t *testing.T) {
	sessions := &stubSessionService{}
	h := NewSessionHandler(&stubAccountService{}, sessions)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "tok-1"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/form_login" {
		t.Fatalf("expected redirect to /form_login, got %s", loc)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != "tok-1" {
		t.Fatalf("session not revoked: %+v", sessions.revoked)
	}

	var cleared bool
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == SessionCookie && ck.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Fatalf("session cookie not cleared")
	}
}

func TestSessionHandler_Home(t *testing.T) {
	h := NewSessionHandler(&stubAccountService{}, &stubSessionService{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("username", "bob1")

	if err := h.Home(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
