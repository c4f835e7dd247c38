package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/membersys/account-service/internal/core/domain"
	"github.com/membersys/account-service/internal/core/ports"
)

type stubAccountService struct {
	signupFn  func(ctx context.Context, in ports.SignupInput) (*domain.Account, error)
	resendFn  func(ctx context.Context, email string) error
	confirmFn func(ctx context.Context, token string) (*ports.ConfirmResult, error)
	resetFn   func(ctx context.Context, email, password, confirm string) error
	loginFn   func(ctx context.Context, username, password string) (*domain.Account, error)
}

func (s *stubAccountService) Signup(ctx context.Context, in ports.SignupInput) (*domain.Account, error) {
	return s.signupFn(ctx, in)
}

func (s *stubAccountService) ResendVerification(ctx context.Context, email string) error {
	return s.resendFn(ctx, email)
}

func (s *stubAccountService) ConfirmEmail(ctx context.Context, token string) (*ports.ConfirmResult, error) {
	return s.confirmFn(ctx, token)
}

func (s *stubAccountService) ResetPassword(ctx context.Context, email, password, confirm string) error {
	return s.resetFn(ctx, email, password, confirm)
}

func (s *stubAccountService) Login(ctx context.Context, username, password string) (*domain.Account, error) {
	return s.loginFn(ctx, username, password)
}

func postJSON(t *testing.T, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) statusResponse {
	t.Helper()
	var resp statusResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp
}

func TestAccountHandler_Signup_Success(t *testing.T) {
	stub := &stubAccountService{
		signupFn: func(_ context.Context, in ports.SignupInput) (*domain.Account, error) {
			if in.Username != "bob1" || in.Email != "bob@x.com" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &domain.Account{ID: "acc1", Username: in.Username, Email: in.Email}, nil
		},
	}
	h := NewAccountHandler(stub)

	c, rec := postJSON(t, "/signup",
		`{"name":"Bob","username":"bob1","email":"bob@x.com","password":"pass","confirm_password":"pass"}`)
	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	resp := decodeEnvelope(t, rec)
	if resp.Status != "success" || resp.Message == "" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
}

func TestAccountHandler_Signup_ReturnsAllInvalidFields(t *testing.T) {
	stub := &stubAccountService{
		signupFn: func(_ context.Context, _ ports.SignupInput) (*domain.Account, error) {
			return nil, domain.Violations{
				{Field: "username", Message: "Username must contain between 4 and 11 characters"},
				{Field: "password", Message: "Password length should not be less than four characters"},
				{Field: "confirm_password", Message: "Passwords must match"},
			}
		},
	}
	h := NewAccountHandler(stub)

	c, rec := postJSON(t, "/signup", `{"username":"ab","password":"1","confirm_password":"2"}`)
	if err := h.Signup(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	resp := decodeEnvelope(t, rec)
	if resp.Status != "fail" {
		t.Fatalf("expected fail, got %s", resp.Status)
	}
	if len(resp.InvalidFields) != 3 {
		t.Fatalf("expected 3 invalid fields, got %+v", resp.InvalidFields)
	}
}

func TestAccountHandler_Resend(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus string
		wantField  string
	}{
		{"unknown email", domain.ErrAccountNotFound, "fail", "email"},
		{"already verified", domain.ErrAlreadyVerified, "fail", "email"},
		{"resent", nil, "success", ""},
	}

	for _, tc := range cases {
		stub := &stubAccountService{
			resendFn: func(_ context.Context, _ string) error { return tc.err },
		}
		h := NewAccountHandler(stub)

		c, rec := postJSON(t, "/resend-verification-link", `{"email":"bob@x.com"}`)
		if err := h.Resend(c); err != nil {
			t.Fatalf("%s: handler error: %v", tc.name, err)
		}

		resp := decodeEnvelope(t, rec)
		if resp.Status != tc.wantStatus {
			t.Fatalf("%s: expected status %s, got %s", tc.name, tc.wantStatus, resp.Status)
		}
		if tc.wantField != "" {
			if len(resp.InvalidFields) != 1 || resp.InvalidFields[0].Field != tc.wantField {
				t.Fatalf("%s: unexpected fields %+v", tc.name, resp.InvalidFields)
			}
		}
	}
}

func TestAccountHandler_Confirm(t *testing.T) {
	cases := []struct {
		name     string
		result   *ports.ConfirmResult
		err      error
		wantCode int
	}{
		{"verified", &ports.ConfirmResult{}, nil, http.StatusOK},
		{"already verified", &ports.ConfirmResult{AlreadyVerified: true}, nil, http.StatusOK},
		{"invalid token", nil, domain.ErrTokenNotFound, http.StatusNotFound},
		{"expired token", nil, domain.ErrTokenExpired, http.StatusGone},
	}

	for _, tc := range cases {
		stub := &stubAccountService{
			confirmFn: func(_ context.Context, token string) (*ports.ConfirmResult, error) {
				if token != "tok-123" {
					t.Fatalf("%s: unexpected token %q", tc.name, token)
				}
				return tc.result, tc.err
			},
		}
		h := NewAccountHandler(stub)

		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/confirmation/tok-123", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("token")
		c.SetParamValues("tok-123")

		if err := h.Confirm(c); err != nil {
			t.Fatalf("%s: handler error: %v", tc.name, err)
		}
		if rec.Code != tc.wantCode {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.wantCode, rec.Code)
		}
	}
}

func TestAccountHandler_VerificationCode_UsesSameFlow(t *testing.T) {
	confirmed := ""
	stub := &stubAccountService{
		confirmFn: func(_ context.Context, token string) (*ports.ConfirmResult, error) {
			confirmed = token
			return &ports.ConfirmResult{}, nil
		},
	}
	h := NewAccountHandler(stub)

	c, rec := postJSON(t, "/verification_code", `{"verification":"manual-code"}`)
	if err := h.VerificationCode(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if confirmed != "manual-code" {
		t.Fatalf("expected manual code to be confirmed, got %q", confirmed)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAccountHandler_PasswordReset(t *testing.T) {
	stub := &stubAccountService{
		resetFn: func(_ context.Context, email, password, confirm string) error {
			if email != "bob@x.com" || password != "newpass" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return nil
		},
	}
	h := NewAccountHandler(stub)

	c, rec := postJSON(t, "/password-reset",
		`{"email":"bob@x.com","password":"newpass","confirm_password":"newpass"}`)
	if err := h.PasswordReset(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	resp := decodeEnvelope(t, rec)
	if resp.Status != "success" {
		t.Fatalf("expected success, got %+v", resp)
	}
}

func TestAccountHandler_PasswordReset_Invalid(t *testing.T) {
	stub := &stubAccountService{
		resetFn: func(_ context.Context, _, _, _ string) error {
			return domain.Violations{{Field: "password", Message: "Password length should not be less than four characters"}}
		},
	}
	h := NewAccountHandler(stub)

	c, rec := postJSON(t, "/password-reset", `{"email":"bob@x.com","password":"a","confirm_password":"a"}`)
	if err := h.PasswordReset(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	resp := decodeEnvelope(t, rec)
	if resp.Status != "fail" || len(resp.InvalidFields) != 1 {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
}
