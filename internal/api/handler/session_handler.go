package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/membersys/account-service/internal/api/metrics"
	"github.com/membersys/account-service/internal/core/domain"
	"github.com/membersys/account-service/internal/core/ports"
)

// SessionCookie is the name of the cookie carrying the session token.
const SessionCookie = "session"

// SessionHandler serves login, logout and the landing page.
type SessionHandler struct {
	accounts ports.AccountService
	sessions ports.SessionService
}

func NewSessionHandler(accounts ports.AccountService, sessions ports.SessionService) *SessionHandler {
	return &SessionHandler{accounts: accounts, sessions: sessions}
}

// Home handles GET /. The session middleware has already redirected anonymous
// visitors to /signup by the time this runs.
func (h *SessionHandler) Home(c echo.Context) error {
	username, _ := c.Get("username").(string)
	return c.JSON(http.StatusOK, map[string]string{
		"status":   "success",
		"username": username,
	})
}

// LoginForm handles GET /form_login.
func (h *SessionHandler) LoginForm(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"form": "login"})
}

// Login handles POST /form_login. On success a session cookie is set; the two
// failure reasons (unknown username, wrong password) are mutually exclusive.
func (h *SessionHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	account, err := h.accounts.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		var v domain.Violations
		if errors.As(err, &v) {
			metrics.LoginsTotal.WithLabelValues("rejected").Inc()
			return c.JSON(http.StatusOK, fail(v...))
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return err
	}

	token, err := h.sessions.Issue(account.Username)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return err
	}

	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.sessions.TTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, statusResponse{Status: "success"})
}

// Logout handles GET /logout: revokes the session, clears the cookie and
// redirects to the login form.
func (h *SessionHandler) Logout(c echo.Context) error {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		if err := h.sessions.Revoke(c.Request().Context(), cookie.Value); err != nil {
			return err
		}
	}

	c.SetCookie(&http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	return c.Redirect(http.StatusFound, "/form_login")
}
