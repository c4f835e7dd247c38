package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/membersys/account-service/internal/api/metrics"
	"github.com/membersys/account-service/internal/core/domain"
	"github.com/membersys/account-service/internal/core/ports"
)

// AccountHandler serves the registration, verification and password reset
// endpoints.
type AccountHandler struct {
	accounts ports.AccountService
}

func NewAccountHandler(accounts ports.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// SignupForm handles GET /signup. Rendering is left to the client; the
// endpoint only names the form.
func (h *AccountHandler) SignupForm(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"form": "signup"})
}

// Signup handles POST /signup. All violated field rules come back at once in
// invalid_fields, never just the first.
func (h *AccountHandler) Signup(c echo.Context) error {
	var req signupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	_, err := h.accounts.Signup(c.Request().Context(), ports.SignupInput{
		Name:            req.Name,
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		var v domain.Violations
		if errors.As(err, &v) {
			metrics.SignupsTotal.WithLabelValues("invalid").Inc()
			return c.JSON(http.StatusOK, fail(v...))
		}
		metrics.SignupsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.SignupsTotal.WithLabelValues("created").Inc()
	return c.JSON(http.StatusOK, success(
		"Your account has been successfully created. A link has been emailed to you for account confirmation."))
}

// ResendForm handles GET /resend-verification-link.
func (h *AccountHandler) ResendForm(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"form": "resend_verification_link"})
}

// Resend handles POST /resend-verification-link.
func (h *AccountHandler) Resend(c echo.Context) error {
	var req resendRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	err := h.accounts.ResendVerification(c.Request().Context(), req.Email)
	switch {
	case errors.Is(err, domain.ErrAccountNotFound):
		return c.JSON(http.StatusOK, fail(domain.FieldError{
			Field:   "email",
			Message: "The email is not on file, click register to signup",
		}))
	case errors.Is(err, domain.ErrAlreadyVerified):
		return c.JSON(http.StatusOK, fail(domain.FieldError{
			Field:   "email",
			Message: "Your email is already verified",
		}))
	case err != nil:
		return err
	}

	return c.JSON(http.StatusOK, success("A new email verification has been sent"))
}

// Confirm handles GET /confirmation/:token, the link-click confirmation path.
func (h *AccountHandler) Confirm(c echo.Context) error {
	return h.confirm(c, c.Param("token"))
}

// VerificationCodeForm handles GET /verification_code.
func (h *AccountHandler) VerificationCodeForm(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"form": "verification_code"})
}

// VerificationCode handles POST /verification_code, the manual-code
// confirmation path. The code is the token value from the email.
func (h *AccountHandler) VerificationCode(c echo.Context) error {
	var req verificationCodeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	return h.confirm(c, req.Verification)
}

func (h *AccountHandler) confirm(c echo.Context, token string) error {
	res, err := h.accounts.ConfirmEmail(c.Request().Context(), token)
	switch {
	case errors.Is(err, domain.ErrTokenNotFound):
		metrics.VerificationsTotal.WithLabelValues("invalid").Inc()
		return c.JSON(http.StatusNotFound, failMessage("Invalid verification link"))
	case errors.Is(err, domain.ErrTokenExpired):
		metrics.VerificationsTotal.WithLabelValues("expired").Inc()
		return c.JSON(http.StatusGone, failMessage("Your verification link has expired"))
	case err != nil:
		metrics.VerificationsTotal.WithLabelValues("error").Inc()
		return err
	}

	if res.AlreadyVerified {
		metrics.VerificationsTotal.WithLabelValues("already_verified").Inc()
		return c.JSON(http.StatusOK, success("Your email is already verified"))
	}
	metrics.VerificationsTotal.WithLabelValues("verified").Inc()
	return c.JSON(http.StatusOK, success("Verification complete"))
}

// PasswordResetForm handles GET /password-reset.
func (h *AccountHandler) PasswordResetForm(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"form": "password_reset"})
}

// PasswordReset handles POST /password-reset.
func (h *AccountHandler) PasswordReset(c echo.Context) error {
	var req passwordResetRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	err := h.accounts.ResetPassword(c.Request().Context(), req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		var v domain.Violations
		if errors.As(err, &v) {
			metrics.PasswordResetsTotal.WithLabelValues("invalid").Inc()
			return c.JSON(http.StatusOK, fail(v...))
		}
		metrics.PasswordResetsTotal.WithLabelValues("error").Inc()
		return err
	}

	metrics.PasswordResetsTotal.WithLabelValues("ok").Inc()
	return c.JSON(http.StatusOK, success("Your password has been updated to your new password"))
}
