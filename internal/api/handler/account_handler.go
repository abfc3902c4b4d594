package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cse-motors/dealership-api/internal/api/metrics"
	"github.com/cse-motors/dealership-api/internal/api/middleware"
	"github.com/cse-motors/dealership-api/internal/core/domain"
	"github.com/cse-motors/dealership-api/internal/core/ports"
	"github.com/cse-motors/dealership-api/internal/validate"
)

const (
	loginView    = "account/login"
	registerView = "account/register"
	manageView   = "account/management"
	updateView   = "account/update"
)

// AccountHandler exposes the auth flows over HTTP. Outcomes are either a
// view envelope (view name + payload for the rendering collaborator) or a
// redirect, mirroring the server-rendered navigation of the site.
type AccountHandler struct {
	accounts   ports.AccountService
	pipeline   *validate.Pipeline
	tokenTTL   time.Duration
	production bool
}

func NewAccountHandler(accounts ports.AccountService, pipeline *validate.Pipeline, tokenTTL time.Duration, production bool) *AccountHandler {
	return &AccountHandler{
		accounts:   accounts,
		pipeline:   pipeline,
		tokenTTL:   tokenTTL,
		production: production,
	}
}

// BuildLogin delivers the login view. Already-authenticated callers go
// straight to the account home.
func (h *AccountHandler) BuildLogin(c echo.Context) error {
	if _, ok := middleware.CallerClaims(c); ok {
		return c.Redirect(http.StatusSeeOther, "/account")
	}
	return c.JSON(http.StatusOK, viewOutcome{View: loginView})
}

// BuildRegister delivers the registration view.
func (h *AccountHandler) BuildRegister(c echo.Context) error {
	return c.JSON(http.StatusOK, viewOutcome{View: registerView})
}

// Register creates a new Client account.
//
// @Summary      Register a new account
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  viewOutcome
// @Failure      400   {object}  viewOutcome
// @Failure      500   {object}  viewOutcome
// @Router       /account/register [post]
func (h *AccountHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, viewOutcome{View: registerView, Notice: "Invalid payload."})
	}

	ctx := c.Request().Context()
	echoBack := map[string]string{
		"first_name": req.FirstName,
		"last_name":  req.LastName,
		"email":      req.Email,
	}

	if verr := h.pipeline.Check(ctx, req, h.pipeline.EmailAvailable(req.Email)); verr != nil {
		metrics.RegistrationsTotal.WithLabelValues("validation_failed").Inc()
		return c.JSON(http.StatusBadRequest, viewOutcome{View: registerView, Errors: verr.Fields, Data: echoBack})
	}

	account, err := h.accounts.Register(ctx, req.FirstName, req.LastName, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			// Lost the race against a concurrent registration; surface the
			// storage conflict in the same field-error shape.
			metrics.RegistrationsTotal.WithLabelValues("conflict").Inc()
			return c.JSON(http.StatusBadRequest, viewOutcome{
				View:   registerView,
				Errors: []domain.FieldError{{Field: "email", Message: "Email exists. Please log in or use a different email."}},
				Data:   echoBack,
			})
		case errors.Is(err, domain.ErrHashing):
			metrics.RegistrationsTotal.WithLabelValues("error").Inc()
			return c.JSON(http.StatusInternalServerError, viewOutcome{
				View:   registerView,
				Notice: "Sorry, there was an error processing the registration.",
				Data:   echoBack,
			})
		default:
			metrics.RegistrationsTotal.WithLabelValues("error").Inc()
			return c.JSON(http.StatusInternalServerError, viewOutcome{
				View:   registerView,
				Notice: "Sorry, the registration failed. Please try again.",
				Data:   echoBack,
			})
		}
	}

	metrics.RegistrationsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusCreated, viewOutcome{
		View:   loginView,
		Notice: "Congratulations, you're registered " + account.FirstName + ". Please log in.",
	})
}

// Login verifies credentials and establishes the token cookie plus session
// mirror. Wrong password and unknown email produce the identical response.
//
// @Summary      Log in
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      303   {string}  string  "redirect to /account"
// @Failure      400   {object}  viewOutcome
// @Router       /account/login [post]
func (h *AccountHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, viewOutcome{View: loginView, Notice: "Invalid payload."})
	}

	ctx := c.Request().Context()
	if verr := h.pipeline.Check(ctx, req); verr != nil {
		return c.JSON(http.StatusBadRequest, viewOutcome{
			View:   loginView,
			Errors: verr.Fields,
			Data:   map[string]string{"email": req.Email},
		})
	}

	token, _, err := h.accounts.Login(ctx, req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return c.JSON(http.StatusBadRequest, viewOutcome{
				View:   loginView,
				Notice: "Invalid email or password.",
				Data:   map[string]string{"email": req.Email},
			})
		}
		return c.JSON(http.StatusInternalServerError, viewOutcome{
			View:   loginView,
			Notice: "Sorry, something went wrong. Please try again.",
		})
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	middleware.SetTokenCookie(c, token, h.tokenTTL, h.production)
	return c.Redirect(http.StatusSeeOther, "/account")
}

// Logout clears the token cookie and the session mirror. Always succeeds.
func (h *AccountHandler) Logout(c echo.Context) error {
	if claims, ok := middleware.CallerClaims(c); ok {
		h.accounts.Logout(c.Request().Context(), claims.AccountID)
	}
	middleware.ClearTokenCookie(c, h.production)
	return c.Redirect(http.StatusSeeOther, "/")
}

// Management delivers the account home. The session mirror is consulted
// first purely for display; the token claims remain the fallback and the
// only authorization input.
func (h *AccountHandler) Management(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}
	display := h.accounts.MirroredClaims(c.Request().Context(), claims)
	return c.JSON(http.StatusOK, viewOutcome{View: manageView, Data: claimsResponse(display)})
}

// BuildUpdate delivers the prefilled update form for the target account.
// Route guards have already enforced self-or-Admin.
func (h *AccountHandler) BuildUpdate(c echo.Context) error {
	account, err := h.accounts.GetAccount(c.Request().Context(), c.Param("accountId"))
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return c.Redirect(http.StatusSeeOther, "/account")
		}
		return err
	}
	return c.JSON(http.StatusOK, viewOutcome{View: updateView, Data: toAccountResponse(account)})
}

// Update changes names/email and refreshes the caller's token. The fresh
// claims always carry the caller's prior role regardless of the payload.
func (h *AccountHandler) Update(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updateAccountRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, viewOutcome{View: updateView, Notice: "Invalid payload."})
	}
	if !claims.CanActOn(req.AccountID) {
		return c.Redirect(http.StatusSeeOther, "/account")
	}

	ctx := c.Request().Context()
	echoBack := map[string]string{
		"account_id": req.AccountID,
		"first_name": req.FirstName,
		"last_name":  req.LastName,
		"email":      req.Email,
	}

	if verr := h.pipeline.Check(ctx, req, h.pipeline.EmailAvailableExcluding(req.Email, req.AccountID)); verr != nil {
		metrics.ProfileUpdatesTotal.WithLabelValues("profile", "validation_failed").Inc()
		return c.JSON(http.StatusBadRequest, viewOutcome{View: updateView, Errors: verr.Fields, Data: echoBack})
	}

	token, _, err := h.accounts.UpdateProfile(ctx, claims, req.AccountID, req.FirstName, req.LastName, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			metrics.ProfileUpdatesTotal.WithLabelValues("profile", "conflict").Inc()
			return c.JSON(http.StatusBadRequest, viewOutcome{
				View:   updateView,
				Errors: []domain.FieldError{{Field: "email", Message: "Email already in use."}},
				Data:   echoBack,
			})
		case errors.Is(err, domain.ErrForbidden):
			return c.Redirect(http.StatusSeeOther, "/account")
		default:
			metrics.ProfileUpdatesTotal.WithLabelValues("profile", "error").Inc()
			return c.JSON(http.StatusBadRequest, viewOutcome{
				View:   updateView,
				Notice: "Update failed. Please try again.",
				Data:   echoBack,
			})
		}
	}

	metrics.ProfileUpdatesTotal.WithLabelValues("profile", "success").Inc()
	if token != "" {
		middleware.SetTokenCookie(c, token, h.tokenTTL, h.production)
	}
	return c.Redirect(http.StatusSeeOther, "/account")
}

// UpdatePassword replaces the stored hash. The outstanding token stays
// valid; no forced re-login.
func (h *AccountHandler) UpdatePassword(c echo.Context) error {
	claims, err := ctxClaims(c)
	if err != nil {
		return err
	}

	var req updatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, viewOutcome{View: updateView, Notice: "Invalid payload."})
	}
	if !claims.CanActOn(req.AccountID) {
		return c.Redirect(http.StatusSeeOther, "/account")
	}

	ctx := c.Request().Context()
	if verr := h.pipeline.Check(ctx, req); verr != nil {
		metrics.ProfileUpdatesTotal.WithLabelValues("password", "validation_failed").Inc()
		return c.JSON(http.StatusBadRequest, viewOutcome{
			View:   updateView,
			Errors: verr.Fields,
			Data:   map[string]string{"account_id": req.AccountID},
		})
	}

	if err := h.accounts.UpdatePassword(ctx, req.AccountID, req.Password); err != nil {
		metrics.ProfileUpdatesTotal.WithLabelValues("password", "error").Inc()
		return c.Redirect(http.StatusSeeOther, "/account/update/"+req.AccountID)
	}

	metrics.ProfileUpdatesTotal.WithLabelValues("password", "success").Inc()
	return c.Redirect(http.StatusSeeOther, "/account")
}
