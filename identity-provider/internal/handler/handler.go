package handler

import (
	"context"
	"net/http"

	"github.com/Astemirdum/firebase-auth/identity-provider/internal/errs"
	"github.com/Astemirdum/firebase-auth/pkg/circuit_breaker"
	"github.com/Astemirdum/firebase-auth/pkg/firebaseauth"
	mw "github.com/Astemirdum/firebase-auth/pkg/middleware"
	"github.com/Astemirdum/firebase-auth/pkg/validate"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Handler struct {
	auth AuthService
	log  *zap.Logger
}

func New(authSvc AuthService, log *zap.Logger) *Handler {
	h := &Handler{
		auth: authSvc,
		log:  log.Named("handler"),
	}
	return h
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	mw.Base(e)

	base := e.Group("", mw.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)

	e.Validator = validate.NewCustomValidator()
	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(mw.RequestLoggerConfig(h.log)),
		middleware.RequestID(),
		mw.NewRateLimiter(apiRPS),
	)
	api.POST("/signup", h.SignUp)
	api.POST("/signin", h.SignIn)
	api.POST("/password-reset", h.SendPasswordResetEmail)
	api.POST("/password-reset/verify", h.VerifyPasswordResetCode)
	api.POST("/password-reset/confirm", h.ConfirmPasswordReset)
	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) SignUp(c echo.Context) error {
	return serve(h, c, h.auth.SignUp)
}

func (h *Handler) SignIn(c echo.Context) error {
	return serve(h, c, h.auth.SignIn)
}

func (h *Handler) SendPasswordResetEmail(c echo.Context) error {
	return serve(h, c, h.auth.SendPasswordResetEmail)
}

func (h *Handler) VerifyPasswordResetCode(c echo.Context) error {
	return serve(h, c, h.auth.VerifyPasswordResetCode)
}

func (h *Handler) ConfirmPasswordReset(c echo.Context) error {
	return serve(h, c, h.auth.ConfirmPasswordReset)
}

// serve binds and validates Req, calls the provider and writes the result.
func serve[Req, Resp any](h *Handler, c echo.Context, call func(context.Context, Req) (Resp, error)) error {
	var req Req
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	resp, err := call(c.Request().Context(), req)
	if err != nil {
		return h.providerError(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

// providerError passes the provider's error envelope through with its own
// code; anything else means the provider could not be used.
func (h *Handler) providerError(c echo.Context, err error) error {
	if respErr, ok := firebaseauth.AsResponseError(err); ok {
		code := respErr.Err.Code
		if code < http.StatusBadRequest || code > 599 {
			code = http.StatusBadRequest
		}
		return c.JSON(code, respErr)
	}
	if errors.Is(err, firebaseauth.ErrMalformedResponse) {
		h.log.Error("malformed provider response", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadGateway, errs.ErrBadProviderResponse.Error())
	}
	if errors.Is(err, circuit_breaker.ErrOpenCB) {
		h.log.Warn("provider call skipped", zap.Error(err))
		return echo.NewHTTPError(http.StatusServiceUnavailable, errs.ErrProviderUnavailable.Error())
	}
	h.log.Error("provider call", zap.Error(err))
	return echo.NewHTTPError(http.StatusServiceUnavailable, errs.ErrProviderUnavailable.Error())
}
