package controller

import (
	"errors"
	"fmt"

	"broadcast-eval-be/internal/config"
	"broadcast-eval-be/internal/pkg/serverutils"
	"broadcast-eval-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IOAuthController interface {
	RegisterRoutes(r fiber.Router)
	Login(ctx *fiber.Ctx) error
	Callback(ctx *fiber.Ctx) error
}

type oauthController struct {
	service service.IOAuthService
	cfg     *config.Config
}

func NewOAuthController(service service.IOAuthService, cfg *config.Config) IOAuthController {
	return &oauthController{service: service, cfg: cfg}
}

func (c *oauthController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth")
	h.Get("/:provider", c.Login)
	h.Get("/:provider/callback", c.Callback)
}

func (c *oauthController) Login(ctx *fiber.Ctx) error {
	provider := ctx.Params("provider")

	url, err := c.service.GetLoginURL(provider)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(err.Error()))
	}

	return ctx.Redirect(url)
}

func (c *oauthController) Callback(ctx *fiber.Ctx) error {
	provider := ctx.Params("provider")
	state := ctx.Query("state")
	code := ctx.Query("code")

	if code == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse("Missing code"))
	}

	res, err := c.service.HandleCallback(ctx.Context(), provider, state, code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidOAuthState):
			return ctx.Status(fiber.StatusBadRequest).JSON(serverutils.ErrorResponse(err.Error()))
		case errors.Is(err, service.ErrEmailDomainBlocked):
			return ctx.Status(fiber.StatusForbidden).JSON(serverutils.ErrorResponse(err.Error()))
		}
		return err
	}

	// The SPA picks the token off the query string and stores it.
	redirectURL := fmt.Sprintf("%s/app?token=%s", c.cfg.App.ClientURL, res.AccessToken)
	return ctx.Redirect(redirectURL, fiber.StatusTemporaryRedirect)
}
