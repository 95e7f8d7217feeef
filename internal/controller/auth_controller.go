package controller

import (
	"errors"

	"broadcast-eval-be/internal/dto"
	"broadcast-eval-be/internal/pkg/serverutils"
	"broadcast-eval-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAuthController interface {
	RegisterRoutes(r fiber.Router)
	TestLogin(ctx *fiber.Ctx) error
	GateLogin(ctx *fiber.Ctx) error
	Me(ctx *fiber.Ctx) error
}

type authController struct {
	authService service.IAuthService
}

func NewAuthController(authService service.IAuthService) IAuthController {
	return &authController{
		authService: authService,
	}
}

func (c *authController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/auth/v1")
	h.Post("test-login", c.TestLogin)

	protected := h.Group("", serverutils.JwtMiddleware)
	protected.Post("gate-login", c.GateLogin)
	protected.Get("me", c.Me)
}

func (c *authController) TestLogin(ctx *fiber.Ctx) error {
	var req dto.TestLoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.authService.TestLogin(ctx.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTestLoginDisabled):
			return fiber.NewError(fiber.StatusForbidden, err.Error())
		case errors.Is(err, service.ErrUnknownTestUser):
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success test login", res))
}

func (c *authController) GateLogin(ctx *fiber.Ctx) error {
	employeeID, _ := ctx.Locals("employee_id").(string)

	var req dto.GateLoginRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.authService.GateLogin(ctx.Context(), employeeID, &req)
	if err != nil {
		if errors.Is(err, service.ErrWrongGatePassword) {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success gate login", res))
}

// Me echoes the session claims so the client can restore state after a
// reload without decoding the token itself.
func (c *authController) Me(ctx *fiber.Ctx) error {
	employeeID, _ := ctx.Locals("employee_id").(string)
	name, _ := ctx.Locals("name").(string)
	role, _ := ctx.Locals("role").(string)

	return ctx.JSON(serverutils.SuccessResponse("Success get session", dto.UserResponse{
		EmployeeID: employeeID,
		Name:       name,
		Role:       role,
	}))
}
