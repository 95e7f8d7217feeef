package controller

import (
	"broadcast-eval-be/internal/pkg/serverutils"
	"broadcast-eval-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IAdminController interface {
	RegisterRoutes(r fiber.Router)
	Stats(ctx *fiber.Ctx) error
	Users(ctx *fiber.Ctx) error
	SetUserRole(ctx *fiber.Ctx) error
	Summaries(ctx *fiber.Ctx) error
	Logs(ctx *fiber.Ctx) error
}

type adminController struct {
	adminService service.IAdminService
}

func NewAdminController(adminService service.IAdminService) IAdminController {
	return &adminController{
		adminService: adminService,
	}
}

func (c *adminController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/admin/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Use(serverutils.RequireRole("admin"))

	h.Get("stats", c.Stats)
	h.Get("users", c.Users)
	h.Put("users/:employeeId/role", c.SetUserRole)
	h.Get("summaries", c.Summaries)
	h.Get("logs", c.Logs)
}

func (c *adminController) Stats(ctx *fiber.Ctx) error {
	res, err := c.adminService.GetStats(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get stats", res))
}

func (c *adminController) Users(ctx *fiber.Ctx) error {
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 20)

	res, err := c.adminService.ListUsers(ctx.Context(), page, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list users", res))
}

func (c *adminController) SetUserRole(ctx *fiber.Ctx) error {
	employeeID := ctx.Params("employeeId")

	var req struct {
		Role string `json:"role" validate:"required"`
	}
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	if err := c.adminService.SetUserRole(ctx.Context(), employeeID, req.Role); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success set user role", fiber.Map{
		"employee_id": employeeID,
		"role":        req.Role,
	}))
}

func (c *adminController) Summaries(ctx *fiber.Ctx) error {
	status := ctx.Query("status")
	language := ctx.Query("language")
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 20)

	res, err := c.adminService.ListSummaries(ctx.Context(), status, language, page, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list summaries", res))
}

func (c *adminController) Logs(ctx *fiber.Ctx) error {
	level := ctx.Query("level")
	page := ctx.QueryInt("page", 1)
	limit := ctx.QueryInt("limit", 50)

	res, err := c.adminService.GetSystemLogs(ctx.Context(), level, page, limit)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get logs", res))
}
