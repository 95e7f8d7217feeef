package controller

import (
	"broadcast-eval-be/internal/dto"
	"broadcast-eval-be/internal/pkg/serverutils"
	"broadcast-eval-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IScheduleController interface {
	RegisterRoutes(r fiber.Router)
	Create(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
}

type scheduleController struct {
	scheduleService service.IScheduleService
}

func NewScheduleController(scheduleService service.IScheduleService) IScheduleController {
	return &scheduleController{
		scheduleService: scheduleService,
	}
}

func (c *scheduleController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/schedule/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Create)
	h.Get("", c.List)
}

func (c *scheduleController) Create(ctx *fiber.Ctx) error {
	employeeID, _ := ctx.Locals("employee_id").(string)
	name, _ := ctx.Locals("name").(string)

	var req dto.CreateScheduleRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.scheduleService.PlaceRequest(ctx.Context(), employeeID, name, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success place schedule request", res))
}

func (c *scheduleController) List(ctx *fiber.Ctx) error {
	res, err := c.scheduleService.ListRequests(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list schedule requests", res))
}
