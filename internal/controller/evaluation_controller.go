package controller

import (
	"broadcast-eval-be/internal/dto"
	"broadcast-eval-be/internal/pkg/serverutils"
	"broadcast-eval-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IEvaluationController interface {
	RegisterRoutes(r fiber.Router)
	Submit(ctx *fiber.Ctx) error
	RequestReview(ctx *fiber.Ctx) error
	SaveScores(ctx *fiber.Ctx) error
	Finalize(ctx *fiber.Ctx) error
	Approve(ctx *fiber.Ctx) error
	Reevaluate(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	Mine(ctx *fiber.Ctx) error
	ListPending(ctx *fiber.Ctx) error
	ListCompleted(ctx *fiber.Ctx) error
	ShowRecord(ctx *fiber.Ctx) error
}

type evaluationController struct {
	evaluationService service.IEvaluationService
}

func NewEvaluationController(evaluationService service.IEvaluationService) IEvaluationController {
	return &evaluationController{
		evaluationService: evaluationService,
	}
}

func (c *evaluationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/evaluation/v1")
	h.Use(serverutils.JwtMiddleware)

	h.Post("", c.Submit)
	h.Get("mine", c.Mine)
	h.Get("record", c.ShowRecord)
	h.Post("request-review", c.RequestReview)

	reviewer := h.Group("", serverutils.RequireRole("instructor", "admin"))
	reviewer.Get("pending", c.ListPending)
	reviewer.Get("completed", c.ListCompleted)
	reviewer.Put("scores", c.SaveScores)
	reviewer.Post("finalize", c.Finalize)
	reviewer.Post("approve", c.Approve)
	reviewer.Post("reevaluate", c.Reevaluate)
	reviewer.Delete("", c.Delete)
}

// recordPath pulls the blob path of the target record from the query;
// full paths contain slashes so they cannot ride in a route param.
func recordPath(ctx *fiber.Ctx) (string, error) {
	p := ctx.Query("path")
	if p == "" {
		return "", serverutils.NewValidationError("missing 'path' query parameter")
	}
	return p, nil
}

func (c *evaluationController) Submit(ctx *fiber.Ctx) error {
	employeeID, _ := ctx.Locals("employee_id").(string)
	name, _ := ctx.Locals("name").(string)

	var req dto.SubmitEvaluationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.evaluationService.Submit(ctx.Context(), employeeID, name, &req)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success submit evaluation", res))
}

func (c *evaluationController) RequestReview(ctx *fiber.Ctx) error {
	employeeID, _ := ctx.Locals("employee_id").(string)

	path, err := recordPath(ctx)
	if err != nil {
		return err
	}

	res, err := c.evaluationService.RequestReview(ctx.Context(), employeeID, path)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success request review", res))
}

func (c *evaluationController) SaveScores(ctx *fiber.Ctx) error {
	evaluatedBy, _ := ctx.Locals("employee_id").(string)

	path, err := recordPath(ctx)
	if err != nil {
		return err
	}

	var req dto.SaveScoresRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.evaluationService.SaveScores(ctx.Context(), evaluatedBy, path, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success save scores", res))
}

func (c *evaluationController) Finalize(ctx *fiber.Ctx) error {
	evaluatedBy, _ := ctx.Locals("employee_id").(string)

	path, err := recordPath(ctx)
	if err != nil {
		return err
	}

	res, err := c.evaluationService.Finalize(ctx.Context(), evaluatedBy, path)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success finalize evaluation", res))
}

func (c *evaluationController) Approve(ctx *fiber.Ctx) error {
	evaluatedBy, _ := ctx.Locals("employee_id").(string)

	path, err := recordPath(ctx)
	if err != nil {
		return err
	}

	var req dto.ApproveEvaluationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.evaluationService.Approve(ctx.Context(), evaluatedBy, path, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success approve evaluation", res))
}

func (c *evaluationController) Reevaluate(ctx *fiber.Ctx) error {
	path, err := recordPath(ctx)
	if err != nil {
		return err
	}

	res, err := c.evaluationService.Reevaluate(ctx.Context(), path)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success reopen evaluation", res))
}

func (c *evaluationController) Delete(ctx *fiber.Ctx) error {
	path, err := recordPath(ctx)
	if err != nil {
		return err
	}

	res, err := c.evaluationService.Delete(ctx.Context(), path)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success delete evaluation", res))
}

func (c *evaluationController) Mine(ctx *fiber.Ctx) error {
	employeeID, _ := ctx.Locals("employee_id").(string)

	res, err := c.evaluationService.Mine(ctx.Context(), employeeID)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list my evaluations", res))
}

func (c *evaluationController) ListPending(ctx *fiber.Ctx) error {
	res, err := c.evaluationService.ListPending(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list pending evaluations", res))
}

func (c *evaluationController) ListCompleted(ctx *fiber.Ctx) error {
	res, err := c.evaluationService.ListCompleted(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list completed evaluations", res))
}

func (c *evaluationController) ShowRecord(ctx *fiber.Ctx) error {
	path, err := recordPath(ctx)
	if err != nil {
		return err
	}

	res, err := c.evaluationService.LoadRecord(ctx.Context(), path)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show evaluation record", res))
}
