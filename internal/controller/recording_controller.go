package controller

import (
	"broadcast-eval-be/internal/pkg/serverutils"
	"broadcast-eval-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IRecordingController interface {
	RegisterRoutes(r fiber.Router)
	Upload(ctx *fiber.Ctx) error
	Download(ctx *fiber.Ctx) error
}

type recordingController struct {
	recordingService service.IRecordingService
}

func NewRecordingController(recordingService service.IRecordingService) IRecordingController {
	return &recordingController{
		recordingService: recordingService,
	}
}

func (c *recordingController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/recording/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.Upload)
	h.Get("", c.Download)
}

func (c *recordingController) Upload(ctx *fiber.Ctx) error {
	employeeID, _ := ctx.Locals("employee_id").(string)

	file, err := ctx.FormFile("recording")
	if err != nil {
		return serverutils.NewValidationError("missing 'recording' file field")
	}

	res, err := c.recordingService.UploadRecording(ctx.Context(), employeeID, file)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success upload recording", res))
}

func (c *recordingController) Download(ctx *fiber.Ctx) error {
	path, err := recordPath(ctx)
	if err != nil {
		return err
	}

	content, filename, err := c.recordingService.DownloadRecording(ctx.Context(), path)
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return ctx.Send(content)
}
