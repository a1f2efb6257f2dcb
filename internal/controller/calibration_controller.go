package controller

import (
	"intellilab-gc-be/internal/dto"
	"intellilab-gc-be/internal/pkg/serverutils"
	"intellilab-gc-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICalibrationController interface {
	RegisterRoutes(r fiber.Router)
	Validate(ctx *fiber.Ctx) error
	DetectionLimit(ctx *fiber.Ctx) error
	GetResults(ctx *fiber.Ctx) error
	ShowResult(ctx *fiber.Ctx) error
	Plot(ctx *fiber.Ctx) error
}

type calibrationController struct {
	service service.ICalibrationService
}

func NewCalibrationController(service service.ICalibrationService) ICalibrationController {
	return &calibrationController{service: service}
}

func (c *calibrationController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/calibration")
	h.Post("/validate", c.Validate)
	h.Post("/detection-limit", c.DetectionLimit)
	h.Get("/results", c.GetResults)
	h.Get("/results/:id", c.ShowResult)
	h.Get("/results/:id/plot.:format", c.Plot)
}

// Validate always answers 200; the verdict is in the body.
func (c *calibrationController) Validate(ctx *fiber.Ctx) error {
	var req dto.ValidateCalibrationRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("Invalid request body")
	}

	res := c.service.Validate(serverutils.RequestContext(ctx), &req)
	return ctx.JSON(serverutils.SuccessResponse("Success validate calibration data", res))
}

func (c *calibrationController) DetectionLimit(ctx *fiber.Ctx) error {
	var req dto.DetectionLimitRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewBadRequest("Invalid request body")
	}

	res, err := c.service.DetectionLimit(serverutils.RequestContext(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success calculate detection limit", res))
}

func (c *calibrationController) GetResults(ctx *fiber.Ctx) error {
	page, limit := serverutils.Pagination(ctx)
	res, err := c.service.GetResults(serverutils.RequestContext(ctx), ctx.Query("analyte"), page, limit)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get calibration results", res))
}

func (c *calibrationController) ShowResult(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.Show(serverutils.RequestContext(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show calibration result", res))
}

func (c *calibrationController) Plot(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}
	format, err := formatParam(ctx)
	if err != nil {
		return err
	}

	data, err := c.service.Plot(serverutils.RequestContext(ctx), id, format)
	if err != nil {
		return err
	}
	return sendImage(ctx, format, data)
}
