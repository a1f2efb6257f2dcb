package controller

import (
	"fmt"

	"intellilab-gc-be/internal/pkg/serverutils"
	"intellilab-gc-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ILimsController interface {
	RegisterRoutes(r fiber.Router)
	ExportSamples(ctx *fiber.Ctx) error
	ImportSamples(ctx *fiber.Ctx) error
}

type limsController struct {
	service service.ILimsService
}

func NewLimsController(service service.ILimsService) ILimsController {
	return &limsController{service: service}
}

func (c *limsController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/lims")
	h.Get("/export/samples", c.ExportSamples)
	h.Post("/import/samples", c.ImportSamples)
}

func (c *limsController) ExportSamples(ctx *fiber.Ctx) error {
	export, err := c.service.ExportSamples(serverutils.RequestContext(ctx), ctx.Query("format"))
	if err != nil {
		return err
	}
	ctx.Set(fiber.HeaderContentType, export.ContentType)
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", export.Filename))
	return ctx.Send(export.Data)
}

func (c *limsController) ImportSamples(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return serverutils.NewBadRequest("File is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return serverutils.NewBadRequest("Failed to open file")
	}
	defer file.Close()

	res, err := c.service.ImportSamples(serverutils.RequestContext(ctx), file)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Sample import processed", res))
}
