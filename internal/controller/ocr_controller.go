package controller

import (
	"io"
	"strconv"

	"intellilab-gc-be/internal/dto"
	"intellilab-gc-be/internal/pkg/serverutils"
	"intellilab-gc-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IOCRController interface {
	RegisterRoutes(r fiber.Router)
	Analyze(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Chromatogram(ctx *fiber.Ctx) error
}

type ocrController struct {
	service service.IOCRService
}

func NewOCRController(service service.IOCRService) IOCRController {
	return &ocrController{service: service}
}

func (c *ocrController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/ocr")
	h.Post("/analyze", c.Analyze)
	h.Get("/analyses/:hash", c.Show)
	h.Get("/analyses/:hash/chromatogram.:format", c.Chromatogram)
}

func (c *ocrController) Analyze(ctx *fiber.Ctx) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return serverutils.NewBadRequest("File is required")
	}

	noise := defaultNoise
	if raw := ctx.FormValue("noise"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v < 0 || v > 1 {
			return serverutils.NewBadRequest("noise must be a number between 0 and 1")
		}
		noise = v
	}

	file, err := fileHeader.Open()
	if err != nil {
		return serverutils.NewBadRequest("Failed to open file")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return serverutils.NewBadRequest("Failed to read file")
	}

	res, err := c.service.Analyze(serverutils.RequestContext(ctx), dto.OCRUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get(fiber.HeaderContentType),
		Data:        data,
		Noise:       noise,
	})
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success analyze chromatogram image", res))
}

func (c *ocrController) Show(ctx *fiber.Ctx) error {
	noise, err := noiseQuery(ctx)
	if err != nil {
		return err
	}

	res, err := c.service.Show(serverutils.RequestContext(ctx), ctx.Params("hash"), noise)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show analysis", res))
}

func (c *ocrController) Chromatogram(ctx *fiber.Ctx) error {
	noise, err := noiseQuery(ctx)
	if err != nil {
		return err
	}
	format, err := formatParam(ctx)
	if err != nil {
		return err
	}

	data, err := c.service.Chromatogram(serverutils.RequestContext(ctx), ctx.Params("hash"), noise, format)
	if err != nil {
		return err
	}
	return sendImage(ctx, format, data)
}
