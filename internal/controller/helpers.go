package controller

import (
	"strconv"

	"intellilab-gc-be/internal/dto"
	"intellilab-gc-be/internal/pkg/serverutils"
	"intellilab-gc-be/pkg/plot"

	"github.com/gofiber/fiber/v2"
)

const defaultNoise = 0.02

func listQuery(ctx *fiber.Ctx) dto.ListQuery {
	page, limit := serverutils.Pagination(ctx)
	return dto.ListQuery{Page: page, Limit: limit, Search: ctx.Query("search")}
}

// parseBody decodes and validates a JSON body into req.
func parseBody(ctx *fiber.Ctx, req any) error {
	if err := ctx.BodyParser(req); err != nil {
		return serverutils.NewBadRequest("Invalid request body")
	}
	return serverutils.ValidateRequest(req)
}

func noiseQuery(ctx *fiber.Ctx) (float64, error) {
	raw := ctx.Query("noise")
	if raw == "" {
		return defaultNoise, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 || v > 1 {
		return 0, serverutils.NewBadRequest("noise must be a number between 0 and 1")
	}
	return v, nil
}

func formatParam(ctx *fiber.Ctx) (plot.Format, error) {
	format, err := plot.ParseFormat(ctx.Params("format"))
	if err != nil {
		return "", serverutils.NewBadRequest(err.Error())
	}
	return format, nil
}

func sendImage(ctx *fiber.Ctx, format plot.Format, data []byte) error {
	ctx.Set(fiber.HeaderContentType, format.ContentType())
	return ctx.Send(data)
}
