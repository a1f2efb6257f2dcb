package controller

import (
	"intellilab-gc-be/internal/dto"
	"intellilab-gc-be/internal/pkg/serverutils"
	"intellilab-gc-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ICostController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Calculate(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type costController struct {
	service service.ICostService
}

func NewCostController(service service.ICostService) ICostController {
	return &costController{service: service}
}

func (c *costController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/costs")
	h.Get("", c.GetAll)
	h.Post("/calculate", c.Calculate)
	h.Delete("/:id", c.Delete)
}

func (c *costController) GetAll(ctx *fiber.Ctx) error {
	page, limit := serverutils.Pagination(ctx)
	res, err := c.service.GetAll(serverutils.RequestContext(ctx), ctx.Query("category"), page, limit)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get cost records", res))
}

func (c *costController) Calculate(ctx *fiber.Ctx) error {
	var req dto.CalculateCostRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Calculate(serverutils.RequestContext(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success calculate cost", res))
}

func (c *costController) Delete(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.service.Delete(serverutils.RequestContext(ctx), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete cost record", nil))
}
