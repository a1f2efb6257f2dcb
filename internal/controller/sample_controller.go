package controller

import (
	"intellilab-gc-be/internal/dto"
	"intellilab-gc-be/internal/pkg/serverutils"
	"intellilab-gc-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISampleController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	UpdateStatus(ctx *fiber.Ctx) error
}

type sampleController struct {
	service service.ISampleService
}

func NewSampleController(service service.ISampleService) ISampleController {
	return &sampleController{service: service}
}

func (c *sampleController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/samples")
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	h.Get("/:id", c.Show)
	h.Put("/:id", c.Update)
	h.Delete("/:id", c.Delete)
	h.Patch("/:id/status", c.UpdateStatus)
}

func (c *sampleController) GetAll(ctx *fiber.Ctx) error {
	page, limit := serverutils.Pagination(ctx)
	filter := dto.SampleFilter{
		Status:   ctx.Query("status"),
		Priority: ctx.Query("priority"),
		Search:   ctx.Query("search"),
		Page:     page,
		Limit:    limit,
	}

	res, err := c.service.GetAll(serverutils.RequestContext(ctx), filter)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get all samples", res))
}

func (c *sampleController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateSampleRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Create(serverutils.RequestContext(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create sample", res))
}

func (c *sampleController) Show(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.Show(serverutils.RequestContext(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show sample", res))
}

func (c *sampleController) Update(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateSampleRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	req.Id = id

	res, err := c.service.Update(serverutils.RequestContext(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update sample", res))
}

func (c *sampleController) Delete(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.service.Delete(serverutils.RequestContext(ctx), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete sample", nil))
}

func (c *sampleController) UpdateStatus(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateSampleStatusRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	req.Id = id

	res, err := c.service.UpdateStatus(serverutils.RequestContext(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update sample status", res))
}
