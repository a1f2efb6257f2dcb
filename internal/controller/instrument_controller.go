package controller

import (
	"intellilab-gc-be/internal/dto"
	"intellilab-gc-be/internal/pkg/serverutils"
	"intellilab-gc-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IInstrumentController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	GetMaintenance(ctx *fiber.Ctx) error
	AddMaintenance(ctx *fiber.Ctx) error
}

type instrumentController struct {
	service service.IInstrumentService
}

func NewInstrumentController(service service.IInstrumentService) IInstrumentController {
	return &instrumentController{service: service}
}

func (c *instrumentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/instruments")
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	h.Get("/:id", c.Show)
	h.Put("/:id", c.Update)
	h.Delete("/:id", c.Delete)
	h.Get("/:id/maintenance", c.GetMaintenance)
	h.Post("/:id/maintenance", c.AddMaintenance)
}

func (c *instrumentController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.service.GetAll(serverutils.RequestContext(ctx), listQuery(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get all instruments", res))
}

func (c *instrumentController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateInstrumentRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Create(serverutils.RequestContext(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create instrument", res))
}

func (c *instrumentController) Show(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.Show(serverutils.RequestContext(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success show instrument", res))
}

func (c *instrumentController) Update(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.UpdateInstrumentRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	req.Id = id

	res, err := c.service.Update(serverutils.RequestContext(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success update instrument", res))
}

func (c *instrumentController) Delete(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	if err := c.service.Delete(serverutils.RequestContext(ctx), id); err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete instrument", nil))
}

func (c *instrumentController) GetMaintenance(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.GetMaintenance(serverutils.RequestContext(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get maintenance history", res))
}

func (c *instrumentController) AddMaintenance(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	var req dto.CreateMaintenanceRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	req.InstrumentId = id

	res, err := c.service.AddMaintenance(serverutils.RequestContext(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success record maintenance", res))
}
