package controller

import (
	"intellilab-gc-be/internal/dto"
	"intellilab-gc-be/internal/pkg/serverutils"
	"intellilab-gc-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IBrandingController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Active(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Activate(ctx *fiber.Ctx) error
}

type brandingController struct {
	service service.IBrandingService
}

func NewBrandingController(service service.IBrandingService) IBrandingController {
	return &brandingController{service: service}
}

func (c *brandingController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/branding/themes")
	h.Get("", c.GetAll)
	h.Get("/active", c.Active)
	h.Post("", c.Create)
	h.Put("/:id/activate", c.Activate)
}

func (c *brandingController) GetAll(ctx *fiber.Ctx) error {
	res, err := c.service.GetAll(serverutils.RequestContext(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get branding themes", res))
}

func (c *brandingController) Active(ctx *fiber.Ctx) error {
	res, err := c.service.Active(serverutils.RequestContext(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get active theme", res))
}

func (c *brandingController) Create(ctx *fiber.Ctx) error {
	var req dto.CreateBrandingThemeRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Create(serverutils.RequestContext(ctx), &req)
	if err != nil {
		return err
	}
	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success create theme", res))
}

func (c *brandingController) Activate(ctx *fiber.Ctx) error {
	id, err := serverutils.ParseUUIDParam(ctx, "id")
	if err != nil {
		return err
	}

	res, err := c.service.Activate(serverutils.RequestContext(ctx), id)
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success activate theme", res))
}
