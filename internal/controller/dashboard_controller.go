package controller

import (
	"intellilab-gc-be/internal/pkg/serverutils"
	"intellilab-gc-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDashboardController interface {
	RegisterRoutes(r fiber.Router)
	KPIs(ctx *fiber.Ctx) error
	Refresh(ctx *fiber.Ctx) error
}

type dashboardController struct {
	service service.IDashboardService
}

func NewDashboardController(service service.IDashboardService) IDashboardController {
	return &dashboardController{service: service}
}

func (c *dashboardController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/dashboard")
	h.Get("/kpis", c.KPIs)
	h.Post("/refresh", c.Refresh)
}

func (c *dashboardController) KPIs(ctx *fiber.Ctx) error {
	res, err := c.service.KPIs(serverutils.RequestContext(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get dashboard KPIs", res))
}

func (c *dashboardController) Refresh(ctx *fiber.Ctx) error {
	res, err := c.service.Refresh(serverutils.RequestContext(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success refresh dashboard KPIs", res))
}
