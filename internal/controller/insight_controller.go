package controller

import (
	"intellilab-gc-be/internal/dto"
	"intellilab-gc-be/internal/pkg/serverutils"
	"intellilab-gc-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IInsightController interface {
	RegisterRoutes(r fiber.Router)
	GetInsights(ctx *fiber.Ctx) error
	AddMethodData(ctx *fiber.Ctx) error
	AddMaintenanceData(ctx *fiber.Ctx) error
	AddCostData(ctx *fiber.Ctx) error
}

type insightController struct {
	service service.IInsightService
}

func NewInsightController(service service.IInsightService) IInsightController {
	return &insightController{service: service}
}

func (c *insightController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/insights")
	h.Get("", c.GetInsights)
	h.Post("/data/methods", c.AddMethodData)
	h.Post("/data/maintenance", c.AddMaintenanceData)
	h.Post("/data/costs", c.AddCostData)
}

func (c *insightController) GetInsights(ctx *fiber.Ctx) error {
	return ctx.JSON(serverutils.SuccessResponse("Success get insights", c.service.Snapshot()))
}

// Data routes answer 202: correlations are regenerated after the debounce window.
func (c *insightController) AddMethodData(ctx *fiber.Ctx) error {
	var req dto.AddMethodDataRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	id := c.service.SubmitMethod(serverutils.RequestContext(ctx), req)
	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Method data accepted", fiber.Map{"id": id}))
}

func (c *insightController) AddMaintenanceData(ctx *fiber.Ctx) error {
	var req dto.AddMaintenanceDataRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	id := c.service.SubmitMaintenance(serverutils.RequestContext(ctx), req)
	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Maintenance data accepted", fiber.Map{"id": id}))
}

func (c *insightController) AddCostData(ctx *fiber.Ctx) error {
	var req dto.AddCostDataRequest
	if err := parseBody(ctx, &req); err != nil {
		return err
	}
	id := c.service.SubmitCost(serverutils.RequestContext(ctx), req)
	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Cost data accepted", fiber.Map{"id": id}))
}
