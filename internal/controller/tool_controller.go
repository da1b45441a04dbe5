package controller

import (
	"ai-docchat-be/internal/dto"
	"ai-docchat-be/internal/pkg/serverutils"
	"ai-docchat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IToolController interface {
	RegisterRoutes(r fiber.Router)
	GetAll(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type toolController struct {
	service service.IToolService
}

func NewToolController(service service.IToolService) IToolController {
	return &toolController{service: service}
}

func (c *toolController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/session/v1/:sessionId/tool")
	h.Use(serverutils.JwtMiddleware)
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	h.Put(":id", c.Update)
	h.Delete(":id", c.Delete)
}

func (c *toolController) GetAll(ctx *fiber.Ctx) error {
	adminId, _ := uuid.Parse(ctx.Locals("user_id").(string))
	sessionId, err := uuid.Parse(ctx.Params("sessionId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	res, err := c.service.GetAll(ctx.Context(), adminId, sessionId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get all tools", res))
}

func (c *toolController) Create(ctx *fiber.Ctx) error {
	adminId, _ := uuid.Parse(ctx.Locals("user_id").(string))
	sessionId, err := uuid.Parse(ctx.Params("sessionId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	var req dto.CreateToolRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), adminId, sessionId, &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create tool", res))
}

func (c *toolController) Update(ctx *fiber.Ctx) error {
	adminId, _ := uuid.Parse(ctx.Locals("user_id").(string))
	sessionId, err := uuid.Parse(ctx.Params("sessionId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid tool id")
	}

	var req dto.UpdateToolRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.Context(), adminId, sessionId, id, &req)
	if err != nil {
		return err
	}
	if res == nil {
		return fiber.NewError(fiber.StatusNotFound, "tool not found")
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update tool", res))
}

func (c *toolController) Delete(ctx *fiber.Ctx) error {
	adminId, _ := uuid.Parse(ctx.Locals("user_id").(string))
	sessionId, err := uuid.Parse(ctx.Params("sessionId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}
	id, err := uuid.Parse(ctx.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid tool id")
	}

	if err := c.service.Delete(ctx.Context(), adminId, sessionId, id); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete tool", nil))
}
