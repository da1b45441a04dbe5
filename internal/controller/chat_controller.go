package controller

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"ai-docchat-be/internal/dto"
	"ai-docchat-be/internal/pkg/serverutils"
	"ai-docchat-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

// streamWordsPerChunk groups the reply into small SSE events so the
// client can render progressively.
const (
	streamWordsPerChunk = 3
	streamChunkDelay    = 100 * time.Millisecond
)

type IChatController interface {
	RegisterRoutes(r fiber.Router)
	SendChat(ctx *fiber.Ctx) error
	StreamChat(ctx *fiber.Ctx) error
	GetChatHistory(ctx *fiber.Ctx) error
	DeleteMessage(ctx *fiber.Ctx) error
}

type chatController struct {
	service service.IChatService
}

func NewChatController(service service.IChatService) IChatController {
	return &chatController{service: service}
}

func (c *chatController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/chat/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("", c.SendChat)
	h.Post("stream", c.StreamChat)
	h.Get(":sessionId", c.GetChatHistory)
	h.Delete("message/:messageId", c.DeleteMessage)
}

func callerIdentity(ctx *fiber.Ctx) (uuid.UUID, bool) {
	userId, _ := uuid.Parse(ctx.Locals("user_id").(string))
	isAdmin, _ := ctx.Locals("is_admin").(bool)
	return userId, isAdmin
}

func mapAccessError(err error) error {
	if errors.Is(err, service.ErrAccessDenied) {
		return fiber.NewError(fiber.StatusForbidden, "access denied to this session")
	}
	return err
}

func (c *chatController) SendChat(ctx *fiber.Ctx) error {
	userId, isAdmin := callerIdentity(ctx)

	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SendChat(ctx.Context(), userId, isAdmin, &req)
	if err != nil {
		return mapAccessError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success send chat", res))
}

// StreamChat resolves the reply like SendChat and then streams it to
// the client as word-chunked server-sent events.
func (c *chatController) StreamChat(ctx *fiber.Ctx) error {
	userId, isAdmin := callerIdentity(ctx)

	var req dto.SendChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SendChat(ctx.Context(), userId, isAdmin, &req)
	if err != nil {
		return mapAccessError(err)
	}

	chunks := chunkReply(res.ReplyChat.Content, res.ReplyChat.RagStrategy)

	ctx.Set(fiber.HeaderContentType, "text/event-stream")
	ctx.Set(fiber.HeaderCacheControl, "no-cache")
	ctx.Set(fiber.HeaderConnection, "keep-alive")
	ctx.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		for i, chunk := range chunks {
			payload, err := json.Marshal(chunk)
			if err != nil {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", payload)
			if err := w.Flush(); err != nil {
				return
			}
			if i < len(chunks)-1 {
				time.Sleep(streamChunkDelay)
			}
		}
	}))
	return nil
}

// chunkReply splits a reply into SSE events of a few words each, with
// the final event flagged complete. An empty reply still yields one
// complete event.
func chunkReply(content, ragStrategy string) []dto.StreamChunkResponse {
	words := strings.Fields(content)
	if len(words) == 0 {
		return []dto.StreamChunkResponse{
			{Content: content, IsComplete: true, RagStrategy: ragStrategy},
		}
	}

	var chunks []dto.StreamChunkResponse
	var current []string
	for i, word := range words {
		current = append(current, word)
		if len(current) == streamWordsPerChunk || i == len(words)-1 {
			chunks = append(chunks, dto.StreamChunkResponse{
				Content:     strings.Join(current, " "),
				IsComplete:  i == len(words)-1,
				RagStrategy: ragStrategy,
			})
			current = nil
		}
	}
	return chunks
}

func (c *chatController) GetChatHistory(ctx *fiber.Ctx) error {
	userId, isAdmin := callerIdentity(ctx)
	sessionId, err := uuid.Parse(ctx.Params("sessionId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid session id")
	}

	res, err := c.service.GetChatHistory(ctx.Context(), userId, isAdmin, sessionId)
	if err != nil {
		return mapAccessError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get chat history", res))
}

func (c *chatController) DeleteMessage(ctx *fiber.Ctx) error {
	userId, isAdmin := callerIdentity(ctx)
	messageId, err := uuid.Parse(ctx.Params("messageId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid message id")
	}

	if err := c.service.DeleteMessage(ctx.Context(), userId, isAdmin, messageId); err != nil {
		return mapAccessError(err)
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete message", nil))
}
