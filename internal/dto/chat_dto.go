package dto

import (
	"time"

	"github.com/google/uuid"
)

type SendChatRequest struct {
	ChatSessionId uuid.UUID `json:"chat_session_id" validate:"required"`
	Chat          string    `json:"chat" validate:"required,min=1"`
	Strategy      string    `json:"strategy,omitempty" validate:"omitempty,oneof=naive chunking contextual multi_query"`
	K             int       `json:"k,omitempty" validate:"omitempty,min=1,max=50"`
	InternetFirst bool      `json:"internet_first,omitempty"`
}

type ChatMessageResponse struct {
	Id            uuid.UUID `json:"id"`
	ChatSessionId uuid.UUID `json:"chat_session_id"`
	Role          string    `json:"role"`
	Content       string    `json:"content"`
	RagStrategy   string    `json:"rag_strategy,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type SendChatResponse struct {
	SentChat  ChatMessageResponse `json:"sent_chat"`
	ReplyChat ChatMessageResponse `json:"reply_chat"`
}

type GetChatHistoryResponse struct {
	ChatSessionId uuid.UUID             `json:"chat_session_id"`
	Chats         []ChatMessageResponse `json:"chats"`
}

// StreamChunkResponse is one server-sent event of a streamed reply.
type StreamChunkResponse struct {
	Content     string `json:"content"`
	IsComplete  bool   `json:"is_complete"`
	RagStrategy string `json:"rag_strategy,omitempty"`
}
