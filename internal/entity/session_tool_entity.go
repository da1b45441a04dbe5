package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	ToolTypeApi    = "api"
	ToolTypeScript = "script"
)

// SessionTool is a session-scoped callable the chat pipeline may invoke.
// Api tools address an external HTTP endpoint; script tools carry source
// text executed inside the restricted interpreter.
type SessionTool struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	Name          string
	Type          string
	ApiUrl        string
	HttpMethod    string
	Source        string
	Description   string
	ParamsDoc     string
	ReturnsDoc    string
	CreatedAt     time.Time
	UpdatedAt     *time.Time
}
