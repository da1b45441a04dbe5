package service

import (
	"errors"

	"ai-docchat-be/internal/entity"

	"github.com/google/uuid"
)

// ErrAccessDenied marks a caller who is neither a global admin nor the
// owner of the resource it targets.
var ErrAccessDenied = errors.New("access denied")

// canAccessSession applies the chat access rule: global admins and the
// owning admin always pass; everyone else only while the session is
// active.
func canAccessSession(session *entity.ChatSession, userId uuid.UUID, isAdmin bool) bool {
	return isAdmin || session.AdminId == userId || session.IsActive
}
