package entity

import (
	"time"

	"github.com/google/uuid"
)

// SessionEmbedding is one chunk of the durable copy of a session's vector
// index. The full set for a session is replaced wholesale on every rebuild.
type SessionEmbedding struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	ChunkIndex    int
	Content       string
	Vector        []float32
	CreatedAt     time.Time
}
