package entity

import (
	"time"

	"github.com/google/uuid"
)

type Document struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	Filename      string
	PageCount     int
	UploadedAt    time.Time
}

// DocumentPage holds the raw extracted text of one page. Pages are the
// accumulated source material the session index is rebuilt from.
type DocumentPage struct {
	Id            uuid.UUID
	DocumentId    uuid.UUID
	ChatSessionId uuid.UUID
	PageIndex     int
	Content       string
}
