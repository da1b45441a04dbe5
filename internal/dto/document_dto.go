package dto

import (
	"time"

	"github.com/google/uuid"
)

// UploadDocumentRequest carries pre-extracted page text; PDF-to-text
// extraction happens upstream of this API.
type UploadDocumentRequest struct {
	Filename string   `json:"filename" validate:"required,min=1,max=255"`
	Pages    []string `json:"pages" validate:"required,min=1"`
}

type DocumentResponse struct {
	Id         uuid.UUID `json:"id"`
	Filename   string    `json:"filename"`
	PageCount  int       `json:"page_count"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// IngestDocumentMessage is the event payload that triggers an index
// rebuild for a session.
type IngestDocumentMessage struct {
	ChatSessionId uuid.UUID `json:"chat_session_id"`
	DocumentId    uuid.UUID `json:"document_id"`
}
