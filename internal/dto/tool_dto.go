package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateToolRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Type        string `json:"type" validate:"required,oneof=api script"`
	ApiUrl      string `json:"api_url,omitempty" validate:"omitempty,url"`
	HttpMethod  string `json:"http_method,omitempty" validate:"omitempty,oneof=GET POST PUT PATCH DELETE"`
	Source      string `json:"source,omitempty"`
	Description string `json:"description,omitempty"`
	ParamsDoc   string `json:"params_doc,omitempty"`
	ReturnsDoc  string `json:"returns_doc,omitempty"`
}

type UpdateToolRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	ApiUrl      *string `json:"api_url,omitempty" validate:"omitempty,url"`
	HttpMethod  *string `json:"http_method,omitempty" validate:"omitempty,oneof=GET POST PUT PATCH DELETE"`
	Source      *string `json:"source,omitempty"`
	Description *string `json:"description,omitempty"`
	ParamsDoc   *string `json:"params_doc,omitempty"`
	ReturnsDoc  *string `json:"returns_doc,omitempty"`
}

type ToolResponse struct {
	Id          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Type        string     `json:"type"`
	ApiUrl      string     `json:"api_url,omitempty"`
	HttpMethod  string     `json:"http_method,omitempty"`
	Source      string     `json:"source,omitempty"`
	Description string     `json:"description,omitempty"`
	ParamsDoc   string     `json:"params_doc,omitempty"`
	ReturnsDoc  string     `json:"returns_doc,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}
