package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"ai-docchat-be/internal/dto"
	"ai-docchat-be/internal/entity"
	"ai-docchat-be/internal/repository/specification"
	"ai-docchat-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type IToolService interface {
	GetAll(ctx context.Context, adminId uuid.UUID, sessionId uuid.UUID) ([]*dto.ToolResponse, error)
	Create(ctx context.Context, adminId uuid.UUID, sessionId uuid.UUID, req *dto.CreateToolRequest) (*dto.ToolResponse, error)
	Update(ctx context.Context, adminId uuid.UUID, sessionId uuid.UUID, toolId uuid.UUID, req *dto.UpdateToolRequest) (*dto.ToolResponse, error)
	Delete(ctx context.Context, adminId uuid.UUID, sessionId uuid.UUID, toolId uuid.UUID) error
}

type toolService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewToolService(uowFactory unitofwork.RepositoryFactory) IToolService {
	return &toolService{uowFactory: uowFactory}
}

func (s *toolService) ownedSession(ctx context.Context, uow unitofwork.UnitOfWork, adminId uuid.UUID, sessionId uuid.UUID) error {
	session, err := uow.ChatSessionRepository().FindOne(ctx,
		specification.ByID{ID: sessionId},
		specification.ByAdminID{AdminID: adminId},
	)
	if err != nil {
		return err
	}
	if session == nil {
		return fmt.Errorf("session not found")
	}
	return nil
}

func (s *toolService) GetAll(ctx context.Context, adminId uuid.UUID, sessionId uuid.UUID) ([]*dto.ToolResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := s.ownedSession(ctx, uow, adminId, sessionId); err != nil {
		return nil, err
	}

	tools, err := uow.SessionToolRepository().FindAll(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.OrderBy{Field: "created_at"},
	)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.ToolResponse, 0, len(tools))
	for _, tool := range tools {
		result = append(result, toToolResponse(tool))
	}
	return result, nil
}

func (s *toolService) Create(ctx context.Context, adminId uuid.UUID, sessionId uuid.UUID, req *dto.CreateToolRequest) (*dto.ToolResponse, error) {
	if err := validateToolShape(req.Type, req.ApiUrl, req.Source); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := s.ownedSession(ctx, uow, adminId, sessionId); err != nil {
		return nil, err
	}

	existing, _ := uow.SessionToolRepository().FindOne(ctx,
		specification.ByChatSessionID{ChatSessionID: sessionId},
		specification.FilterBy{Field: "name", Value: req.Name},
	)
	if existing != nil {
		return nil, errors.New("a tool with this name already exists in the session")
	}

	tool := &entity.SessionTool{
		Id:            uuid.New(),
		ChatSessionId: sessionId,
		Name:          req.Name,
		Type:          req.Type,
		ApiUrl:        req.ApiUrl,
		HttpMethod:    req.HttpMethod,
		Source:        req.Source,
		Description:   req.Description,
		ParamsDoc:     req.ParamsDoc,
		ReturnsDoc:    req.ReturnsDoc,
		CreatedAt:     time.Now(),
	}
	if tool.Type == entity.ToolTypeApi && tool.HttpMethod == "" {
		tool.HttpMethod = "GET"
	}

	if err := uow.SessionToolRepository().Create(ctx, tool); err != nil {
		return nil, err
	}
	return toToolResponse(tool), nil
}

func (s *toolService) Update(ctx context.Context, adminId uuid.UUID, sessionId uuid.UUID, toolId uuid.UUID, req *dto.UpdateToolRequest) (*dto.ToolResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := s.ownedSession(ctx, uow, adminId, sessionId); err != nil {
		return nil, err
	}

	tool, err := uow.SessionToolRepository().FindOne(ctx,
		specification.ByID{ID: toolId},
		specification.ByChatSessionID{ChatSessionID: sessionId},
	)
	if err != nil {
		return nil, err
	}
	if tool == nil {
		return nil, nil
	}

	if req.Name != nil {
		tool.Name = *req.Name
	}
	if req.ApiUrl != nil {
		tool.ApiUrl = *req.ApiUrl
	}
	if req.HttpMethod != nil {
		tool.HttpMethod = *req.HttpMethod
	}
	if req.Source != nil {
		tool.Source = *req.Source
	}
	if req.Description != nil {
		tool.Description = *req.Description
	}
	if req.ParamsDoc != nil {
		tool.ParamsDoc = *req.ParamsDoc
	}
	if req.ReturnsDoc != nil {
		tool.ReturnsDoc = *req.ReturnsDoc
	}
	if err := validateToolShape(tool.Type, tool.ApiUrl, tool.Source); err != nil {
		return nil, err
	}
	now := time.Now()
	tool.UpdatedAt = &now

	if err := uow.SessionToolRepository().Update(ctx, tool); err != nil {
		return nil, err
	}
	return toToolResponse(tool), nil
}

func (s *toolService) Delete(ctx context.Context, adminId uuid.UUID, sessionId uuid.UUID, toolId uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := s.ownedSession(ctx, uow, adminId, sessionId); err != nil {
		return err
	}

	tool, err := uow.SessionToolRepository().FindOne(ctx,
		specification.ByID{ID: toolId},
		specification.ByChatSessionID{ChatSessionID: sessionId},
	)
	if err != nil {
		return err
	}
	if tool == nil {
		return fmt.Errorf("tool not found")
	}

	return uow.SessionToolRepository().Delete(ctx, toolId)
}

func validateToolShape(toolType, apiUrl, source string) error {
	switch toolType {
	case entity.ToolTypeApi:
		if apiUrl == "" {
			return errors.New("api tools require an api_url")
		}
	case entity.ToolTypeScript:
		if source == "" {
			return errors.New("script tools require source code")
		}
	default:
		return fmt.Errorf("unknown tool type: %s", toolType)
	}
	return nil
}

func toToolResponse(tool *entity.SessionTool) *dto.ToolResponse {
	return &dto.ToolResponse{
		Id:          tool.Id,
		Name:        tool.Name,
		Type:        tool.Type,
		ApiUrl:      tool.ApiUrl,
		HttpMethod:  tool.HttpMethod,
		Source:      tool.Source,
		Description: tool.Description,
		ParamsDoc:   tool.ParamsDoc,
		ReturnsDoc:  tool.ReturnsDoc,
		CreatedAt:   tool.CreatedAt,
		UpdatedAt:   tool.UpdatedAt,
	}
}
