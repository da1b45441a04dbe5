package mapper

import (
	"ai-docchat-be/internal/entity"
	"ai-docchat-be/internal/model"
)

type DocumentMapper struct{}

func NewDocumentMapper() *DocumentMapper {
	return &DocumentMapper{}
}

func (m *DocumentMapper) ToEntity(d *model.Document) *entity.Document {
	if d == nil {
		return nil
	}
	return &entity.Document{
		Id:            d.Id,
		ChatSessionId: d.ChatSessionId,
		Filename:      d.Filename,
		PageCount:     d.PageCount,
		UploadedAt:    d.CreatedAt,
	}
}

func (m *DocumentMapper) ToModel(d *entity.Document) *model.Document {
	if d == nil {
		return nil
	}
	return &model.Document{
		Id:            d.Id,
		ChatSessionId: d.ChatSessionId,
		Filename:      d.Filename,
		PageCount:     d.PageCount,
		CreatedAt:     d.UploadedAt,
	}
}

func (m *DocumentMapper) ToEntities(docs []*model.Document) []*entity.Document {
	entities := make([]*entity.Document, len(docs))
	for i, d := range docs {
		entities[i] = m.ToEntity(d)
	}
	return entities
}

func (m *DocumentMapper) PageToEntity(p *model.DocumentPage) *entity.DocumentPage {
	if p == nil {
		return nil
	}
	return &entity.DocumentPage{
		Id:            p.Id,
		DocumentId:    p.DocumentId,
		ChatSessionId: p.ChatSessionId,
		PageIndex:     p.PageIndex,
		Content:       p.Content,
	}
}

func (m *DocumentMapper) PageToModel(p *entity.DocumentPage) *model.DocumentPage {
	if p == nil {
		return nil
	}
	return &model.DocumentPage{
		Id:            p.Id,
		DocumentId:    p.DocumentId,
		ChatSessionId: p.ChatSessionId,
		PageIndex:     p.PageIndex,
		Content:       p.Content,
	}
}

func (m *DocumentMapper) PagesToEntities(pages []*model.DocumentPage) []*entity.DocumentPage {
	entities := make([]*entity.DocumentPage, len(pages))
	for i, p := range pages {
		entities[i] = m.PageToEntity(p)
	}
	return entities
}

func (m *DocumentMapper) PagesToModels(pages []*entity.DocumentPage) []*model.DocumentPage {
	models := make([]*model.DocumentPage, len(pages))
	for i, p := range pages {
		models[i] = m.PageToModel(p)
	}
	return models
}
