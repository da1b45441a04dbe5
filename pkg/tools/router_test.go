package tools

import (
	"context"
	"errors"
	"testing"

	"ai-docchat-be/internal/entity"
	"ai-docchat-be/pkg/llm"
)

type scriptedProvider struct {
	reply string
	err   error
}

func (p *scriptedProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return p.reply, p.err
}

func (p *scriptedProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return p.reply, p.err
}

func TestRouteDecisions(t *testing.T) {
	catalog := []*entity.SessionTool{
		{Name: "weather", Type: entity.ToolTypeApi, ApiUrl: "https://example.com"},
	}

	tests := []struct {
		name     string
		reply    string
		wantTool bool
	}{
		{
			name:     "boolean true",
			reply:    `{"use_tool": true, "tool_name": "weather", "arguments": {}}`,
			wantTool: true,
		},
		{
			name:     "string yes",
			reply:    `{"use_tool": "yes", "tool_name": "weather"}`,
			wantTool: true,
		},
		{
			name:     "numeric one",
			reply:    `{"use_tool": 1, "tool_name": "weather"}`,
			wantTool: true,
		},
		{
			name:     "case-insensitive tool name",
			reply:    `{"use_tool": true, "tool_name": "Weather"}`,
			wantTool: true,
		},
		{
			name:     "json buried in prose",
			reply:    `Sure, here is my decision: {"use_tool": true, "tool_name": "weather"} hope that helps`,
			wantTool: true,
		},
		{
			name:     "explicit false",
			reply:    `{"use_tool": false, "tool_name": "weather"}`,
			wantTool: false,
		},
		{
			name:     "string no",
			reply:    `{"use_tool": "no", "tool_name": "weather"}`,
			wantTool: false,
		},
		{
			name:     "unknown tool name",
			reply:    `{"use_tool": true, "tool_name": "stocks"}`,
			wantTool: false,
		},
		{
			name:     "empty tool name",
			reply:    `{"use_tool": true, "tool_name": ""}`,
			wantTool: false,
		},
		{
			name:     "no json at all",
			reply:    `I don't think any tool applies here.`,
			wantTool: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &scriptedProvider{reply: tt.reply}
			inv := Route(context.Background(), provider, "what is the weather", catalog)

			if tt.wantTool && inv == nil {
				t.Fatal("expected an invocation, got nil")
			}
			if !tt.wantTool && inv != nil {
				t.Fatalf("expected nil, got tool %q", inv.Tool.Name)
			}
		})
	}
}

func TestRouteProviderError(t *testing.T) {
	catalog := []*entity.SessionTool{
		{Name: "weather", Type: entity.ToolTypeApi, ApiUrl: "https://example.com"},
	}
	provider := &scriptedProvider{err: errors.New("model unavailable")}

	if inv := Route(context.Background(), provider, "what is the weather", catalog); inv != nil {
		t.Errorf("provider failure must mean no tool, got %+v", inv)
	}
}

func TestRouteEmptyCatalog(t *testing.T) {
	provider := &scriptedProvider{reply: `{"use_tool": true, "tool_name": "weather"}`}

	if inv := Route(context.Background(), provider, "what is the weather", nil); inv != nil {
		t.Errorf("empty catalog must mean no tool, got %+v", inv)
	}
}

func TestRouteArgumentsBecomePayload(t *testing.T) {
	catalog := []*entity.SessionTool{
		{Name: "weather", Type: entity.ToolTypeApi, ApiUrl: "https://example.com"},
	}
	provider := &scriptedProvider{
		reply: `{"use_tool": true, "tool_name": "weather", "arguments": {"city": "Surabaya"}}`,
	}

	inv := Route(context.Background(), provider, "weather please", catalog)
	if inv == nil {
		t.Fatal("expected an invocation")
	}
	if inv.Payload["city"] != "Surabaya" {
		t.Errorf("payload city = %v, want Surabaya", inv.Payload["city"])
	}
}
