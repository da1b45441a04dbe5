package tools

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"ai-docchat-be/internal/entity"
)

func TestRunScriptEchoesPayloadArg(t *testing.T) {
	out, err := RunScript(context.Background(), `ConsoleLog(Arg("msg"))`, map[string]interface{}{"msg": "hi"}, 5*time.Second)
	if err != nil {
		t.Fatalf("RunScript() error = %v", err)
	}
	if !strings.Contains(out, "hi") {
		t.Errorf("output %q does not contain payload value", out)
	}
}

func TestRunScriptNilPayload(t *testing.T) {
	out, err := RunScript(context.Background(), `ConsoleLog(Arg("msg"))`, nil, 5*time.Second)
	if err != nil {
		t.Fatalf("RunScript() error = %v", err)
	}
	if strings.Contains(out, "hi") {
		t.Errorf("output %q leaked a value from an empty payload", out)
	}
}

func TestExplicitEchoToolTraceableOutput(t *testing.T) {
	catalog := []*entity.SessionTool{
		{
			Name:   "echo",
			Type:   entity.ToolTypeScript,
			Source: `ConsoleLog(Arg("msg"))`,
		},
	}

	inv := ResolveExplicit(`run echo with {"msg": "hi"}`, catalog)
	if inv == nil {
		t.Fatal("ResolveExplicit() returned nil for explicit mention")
	}
	if got := inv.Payload["msg"]; got != "hi" {
		t.Fatalf("payload msg = %v, want hi", got)
	}

	exec := NewExecutor(nopLogger{})
	output := exec.Execute(context.Background(), inv)
	if !strings.Contains(output, "hi") {
		t.Fatalf("Execute() output %q not traceable to payload", output)
	}

	// Summarization failure falls back to the raw output, so the
	// payload value must survive the full path either way.
	provider := &scriptedProvider{err: errors.New("model unavailable")}
	summary := Summarize(context.Background(), provider, "echo", "run echo", output)
	if !strings.Contains(summary, "hi") {
		t.Errorf("summary %q lost the tool output", summary)
	}
}
