package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"ai-docchat-be/internal/entity"
	"ai-docchat-be/internal/pkg/logger"
)

const (
	// ExecTimeout bounds both HTTP tool calls and script execution.
	ExecTimeout = 15 * time.Second

	// maxOutputLength truncates tool output before summarization; the
	// full body is never retained.
	maxOutputLength = 2000
)

// Executor runs a resolved tool invocation. Failures come back as
// error strings, never as propagated errors; the pipeline always has
// something to summarize.
type Executor struct {
	client *http.Client
	logger logger.ILogger
}

func NewExecutor(log logger.ILogger) *Executor {
	return &Executor{
		client: &http.Client{
			Timeout: ExecTimeout,
		},
		logger: log,
	}
}

// Execute dispatches on the tool type and returns the (possibly
// truncated) output text.
func (e *Executor) Execute(ctx context.Context, inv *Invocation) string {
	var output string
	var err error

	switch inv.Tool.Type {
	case entity.ToolTypeApi:
		output, err = e.executeApi(ctx, inv)
	case entity.ToolTypeScript:
		output, err = e.executeScript(ctx, inv)
	default:
		err = fmt.Errorf("unknown tool type: %s", inv.Tool.Type)
	}

	if err != nil {
		e.logger.Warn("tools", "Tool execution failed", map[string]interface{}{
			"tool":  inv.Tool.Name,
			"error": err.Error(),
		})
		return fmt.Sprintf("Tool '%s' failed: %s", inv.Tool.Name, err.Error())
	}
	return truncate(output, maxOutputLength)
}

func (e *Executor) executeApi(ctx context.Context, inv *Invocation) (string, error) {
	method := strings.ToUpper(inv.Tool.HttpMethod)
	if method == "" {
		method = http.MethodGet
	}

	req, err := buildApiRequest(ctx, method, inv.Tool.ApiUrl, inv.Payload)
	if err != nil {
		return "", err
	}

	resp, err := e.client.Do(req)
	if err != nil {
		// One retry through a fresh default transport.
		retryReq, reqErr := buildApiRequest(ctx, method, inv.Tool.ApiUrl, inv.Payload)
		if reqErr != nil {
			return "", err
		}
		fallback := &http.Client{Timeout: ExecTimeout}
		resp, err = fallback.Do(retryReq)
		if err != nil {
			return "", err
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxOutputLength*4))
	if err != nil {
		return "", err
	}

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("endpoint returned status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}
	return string(body), nil
}

func buildApiRequest(ctx context.Context, method, apiUrl string, payload map[string]interface{}) (*http.Request, error) {
	if method == http.MethodGet {
		u, err := url.Parse(apiUrl)
		if err != nil {
			return nil, fmt.Errorf("invalid tool URL: %w", err)
		}
		q := u.Query()
		for key, value := range payload {
			q.Set(key, fmt.Sprintf("%v", value))
		}
		u.RawQuery = q.Encode()
		return http.NewRequestWithContext(ctx, method, u.String(), nil)
	}

	var body io.Reader
	if payload != nil {
		jsonBody, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("marshal payload: %w", err)
		}
		body = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiUrl, body)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (e *Executor) executeScript(ctx context.Context, inv *Invocation) (string, error) {
	output, err := RunScript(ctx, inv.Tool.Source, inv.Payload, ExecTimeout)
	if err != nil {
		return "", err
	}
	return output, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	// Back off to a rune boundary so the cut never splits UTF-8.
	for max > 0 && !utf8.RuneStart(s[max]) {
		max--
	}
	return s[:max]
}
