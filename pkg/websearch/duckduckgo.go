package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const (
	// DefaultInstantAnswerURL and DefaultWebSearchURL are the public
	// DuckDuckGo endpoints; NewClientWithEndpoints overrides them.
	DefaultInstantAnswerURL = "https://api.duckduckgo.com/"
	DefaultWebSearchURL     = "https://html.duckduckgo.com/html/"

	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	// DefaultTimeout bounds the whole search round trip.
	DefaultTimeout = 15 * time.Second
)

// Result is a single search hit in a source-agnostic shape.
type Result struct {
	Title   string
	Content string
	URL     string
	Source  string
}

// Client performs internet searches against DuckDuckGo. Failures are
// absorbed into empty result sets; search is strictly best-effort.
type Client struct {
	httpClient       *http.Client
	instantAnswerURL string
	webSearchURL     string
}

func NewClient() *Client {
	return NewClientWithEndpoints(DefaultInstantAnswerURL, DefaultWebSearchURL)
}

// NewClientWithEndpoints builds a client against custom search
// endpoints.
func NewClientWithEndpoints(instantAnswerURL, webSearchURL string) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		instantAnswerURL: instantAnswerURL,
		webSearchURL:     webSearchURL,
	}
}

// Search combines instant answers (at most 2) with web results up to
// maxResults total.
func (c *Client) Search(ctx context.Context, query string, maxResults int) []Result {
	if maxResults <= 0 {
		maxResults = 5
	}

	results := c.searchInstantAnswer(ctx, query, 2)

	remaining := maxResults - len(results)
	if remaining > 0 {
		results = append(results, c.searchWeb(ctx, query, remaining)...)
	}

	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}

type instantAnswerResponse struct {
	Abstract      string `json:"Abstract"`
	AbstractURL   string `json:"AbstractURL"`
	Heading       string `json:"Heading"`
	Answer        string `json:"Answer"`
	RelatedTopics []struct {
		Text     string `json:"Text"`
		FirstURL string `json:"FirstURL"`
	} `json:"RelatedTopics"`
}

func (c *Client) searchInstantAnswer(ctx context.Context, query string, maxResults int) []Result {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("no_html", "1")
	params.Set("skip_disambig", "1")

	body, err := c.get(ctx, c.instantAnswerURL+"?"+params.Encode())
	if err != nil {
		return nil
	}

	var data instantAnswerResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return nil
	}

	var results []Result
	if data.Abstract != "" {
		title := data.Heading
		if title == "" {
			title = "Instant Answer"
		}
		results = append(results, Result{
			Title:   title,
			Content: data.Abstract,
			URL:     data.AbstractURL,
			Source:  "DuckDuckGo Instant Answer",
		})
	}

	for _, topic := range data.RelatedTopics {
		if len(results) >= maxResults {
			break
		}
		if topic.Text == "" {
			continue
		}
		results = append(results, Result{
			Title:   topicTitle(topic.FirstURL),
			Content: topic.Text,
			URL:     topic.FirstURL,
			Source:  "DuckDuckGo Related Topics",
		})
	}

	if len(results) > maxResults {
		results = results[:maxResults]
	}
	return results
}

func topicTitle(firstURL string) string {
	if firstURL == "" {
		return "Related Topic"
	}
	parts := strings.Split(firstURL, "/")
	last := parts[len(parts)-1]
	return strings.ReplaceAll(last, "_", " ")
}

var (
	resultSnippetRe = regexp.MustCompile(`(?s)<a[^>]+class="result__snippet"[^>]*>(.*?)</a>`)
	resultTitleRe   = regexp.MustCompile(`(?s)<a[^>]+class="result__a"[^>]+href="([^"]*)"[^>]*>(.*?)</a>`)
	htmlTagRe       = regexp.MustCompile(`<[^>]*>`)
)

func (c *Client) searchWeb(ctx context.Context, query string, maxResults int) []Result {
	params := url.Values{}
	params.Set("q", query)
	params.Set("kl", "us-en")

	body, err := c.get(ctx, c.webSearchURL+"?"+params.Encode())
	if err != nil {
		return nil
	}

	page := string(body)
	titles := resultTitleRe.FindAllStringSubmatch(page, maxResults)
	snippets := resultSnippetRe.FindAllStringSubmatch(page, maxResults)

	var results []Result
	for i, t := range titles {
		if len(results) >= maxResults {
			break
		}
		title := cleanHTML(t[2])
		if title == "" {
			continue
		}
		snippet := ""
		if i < len(snippets) {
			snippet = cleanHTML(snippets[i][1])
		}
		results = append(results, Result{
			Title:   title,
			Content: snippet,
			URL:     t[1],
			Source:  "DuckDuckGo Web Search",
		})
	}
	return results
}

func cleanHTML(s string) string {
	s = htmlTagRe.ReplaceAllString(s, "")
	return html.UnescapeString(strings.TrimSpace(s))
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("duckduckgo status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
