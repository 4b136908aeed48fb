package narrative

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vovakirdan/zone-arena/internal/games/arena"
)

// Gemini defaults
const (
	DefaultBaseURL = "https://generativelanguage.googleapis.com"
	DefaultModel   = "gemini-2.5-flash"
)

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 1 << 20

// Client calls the Gemini generateContent REST endpoint, asking for JSON output
// that matches a response schema.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// NewClient creates a Gemini client. An empty model selects DefaultModel.
func NewClient(baseURL, apiKey, model string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type schema struct {
	Type       string            `json:"type"`
	Properties map[string]schema `json:"properties,omitempty"`
	Required   []string          `json:"required,omitempty"`
}

func objectSchema(fields ...string) schema {
	s := schema{Type: "OBJECT", Properties: make(map[string]schema, len(fields)), Required: fields}
	for _, f := range fields {
		s.Properties[f] = schema{Type: "STRING"}
	}
	return s
}

type part struct {
	Text string `json:"text"`
}

type content struct {
	Parts []part `json:"parts"`
}

type generationConfig struct {
	ResponseMimeType string `json:"responseMimeType"`
	ResponseSchema   schema `json:"responseSchema"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type generateResponse struct {
	Candidates []struct {
		Content content `json:"content"`
	} `json:"candidates"`
}

// Briefing asks for a mission title and briefing.
func (c *Client) Briefing(ctx context.Context) (Briefing, error) {
	var b Briefing
	text, err := c.generate(ctx, briefingPrompt, objectSchema("title", "briefing"))
	if err != nil {
		return b, err
	}
	if err := decodeStrict(text, &b, "title", "briefing"); err != nil {
		return Briefing{}, err
	}
	return b, nil
}

// Report asks for a rank and comment on the finished run.
func (c *Client) Report(ctx context.Context, stats arena.GameOverStats) (Report, error) {
	var r Report
	text, err := c.generate(ctx, reportPrompt(stats), objectSchema("rank", "comment"))
	if err != nil {
		return r, err
	}
	if err := decodeStrict(text, &r, "rank", "comment"); err != nil {
		return Report{}, err
	}
	return r, nil
}

// generate returns the concatenated text of the first candidate.
func (c *Client) generate(ctx context.Context, prompt string, s schema) (string, error) {
	body, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			ResponseMimeType: "application/json",
			ResponseSchema:   s,
		},
	})
	if err != nil {
		return "", fmt.Errorf("narrative: failed to encode request: %w", err)
	}

	url := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("narrative: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("narrative: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("narrative: service returned status %d", resp.StatusCode)
	}

	var out generateResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes)).Decode(&out); err != nil {
		return "", fmt.Errorf("narrative: failed to decode response: %w", err)
	}
	if len(out.Candidates) == 0 {
		return "", ErrEmpty
	}

	var sb strings.Builder
	for _, p := range out.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", ErrEmpty
	}
	return text, nil
}

// decodeStrict parses a JSON object and requires every listed field to be a
// non-empty string.
func decodeStrict(text string, v any, fields ...string) error {
	var raw map[string]any
	if err := json.Unmarshal([]byte(text), &raw); err != nil {
		return fmt.Errorf("narrative: malformed payload: %w", err)
	}
	for _, f := range fields {
		s, ok := raw[f].(string)
		if !ok || strings.TrimSpace(s) == "" {
			return fmt.Errorf("narrative: payload missing %q", f)
		}
	}
	if err := json.Unmarshal([]byte(text), v); err != nil {
		return fmt.Errorf("narrative: malformed payload: %w", err)
	}
	return nil
}
