package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"finbot/internal/core"
	"finbot/internal/extract"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"

// DefaultModel is used when no model is configured.
const DefaultModel = "gemini-2.0-flash"

var categories = []string{
	"Rent", "EMI", "Groceries & Home Needs", "Utilities", "Transportation",
	"Baby Care", "Insurance", "Entertainment", "Miscellaneous",
	"Amount Lend", "Investments", "Income",
}

// Client calls the Gemini generateContent endpoint with a fixed instruction
// and a machine-checkable response schema, so the reply is a single JSON
// object with the four transaction fields.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	apiKey string
	model  string
}

var _ extract.Extractor = (*Client)(nil)

func NewClient(apiKey, model string) *Client {
	if model == "" {
		model = DefaultModel
	}
	return &Client{
		BaseURL:    defaultBaseURL,
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		apiKey:     apiKey,
		model:      model,
	}
}

// Request/response envelope for the generateContent API.
type (
	generateRequest struct {
		Contents         []content        `json:"contents"`
		GenerationConfig generationConfig `json:"generationConfig"`
	}

	content struct {
		Role  string `json:"role,omitempty"`
		Parts []part `json:"parts"`
	}

	part struct {
		Text string `json:"text"`
	}

	generationConfig struct {
		ResponseMIMEType string  `json:"responseMimeType"`
		ResponseSchema   *schema `json:"responseSchema"`
		Temperature      float64 `json:"temperature"`
		MaxOutputTokens  int     `json:"maxOutputTokens"`
	}

	schema struct {
		Type       string             `json:"type"`
		Properties map[string]*schema `json:"properties,omitempty"`
		Enum       []string           `json:"enum,omitempty"`
		Required   []string           `json:"required,omitempty"`
	}

	generateResponse struct {
		Candidates []struct {
			Content struct {
				Parts []part `json:"parts"`
			} `json:"content"`
		} `json:"candidates"`
	}
)

func candidateSchema() *schema {
	return &schema{
		Type: "OBJECT",
		Properties: map[string]*schema{
			"description": {Type: "STRING"},
			"category":    {Type: "STRING"},
			"amount":      {Type: "NUMBER"},
			"type":        {Type: "STRING", Enum: []string{"expense", "income"}},
		},
		Required: []string{"description", "category", "amount", "type"},
	}
}

func prompt(text string) string {
	return fmt.Sprintf(
		"Extract expense/income data from the following message. "+
			"Reply ONLY with a JSON object containing 'description' (string), "+
			"'category' (string, %s), 'amount' (number), and 'type' (string, either 'expense' or 'income').\n\n"+
			"Message: %s",
		quotedList(categories), text)
}

func quotedList(items []string) string {
	var buf bytes.Buffer
	for i, it := range items {
		if i > 0 {
			buf.WriteString(", ")
		}
		fmt.Fprintf(&buf, "'%s'", it)
	}
	return buf.String()
}

// Extract issues one generateContent call and decodes the returned JSON
// object. No retries: a failed call means no record.
func (c *Client) Extract(ctx context.Context, text string) (core.Candidate, error) {
	payload := generateRequest{
		Contents: []content{{Role: "user", Parts: []part{{Text: prompt(text)}}}},
		GenerationConfig: generationConfig{
			ResponseMIMEType: "application/json",
			ResponseSchema:   candidateSchema(),
			Temperature:      0.0,
			MaxOutputTokens:  500,
		},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return core.Candidate{}, fmt.Errorf("encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s:generateContent?key=%s", c.BaseURL, c.model, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return core.Candidate{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return core.Candidate{}, fmt.Errorf("call gemini: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return core.Candidate{}, fmt.Errorf("gemini status %d: %s", resp.StatusCode, msg)
	}

	var envelope generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return core.Candidate{}, fmt.Errorf("decode response: %w", err)
	}
	if len(envelope.Candidates) == 0 || len(envelope.Candidates[0].Content.Parts) == 0 {
		return core.Candidate{}, errors.New("response missing content")
	}

	var cand core.Candidate
	if err := json.Unmarshal([]byte(envelope.Candidates[0].Content.Parts[0].Text), &cand); err != nil {
		return core.Candidate{}, fmt.Errorf("decode candidate: %w", err)
	}
	return cand, nil
}
