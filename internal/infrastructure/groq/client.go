package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/guptaji3010/Biovalley-AI-Scanner/internal/domain"
	"golang.org/x/time/rate"
)

// Defaults for the Groq OpenAI-compatible endpoint
const (
	DefaultBaseURL = "https://api.groq.com/openai"
	DefaultModel   = "meta-llama/llama-4-scout-17b-16e-instruct"

	// Low temperature keeps the response close to the mandated format
	requestTemperature = 0.1
)

// chatRequest is the chat-completions payload: a single user message with a
// text part and an image part
type chatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	Messages    []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []contentPart `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// errorResponse carries the upstream error message for non-2xx responses
type errorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Client invokes the Groq vision model
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	model       string
	rateLimiter *rate.Limiter
	debug       bool
}

// NewClient creates a new Groq API client
func NewClient(apiKey, baseURL, model string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if model == "" {
		model = DefaultModel
	}

	// Free-tier Groq allows 30 requests per minute
	limiter := rate.NewLimiter(rate.Limit(0.5), 5)

	return &Client{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		apiKey:      apiKey,
		baseURL:     baseURL,
		model:       model,
		rateLimiter: limiter,
	}
}

// SetDebug enables or disables debug logging
func (c *Client) SetDebug(enabled bool) {
	c.debug = enabled
}

// Analyze sends the instruction prompt and the data-URL image in one
// synchronous chat-completions call and returns the raw text blob the model
// produced. Upstream error messages are surfaced verbatim inside the
// returned error.
func (c *Client) Analyze(ctx context.Context, prompt, imageDataURL string) (string, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limiter error: %w", err)
	}

	payload := chatRequest{
		Model:       c.model,
		Temperature: requestTemperature,
		Messages: []chatMessage{
			{
				Role: "user",
				Content: []contentPart{
					{Type: "text", Text: prompt},
					{Type: "image_url", ImageURL: &imageURL{URL: imageDataURL}},
				},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}

	reqURL := fmt.Sprintf("%s/v1/chat/completions", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", reqURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrModelInvocation, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrModelInvocation, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: API Error: %d - %s",
			domain.ErrModelInvocation, resp.StatusCode, upstreamErrorMessage(respBody, resp.Status))
	}

	var parsed chatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrModelInvocation, err)
	}

	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", domain.ErrEmptyModelResponse
	}

	raw := parsed.Choices[0].Message.Content
	if c.debug {
		log.Printf("[GROQ] Raw response (%d bytes)", len(raw))
	}

	return raw, nil
}

// upstreamErrorMessage extracts error.message from a non-2xx body, falling
// back to the HTTP status text
func upstreamErrorMessage(body []byte, statusText string) string {
	var errResp errorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
		return errResp.Error.Message
	}
	return statusText
}
