// Package openai implements screenshot extraction against the OpenAI
// chat-completions API.
package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/screenclash/screenclash/internal/config"
	visiondomain "github.com/screenclash/screenclash/internal/vision/domain"
	"go.uber.org/zap"
)

const systemPrompt = `You are a screen time data extractor. You receive a screenshot of a phone's screen time report (iOS Screen Time or Android Digital Wellbeing) and return ONLY a JSON object, no prose, with this shape:
{
  "totalTime": "<total shown, e.g. 2h 53m>",
  "date": "<date label shown, e.g. Today or Wednesday, July 30>",
  "apps": [{"name": "<app name>", "time": "<time, e.g. 1h 20m>"}],
  "categories": [{"name": "<category name>", "time": "<time>"}],
  "updatedAt": "<the 'Updated ...' line if shown, else empty string>"
}
Copy the on-screen text exactly. If a section is missing, use an empty array or empty string. Never invent values.`

// jsonBlock pulls the JSON object out of a response that may wrap it in a
// markdown code fence.
var jsonBlock = regexp.MustCompile(`(?s)\{.*\}`)

type Client struct {
	log     *zap.Logger
	httpcli *http.Client
	cfg     config.VisionConfig
}

func NewClient(cfg config.VisionConfig, log *zap.Logger) *Client {
	return &Client{
		log:     log.Named("vision.openai"),
		httpcli: &http.Client{Timeout: 60 * time.Second},
		cfg:     cfg,
	}
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content any    `json:"content"`
}

type contentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL    string `json:"url"`
	Detail string `json:"detail,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

func (c *Client) Extract(ctx context.Context, req visiondomain.ExtractRequest) (*visiondomain.Extraction, error) {
	if c.cfg.APIKey == "" {
		return nil, visiondomain.ErrNotConfigured
	}

	image := strings.TrimSpace(req.ImageBase64)
	if image == "" {
		return nil, visiondomain.ErrInvalidImage
	}
	mime := req.MimeType
	if mime == "" {
		mime = "image/png"
	}

	body := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: []contentPart{
				{Type: "text", Text: "Extract the screen time data from this screenshot."},
				{Type: "image_url", ImageURL: &imageURL{
					URL:    fmt.Sprintf("data:%s;base64,%s", mime, image),
					Detail: "high",
				}},
			}},
		},
		Temperature: 0.1,
		MaxTokens:   c.cfg.MaxTokens,
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		strings.TrimRight(c.cfg.BaseURL, "/")+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpcli.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", visiondomain.ErrExtractionFailed, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", visiondomain.ErrExtractionFailed, err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("%w: malformed response", visiondomain.ErrExtractionFailed)
	}
	if resp.StatusCode != http.StatusOK || parsed.Error != nil {
		msg := resp.Status
		if parsed.Error != nil {
			msg = parsed.Error.Message
		}
		c.log.Warn("vision backend rejected extraction",
			zap.Int("status", resp.StatusCode),
			zap.String("message", msg),
		)
		return nil, fmt.Errorf("%w: %s", visiondomain.ErrExtractionFailed, msg)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty response", visiondomain.ErrExtractionFailed)
	}

	return decodeExtraction(parsed.Choices[0].Message.Content)
}

// decodeExtraction tolerates models that wrap the JSON in a markdown fence
// or surrounding prose.
func decodeExtraction(content string) (*visiondomain.Extraction, error) {
	match := jsonBlock.FindString(content)
	if match == "" {
		return nil, fmt.Errorf("%w: no JSON in model output", visiondomain.ErrExtractionFailed)
	}

	var extraction visiondomain.Extraction
	if err := json.Unmarshal([]byte(match), &extraction); err != nil {
		return nil, fmt.Errorf("%w: %v", visiondomain.ErrExtractionFailed, err)
	}
	if strings.TrimSpace(extraction.TotalTime) == "" {
		return nil, fmt.Errorf("%w: missing totalTime", visiondomain.ErrExtractionFailed)
	}
	return &extraction, nil
}
