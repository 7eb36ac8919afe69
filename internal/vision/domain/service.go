// Package domain defines the screenshot extraction contract. The extractor
// turns a device screen-time screenshot into the same loose text fields a
// manual entry carries; nothing here parses durations.
package domain

import (
	"context"
	"errors"

	screentimedomain "github.com/screenclash/screenclash/internal/screentime/domain"
)

// Extraction is the structured read of one screenshot. All fields keep the
// on-screen text verbatim ("2h 53m", "Today", "Updated today at 15:04").
type Extraction struct {
	TotalTime  string                      `json:"totalTime"`
	Date       string                      `json:"date"`
	Apps       []screentimedomain.AppUsage `json:"apps"`
	Categories []screentimedomain.AppUsage `json:"categories"`
	UpdatedAt  string                      `json:"updatedAt"`
}

type ExtractRequest struct {
	// ImageBase64 is the raw screenshot, base64 encoded, without a data URI
	// prefix.
	ImageBase64 string `json:"image"`
	MimeType    string `json:"mimeType"`
}

type Extractor interface {
	Extract(ctx context.Context, req ExtractRequest) (*Extraction, error)
}

var (
	ErrNotConfigured    = errors.New("vision_not_configured")
	ErrInvalidImage     = errors.New("invalid_image")
	ErrExtractionFailed = errors.New("extraction_failed")
)
