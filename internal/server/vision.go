package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	visiondomain "github.com/screenclash/screenclash/internal/vision/domain"
)

type extractScreenshotRequest struct {
	Image    string `json:"image"`
	MimeType string `json:"mimeType"`
}

func (s *Server) ExtractScreenshot(c *gin.Context) {
	var req extractScreenshotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	image, mime := splitDataURL(req.Image)
	if req.MimeType != "" {
		mime = req.MimeType
	}

	extraction, err := s.extractor.Extract(c.Request.Context(), visiondomain.ExtractRequest{
		ImageBase64: image,
		MimeType:    mime,
	})
	if err != nil {
		if s.obsMetrics != nil {
			s.obsMetrics.RecordExtraction(c.Request.Context(), "error")
		}
		AbortWithError(c, err)
		return
	}

	if s.obsMetrics != nil {
		s.obsMetrics.RecordExtraction(c.Request.Context(), "ok")
	}
	c.JSON(http.StatusOK, gin.H{"data": extraction})
}

// splitDataURL accepts both a bare base64 payload and a full data URL
// ("data:image/png;base64,....").
func splitDataURL(image string) (string, string) {
	image = strings.TrimSpace(image)
	if !strings.HasPrefix(image, "data:") {
		return image, ""
	}

	rest := strings.TrimPrefix(image, "data:")
	sep := strings.Index(rest, ";base64,")
	if sep < 0 {
		return image, ""
	}
	return rest[sep+len(";base64,"):], rest[:sep]
}
