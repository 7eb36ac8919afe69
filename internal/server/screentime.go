package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/screenclash/screenclash/internal/observability/logger"
	screentimedomain "github.com/screenclash/screenclash/internal/screentime/domain"
	"go.uber.org/zap"
)

type appUsagePayload struct {
	Name string `json:"name"`
	Time string `json:"time"`
}

type createScreenTimeRequest struct {
	UserID     string            `json:"userId"`
	TotalTime  string            `json:"totalTime"`
	Date       string            `json:"date"`
	Apps       []appUsagePayload `json:"apps"`
	Categories []appUsagePayload `json:"categories"`
	UpdatedAt  string            `json:"updatedAt"`
}

// UploadRateLimit throttles uploads per user via the redis token bucket.
// A limiter check that itself fails does not block the upload; redis being
// down should never cost a user their daily entry.
func (s *Server) UploadRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.uploadLimiter.Enabled() {
			c.Next()
			return
		}

		userID, err := peekUploadUserID(c)
		if err != nil || userID == "" {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		result, err := s.uploadLimiter.Allow(ctx, userID)
		if err != nil {
			logger.FromContext(ctx).Warn("upload rate limit check failed", zap.Error(err))
			c.Next()
			return
		}
		if !result.Allowed {
			retryAfter := int(result.RetryAfter.Seconds())
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.Itoa(retryAfter))
			AbortWithError(c, ErrRateLimited)
			return
		}

		c.Next()
	}
}

func peekUploadUserID(c *gin.Context) (string, error) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return "", err
	}
	c.Request.Body = io.NopCloser(bytes.NewBuffer(body))
	if len(body) == 0 {
		return "", nil
	}

	var payload struct {
		UserID string `json:"userId"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", nil
	}
	return strings.TrimSpace(payload.UserID), nil
}

func (s *Server) CreateScreenTime(c *gin.Context) {
	var req createScreenTimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	c.Set("user_id", strings.TrimSpace(req.UserID))

	entry, err := s.screentimeSvc.Create(c.Request.Context(), screentimedomain.CreateEntryRequest{
		UserID:     req.UserID,
		TotalTime:  req.TotalTime,
		Date:       req.Date,
		Apps:       toUsage(req.Apps),
		Categories: toUsage(req.Categories),
		UpdatedAt:  req.UpdatedAt,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": entry})
}

func toUsage(payload []appUsagePayload) []screentimedomain.AppUsage {
	if len(payload) == 0 {
		return nil
	}
	usage := make([]screentimedomain.AppUsage, 0, len(payload))
	for _, p := range payload {
		usage = append(usage, screentimedomain.AppUsage{Name: p.Name, Time: p.Time})
	}
	return usage
}

func (s *Server) ListScreenTime(c *gin.Context) {
	var query struct {
		UserID string `form:"userId"`
		Date   string `form:"date"`
		Limit  int    `form:"limit"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	c.Set("user_id", strings.TrimSpace(query.UserID))

	entries, err := s.screentimeSvc.List(c.Request.Context(), screentimedomain.ListEntriesRequest{
		UserID:    query.UserID,
		DateLabel: query.Date,
		Limit:     query.Limit,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": entries})
}

func (s *Server) CheckToday(c *gin.Context) {
	userID := strings.TrimSpace(c.Query("userId"))
	if userID == "" {
		AbortWithError(c, newValidationError("userId", "invalid_user_id", "userId is required"))
		return
	}
	c.Set("user_id", userID)

	resp, err := s.screentimeSvc.CheckToday(c.Request.Context(), userID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
