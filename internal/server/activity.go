package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// rankedView factors the shared query handling of the four ranked views.
func rankedView[T any](c *gin.Context, load func(ctx context.Context, userID string) (T, error)) {
	userID := strings.TrimSpace(c.Query("userId"))
	if userID == "" {
		AbortWithError(c, newValidationError("userId", "invalid_user_id", "userId is required"))
		return
	}
	c.Set("user_id", userID)

	resp, err := load(c.Request.Context(), userID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) DailyLeaderboard(c *gin.Context) {
	rankedView(c, s.challengeSvc.DailyLeaderboard)
}

func (s *Server) DailyActivity(c *gin.Context) {
	rankedView(c, s.challengeSvc.DailyActivity)
}

func (s *Server) WeeklyActivity(c *gin.Context) {
	rankedView(c, s.challengeSvc.WeeklyActivity)
}

func (s *Server) MonthlyActivity(c *gin.Context) {
	rankedView(c, s.challengeSvc.MonthlyActivity)
}
