package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	notificationdomain "github.com/screenclash/screenclash/internal/notification/domain"
)

type sendReminderRequest struct {
	UserID   string `json:"userId"`
	FriendID string `json:"friendId"`
}

func (s *Server) SendReminder(c *gin.Context) {
	var req sendReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	c.Set("user_id", strings.TrimSpace(req.UserID))

	resp, err := s.notificationSvc.SendReminder(c.Request.Context(), notificationdomain.SendReminderRequest{
		UserID:   req.UserID,
		FriendID: req.FriendID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
