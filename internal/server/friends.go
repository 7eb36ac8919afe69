package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	friendshipdomain "github.com/screenclash/screenclash/internal/friendship/domain"
)

func (s *Server) FriendsOverview(c *gin.Context) {
	userID := strings.TrimSpace(c.Query("userId"))
	if userID == "" {
		AbortWithError(c, newValidationError("userId", "invalid_user_id", "userId is required"))
		return
	}
	c.Set("user_id", userID)

	resp, err := s.friendshipSvc.Overview(c.Request.Context(), userID)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type sendFriendRequestRequest struct {
	SenderID      string `json:"senderId"`
	ReceiverEmail string `json:"receiverEmail"`
}

func (s *Server) SendFriendRequest(c *gin.Context) {
	var req sendFriendRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	c.Set("user_id", strings.TrimSpace(req.SenderID))

	request, err := s.friendshipSvc.SendRequest(c.Request.Context(), friendshipdomain.SendRequestRequest{
		SenderID:      req.SenderID,
		ReceiverEmail: req.ReceiverEmail,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": request})
}

type respondFriendRequestRequest struct {
	RequestID string `json:"requestId"`
	Action    string `json:"action"`
	UserID    string `json:"userId"`
}

func (s *Server) RespondFriendRequest(c *gin.Context) {
	var req respondFriendRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	c.Set("user_id", strings.TrimSpace(req.UserID))

	err := s.friendshipSvc.Respond(c.Request.Context(), friendshipdomain.RespondRequest{
		RequestID: req.RequestID,
		Action:    req.Action,
		UserID:    req.UserID,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"status": "ok"}})
}
