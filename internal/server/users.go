package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	userdomain "github.com/screenclash/screenclash/internal/user/domain"
)

type upsertUserRequest struct {
	UserID      string `json:"userId"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	AvatarURL   string `json:"avatarUrl"`
}

func (s *Server) UpsertUser(c *gin.Context) {
	var req upsertUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	c.Set("user_id", strings.TrimSpace(req.UserID))

	user, err := s.userSvc.Upsert(c.Request.Context(), userdomain.UpsertUserRequest{
		FirebaseUID: req.UserID,
		Email:       req.Email,
		DisplayName: req.DisplayName,
		AvatarURL:   req.AvatarURL,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": user})
}

func (s *Server) GetUser(c *gin.Context) {
	var query struct {
		UserID string `form:"userId"`
		Email  string `form:"email"`
		Search string `form:"search"`
		Limit  int    `form:"limit"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	c.Set("user_id", strings.TrimSpace(query.UserID))

	ctx := c.Request.Context()

	switch {
	case strings.TrimSpace(query.Search) != "":
		users, err := s.userSvc.SearchByEmail(ctx, query.Search, query.Limit)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": users})

	case strings.TrimSpace(query.UserID) != "":
		user, err := s.userSvc.GetByUID(ctx, query.UserID)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": user})

	case strings.TrimSpace(query.Email) != "":
		user, err := s.userSvc.GetByEmail(ctx, query.Email)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"data": user})

	default:
		AbortWithError(c, newValidationError("userId", "invalid_user_id", "userId, email or search is required"))
	}
}
