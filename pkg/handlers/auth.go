package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"library_backend/pkg/models"
	"library_backend/pkg/services"
	"library_backend/pkg/token"
)

type AuthHandler struct {
	users  *services.UserService
	tokens *token.Service
}

func NewAuthHandler(users *services.UserService, tokens *token.Service) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

// Signin answers with the bearer token in the Authorization header and an
// empty body.
func (h *AuthHandler) Signin(c *gin.Context) {
	var request struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	user, err := h.users.Authenticate(request.Username, request.Password)
	if err != nil {
		writeError(c, err)
		return
	}
	signed, err := h.tokens.Generate(user.Username, user.Role)
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Authorization", "Bearer "+signed)
	c.Status(http.StatusOK)
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var request struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
		Role     string `json:"role"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	user, err := h.users.Signup(services.UserInput{
		Name:     request.Name,
		Email:    request.Email,
		Username: request.Username,
		Password: request.Password,
		Role:     request.Role,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, userResponse(user))
}

func (h *AuthHandler) UpdateUser(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	var request struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email" binding:"required"`
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}
	user, err := h.users.Update(id, services.UserInput{
		Name:     request.Name,
		Email:    request.Email,
		Username: request.Username,
		Password: request.Password,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, userResponse(user))
}

func userResponse(user *models.User) gin.H {
	return gin.H{
		"id":       user.ID,
		"name":     user.Name,
		"email":    user.Email,
		"username": user.Username,
		"role":     user.Role,
		"status":   user.Status,
	}
}
