package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zkerkeb-class/pokedex-api-enteaunain/internal/auth"
)

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Email    string    `json:"email"`
	Name     string    `json:"name"`
	Password string    `json:"password"`
	Role     auth.Role `json:"role"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SetScoreRequest is the body of PUT /auth/setScore. The pointer binding
// distinguishes a missing or non-integer score from an explicit 0.
type SetScoreRequest struct {
	Score *int `json:"score"`
}

// handleRegister creates a new account.
func (rs *RestServer) handleRegister(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body.",
			Error:   err.Error(),
		})
		return
	}

	if req.Email == "" || req.Name == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Email, name and password are required.",
		})
		return
	}

	role := req.Role
	if role == "" {
		role = auth.RoleUser
	}
	if !role.Valid() {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Unknown role.",
		})
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Error processing password.",
			Error:   err.Error(),
		})
		return
	}

	user, err := rs.userRepo.Create(c.Request.Context(), req.Email, req.Name, passwordHash, role)
	if err == auth.ErrUserExists {
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "A user with this email already exists.",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Error creating user.",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User created successfully.",
		"user":    user,
	})
}

// handleLogin verifies credentials and issues a session token.
func (rs *RestServer) handleLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body.",
			Error:   err.Error(),
		})
		return
	}

	if req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Email and password are required.",
		})
		return
	}

	user, err := rs.userRepo.GetByEmail(c.Request.Context(), req.Email)
	if err == auth.ErrUserNotFound {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "Invalid credentials.",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Error during login.",
			Error:   err.Error(),
		})
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "Invalid credentials.",
		})
		return
	}

	token, err := rs.tokens.Issue(user.ID, user.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Error generating token.",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful.",
		"token":   token,
	})
}

// handleProfile returns the authenticated caller's record.
func (rs *RestServer) handleProfile(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		c.JSON(http.StatusForbidden, ErrorResponse{Message: "Access forbidden."})
		return
	}

	user, err := rs.userRepo.GetByID(c.Request.Context(), identity.UserID)
	if err == auth.ErrUserNotFound {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "User not found.",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Error retrieving profile.",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User profile retrieved successfully.",
		"user":    user,
	})
}

// handleSetScore overwrites the caller's own score. The identity in the token
// is the only record this handler will ever touch.
func (rs *RestServer) handleSetScore(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		c.JSON(http.StatusForbidden, ErrorResponse{Message: "Access forbidden."})
		return
	}

	var req SetScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Score == nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Score must be an integer.",
		})
		return
	}

	user, err := rs.userRepo.SetScore(c.Request.Context(), identity.UserID, *req.Score)
	if err == auth.ErrUserNotFound {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "User not found.",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Error updating score.",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Score updated successfully.",
		"user":    user,
	})
}

// handleGetScore returns the caller's score.
func (rs *RestServer) handleGetScore(c *gin.Context) {
	identity, ok := identityFrom(c)
	if !ok {
		c.JSON(http.StatusForbidden, ErrorResponse{Message: "Access forbidden."})
		return
	}

	user, err := rs.userRepo.GetByID(c.Request.Context(), identity.UserID)
	if err == auth.ErrUserNotFound {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "User not found.",
		})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Error retrieving score.",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"score": user.Score})
}
