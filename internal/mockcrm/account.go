package mockcrm

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenTypeVerification = "email_verification"
	tokenTypeReset        = "password_reset"
)

// verifyEmail consumes a verification token and marks the account verified.
// The real backend emails the token; here it is issued at registration.
func (s *Server) verifyEmail(c *gin.Context) {
	var req struct {
		Token string `json:"token"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid or expired verification token"})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	userID, ok := s.store.consumeToken(req.Token, tokenTypeVerification)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid or expired verification token"})
		return
	}
	user, ok := s.store.users[userID]
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "User not found"})
		return
	}
	user.IsVerified = true

	c.JSON(http.StatusOK, gin.H{"message": "Email verified successfully. You can now log in."})
}

// forgotPassword issues a reset token. The response never reveals whether
// the address exists.
func (s *Server) forgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email"`
	}
	_ = c.ShouldBindJSON(&req)

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if user := s.store.userByEmail(req.Email); user != nil {
		s.store.issueToken(user.ID, tokenTypeReset, time.Hour)
	}
	c.JSON(http.StatusOK, gin.H{"message": "If the email exists, a password reset link has been sent"})
}

// resetPassword consumes a reset token and installs the new password.
func (s *Server) resetPassword(c *gin.Context) {
	var req struct {
		Token       string `json:"token"`
		NewPassword string `json:"new_password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" || req.NewPassword == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid or expired reset token"})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	userID, ok := s.store.consumeToken(req.Token, tokenTypeReset)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid or expired reset token"})
		return
	}
	if _, ok := s.store.users[userID]; !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "User not found"})
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Password reset failed"})
		return
	}
	s.store.passwords[userID] = string(hash)

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully"})
}
