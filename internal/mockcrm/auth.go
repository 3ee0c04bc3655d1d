package mockcrm

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/lolijho/crm-grab-backend-sub000/pkg/models"
)

const contextKeyUser = "user"

type claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

func (s *Server) seedAdmin() error {
	hash, err := bcrypt.GenerateFromPassword([]byte(s.cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &models.User{
		ID:         newID(),
		Name:       "Admin",
		Email:      s.cfg.AdminEmail,
		Role:       "admin",
		IsVerified: true,
		IsActive:   true,
		CreatedAt:  now(),
	}
	s.store.addUser(admin, string(hash))
	return nil
}

func (s *Server) generateToken(u *models.User) (string, error) {
	cl := &claims{
		Email: u.Email,
		Role:  u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(7 * 24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, cl)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *Server) validateToken(tokenString string) (*claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid signing method")
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if cl, ok := token.Claims.(*claims); ok && token.Valid {
		return cl, nil
	}
	return nil, errors.New("invalid token")
}

// requireAuth validates the bearer token and stashes the user in the
// request context.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Not authenticated"})
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid authorization header"})
			return
		}
		cl, err := s.validateToken(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid or expired token"})
			return
		}

		s.store.mu.RLock()
		user, ok := s.store.users[cl.Subject]
		s.store.mu.RUnlock()
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "User not found"})
			return
		}

		c.Set(contextKeyUser, user)
		c.Next()
	}
}

func currentUser(c *gin.Context) *models.User {
	u, _ := c.Get(contextKeyUser)
	user, _ := u.(*models.User)
	return user
}

func (s *Server) login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	user := s.store.userByEmail(req.Email)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid credentials"})
		return
	}
	hash := s.store.passwords[user.ID]
	if bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid credentials"})
		return
	}
	if !user.IsVerified {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Please verify your email before logging in"})
		return
	}

	user.LastLogin = now()
	token, err := s.generateToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"user":         user,
	})
}

func (s *Server) register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	if s.store.userByEmail(req.Email) != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Email already registered"})
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Registration failed"})
		return
	}

	user := &models.User{
		ID:        newID(),
		Name:      req.Name,
		Email:     req.Email,
		Role:      "user",
		IsActive:  true,
		CreatedAt: now(),
	}
	s.store.addUser(user, string(hash))
	s.store.issueToken(user.ID, tokenTypeVerification, 24*time.Hour)

	c.JSON(http.StatusOK, gin.H{
		"message": "Registration successful. Please verify your email.",
		"user_id": user.ID,
	})
}

func (s *Server) me(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}
