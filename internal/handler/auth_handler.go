package handler

import (
	"net/http"
	"strings"
	"time"

	"github.com/mayaawwadd/taskflow/internal/activity"
	"github.com/mayaawwadd/taskflow/internal/apperr"
	"github.com/mayaawwadd/taskflow/internal/auth"
	"github.com/mayaawwadd/taskflow/internal/model"
	"github.com/mayaawwadd/taskflow/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Lockout policy: after maxFailedLogins consecutive failures the account
// locks for lockoutDuration and the counter resets.
const (
	maxFailedLogins = 5
	lockoutDuration = 15 * time.Minute
)

type AuthHandler struct {
	repo      repository.UserRepositoryInterface
	notifier  *activity.Notifier
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthHandler(repo repository.UserRepositoryInterface, notifier *activity.Notifier, jwtSecret string, tokenTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		repo:      repo,
		notifier:  notifier,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}
}

type RegisterRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=6"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UserResponse struct {
	ID             string `json:"id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	Avatar         string `json:"avatar"`
	Role           string `json:"role"`
	EmailConfirmed bool   `json:"email_confirmed"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func userResponse(user *model.User) UserResponse {
	return UserResponse{
		ID:             user.ID.String(),
		FirstName:      user.FirstName,
		LastName:       user.LastName,
		Email:          user.Email,
		Avatar:         user.Avatar,
		Role:           user.Role,
		EmailConfirmed: user.EmailConfirmed,
	}
}

// Register creates a new account and returns a session token.
// @Summary  Register a new user
// @Tags     Auth
// @Accept   json
// @Produce  json
// @Param    request body RegisterRequest true "Registration data"
// @Success  201 {object} AuthResponse
// @Router   /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("First name, last name, email, and password are required"))
		return
	}

	req.Email = strings.ToLower(req.Email)

	existing, err := h.repo.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, apperr.Internal("Failed to check existing users", err))
		return
	}
	if existing != nil {
		respondError(c, apperr.Conflict("User with this email already exists"))
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(c, apperr.Internal("Failed to hash password", err))
		return
	}

	user := &model.User{
		ID:             uuid.New(),
		Email:          req.Email,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		HashedPassword: string(hash),
		Avatar:         "/uploads/avatars/default.png",
		Role:           "user",
		LockoutEnabled: true,
	}

	if err := h.repo.Create(c.Request.Context(), user); err != nil {
		if err == repository.ErrEmailTaken {
			respondError(c, apperr.Conflict("User with this email already exists"))
			return
		}
		respondError(c, apperr.Internal("Failed to create user", err))
		return
	}

	token, err := auth.GenerateToken(h.jwtSecret, user.ID.String(), h.tokenTTL)
	if err != nil {
		respondError(c, apperr.Internal("Failed to issue token", err))
		return
	}

	h.notifier.Record(c.Request.Context(), user.ID, model.ActionUserRegistered, model.EntityUser, user.ID, nil)

	c.JSON(http.StatusCreated, AuthResponse{Token: token, User: userResponse(user)})
}

// Login authenticates a user and returns a session token.
// @Summary  Log in
// @Tags     Auth
// @Accept   json
// @Produce  json
// @Param    request body LoginRequest true "Credentials"
// @Success  200 {object} AuthResponse
// @Router   /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("Email and password are required"))
		return
	}

	req.Email = strings.ToLower(req.Email)

	user, err := h.repo.FindByEmail(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, apperr.Internal("Failed to look up user", err))
		return
	}
	if user == nil {
		// Same message as a bad password so the response never reveals
		// whether the email exists.
		respondError(c, apperr.Unauthenticated("Invalid credentials"))
		return
	}

	// Lockout is checked before the password: a locked account rejects
	// even the correct password.
	if user.Locked(time.Now()) {
		respondError(c, apperr.AccountLocked("Account is temporarily locked"))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(req.Password)); err != nil {
		user.FailedLoginAttempts++
		if user.FailedLoginAttempts >= maxFailedLogins && user.LockoutEnabled {
			until := time.Now().Add(lockoutDuration)
			user.LockoutEnd = &until
			user.FailedLoginAttempts = 0
		}
		if err := h.repo.Update(c.Request.Context(), user); err != nil {
			respondError(c, apperr.Internal("Failed to record login attempt", err))
			return
		}
		respondError(c, apperr.Unauthenticated("Invalid credentials"))
		return
	}

	user.FailedLoginAttempts = 0
	user.LockoutEnd = nil
	if err := h.repo.Update(c.Request.Context(), user); err != nil {
		respondError(c, apperr.Internal("Failed to reset login attempts", err))
		return
	}

	token, err := auth.GenerateToken(h.jwtSecret, user.ID.String(), h.tokenTTL)
	if err != nil {
		respondError(c, apperr.Internal("Failed to issue token", err))
		return
	}

	h.notifier.Record(c.Request.Context(), user.ID, model.ActionUserLoggedIn, model.EntityUser, user.ID, nil)

	c.JSON(http.StatusOK, AuthResponse{Token: token, User: userResponse(user)})
}

// Me returns the authenticated caller's profile.
// @Summary  Current user
// @Tags     Auth
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} UserResponse
// @Router   /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.repo.GetByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, apperr.Internal("Failed to load user", err))
		return
	}
	if user == nil {
		respondError(c, apperr.Unauthenticated("User not found"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": userResponse(user)})
}
