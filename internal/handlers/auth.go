package handlers

import (
	"net/http"
	"time"

	"github.com/IlluminoStudio/scribemate-sub000/internal/database"
	"github.com/IlluminoStudio/scribemate-sub000/internal/middleware"
	"github.com/IlluminoStudio/scribemate-sub000/internal/models"
	"github.com/IlluminoStudio/scribemate-sub000/internal/services"
	"github.com/IlluminoStudio/scribemate-sub000/pkg/logger"
	"github.com/IlluminoStudio/scribemate-sub000/pkg/utils"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

type LoginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login POST /auth/login
func Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Per-username throttle on top of the IP limiter, shared across
	// processes via Redis.
	allowed, _ := database.CheckRateLimit("login:"+input.Username, 10, time.Minute)
	if !allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many login attempts. Please wait a minute."})
		return
	}

	var user models.User
	if result := database.DB.Where("username = ?", input.Username).First(&user); result.Error != nil {
		logger.Warn().Str("username", input.Username).Msg("Login failed: user not found")
		services.LogEvent(models.SystemActorID, models.EventLoginFailed, "", input.Username)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)); err != nil {
		logger.Warn().Str("username", input.Username).Msg("Login failed: invalid password")
		services.LogEvent(models.SystemActorID, models.EventLoginFailed, user.ID, input.Username)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := utils.GenerateToken(user.ID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
		return
	}

	services.LogEvent(user.ID, models.EventLoginSucceeded, user.ID, "")
	logger.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("User logged in")

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// Me GET /users/me
// Carers also get the coordinator they are currently assigned to.
func Me(c *gin.Context) {
	viewer, ok := middleware.CurrentViewer(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	response := gin.H{"user": viewer}

	if viewer.Role == models.RoleCarer {
		if coordinatorID, err := services.CoordinatorFor(viewer.ID); err == nil {
			var coordinator models.User
			if err := database.DB.Select("id", "full_name", "username").
				First(&coordinator, "id = ?", coordinatorID).Error; err == nil {
				response["coordinator"] = coordinator
			}
		}
	}

	c.JSON(http.StatusOK, response)
}
