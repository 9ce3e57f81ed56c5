package handlers

import (
	"net/http"
	"time"

	"capstone-collab-api/internal/cache"
	"capstone-collab-api/internal/database"
	"capstone-collab-api/internal/models"

	"github.com/gin-gonic/gin"
)

// userNames caches display names for note/submission enrichment so listing
// endpoints don't re-query the users table on every row.
var userNames = cache.New[string, string]()

const userNameTTL = 5 * time.Minute

func displayName(userID string) string {
	if name, ok := userNames.Get(userID); ok {
		return name
	}

	var u models.User
	if err := database.GetDB().First(&u, "id = ?", userID).Error; err != nil {
		return ""
	}
	userNames.Set(userID, u.FullName, userNameTTL)
	return u.FullName
}

// UserResponse is the safe public projection of a user row.
type UserResponse struct {
	ID       string          `json:"id"`
	FullName string          `json:"full_name"`
	Role     models.UserRole `json:"role"`
}

// GetAllUsers returns all workspace members (protected)
// GET /api/users
func GetAllUsers(c *gin.Context) {
	var users []models.User
	if err := database.GetDB().Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}

	resp := make([]UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, UserResponse{
			ID:       u.ID,
			FullName: u.FullName,
			Role:     u.Role,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"users": resp,
		"count": len(resp),
	})
}
