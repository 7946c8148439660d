package api

import (
	"net/http"

	"loyalty-ledger/internal/handler/middleware"
	"loyalty-ledger/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// cashierContext resolves the authenticated user and the store they are
// assigned to. Ledger writes are always attributed to a cashier at a
// location, so a user without an assignment cannot perform them.
func cashierContext(c *gin.Context, userQueries queries.UserQueries) (userID, locationID uuid.UUID, ok bool) {
	userID, found := middleware.GetUserID(c)
	if !found {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return uuid.Nil, uuid.Nil, false
	}

	user, err := userQueries.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid or expired token",
		})
		return uuid.Nil, uuid.Nil, false
	}

	if user.LocationID == nil {
		c.JSON(http.StatusForbidden, gin.H{
			"error": "User is not assigned to a location",
		})
		return uuid.Nil, uuid.Nil, false
	}

	return userID, *user.LocationID, true
}
