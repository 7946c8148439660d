package request

import (
	"github.com/google/uuid"
)

type RegisterUserRequest struct {
	Email      string     `json:"email" binding:"required,email"`
	Password   string     `json:"password" binding:"required,min=8"`
	Role       string     `json:"role" binding:"required,oneof=cashier admin"`
	LocationID *uuid.UUID `json:"location_id"`
}
