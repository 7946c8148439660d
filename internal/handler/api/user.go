package api

import (
	"errors"
	"net/http"

	"loyalty-ledger/internal/domain/user"
	reqdto "loyalty-ledger/internal/handler/dto/request"
	resdto "loyalty-ledger/internal/handler/dto/response"
	"loyalty-ledger/internal/pkg/errs"
	"loyalty-ledger/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userCommands commands.UserCommands
}

func NewUserHandler(userCommands commands.UserCommands) *UserHandler {
	return &UserHandler{userCommands: userCommands}
}

// @Summary Register staff account
// @Description Create a cashier or admin account (admin only)
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.RegisterUserRequest true "Registration request"
// @Success 201 {object} resdto.RegisterUserResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /users [post]
func (h *UserHandler) Register(c *gin.Context) {
	var req reqdto.RegisterUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.userCommands.RegisterUser(c.Request.Context(), commands.RegisterUserInput{
		Email:      req.Email,
		Password:   req.Password,
		Role:       req.Role,
		LocationID: req.LocationID,
	})
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrEmailAlreadyUsed):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Email is already registered",
			})
		case errors.Is(err, user.ErrInvalidEmail),
			errors.Is(err, user.ErrInvalidRole),
			errors.Is(err, user.ErrPasswordTooWeak):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromRegisterUserResult(result))
}
