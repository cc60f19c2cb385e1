package delivery

import (
	"net/http"

	"github.com/XyvinTech/councelling-backend/domain"
	"github.com/XyvinTech/councelling-backend/dto"
	"github.com/XyvinTech/councelling-backend/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authUC domain.AuthUseCase
}

// NewAuthHandler registers one login route per role. The limiter sits in
// front of all three so credential stuffing hits the rate limit, not the
// database.
func NewAuthHandler(r *gin.Engine, authUC domain.AuthUseCase, limiter gin.HandlerFunc) {
	handler := &AuthHandler{authUC: authUC}

	auth := r.Group("/auth")
	if limiter != nil {
		auth.Use(limiter)
	}
	{
		auth.POST("/student/login", handler.login(domain.RoleStudent))
		auth.POST("/counsellor/login", handler.login(domain.RoleCounsellor))
		auth.POST("/admin/login", handler.login(domain.RoleAdmin))
	}
}

func (h *AuthHandler) login(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := utils.GetAPIHitter(c)

		var req dto.LoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.PrintLogInfo(&name, 400, "Login", &err)
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error":   utils.TranslateValidationError(err),
				"message": "Failed to login",
			})
			return
		}

		tokens, err := h.authUC.Login(c.Request.Context(), req.Email, req.Password, role)
		if err != nil {
			utils.PrintLogInfo(&name, 401, "Login", &err)
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   err.Error(),
				"message": "Failed to login",
			})
			return
		}

		utils.PrintLogInfo(&name, 200, "Login", nil)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    tokens,
		})
	}
}
