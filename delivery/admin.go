package delivery

import (
	"net/http"
	"strconv"

	"github.com/XyvinTech/councelling-backend/config"
	"github.com/XyvinTech/councelling-backend/domain"
	"github.com/XyvinTech/councelling-backend/dto"
	"github.com/XyvinTech/councelling-backend/middleware"
	"github.com/XyvinTech/councelling-backend/utils"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminUC domain.AdminUseCase
}

func NewAdminHandler(r *gin.Engine, adminUC domain.AdminUseCase, jwtManager *utils.JWTManager) {
	handler := &AdminHandler{adminUC: adminUC}

	// public directory endpoints
	r.GET("/types", handler.GetAllTypes)
	r.GET("/events", handler.GetAllEvents)

	admin := r.Group("/admin")
	admin.Use(config.AuthMiddleware(jwtManager), middleware.AdminOnly())
	{
		admin.POST("/counsellors", handler.CreateCounsellor)
		admin.POST("/students", handler.CreateStudent)
		admin.GET("/users", handler.GetAllUsers)
		admin.GET("/users/:uuid", handler.GetUser)
		admin.PUT("/users/:uuid", handler.UpdateUser)
		admin.DELETE("/users/:uuid", handler.DeleteUser)

		admin.POST("/types", handler.CreateType)
		admin.PUT("/types/:id", handler.UpdateType)
		admin.DELETE("/types/:id", handler.DeleteType)

		admin.POST("/events", handler.CreateEvent)
		admin.PUT("/events/:uuid", handler.UpdateEvent)
		admin.DELETE("/events/:uuid", handler.DeleteEvent)

		admin.DELETE("/sessions/:uuid", handler.DeleteSession)
		admin.DELETE("/cases/:uuid", handler.DeleteCase)
	}
}

func (h *AdminHandler) CreateCounsellor(c *gin.Context) {
	name := utils.GetAPIHitter(c)

	var req dto.CreateCounsellorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.PrintLogInfo(&name, 400, "CreateCounsellor", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   utils.TranslateValidationError(err),
			"message": "Failed to create counsellor",
		})
		return
	}

	user, err := h.adminUC.CreateCounsellor(c.Request.Context(), dto.MapCreateCounsellorRequest(&req))
	if err != nil {
		utils.PrintLogInfo(&name, 500, "CreateCounsellor", &err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   utils.TranslateDBError(err),
			"message": "Failed to create counsellor",
		})
		return
	}

	utils.PrintLogInfo(&name, 201, "CreateCounsellor", nil)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    user,
		"message": "Counsellor created successfully",
	})
}

func (h *AdminHandler) CreateStudent(c *gin.Context) {
	name := utils.GetAPIHitter(c)

	var req dto.CreateStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.PrintLogInfo(&name, 400, "CreateStudent", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   utils.TranslateValidationError(err),
			"message": "Failed to create student",
		})
		return
	}

	user, err := h.adminUC.CreateStudent(c.Request.Context(), dto.MapCreateStudentRequest(&req))
	if err != nil {
		utils.PrintLogInfo(&name, 500, "CreateStudent", &err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   utils.TranslateDBError(err),
			"message": "Failed to create student",
		})
		return
	}

	utils.PrintLogInfo(&name, 201, "CreateStudent", nil)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    user,
		"message": "Student created successfully",
	})
}

func (h *AdminHandler) GetAllUsers(c *gin.Context) {
	name := utils.GetAPIHitter(c)

	users, err := h.adminUC.GetAllUsers(c.Request.Context())
	if err != nil {
		utils.PrintLogInfo(&name, 500, "GetAllUsers", &err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   utils.TranslateDBError(err),
			"message": "Failed to get users",
		})
		return
	}

	utils.PrintLogInfo(&name, 200, "GetAllUsers", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    users,
	})
}

func (h *AdminHandler) GetUser(c *gin.Context) {
	name := utils.GetAPIHitter(c)

	user, err := h.adminUC.GetUser(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		status := statusForError(err)
		utils.PrintLogInfo(&name, status, "GetUser", &err)
		c.JSON(status, gin.H{
			"success": false,
			"error":   utils.TranslateDBError(err),
			"message": "Failed to get user",
		})
		return
	}

	utils.PrintLogInfo(&name, 200, "GetUser", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}

func (h *AdminHandler) UpdateUser(c *gin.Context) {
	name := utils.GetAPIHitter(c)

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.PrintLogInfo(&name, 400, "UpdateUser", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   utils.TranslateValidationError(err),
			"message": "Failed to update user",
		})
		return
	}

	err := h.adminUC.UpdateUser(c.Request.Context(), c.Param("uuid"), dto.MapUpdateUserRequest(&req))
	if err != nil {
		status := statusForError(err)
		utils.PrintLogInfo(&name, status, "UpdateUser", &err)
		c.JSON(status, gin.H{
			"success": false,
			"error":   utils.TranslateDBError(err),
			"message": "Failed to update user",
		})
		return
	}

	utils.PrintLogInfo(&name, 200, "UpdateUser", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User updated successfully",
	})
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	name := utils.GetAPIHitter(c)

	if err := h.adminUC.DeleteUser(c.Request.Context(), c.Param("uuid")); err != nil {
		status := statusForError(err)
		utils.PrintLogInfo(&name, status, "DeleteUser", &err)
		c.JSON(status, gin.H{
			"success": false,
			"error":   utils.TranslateDBError(err),
			"message": "Failed to delete user",
		})
		return
	}

	utils.PrintLogInfo(&name, 200, "DeleteUser", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "User deleted successfully",
	})
}

func (h *AdminHandler) CreateType(c *gin.Context) {
	name := utils.GetAPIHitter(c)

	var req dto.CounsellingTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.PrintLogInfo(&name, 400, "CreateType", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   utils.TranslateValidationError(err),
			"message": "Failed to create counselling type",
		})
		return
	}

	created, err := h.adminUC.CreateType(c.Request.Context(), &domain.CounsellingType{Name: req.Name})
	if err != nil {
		utils.PrintLogInfo(&name, 500, "CreateType", &err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   utils.TranslateDBError(err),
			"message": "Failed to create counselling type",
		})
		return
	}

	utils.PrintLogInfo(&name, 201, "CreateType", nil)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    created,
		"message": "Counselling type created successfully",
	})
}

func (h *AdminHandler) GetAllTypes(c *gin.Context) {
	name := utils.GetAPIHitter(c)

	types, err := h.adminUC.GetAllTypes(c.Request.Context())
	if err != nil {
		utils.PrintLogInfo(&name, 500, "GetAllTypes", &err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   utils.TranslateDBError(err),
			"message": "Failed to get counselling types",
		})
		return
	}

	utils.PrintLogInfo(&name, 200, "GetAllTypes", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    types,
	})
}

func (h *AdminHandler) UpdateType(c *gin.Context) {
	name := utils.GetAPIHitter(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.PrintLogInfo(&name, 400, "UpdateType", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid type ID",
			"message": "Failed to update counselling type",
		})
		return
	}

	var req dto.CounsellingTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.PrintLogInfo(&name, 400, "UpdateType", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   utils.TranslateValidationError(err),
			"message": "Failed to update counselling type",
		})
		return
	}

	err = h.adminUC.UpdateType(c.Request.Context(), &domain.CounsellingType{ID: id, Name: req.Name})
	if err != nil {
		status := statusForError(err)
		utils.PrintLogInfo(&name, status, "UpdateType", &err)
		c.JSON(status, gin.H{
			"success": false,
			"error":   utils.TranslateDBError(err),
			"message": "Failed to update counselling type",
		})
		return
	}

	utils.PrintLogInfo(&name, 200, "UpdateType", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Counselling type updated successfully",
	})
}

func (h *AdminHandler) DeleteType(c *gin.Context) {
	name := utils.GetAPIHitter(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		utils.PrintLogInfo(&name, 400, "DeleteType", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid type ID",
			"message": "Failed to delete counselling type",
		})
		return
	}

	if err := h.adminUC.DeleteType(c.Request.Context(), id); err != nil {
		status := statusForError(err)
		utils.PrintLogInfo(&name, status, "DeleteType", &err)
		c.JSON(status, gin.H{
			"success": false,
			"error":   utils.TranslateDBError(err),
			"message": "Failed to delete counselling type",
		})
		return
	}

	utils.PrintLogInfo(&name, 200, "DeleteType", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Counselling type deleted successfully",
	})
}

func (h *AdminHandler) CreateEvent(c *gin.Context) {
	name := utils.GetAPIHitter(c)

	var req dto.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.PrintLogInfo(&name, 400, "CreateEvent", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   utils.TranslateValidationError(err),
			"message": "Failed to create event",
		})
		return
	}

	created, err := h.adminUC.CreateEvent(c.Request.Context(), dto.MapEventRequest(&req))
	if err != nil {
		utils.PrintLogInfo(&name, 500, "CreateEvent", &err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   utils.TranslateDBError(err),
			"message": "Failed to create event",
		})
		return
	}

	utils.PrintLogInfo(&name, 201, "CreateEvent", nil)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    created,
		"message": "Event created successfully",
	})
}

func (h *AdminHandler) GetAllEvents(c *gin.Context) {
	name := utils.GetAPIHitter(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	events, total, err := h.adminUC.GetAllEvents(c.Request.Context(), page, limit)
	if err != nil {
		utils.PrintLogInfo(&name, 500, "GetAllEvents", &err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   utils.TranslateDBError(err),
			"message": "Failed to get events",
		})
		return
	}

	utils.PrintLogInfo(&name, 200, "GetAllEvents", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    events,
		"total":   total,
	})
}

func (h *AdminHandler) UpdateEvent(c *gin.Context) {
	name := utils.GetAPIHitter(c)

	var req dto.EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.PrintLogInfo(&name, 400, "UpdateEvent", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   utils.TranslateValidationError(err),
			"message": "Failed to update event",
		})
		return
	}

	event := dto.MapEventRequest(&req)
	event.UUID = c.Param("uuid")

	if err := h.adminUC.UpdateEvent(c.Request.Context(), event); err != nil {
		status := statusForError(err)
		utils.PrintLogInfo(&name, status, "UpdateEvent", &err)
		c.JSON(status, gin.H{
			"success": false,
			"error":   utils.TranslateDBError(err),
			"message": "Failed to update event",
		})
		return
	}

	utils.PrintLogInfo(&name, 200, "UpdateEvent", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Event updated successfully",
	})
}

func (h *AdminHandler) DeleteEvent(c *gin.Context) {
	name := utils.GetAPIHitter(c)

	if err := h.adminUC.DeleteEvent(c.Request.Context(), c.Param("uuid")); err != nil {
		status := statusForError(err)
		utils.PrintLogInfo(&name, status, "DeleteEvent", &err)
		c.JSON(status, gin.H{
			"success": false,
			"error":   utils.TranslateDBError(err),
			"message": "Failed to delete event",
		})
		return
	}

	utils.PrintLogInfo(&name, 200, "DeleteEvent", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Event deleted successfully",
	})
}

func (h *AdminHandler) DeleteSession(c *gin.Context) {
	name := utils.GetAPIHitter(c)

	if err := h.adminUC.DeleteSession(c.Request.Context(), c.Param("uuid")); err != nil {
		status := statusForError(err)
		utils.PrintLogInfo(&name, status, "DeleteSession", &err)
		c.JSON(status, gin.H{
			"success": false,
			"error":   utils.TranslateDBError(err),
			"message": "Failed to delete session",
		})
		return
	}

	utils.PrintLogInfo(&name, 200, "DeleteSession", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Session deleted successfully",
	})
}

func (h *AdminHandler) DeleteCase(c *gin.Context) {
	name := utils.GetAPIHitter(c)

	if err := h.adminUC.DeleteCase(c.Request.Context(), c.Param("uuid")); err != nil {
		status := statusForError(err)
		utils.PrintLogInfo(&name, status, "DeleteCase", &err)
		c.JSON(status, gin.H{
			"success": false,
			"error":   utils.TranslateDBError(err),
			"message": "Failed to delete case",
		})
		return
	}

	utils.PrintLogInfo(&name, 200, "DeleteCase", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Case deleted successfully",
	})
}
