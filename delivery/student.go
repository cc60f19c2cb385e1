package delivery

import (
	"net/http"
	"strconv"
	"time"

	"github.com/XyvinTech/councelling-backend/config"
	"github.com/XyvinTech/councelling-backend/domain"
	"github.com/XyvinTech/councelling-backend/dto"
	"github.com/XyvinTech/councelling-backend/middleware"
	"github.com/XyvinTech/councelling-backend/utils"

	"github.com/gin-gonic/gin"
)

type StudentHandler struct {
	studUC domain.StudentUseCase
	flowUC domain.WorkflowUseCase
}

func NewStudentHandler(r *gin.Engine, studUC domain.StudentUseCase, flowUC domain.WorkflowUseCase, jwtManager *utils.JWTManager, limiter gin.HandlerFunc) {
	handler := &StudentHandler{studUC: studUC, flowUC: flowUC}

	student := r.Group("/student")
	student.Use(config.AuthMiddleware(jwtManager), middleware.StudentOnly())
	{
		student.GET("/profile", handler.GetMyProfile)
		student.PUT("/profile", handler.UpdateMyProfile)

		student.GET("/counsellors", handler.GetAllCounsellors)
		student.GET("/counsellors/:uuid/days", handler.GetCounsellorDays)
		student.GET("/counsellors/:uuid/times", handler.GetAvailableTimes)

		if limiter != nil {
			student.POST("/sessions", limiter, handler.RequestSession)
		} else {
			student.POST("/sessions", handler.RequestSession)
		}
		student.GET("/sessions", handler.GetMySessions)
		student.GET("/sessions/:uuid", handler.GetSession)
		student.PUT("/sessions/:uuid/reschedule", handler.RescheduleSession)
		student.PUT("/sessions/:uuid/cancel", handler.CancelSession)

		student.GET("/cases", handler.GetMyCases)
		student.GET("/cases/:uuid/sessions", handler.GetCaseSessions)

		student.GET("/notifications", handler.GetNotifications)
		student.PUT("/notifications/read", handler.MarkNotificationsRead)
		student.PUT("/notifications/:uuid/read", handler.MarkNotificationRead)
	}
}

func (h *StudentHandler) GetMyProfile(c *gin.Context) {
	name := utils.GetAPIHitter(c)

	userUUID, exists := c.Get("userUUID")
	if !exists {
		utils.PrintLogInfo(&name, 401, "GetMyProfile", nil)
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "Unauthorized: missing user context",
			"message": "Failed to get profile",
		})
		return
	}

	user, err := h.studUC.GetMyProfile(c.Request.Context(), userUUID.(string))
	if err != nil {
		status := statusForError(err)
		utils.PrintLogInfo(&name, status, "GetMyProfile", &err)
		c.JSON(status, gin.H{
			"success": false,
			"error":   utils.TranslateDBError(err),
			"message": "Failed to get profile",
		})
		return
	}

	utils.PrintLogInfo(&name, 200, "GetMyProfile", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    user,
	})
}

func (h *StudentHandler) UpdateMyProfile(c *gin.Context) {
	name := utils.GetAPIHitter(c)

	userUUID, exists := c.Get("userUUID")
	if !exists {
		utils.PrintLogInfo(&name, 401, "UpdateMyProfile", nil)
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "Unauthorized: missing user context",
			"message": "Failed to update profile",
		})
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.PrintLogInfo(&name, 400, "UpdateMyProfile", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   utils.TranslateValidationError(err),
			"message": "Failed to update profile",
		})
		return
	}

	err := h.studUC.UpdateMyProfile(c.Request.Context(), userUUID.(string), dto.MapUpdateProfileRequest(&req))
	if err != nil {
		status := statusForError(err)
		utils.PrintLogInfo(&name, status, "UpdateMyProfile", &err)
		c.JSON(status, gin.H{
			"success": false,
			"error":   utils.TranslateDBError(err),
			"message": "Failed to update profile",
		})
		return
	}

	utils.PrintLogInfo(&name, 200, "UpdateMyProfile", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Profile updated successfully",
	})
}

func (h *StudentHandler) GetAllCounsellors(c *gin.Context) {
	name := utils.GetAPIHitter(c)

	counsellors, err := h.studUC.GetAllCounsellors(c.Request.Context(), c.Query("type"))
	if err != nil {
		utils.PrintLogInfo(&name, 500, "GetAllCounsellors", &err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   utils.TranslateDBError(err),
			"message": "Failed to get counsellors",
		})
		return
	}

	utils.PrintLogInfo(&name, 200, "GetAllCounsellors", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    counsellors,
	})
}

func (h *StudentHandler) GetCounsellorDays(c *gin.Context) {
	name := utils.GetAPIHitter(c)

	days, err := h.studUC.GetCounsellorDays(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		status := statusForError(err)
		utils.PrintLogInfo(&name, status, "GetCounsellorDays", &err)
		c.JSON(status, gin.H{
			"success": false,
			"error":   utils.TranslateDBError(err),
			"message": "Failed to get counsellor days",
		})
		return
	}

	utils.PrintLogInfo(&name, 200, "GetCounsellorDays", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    days,
	})
}

func (h *StudentHandler) GetAvailableTimes(c *gin.Context) {
	name := utils.GetAPIHitter(c)

	date, err := time.Parse(domain.DateLayout, c.Query("date"))
	if err != nil {
		utils.PrintLogInfo(&name, 400, "GetAvailableTimes", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "date must be in YYYY-MM-DD format",
			"message": "Failed to get available times",
		})
		return
	}

	intervals, err := h.studUC.GetAvailableTimes(c.Request.Context(), c.Param("uuid"), c.Query("day"), date)
	if err != nil {
		status := statusForError(err)
		utils.PrintLogInfo(&name, status, "GetAvailableTimes", &err)
		c.JSON(status, gin.H{
			"success": false,
			"error":   utils.TranslateDBError(err),
			"message": "Failed to get available times",
		})
		return
	}

	utils.PrintLogInfo(&name, 200, "GetAvailableTimes", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    intervals,
	})
}

func (h *StudentHandler) RequestSession(c *gin.Context) {
	name := utils.GetAPIHitter(c)

	userUUID, exists := c.Get("userUUID")
	if !exists {
		utils.PrintLogInfo(&name, 401, "RequestSession", nil)
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "Unauthorized: missing user context",
			"message": "Failed to request session",
		})
		return
	}

	var req dto.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.PrintLogInfo(&name, 400, "RequestSession", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   utils.TranslateValidationError(err),
			"message": "Failed to request session",
		})
		return
	}

	session, newCase, err := h.flowUC.RequestSession(c.Request.Context(), dto.MapCreateSessionRequest(&req, userUUID.(string)))
	if err != nil {
		status := statusForError(err)
		utils.PrintLogInfo(&name, status, "RequestSession", &err)
		c.JSON(status, gin.H{
			"success": false,
			"error":   utils.TranslateDBError(err),
			"message": "Failed to request session",
		})
		return
	}

	utils.PrintLogInfo(&name, 201, "RequestSession", nil)
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data": gin.H{
			"session": session,
			"case":    newCase,
		},
		"message": "Session requested successfully",
	})
}

func (h *StudentHandler) GetMySessions(c *gin.Context) {
	name := utils.GetAPIHitter(c)

	userUUID, exists := c.Get("userUUID")
	if !exists {
		utils.PrintLogInfo(&name, 401, "GetMySessions", nil)
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "Unauthorized: missing user context",
			"message": "Failed to get sessions",
		})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	sessions, total, err := h.studUC.GetMySessions(c.Request.Context(), userUUID.(string), c.Query("status"), page, limit)
	if err != nil {
		utils.PrintLogInfo(&name, 500, "GetMySessions", &err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   utils.TranslateDBError(err),
			"message": "Failed to get sessions",
		})
		return
	}

	utils.PrintLogInfo(&name, 200, "GetMySessions", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    sessions,
		"total":   total,
	})
}

func (h *StudentHandler) GetSession(c *gin.Context) {
	name := utils.GetAPIHitter(c)

	session, err := h.studUC.GetSession(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		status := statusForError(err)
		utils.PrintLogInfo(&name, status, "GetSession", &err)
		c.JSON(status, gin.H{
			"success": false,
			"error":   utils.TranslateDBError(err),
			"message": "Failed to get session",
		})
		return
	}

	utils.PrintLogInfo(&name, 200, "GetSession", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    session,
	})
}

func (h *StudentHandler) RescheduleSession(c *gin.Context) {
	name := utils.GetAPIHitter(c)

	userUUID, exists := c.Get("userUUID")
	if !exists {
		utils.PrintLogInfo(&name, 401, "RescheduleSession", nil)
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "Unauthorized: missing user context",
			"message": "Failed to reschedule session",
		})
		return
	}

	var req dto.RescheduleSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.PrintLogInfo(&name, 400, "RescheduleSession", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   utils.TranslateValidationError(err),
			"message": "Failed to reschedule session",
		})
		return
	}

	newDate, _ := time.Parse(domain.DateLayout, req.Date)
	session, err := h.flowUC.RescheduleSession(
		c.Request.Context(),
		domain.ActorStudent,
		userUUID.(string),
		c.Param("uuid"),
		newDate,
		domain.Interval{Start: req.StartTime, End: req.EndTime},
		req.Remark,
	)
	if err != nil {
		status := statusForError(err)
		utils.PrintLogInfo(&name, status, "RescheduleSession", &err)
		c.JSON(status, gin.H{
			"success": false,
			"error":   utils.TranslateDBError(err),
			"message": "Failed to reschedule session",
		})
		return
	}

	utils.PrintLogInfo(&name, 200, "RescheduleSession", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    session,
		"message": "Session rescheduled successfully",
	})
}

func (h *StudentHandler) CancelSession(c *gin.Context) {
	name := utils.GetAPIHitter(c)

	userUUID, exists := c.Get("userUUID")
	if !exists {
		utils.PrintLogInfo(&name, 401, "CancelSession", nil)
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "Unauthorized: missing user context",
			"message": "Failed to cancel session",
		})
		return
	}

	var req dto.CancelSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.PrintLogInfo(&name, 400, "CancelSession", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   utils.TranslateValidationError(err),
			"message": "Failed to cancel session",
		})
		return
	}

	session, err := h.flowUC.CancelSession(c.Request.Context(), domain.ActorStudent, userUUID.(string), c.Param("uuid"), req.Remark)
	if err != nil {
		status := statusForError(err)
		utils.PrintLogInfo(&name, status, "CancelSession", &err)
		c.JSON(status, gin.H{
			"success": false,
			"error":   utils.TranslateDBError(err),
			"message": "Failed to cancel session",
		})
		return
	}

	utils.PrintLogInfo(&name, 200, "CancelSession", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    session,
		"message": "Session cancelled successfully",
	})
}

func (h *StudentHandler) GetMyCases(c *gin.Context) {
	name := utils.GetAPIHitter(c)

	userUUID, exists := c.Get("userUUID")
	if !exists {
		utils.PrintLogInfo(&name, 401, "GetMyCases", nil)
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "Unauthorized: missing user context",
			"message": "Failed to get cases",
		})
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	cases, total, err := h.studUC.GetMyCases(c.Request.Context(), userUUID.(string), page, limit)
	if err != nil {
		utils.PrintLogInfo(&name, 500, "GetMyCases", &err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   utils.TranslateDBError(err),
			"message": "Failed to get cases",
		})
		return
	}

	utils.PrintLogInfo(&name, 200, "GetMyCases", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    cases,
		"total":   total,
	})
}

func (h *StudentHandler) GetCaseSessions(c *gin.Context) {
	name := utils.GetAPIHitter(c)

	sessions, err := h.studUC.GetCaseSessions(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		status := statusForError(err)
		utils.PrintLogInfo(&name, status, "GetCaseSessions", &err)
		c.JSON(status, gin.H{
			"success": false,
			"error":   utils.TranslateDBError(err),
			"message": "Failed to get case sessions",
		})
		return
	}

	utils.PrintLogInfo(&name, 200, "GetCaseSessions", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    sessions,
	})
}

func (h *StudentHandler) GetNotifications(c *gin.Context) {
	name := utils.GetAPIHitter(c)

	userUUID, exists := c.Get("userUUID")
	if !exists {
		utils.PrintLogInfo(&name, 401, "GetNotifications", nil)
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "Unauthorized: missing user context",
			"message": "Failed to get notifications",
		})
		return
	}

	notifications, err := h.studUC.GetNotifications(c.Request.Context(), userUUID.(string))
	if err != nil {
		utils.PrintLogInfo(&name, 500, "GetNotifications", &err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   utils.TranslateDBError(err),
			"message": "Failed to get notifications",
		})
		return
	}

	utils.PrintLogInfo(&name, 200, "GetNotifications", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    notifications,
	})
}

func (h *StudentHandler) MarkNotificationRead(c *gin.Context) {
	name := utils.GetAPIHitter(c)

	notification, err := h.studUC.MarkNotificationRead(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		status := statusForError(err)
		utils.PrintLogInfo(&name, status, "MarkNotificationRead", &err)
		c.JSON(status, gin.H{
			"success": false,
			"error":   utils.TranslateDBError(err),
			"message": "Failed to mark notification as read",
		})
		return
	}

	utils.PrintLogInfo(&name, 200, "MarkNotificationRead", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    notification,
	})
}

func (h *StudentHandler) MarkNotificationsRead(c *gin.Context) {
	name := utils.GetAPIHitter(c)

	var req dto.MarkNotificationsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.PrintLogInfo(&name, 400, "MarkNotificationsRead", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   utils.TranslateValidationError(err),
			"message": "Failed to mark notifications as read",
		})
		return
	}

	if err := h.studUC.MarkNotificationsRead(c.Request.Context(), req.UUIDs); err != nil {
		utils.PrintLogInfo(&name, 500, "MarkNotificationsRead", &err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   utils.TranslateDBError(err),
			"message": "Failed to mark notifications as read",
		})
		return
	}

	utils.PrintLogInfo(&name, 200, "MarkNotificationsRead", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Notifications marked as read",
	})
}
