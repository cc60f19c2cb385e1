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

type CounsellorHandler struct {
	counUC domain.CounsellorUseCase
	flowUC domain.WorkflowUseCase
}

func NewCounsellorHandler(r *gin.Engine, counUC domain.CounsellorUseCase, flowUC domain.WorkflowUseCase, jwtManager *utils.JWTManager) {
	handler := &CounsellorHandler{counUC: counUC, flowUC: flowUC}

	counsellor := r.Group("/counsellor")
	counsellor.Use(config.AuthMiddleware(jwtManager), middleware.CounsellorOnly())
	{
		counsellor.GET("/profile", handler.GetMyProfile)
		counsellor.PUT("/profile", handler.UpdateMyProfile)

		counsellor.POST("/times", handler.AddTimes)
		counsellor.GET("/times", handler.GetTimes)
		counsellor.DELETE("/times", handler.RemoveTime)

		counsellor.GET("/sessions", handler.GetMySessions)
		counsellor.GET("/sessions/:uuid", handler.GetSession)
		counsellor.PUT("/sessions/:uuid/accept", handler.AcceptSession)
		counsellor.PUT("/sessions/:uuid/reschedule", handler.RescheduleSession)
		counsellor.PUT("/sessions/:uuid/cancel", handler.CancelSession)

		counsellor.GET("/cases", handler.GetMyCases)
		counsellor.GET("/cases/:uuid/sessions", handler.GetCaseSessions)
		counsellor.POST("/cases/:uuid/entries", handler.AddEntry)

		counsellor.GET("/calendar", handler.GetBigCalendar)

		counsellor.GET("/notifications", handler.GetNotifications)
		counsellor.PUT("/notifications/:uuid/read", handler.MarkNotificationRead)
	}
}

func (h *CounsellorHandler) GetMyProfile(c *gin.Context) {
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

	user, err := h.counUC.GetMyProfile(c.Request.Context(), userUUID.(string))
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

func (h *CounsellorHandler) UpdateMyProfile(c *gin.Context) {
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

	err := h.counUC.UpdateMyProfile(c.Request.Context(), userUUID.(string), dto.MapUpdateProfileRequest(&req))
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

func (h *CounsellorHandler) AddTimes(c *gin.Context) {
	name := utils.GetAPIHitter(c)

	userUUID, exists := c.Get("userUUID")
	if !exists {
		utils.PrintLogInfo(&name, 401, "AddTimes", nil)
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "Unauthorized: missing user context",
			"message": "Failed to add availability",
		})
		return
	}

	var req dto.AddAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.PrintLogInfo(&name, 400, "AddTimes", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   utils.TranslateValidationError(err),
			"message": "Failed to add availability",
		})
		return
	}

	err := h.counUC.AddTimes(c.Request.Context(), userUUID.(string), req.DayOfWeek, dto.MapIntervals(req.Intervals))
	if err != nil {
		utils.PrintLogInfo(&name, 500, "AddTimes", &err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   utils.TranslateDBError(err),
			"message": "Failed to add availability",
		})
		return
	}

	utils.PrintLogInfo(&name, 200, "AddTimes", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Availability saved successfully",
	})
}

func (h *CounsellorHandler) GetTimes(c *gin.Context) {
	name := utils.GetAPIHitter(c)

	userUUID, exists := c.Get("userUUID")
	if !exists {
		utils.PrintLogInfo(&name, 401, "GetTimes", nil)
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "Unauthorized: missing user context",
			"message": "Failed to get availability",
		})
		return
	}

	times, err := h.counUC.GetTimes(c.Request.Context(), userUUID.(string))
	if err != nil {
		utils.PrintLogInfo(&name, 500, "GetTimes", &err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   utils.TranslateDBError(err),
			"message": "Failed to get availability",
		})
		return
	}

	utils.PrintLogInfo(&name, 200, "GetTimes", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    times,
	})
}

func (h *CounsellorHandler) RemoveTime(c *gin.Context) {
	name := utils.GetAPIHitter(c)

	userUUID, exists := c.Get("userUUID")
	if !exists {
		utils.PrintLogInfo(&name, 401, "RemoveTime", nil)
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "Unauthorized: missing user context",
			"message": "Failed to remove availability",
		})
		return
	}

	var req dto.RemoveAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.PrintLogInfo(&name, 400, "RemoveTime", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   utils.TranslateValidationError(err),
			"message": "Failed to remove availability",
		})
		return
	}

	err := h.counUC.RemoveTime(c.Request.Context(), userUUID.(string), req.DayOfWeek,
		domain.Interval{Start: req.Start, End: req.End})
	if err != nil {
		status := statusForError(err)
		utils.PrintLogInfo(&name, status, "RemoveTime", &err)
		c.JSON(status, gin.H{
			"success": false,
			"error":   utils.TranslateDBError(err),
			"message": "Failed to remove availability",
		})
		return
	}

	utils.PrintLogInfo(&name, 200, "RemoveTime", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Availability removed successfully",
	})
}

func (h *CounsellorHandler) GetMySessions(c *gin.Context) {
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

	sessions, total, err := h.counUC.GetMySessions(c.Request.Context(), userUUID.(string), c.Query("status"), page, limit)
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

func (h *CounsellorHandler) GetSession(c *gin.Context) {
	name := utils.GetAPIHitter(c)

	session, err := h.counUC.GetSession(c.Request.Context(), c.Param("uuid"))
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

func (h *CounsellorHandler) AcceptSession(c *gin.Context) {
	name := utils.GetAPIHitter(c)

	userUUID, exists := c.Get("userUUID")
	if !exists {
		utils.PrintLogInfo(&name, 401, "AcceptSession", nil)
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "Unauthorized: missing user context",
			"message": "Failed to accept session",
		})
		return
	}

	var req dto.AcceptSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		utils.PrintLogInfo(&name, 400, "AcceptSession", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   utils.TranslateValidationError(err),
			"message": "Failed to accept session",
		})
		return
	}

	session, err := h.flowUC.AcceptSession(c.Request.Context(), userUUID.(string), c.Param("uuid"), req.Platform, req.MeetingLink)
	if err != nil {
		status := statusForError(err)
		utils.PrintLogInfo(&name, status, "AcceptSession", &err)
		c.JSON(status, gin.H{
			"success": false,
			"error":   utils.TranslateDBError(err),
			"message": "Failed to accept session",
		})
		return
	}

	utils.PrintLogInfo(&name, 200, "AcceptSession", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    session,
		"message": "Session accepted successfully",
	})
}

func (h *CounsellorHandler) RescheduleSession(c *gin.Context) {
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
		domain.ActorCounsellor,
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

func (h *CounsellorHandler) CancelSession(c *gin.Context) {
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

	session, err := h.flowUC.CancelSession(c.Request.Context(), domain.ActorCounsellor, userUUID.(string), c.Param("uuid"), req.Remark)
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

func (h *CounsellorHandler) GetMyCases(c *gin.Context) {
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

	cases, total, err := h.counUC.GetMyCases(c.Request.Context(), userUUID.(string), page, limit)
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

func (h *CounsellorHandler) GetCaseSessions(c *gin.Context) {
	name := utils.GetAPIHitter(c)

	sessions, err := h.counUC.GetCaseSessions(c.Request.Context(), c.Param("uuid"))
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

// AddEntry is the counsellor's closing move on a session: it always
// completes the referenced session, then closes, refers, requests peer
// feedback on, or continues the case depending on the payload flags.
func (h *CounsellorHandler) AddEntry(c *gin.Context) {
	name := utils.GetAPIHitter(c)

	userUUID, exists := c.Get("userUUID")
	if !exists {
		utils.PrintLogInfo(&name, 401, "AddEntry", nil)
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "Unauthorized: missing user context",
			"message": "Failed to add case entry",
		})
		return
	}

	var req dto.AddEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.PrintLogInfo(&name, 400, "AddEntry", &err)
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   utils.TranslateValidationError(err),
			"message": "Failed to add case entry",
		})
		return
	}

	result, err := h.flowUC.AddEntry(c.Request.Context(), userUUID.(string), c.Param("uuid"), dto.MapAddEntryRequest(&req))
	if err != nil {
		status := statusForError(err)
		utils.PrintLogInfo(&name, status, "AddEntry", &err)
		c.JSON(status, gin.H{
			"success": false,
			"error":   utils.TranslateDBError(err),
			"message": "Failed to add case entry",
		})
		return
	}

	utils.PrintLogInfo(&name, 200, "AddEntry", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    result,
		"message": "Case entry added successfully",
	})
}

func (h *CounsellorHandler) GetBigCalendar(c *gin.Context) {
	name := utils.GetAPIHitter(c)

	userUUID, exists := c.Get("userUUID")
	if !exists {
		utils.PrintLogInfo(&name, 401, "GetBigCalendar", nil)
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error":   "Unauthorized: missing user context",
			"message": "Failed to get calendar",
		})
		return
	}

	entries, err := h.counUC.GetBigCalendar(c.Request.Context(), userUUID.(string))
	if err != nil {
		utils.PrintLogInfo(&name, 500, "GetBigCalendar", &err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   utils.TranslateDBError(err),
			"message": "Failed to get calendar",
		})
		return
	}

	utils.PrintLogInfo(&name, 200, "GetBigCalendar", nil)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    entries,
	})
}

func (h *CounsellorHandler) GetNotifications(c *gin.Context) {
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

	notifications, err := h.counUC.GetNotifications(c.Request.Context(), userUUID.(string))
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

func (h *CounsellorHandler) MarkNotificationRead(c *gin.Context) {
	name := utils.GetAPIHitter(c)

	notification, err := h.counUC.MarkNotificationRead(c.Request.Context(), c.Param("uuid"))
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
