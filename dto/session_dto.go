package dto

import (
	"time"

	"github.com/XyvinTech/councelling-backend/domain"
)

type CreateSessionRequest struct {
	CounsellorUUID string `json:"counsellor_uuid" binding:"required,uuid"`
	Date           string `json:"date" binding:"required,dateformat"`
	StartTime      string `json:"start_time" binding:"required,timeformat"`
	EndTime        string `json:"end_time" binding:"required,timeformat,timeafter=StartTime"`
	Type           string `json:"type" binding:"required,max=50"`
	Description    string `json:"description" binding:"omitempty,max=1000"`
}

// MapCreateSessionRequest assumes the dateformat binding already vetted the
// date string.
func MapCreateSessionRequest(req *CreateSessionRequest, studentUUID string) domain.RequestSessionInput {
	date, _ := time.Parse(domain.DateLayout, req.Date)
	return domain.RequestSessionInput{
		StudentUUID:    studentUUID,
		CounsellorUUID: req.CounsellorUUID,
		Date:           date,
		Interval:       domain.Interval{Start: req.StartTime, End: req.EndTime},
		Type:           req.Type,
		Description:    req.Description,
	}
}

type AcceptSessionRequest struct {
	Platform    *string `json:"platform" binding:"omitempty,max=50"`
	MeetingLink *string `json:"meeting_link" binding:"omitempty,url"`
}

type RescheduleSessionRequest struct {
	Date      string `json:"date" binding:"required,dateformat"`
	StartTime string `json:"start_time" binding:"required,timeformat"`
	EndTime   string `json:"end_time" binding:"required,timeformat,timeafter=StartTime"`
	Remark    string `json:"remark" binding:"required,max=255"`
}

type CancelSessionRequest struct {
	Remark string `json:"remark" binding:"required,max=255"`
}
