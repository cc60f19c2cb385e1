package dto

import (
	"time"

	"github.com/XyvinTech/councelling-backend/domain"
)

// AddEntryRequest is the counsellor's add-entry payload. The flags select
// exactly one branch: close the case, refer it away (optionally with a
// fresh session), ask a peer for feedback, or schedule a follow-up.
type AddEntryRequest struct {
	SessionUUID      string `json:"session_uuid" binding:"required,uuid"`
	InteractionNotes string `json:"interaction_notes" binding:"required,max=2000"`
	CaseDetails      string `json:"case_details" binding:"omitempty,max=2000"`
	ConcernRaised    string `json:"concern_raised" binding:"omitempty,dateformat"`

	Close            bool   `json:"close"`
	ReasonForClosing string `json:"reason_for_closing" binding:"required_if=Close true,omitempty,max=500"`

	Refer       *string `json:"refer" binding:"omitempty,uuid"`
	WithSession bool    `json:"with_session"`
	Remarks     string  `json:"remarks" binding:"omitempty,max=500"`

	// Follow-up schedule. Binding leaves it optional because the close and
	// refer branches have no schedule; the workflow rejects a continuation
	// without one.
	Date      string `json:"date" binding:"omitempty,dateformat"`
	StartTime string `json:"start_time" binding:"omitempty,timeformat"`
	EndTime   string `json:"end_time" binding:"omitempty,timeformat,timeafter=StartTime"`
}

func MapAddEntryRequest(req *AddEntryRequest) domain.AddEntryInput {
	in := domain.AddEntryInput{
		SessionUUID:      req.SessionUUID,
		InteractionNotes: req.InteractionNotes,
		CaseDetails:      req.CaseDetails,
		ConcernRaised:    req.ConcernRaised,
		Close:            req.Close,
		ReasonForClosing: req.ReasonForClosing,
		Refer:            req.Refer,
		WithSession:      req.WithSession,
		Remarks:          req.Remarks,
	}
	if req.Date != "" {
		in.Date, _ = time.Parse(domain.DateLayout, req.Date)
		in.Interval = domain.Interval{Start: req.StartTime, End: req.EndTime}
	}
	return in
}
