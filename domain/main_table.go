package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin      = "admin"
	RoleCounsellor = "counsellor"
	RoleStudent    = "student"

	StatusPending     = "pending"
	StatusProgress    = "progress"
	StatusRescheduled = "rescheduled"
	StatusCancelled   = "cancelled"
	StatusCompleted   = "completed"
	StatusReferred    = "referred"

	// Session.*Remark fields are tagged by who wrote them.
	ActorStudent    = "student"
	ActorCounsellor = "counsellor"

	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

type User struct {
	UUID     string `gorm:"primaryKey;type:uuid" json:"uuid"`
	Name     string `gorm:"not null;size:50" json:"name"`
	Email    string `gorm:"unique;not null" json:"email"`
	Phone    string `gorm:"size:14" json:"phone"`
	Password string `gorm:"not null" json:"-"`
	Role     string `gorm:"not null" json:"role"` // student | counsellor | admin

	// Counsellor-only fields
	Designation    string `json:"designation,omitempty"`
	CounsellorType string `json:"counsellor_type,omitempty"` // career | behavioural | special
	Experience     int    `json:"experience,omitempty"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.UUID == "" {
		u.UUID = uuid.NewString()
	}
	return nil
}

// Session is one requested or scheduled counselling meeting. Status moves
// only through the transitions in lifecycle.go.
type Session struct {
	UUID string `gorm:"primaryKey;type:uuid" json:"uuid"`

	// Human-readable code, e.g. "CS_004/SC_02". Assigned once when the
	// session is attached to a case, never rewritten after that.
	SequenceCode *string `gorm:"size:20" json:"sequence_code,omitempty"`

	StudentUUID    string  `gorm:"type:uuid;not null;index" json:"student_uuid"`
	CounsellorUUID string  `gorm:"type:uuid;not null;index" json:"counsellor_uuid"`
	CaseUUID       *string `gorm:"type:uuid;index" json:"case_uuid,omitempty"`
	CaseOrdinal    int     `gorm:"default:0" json:"case_ordinal"`

	SessionDate time.Time `gorm:"not null" json:"session_date"`
	StartTime   string    `gorm:"size:5;not null" json:"start_time"` // HH:MM
	EndTime     string    `gorm:"size:5;not null" json:"end_time"`   // HH:MM

	Type        string `gorm:"not null" json:"type"` // counselling category
	Description string `json:"description"`
	Status      string `gorm:"size:20;default:'pending'" json:"status"`

	Platform    *string `json:"platform,omitempty"`
	MeetingLink *string `gorm:"type:text" json:"meeting_link,omitempty"`

	// Reschedule/cancel remarks, kept separately per acting party.
	StudentRemark    *string `json:"student_remark,omitempty"`
	CounsellorRemark *string `json:"counsellor_remark,omitempty"`

	// Filled when the session is closed via an add-entry call.
	InteractionNotes *string `gorm:"type:text" json:"interaction_notes,omitempty"`
	CaseDetails      *string `gorm:"type:text" json:"case_details,omitempty"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`

	Student    *User `gorm:"foreignKey:StudentUUID;references:UUID" json:"student,omitempty"`
	Counsellor *User `gorm:"foreignKey:CounsellorUUID;references:UUID" json:"counsellor,omitempty"`
}

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.UUID == "" {
		s.UUID = uuid.NewString()
	}
	return nil
}

// Case aggregates the counselling thread of one student across one or more
// sessions. Its status mirrors the outcome of its governing session; the
// session list only ever grows.
type Case struct {
	UUID         string `gorm:"primaryKey;type:uuid" json:"uuid"`
	SequenceCode string `gorm:"size:10;not null" json:"sequence_code"` // CS_###

	StudentUUID string `gorm:"type:uuid;not null;index" json:"student_uuid"`
	Status      string `gorm:"size:20;default:'pending'" json:"status"`

	ConcernRaised    *string `gorm:"size:10" json:"concern_raised,omitempty"` // YYYY-MM-DD
	ReasonForClosing *string `json:"reason_for_closing,omitempty"`

	// Number of sessions ever attached; the source of session ordinals.
	// Monotonically non-decreasing.
	SessionCount int `gorm:"default:0" json:"session_count"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`

	Student   *User           `gorm:"foreignKey:StudentUUID;references:UUID" json:"student,omitempty"`
	Sessions  []Session       `gorm:"foreignKey:CaseUUID;references:UUID" json:"sessions,omitempty"`
	Referrals []ReferralEntry `gorm:"foreignKey:CaseUUID;references:UUID" json:"referrals,omitempty"`
}

func (c *Case) BeforeCreate(tx *gorm.DB) error {
	if c.UUID == "" {
		c.UUID = uuid.NewString()
	}
	return nil
}

// ReferralEntry records one referred-to counsellor on a case. Entries are
// append-only; a peer-feedback referral adds one without touching the case
// status.
type ReferralEntry struct {
	ID             int       `gorm:"primaryKey" json:"id"`
	CaseUUID       string    `gorm:"type:uuid;not null;index" json:"case_uuid"`
	CounsellorUUID string    `gorm:"type:uuid;not null" json:"counsellor_uuid"`
	AuthorUUID     string    `gorm:"type:uuid;not null" json:"author_uuid"`
	Remark         string    `gorm:"type:text" json:"remark"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`

	Counsellor *User `gorm:"foreignKey:CounsellorUUID;references:UUID" json:"counsellor,omitempty"`
}

type Notification struct {
	UUID        string  `gorm:"primaryKey;type:uuid" json:"uuid"`
	UserUUID    string  `gorm:"type:uuid;not null;index" json:"user_uuid"`
	CaseUUID    *string `gorm:"type:uuid" json:"case_uuid,omitempty"`
	SessionUUID *string `gorm:"type:uuid" json:"session_uuid,omitempty"`
	Details     string  `gorm:"type:text" json:"details"`
	IsRead      bool    `gorm:"default:false" json:"is_read"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.UUID == "" {
		n.UUID = uuid.NewString()
	}
	return nil
}

// AvailabilitySlot is one counsellor-declared bookable window on a weekday.
// A counsellor's day is always replaced as a whole set, never merged.
type AvailabilitySlot struct {
	ID             int    `gorm:"primaryKey" json:"id"`
	CounsellorUUID string `gorm:"type:uuid;not null;index" json:"counsellor_uuid"`
	DayOfWeek      string `gorm:"size:10;not null" json:"day_of_week"` // monday..sunday
	StartTime      string `gorm:"size:5;not null" json:"start_time"`
	EndTime        string `gorm:"size:5;not null" json:"end_time"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Interval is a wall-clock {start,end} pair as exposed to callers.
type Interval struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

type CounsellingType struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"unique;size:50;not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type Event struct {
	UUID        string    `gorm:"primaryKey;type:uuid" json:"uuid"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Type        string    `json:"type"`
	Date        time.Time `json:"date"`
	Time        string    `gorm:"size:5" json:"time"`
	Venue       string    `json:"venue"`
	Platform    string    `json:"platform"`
	Link        string    `gorm:"type:text" json:"link"`
	GuestName   string    `json:"guest_name"`
	EventImage  string    `gorm:"type:text" json:"event_image"`
	Active      bool      `gorm:"default:false" json:"active"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.UUID == "" {
		e.UUID = uuid.NewString()
	}
	return nil
}
