package dto

import (
	"time"

	"github.com/XyvinTech/councelling-backend/domain"
)

type CreateCounsellorRequest struct {
	Name           string `json:"name" binding:"required,min=3,max=50"`
	Email          string `json:"email" binding:"required,email"`
	Phone          string `json:"phone" binding:"required,numeric,min=9,max=14"`
	Password       string `json:"password" binding:"required,min=8"`
	Designation    string `json:"designation" binding:"required,max=100"`
	CounsellorType string `json:"counsellor_type" binding:"required,oneof=career behavioural special"`
	Experience     int    `json:"experience" binding:"omitempty,gte=0"`
}

func MapCreateCounsellorRequest(req *CreateCounsellorRequest) *domain.User {
	return &domain.User{
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Password:       req.Password,
		Designation:    req.Designation,
		CounsellorType: req.CounsellorType,
		Experience:     req.Experience,
	}
}

type CreateStudentRequest struct {
	Name     string `json:"name" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required,numeric,min=9,max=14"`
	Password string `json:"password" binding:"required,min=8"`
}

func MapCreateStudentRequest(req *CreateStudentRequest) *domain.User {
	return &domain.User{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: req.Password,
	}
}

type UpdateUserRequest struct {
	Name           string `json:"name" binding:"required,min=3,max=50"`
	Phone          string `json:"phone" binding:"required,numeric,min=9,max=14"`
	Designation    string `json:"designation" binding:"omitempty,max=100"`
	CounsellorType string `json:"counsellor_type" binding:"omitempty,oneof=career behavioural special"`
	Experience     int    `json:"experience" binding:"omitempty,gte=0"`
}

func MapUpdateUserRequest(req *UpdateUserRequest) domain.User {
	return domain.User{
		Name:           req.Name,
		Phone:          req.Phone,
		Designation:    req.Designation,
		CounsellorType: req.CounsellorType,
		Experience:     req.Experience,
	}
}

type CounsellingTypeRequest struct {
	Name string `json:"name" binding:"required,min=3,max=50"`
}

type EventRequest struct {
	Title       string `json:"title" binding:"required,max=100"`
	Description string `json:"description" binding:"omitempty,max=2000"`
	Type        string `json:"type" binding:"omitempty,max=50"`
	Date        string `json:"date" binding:"required,dateformat"`
	Time        string `json:"time" binding:"required,timeformat"`
	Venue       string `json:"venue" binding:"omitempty,max=100"`
	Platform    string `json:"platform" binding:"omitempty,max=50"`
	Link        string `json:"link" binding:"omitempty,url"`
	GuestName   string `json:"guest_name" binding:"omitempty,max=100"`
	EventImage  string `json:"event_image" binding:"omitempty,url"`
	Active      bool   `json:"active"`
}

func MapEventRequest(req *EventRequest) *domain.Event {
	date, _ := time.Parse(domain.DateLayout, req.Date)
	return &domain.Event{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Date:        date,
		Time:        req.Time,
		Venue:       req.Venue,
		Platform:    req.Platform,
		Link:        req.Link,
		GuestName:   req.GuestName,
		EventImage:  req.EventImage,
		Active:      req.Active,
	}
}
