package dto

import "github.com/XyvinTech/councelling-backend/domain"

type UpdateProfileRequest struct {
	Name  string `json:"name" binding:"required,min=3,max=50"`
	Phone string `json:"phone" binding:"required,numeric,min=9,max=14"`
}

func MapUpdateProfileRequest(req *UpdateProfileRequest) domain.User {
	return domain.User{
		Name:  req.Name,
		Phone: req.Phone,
	}
}

type MarkNotificationsRequest struct {
	UUIDs []string `json:"uuids" binding:"required,min=1,dive,uuid"`
}
