package dto

import "github.com/XyvinTech/councelling-backend/domain"

type AddAvailabilityRequest struct {
	DayOfWeek string             `json:"day_of_week" binding:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	Intervals []IntervalRequest  `json:"intervals" binding:"required,dive"`
}

type IntervalRequest struct {
	Start string `json:"start" binding:"required,timeformat"`
	End   string `json:"end" binding:"required,timeformat,timeafter=Start"`
}

type RemoveAvailabilityRequest struct {
	DayOfWeek string `json:"day_of_week" binding:"required,oneof=monday tuesday wednesday thursday friday saturday sunday"`
	Start     string `json:"start" binding:"required,timeformat"`
	End       string `json:"end" binding:"required,timeformat"`
}

func MapIntervals(reqs []IntervalRequest) []domain.Interval {
	intervals := make([]domain.Interval, 0, len(reqs))
	for _, r := range reqs {
		intervals = append(intervals, domain.Interval{Start: r.Start, End: r.End})
	}
	return intervals
}
