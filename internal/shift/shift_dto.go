package shift

type CreateShiftRequest struct {
	Name         string `json:"name" binding:"required"`
	StartTime    string `json:"start_time" binding:"required"`
	BreakStart   string `json:"break_start" binding:"required"`
	BreakEnd     string `json:"break_end" binding:"required"`
	EndTime      string `json:"end_time" binding:"required"`
	TotalMinutes int    `json:"total_minutes" binding:"required"`
}

type UpdateShiftRequest struct {
	Name         string `json:"name" binding:"required"`
	StartTime    string `json:"start_time" binding:"required"`
	BreakStart   string `json:"break_start" binding:"required"`
	BreakEnd     string `json:"break_end" binding:"required"`
	EndTime      string `json:"end_time" binding:"required"`
	TotalMinutes int    `json:"total_minutes" binding:"required"`
}

type ShiftResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	StartTime    string `json:"start_time"`
	BreakStart   string `json:"break_start"`
	BreakEnd     string `json:"break_end"`
	EndTime      string `json:"end_time"`
	TotalMinutes int    `json:"total_minutes"`
}
