package user

type UpdateEmployeeRequest struct {
	Name    string  `json:"name" binding:"required"`
	Email   string  `json:"email" binding:"required,email"`
	ShiftID *string `json:"shift_id"`
}

type ShiftSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	StartTime    string `json:"start_time"`
	BreakStart   string `json:"break_start"`
	BreakEnd     string `json:"break_end"`
	EndTime      string `json:"end_time"`
	TotalMinutes int    `json:"total_minutes"`
}

type UserResponse struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Email     string        `json:"email"`
	CPF       string        `json:"cpf"`
	Role      string        `json:"role"`
	ShiftID   *string       `json:"shift_id,omitempty"`
	Shift     *ShiftSummary `json:"shift,omitempty"`
	CreatedAt string        `json:"created_at"`
}

type ShiftHistoryResponse struct {
	ShiftID   string  `json:"shift_id"`
	StartDate string  `json:"start_date"`
	EndDate   *string `json:"end_date,omitempty"`
}
