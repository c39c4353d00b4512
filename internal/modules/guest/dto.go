package guest

type RegisterGuestRequest struct {
	Name         string `json:"name" binding:"required,max=100"`
	NightsCount  int    `json:"nights_count" binding:"required,min=1"`
	CheckInDate  string `json:"check_in_date" binding:"required"`
	CheckOutDate string `json:"check_out_date" binding:"required"`
}

type UpdateGuestRequest struct {
	Name         *string `json:"name" binding:"omitempty,max=100"`
	NightsCount  *int    `json:"nights_count" binding:"omitempty,min=1"`
	CheckInDate  *string `json:"check_in_date"`
	CheckOutDate *string `json:"check_out_date"`
	IsActive     *bool   `json:"is_active"`
}
