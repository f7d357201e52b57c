package request

// BookingRequest carries no owner field: the owner is always the caller.
type BookingRequest struct {
	ListingID    string  `json:"listing" validate:"required,uuid"`
	CheckInDate  string  `json:"check_in_date" validate:"required,datetime=2006-01-02"`
	CheckOutDate string  `json:"check_out_date" validate:"required,datetime=2006-01-02"`
	Status       *string `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed cancelled completed"`
}

type BookingUpdateRequest struct {
	ListingID    *string `json:"listing,omitempty" validate:"omitempty,uuid"`
	CheckInDate  *string `json:"check_in_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	CheckOutDate *string `json:"check_out_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Status       *string `json:"status,omitempty" validate:"omitempty,oneof=pending confirmed cancelled completed"`
}

func (r *BookingRequest) AsUpdate() *BookingUpdateRequest {
	status := "pending"
	if r.Status != nil {
		status = *r.Status
	}
	return &BookingUpdateRequest{
		ListingID:    &r.ListingID,
		CheckInDate:  &r.CheckInDate,
		CheckOutDate: &r.CheckOutDate,
		Status:       &status,
	}
}
