package request

type ReviewRequest struct {
	ListingID string  `json:"listing" validate:"required,uuid"`
	Rating    int     `json:"rating" validate:"required,min=1,max=5"`
	Comment   *string `json:"comment,omitempty" validate:"omitempty,max=1000"`
}

type ReviewUpdateRequest struct {
	ListingID *string `json:"listing,omitempty" validate:"omitempty,uuid"`
	Rating    *int    `json:"rating,omitempty" validate:"omitempty,min=1,max=5"`
	Comment   *string `json:"comment,omitempty" validate:"omitempty,max=1000"`
}

// AsUpdate turns a full replacement into an update; a missing comment clears it.
func (r *ReviewRequest) AsUpdate() *ReviewUpdateRequest {
	comment := ""
	if r.Comment != nil {
		comment = *r.Comment
	}
	return &ReviewUpdateRequest{
		ListingID: &r.ListingID,
		Rating:    &r.Rating,
		Comment:   &comment,
	}
}
