package request

type ListingRequest struct {
	Title         string   `json:"title" validate:"required,min=1,max=200"`
	Description   string   `json:"description" validate:"max=5000"`
	Location      string   `json:"location" validate:"required,max=100"`
	Address       string   `json:"address" validate:"max=255"`
	ListingType   string   `json:"listing_type" validate:"required,oneof=apartment house villa cabin room hotel"`
	PricePerNight float64  `json:"price_per_night" validate:"required,gt=0"`
	MaxGuests     int      `json:"max_guests" validate:"required,min=1"`
	Bedrooms      int      `json:"bedrooms" validate:"min=0"`
	IsAvailable   *bool    `json:"is_available,omitempty"`
	AmenityIDs    []string `json:"amenity_ids,omitempty" validate:"omitempty,dive,uuid"`
}

// ListingUpdateRequest is a partial update. A nil AmenityIDs leaves amenities untouched,
// an empty list clears them.
type ListingUpdateRequest struct {
	Title         *string  `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Description   *string  `json:"description,omitempty" validate:"omitempty,max=5000"`
	Location      *string  `json:"location,omitempty" validate:"omitempty,min=1,max=100"`
	Address       *string  `json:"address,omitempty" validate:"omitempty,max=255"`
	ListingType   *string  `json:"listing_type,omitempty" validate:"omitempty,oneof=apartment house villa cabin room hotel"`
	PricePerNight *float64 `json:"price_per_night,omitempty" validate:"omitempty,gt=0"`
	MaxGuests     *int     `json:"max_guests,omitempty" validate:"omitempty,min=1"`
	Bedrooms      *int     `json:"bedrooms,omitempty" validate:"omitempty,min=0"`
	IsAvailable   *bool    `json:"is_available,omitempty"`
	AmenityIDs    []string `json:"amenity_ids,omitempty" validate:"omitempty,dive,uuid"`
}

// AsUpdate turns a full replacement into an update that sets every field.
func (r *ListingRequest) AsUpdate() *ListingUpdateRequest {
	available := true
	if r.IsAvailable != nil {
		available = *r.IsAvailable
	}
	amenityIDs := r.AmenityIDs
	if amenityIDs == nil {
		amenityIDs = []string{}
	}
	return &ListingUpdateRequest{
		Title:         &r.Title,
		Description:   &r.Description,
		Location:      &r.Location,
		Address:       &r.Address,
		ListingType:   &r.ListingType,
		PricePerNight: &r.PricePerNight,
		MaxGuests:     &r.MaxGuests,
		Bedrooms:      &r.Bedrooms,
		IsAvailable:   &available,
		AmenityIDs:    amenityIDs,
	}
}
