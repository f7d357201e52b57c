package response

import (
	"time"

	"travel-booking/internal/data/entity"
)

type AmenityResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ListingResponse struct {
	ID            string             `json:"id"`
	Slug          string             `json:"slug"`
	Title         string             `json:"title"`
	Description   string             `json:"description"`
	Location      string             `json:"location"`
	Address       string             `json:"address"`
	ListingType   entity.ListingType `json:"listing_type"`
	PricePerNight float64            `json:"price_per_night"`
	MaxGuests     int                `json:"max_guests"`
	Bedrooms      int                `json:"bedrooms"`
	IsAvailable   bool               `json:"is_available"`
	Amenities     []AmenityResponse  `json:"amenities"`
	CreatedAt     time.Time          `json:"created_at"`
	UpdatedAt     time.Time          `json:"updated_at"`
}

func AmenityToResponse(amenity *entity.Amenity) AmenityResponse {
	return AmenityResponse{
		ID:          amenity.ID.String(),
		Name:        amenity.Name,
		Description: amenity.Description,
	}
}

func AmenitiesToResponse(amenities []*entity.Amenity) []AmenityResponse {
	result := make([]AmenityResponse, 0, len(amenities))
	for _, a := range amenities {
		result = append(result, AmenityToResponse(a))
	}
	return result
}

func ListingToResponse(listing *entity.Listing, amenities []*entity.Amenity) ListingResponse {
	return ListingResponse{
		ID:            listing.ID.String(),
		Slug:          listing.Slug,
		Title:         listing.Title,
		Description:   listing.Description,
		Location:      listing.Location,
		Address:       listing.Address,
		ListingType:   listing.ListingType,
		PricePerNight: listing.PricePerNight,
		MaxGuests:     listing.MaxGuests,
		Bedrooms:      listing.Bedrooms,
		IsAvailable:   listing.IsAvailable,
		Amenities:     AmenitiesToResponse(amenities),
		CreatedAt:     listing.CreatedAt,
		UpdatedAt:     listing.UpdatedAt,
	}
}
