package entity

type ListingType string

const (
	ListingTypeApartment ListingType = "apartment"
	ListingTypeHouse     ListingType = "house"
	ListingTypeVilla     ListingType = "villa"
	ListingTypeCabin     ListingType = "cabin"
	ListingTypeRoom      ListingType = "room"
	ListingTypeHotel     ListingType = "hotel"
)

type Listing struct {
	Base
	Slug          string      `db:"slug"`
	Title         string      `db:"title"`
	Description   string      `db:"description"`
	Location      string      `db:"location"`
	Address       string      `db:"address"`
	ListingType   ListingType `db:"listing_type"`
	PricePerNight float64     `db:"price_per_night"`
	MaxGuests     int         `db:"max_guests"`
	Bedrooms      int         `db:"bedrooms"`
	IsAvailable   bool        `db:"is_available"`
}
