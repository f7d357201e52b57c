package request

import (
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseListingQuery(t *testing.T) {
	t.Run("filters and ordering", func(t *testing.T) {
		q, errs := ParseListingQuery(url.Values{
			"location":     {"Paris"},
			"is_available": {"1"},
			"bedrooms":     {"2"},
			"ordering":     {"-price_per_night,created_at"},
			"search":       {"  loft "},
		})
		require.Nil(t, errs)
		require.NotNil(t, q.Location)
		assert.Equal(t, "Paris", *q.Location)
		require.NotNil(t, q.IsAvailable)
		assert.True(t, *q.IsAvailable)
		assert.Equal(t, 2, *q.Bedrooms)
		assert.Equal(t, "loft", q.Search)
		assert.Equal(t, []OrderTerm{
			{Field: "price_per_night", Desc: true},
			{Field: "created_at"},
		}, q.Ordering)
		assert.Nil(t, q.ListingType)
	})

	t.Run("empty values are absent", func(t *testing.T) {
		q, errs := ParseListingQuery(url.Values{"location": {""}, "is_available": {" "}})
		require.Nil(t, errs)
		assert.Nil(t, q.Location)
		assert.Nil(t, q.IsAvailable)
	})

	t.Run("malformed values are reported per parameter", func(t *testing.T) {
		_, errs := ParseListingQuery(url.Values{
			"is_available": {"maybe"},
			"max_guests":   {"two"},
			"listing_type": {"castle"},
			"ordering":     {"-password"},
		})
		require.NotNil(t, errs)
		assert.Contains(t, errs, "is_available")
		assert.Contains(t, errs, "max_guests")
		assert.Contains(t, errs, "listing_type")
		assert.Contains(t, errs, "ordering")
	})

	t.Run("pagination falls back and clamps", func(t *testing.T) {
		q, errs := ParseListingQuery(url.Values{"page": {"-3"}, "per_page": {"5000"}})
		require.Nil(t, errs)
		assert.Equal(t, 1, q.Page)
		assert.Equal(t, MaxPerPage, q.PerPage)

		q, _ = ParseListingQuery(url.Values{"page": {"abc"}})
		assert.Equal(t, 1, q.Page)
		assert.Equal(t, DefaultPerPage, q.PerPage)
		assert.Equal(t, 0, q.Offset())
	})
}

func TestParseBookingQuery(t *testing.T) {
	listing := uuid.New()
	q, errs := ParseBookingQuery(url.Values{
		"listing":       {listing.String()},
		"status":        {"confirmed"},
		"check_in_date": {"2026-05-01"},
		"ordering":      {"check_in_date"},
	})
	require.Nil(t, errs)
	assert.Equal(t, listing, *q.ListingID)
	assert.Equal(t, "confirmed", *q.Status)
	assert.Equal(t, time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), *q.CheckInDate)
	assert.Nil(t, q.UserID)

	_, errs = ParseBookingQuery(url.Values{
		"listing":        {"42"},
		"status":         {"lost"},
		"check_out_date": {"01/05/2026"},
		"ordering":       {"price_per_night"},
	})
	assert.Len(t, errs, 4)
}

func TestParseReviewQuery(t *testing.T) {
	listing := uuid.New()

	q, errs := ParseReviewQuery(url.Values{"listing_id": {listing.String()}, "rating": {"5"}})
	require.Nil(t, errs)
	assert.Equal(t, listing, *q.ListingID)
	assert.Equal(t, 5, *q.Rating)

	q, errs = ParseReviewQuery(url.Values{"listing": {listing.String()}, "listing_id": {listing.String()}})
	require.Nil(t, errs)
	assert.Equal(t, listing, *q.ListingID)

	_, errs = ParseReviewQuery(url.Values{"listing": {listing.String()}, "listing_id": {uuid.NewString()}})
	assert.Contains(t, errs, "listing_id")
}

func TestAsUpdate(t *testing.T) {
	booking := (&BookingRequest{ListingID: "x", CheckInDate: "2026-01-01", CheckOutDate: "2026-01-02"}).AsUpdate()
	assert.Equal(t, "pending", *booking.Status)

	listing := (&ListingRequest{Title: "Loft"}).AsUpdate()
	assert.True(t, *listing.IsAvailable)
	assert.NotNil(t, listing.AmenityIDs)
	assert.Empty(t, listing.AmenityIDs)

	review := (&ReviewRequest{Rating: 3}).AsUpdate()
	require.NotNil(t, review.Comment)
	assert.Equal(t, "", *review.Comment)
}

func TestParseOwnQueries(t *testing.T) {
	bq, errs := ParseOwnBookingQuery(url.Values{"status": {"bogus"}, "user": {"x"}, "ordering": {"-check_in_date"}})
	require.Nil(t, errs)
	assert.Nil(t, bq.Status)
	assert.Nil(t, bq.UserID)
	assert.Equal(t, []OrderTerm{{Field: "check_in_date", Desc: true}}, bq.Ordering)

	rq, errs := ParseOwnReviewQuery(url.Values{"rating": {"ten"}, "listing_id": {"nope"}})
	require.Nil(t, errs)
	assert.Nil(t, rq.Rating)

	_, errs = ParseOwnReviewQuery(url.Values{"ordering": {"comment"}})
	assert.Contains(t, errs, "ordering")
}
