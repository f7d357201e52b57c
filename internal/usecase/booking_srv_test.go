package usecase

import (
	"context"
	"testing"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/dto/request"
	"travel-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingService_Scoping(t *testing.T) {
	f := newFixture()
	svc := NewBookingService(f.repo, f.clock, testLogger)
	ctx := context.Background()

	alice, bob, admin := user(), user(), staff()
	listing := f.addListing("Loft", "Paris", 100, true)
	aliceBooking := f.addBooking(alice.UserID, listing.ID, day(2026, 4, 1), entity.BookingStatusPending)
	bobBooking := f.addBooking(bob.UserID, listing.ID, day(2026, 4, 5), entity.BookingStatusPending)

	t.Run("list only shows own bookings", func(t *testing.T) {
		page, err := svc.List(ctx, alice, &request.BookingQuery{})
		require.NoError(t, err)
		require.Len(t, page.Data, 1)
		assert.Equal(t, aliceBooking.ID.String(), page.Data[0].ID)
		assert.EqualValues(t, 1, page.Pagination.Total)
	})

	t.Run("user filter cannot widen a non-staff scope", func(t *testing.T) {
		page, err := svc.List(ctx, alice, &request.BookingQuery{UserID: &bob.UserID})
		require.NoError(t, err)
		assert.Empty(t, page.Data)
	})

	t.Run("staff sees everything and may filter by user", func(t *testing.T) {
		page, err := svc.List(ctx, admin, &request.BookingQuery{})
		require.NoError(t, err)
		assert.Len(t, page.Data, 2)

		page, err = svc.List(ctx, admin, &request.BookingQuery{UserID: &bob.UserID})
		require.NoError(t, err)
		require.Len(t, page.Data, 1)
		assert.Equal(t, bobBooking.ID.String(), page.Data[0].ID)
	})

	t.Run("another user's booking is not found", func(t *testing.T) {
		_, err := svc.Get(ctx, bob, aliceBooking.ID)
		assert.ErrorIs(t, err, ErrNotFound)

		status := "cancelled"
		_, err = svc.Update(ctx, bob, aliceBooking.ID, &request.BookingUpdateRequest{Status: &status})
		assert.ErrorIs(t, err, ErrNotFound)

		assert.ErrorIs(t, svc.Delete(ctx, bob, aliceBooking.ID), ErrNotFound)
		assert.Contains(t, f.bookings.items, aliceBooking.ID)
	})

	t.Run("staff can retrieve any booking", func(t *testing.T) {
		got, err := svc.Get(ctx, admin, aliceBooking.ID)
		require.NoError(t, err)
		assert.Equal(t, alice.UserID.String(), got.UserID)
		assert.Equal(t, "2026-04-01", got.CheckInDate)
	})

	t.Run("anonymous callers are rejected", func(t *testing.T) {
		_, err := svc.List(ctx, utils.Actor{}, &request.BookingQuery{})
		assert.ErrorIs(t, err, ErrUnauthorized)
	})

	t.Run("my_bookings is self scoped for staff too", func(t *testing.T) {
		mine, err := svc.MyBookings(ctx, admin, &request.BookingQuery{})
		require.NoError(t, err)
		assert.Empty(t, mine)

		mine, err = svc.MyBookings(ctx, bob, &request.BookingQuery{})
		require.NoError(t, err)
		require.Len(t, mine, 1)
		assert.Equal(t, bobBooking.ID.String(), mine[0].ID)
	})
}

func TestBookingService_Create(t *testing.T) {
	f := newFixture()
	svc := NewBookingService(f.repo, f.clock, testLogger)
	ctx := context.Background()

	alice := user()
	listing := f.addListing("Cabin", "Oslo", 120.5, true)

	t.Run("owner is the caller and price is computed", func(t *testing.T) {
		got, err := svc.Create(ctx, alice, &request.BookingRequest{
			ListingID:    listing.ID.String(),
			CheckInDate:  "2026-05-01",
			CheckOutDate: "2026-05-04",
		})
		require.NoError(t, err)

		assert.Equal(t, alice.UserID.String(), got.UserID)
		assert.Equal(t, 3, got.Nights)
		assert.InDelta(t, 361.5, got.TotalPrice, 0.001)
		assert.Equal(t, entity.BookingStatusPending, got.Status)

		stored := f.bookings.items[uuid.MustParse(got.ID)]
		require.NotNil(t, stored)
		assert.Equal(t, alice.UserID, stored.UserID)
	})

	t.Run("check out must follow check in", func(t *testing.T) {
		_, err := svc.Create(ctx, alice, &request.BookingRequest{
			ListingID:    listing.ID.String(),
			CheckInDate:  "2026-05-04",
			CheckOutDate: "2026-05-04",
		})
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "check_out_date")
	})

	t.Run("unknown listing", func(t *testing.T) {
		_, err := svc.Create(ctx, alice, &request.BookingRequest{
			ListingID:    uuid.NewString(),
			CheckInDate:  "2026-05-01",
			CheckOutDate: "2026-05-02",
		})
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "listing")
	})

	t.Run("unavailable listing", func(t *testing.T) {
		closed := f.addListing("Closed", "Oslo", 80, false)
		_, err := svc.Create(ctx, alice, &request.BookingRequest{
			ListingID:    closed.ID.String(),
			CheckInDate:  "2026-05-01",
			CheckOutDate: "2026-05-02",
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("invalid status", func(t *testing.T) {
		status := "archived"
		_, err := svc.Create(ctx, alice, &request.BookingRequest{
			ListingID:    listing.ID.String(),
			CheckInDate:  "2026-05-01",
			CheckOutDate: "2026-05-02",
			Status:       &status,
		})
		var vErr *ValidationError
		require.ErrorAs(t, err, &vErr)
		assert.Contains(t, vErr.Fields, "status")
	})
}

func TestBookingService_Update(t *testing.T) {
	f := newFixture()
	svc := NewBookingService(f.repo, f.clock, testLogger)
	ctx := context.Background()

	alice, admin := user(), staff()
	listing := f.addListing("Villa", "Rome", 50, true)
	booking := f.addBooking(alice.UserID, listing.ID, day(2026, 6, 1), entity.BookingStatusPending)

	checkOut := "2026-06-06"
	got, err := svc.Update(ctx, alice, booking.ID, &request.BookingUpdateRequest{CheckOutDate: &checkOut})
	require.NoError(t, err)
	assert.Equal(t, 5, got.Nights)
	assert.InDelta(t, 250, got.TotalPrice, 0.001)

	status := "confirmed"
	got, err = svc.Update(ctx, admin, booking.ID, &request.BookingUpdateRequest{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, entity.BookingStatusConfirmed, got.Status)
	assert.Equal(t, alice.UserID.String(), got.UserID)

	t.Run("status change keeps the agreed price", func(t *testing.T) {
		f.listings.items[listing.ID].PricePerNight = 250

		completed := "completed"
		got, err := svc.Update(ctx, alice, booking.ID, &request.BookingUpdateRequest{Status: &completed})
		require.NoError(t, err)
		assert.Equal(t, entity.BookingStatusCompleted, got.Status)
		assert.InDelta(t, 250, got.TotalPrice, 0.001)

		// resending the same dates is not a change either
		same := "2026-06-06"
		got, err = svc.Update(ctx, alice, booking.ID, &request.BookingUpdateRequest{CheckOutDate: &same})
		require.NoError(t, err)
		assert.InDelta(t, 250, got.TotalPrice, 0.001)

		longer := "2026-06-07"
		got, err = svc.Update(ctx, alice, booking.ID, &request.BookingUpdateRequest{CheckOutDate: &longer})
		require.NoError(t, err)
		assert.InDelta(t, 1500, got.TotalPrice, 0.001)
	})

	require.NoError(t, svc.Delete(ctx, alice, booking.ID))
	assert.NotContains(t, f.bookings.items, booking.ID)
}

func TestBookingService_Upcoming(t *testing.T) {
	f := newFixture()
	svc := NewBookingService(f.repo, f.clock, testLogger)
	ctx := context.Background()

	alice, bob := user(), user()
	listing := f.addListing("Flat", "Lisbon", 70, true)

	today := f.addBooking(alice.UserID, listing.ID, day(2026, 3, 10), entity.BookingStatusConfirmed)
	later := f.addBooking(alice.UserID, listing.ID, day(2026, 4, 1), entity.BookingStatusPending)

	// excluded: past, cancelled, completed, and another user's
	f.addBooking(alice.UserID, listing.ID, day(2026, 3, 9), entity.BookingStatusPending)
	f.addBooking(alice.UserID, listing.ID, day(2026, 5, 1), entity.BookingStatusCancelled)
	f.addBooking(alice.UserID, listing.ID, day(2026, 5, 2), entity.BookingStatusCompleted)
	f.addBooking(bob.UserID, listing.ID, day(2026, 4, 2), entity.BookingStatusPending)

	got, err := svc.Upcoming(ctx, alice)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, today.ID.String(), got[0].ID)
	assert.Equal(t, later.ID.String(), got[1].ID)

	last := f.bookings.filters[len(f.bookings.filters)-1]
	require.NotNil(t, last.CheckInFrom)
	assert.Equal(t, day(2026, 3, 10), *last.CheckInFrom)
	assert.ElementsMatch(t, []string{"pending", "confirmed"}, last.Statuses)
}

func TestClock_TodayUsesConfiguredZone(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)
	// 20:00 UTC on the 10th is already the 11th in Tokyo
	c := Clock{Now: func() time.Time { return time.Date(2026, 3, 10, 20, 0, 0, 0, time.UTC) }, Location: tokyo}

	assert.Equal(t, day(2026, 3, 11), c.Today())
	assert.Equal(t, day(2026, 3, 10), Clock{Now: c.Now, Location: time.UTC}.Today())
}
