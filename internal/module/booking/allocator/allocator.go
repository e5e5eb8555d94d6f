package allocator

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"hotel-booking-service/internal/module/booking/models/entity"
	"hotel-booking-service/internal/pkg/errors"

	"github.com/google/uuid"
)

const assignAttempts = 200

const ExhaustedMessage = "unable to assign a room number for the selected dates, please try different dates"

// RoomProbe answers whether a non-failed booking already holds a room for an
// overlapping date range.
type RoomProbe interface {
	RoomBookingExists(ctx context.Context, hotelID uuid.UUID, roomNumber int, checkIn, checkOut time.Time) (bool, error)
}

type Allocator interface {
	Allocate(ctx context.Context, hotelID uuid.UUID, checkIn, checkOut time.Time) (int, error)
}

type randomAllocator struct {
	probe RoomProbe
	rnd   *rand.Rand
	mu    sync.Mutex
}

func New(probe RoomProbe, rnd *rand.Rand) Allocator {
	return &randomAllocator{
		probe: probe,
		rnd:   rnd,
	}
}

// Allocate probes random room numbers until one is free of overlapping
// bookings, bounded so a fully booked hotel fails fast instead of spinning.
// The probe is advisory only: the store's exclusion constraint is what makes
// the final insert safe, the caller retries allocation on a write conflict.
func (a *randomAllocator) Allocate(ctx context.Context, hotelID uuid.UUID, checkIn, checkOut time.Time) (int, error) {
	for attempt := 0; attempt < assignAttempts; attempt++ {
		roomNumber := a.draw()

		exists, err := a.probe.RoomBookingExists(ctx, hotelID, roomNumber, checkIn, checkOut)
		if err != nil {
			return 0, err
		}
		if !exists {
			return roomNumber, nil
		}
	}

	return 0, errors.BadRequest(ExhaustedMessage)
}

func (a *randomAllocator) draw() int {
	// rand.Rand is not safe for concurrent use.
	a.mu.Lock()
	defer a.mu.Unlock()
	return entity.MinRoomNumber + a.rnd.Intn(entity.MaxRoomNumber-entity.MinRoomNumber+1)
}
