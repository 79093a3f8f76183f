package booking

import (
	"time"

	"github.com/meridianbay/hotel-booking/internal/model"
)

// Nights returns the calendar-day span between checkIn and checkOut,
// rounded up. The result is the magnitude of the difference; callers
// enforce checkIn < checkOut before calling. A zero time on either side
// fails with ErrInvalidRange.
func Nights(checkIn, checkOut time.Time) (int, error) {
	if checkIn.IsZero() || checkOut.IsZero() {
		return 0, ErrInvalidRange
	}
	diff := checkOut.Sub(checkIn)
	if diff < 0 {
		diff = -diff
	}
	const day = 24 * time.Hour
	nights := int(diff / day)
	if diff%day != 0 {
		nights++
	}
	return nights, nil
}

// TotalPrice computes the locked-in price for a stay in minor currency
// units: basePrice*nights, plus the board surcharge per night when the
// room offers the given board code. An unknown or empty board code
// contributes zero; the orchestrator rejects unknown codes before
// pricing, so this function keeps the permissive contract. All
// arithmetic is integer.
func TotalPrice(room *model.Room, nights int, boardOption string) int64 {
	total := room.BasePrice * int64(nights)
	if boardOption != "" {
		if surcharge, ok := room.BoardOptions[boardOption]; ok {
			total += surcharge * int64(nights)
		}
	}
	return total
}
