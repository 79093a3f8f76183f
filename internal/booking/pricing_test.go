package booking

import (
	"testing"
	"time"

	"github.com/meridianbay/hotel-booking/internal/model"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNights(t *testing.T) {
	cases := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
		want     int
	}{
		{"single night", date(2025, 6, 1), date(2025, 6, 2), 1},
		{"four nights", date(2025, 6, 1), date(2025, 6, 5), 4},
		{"magnitude of reversed range", date(2025, 6, 5), date(2025, 6, 1), 4},
		{"partial day rounds up", date(2025, 6, 1), time.Date(2025, 6, 2, 14, 0, 0, 0, time.UTC), 2},
		{"same instant", date(2025, 6, 1), date(2025, 6, 1), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Nights(tc.checkIn, tc.checkOut)
			if err != nil {
				t.Fatalf("Nights returned error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("Nights(%v, %v) = %d, want %d", tc.checkIn, tc.checkOut, got, tc.want)
			}
		})
	}
}

func TestNightsZeroTime(t *testing.T) {
	if _, err := Nights(time.Time{}, date(2025, 6, 1)); err != ErrInvalidRange {
		t.Fatalf("zero check-in: got err %v, want ErrInvalidRange", err)
	}
	if _, err := Nights(date(2025, 6, 1), time.Time{}); err != ErrInvalidRange {
		t.Fatalf("zero check-out: got err %v, want ErrInvalidRange", err)
	}
}

func TestTotalPriceBaseOnly(t *testing.T) {
	room := &model.Room{BasePrice: 29900}
	for _, n := range []int{0, 1, 3, 14} {
		if got, want := TotalPrice(room, n, ""), room.BasePrice*int64(n); got != want {
			t.Fatalf("TotalPrice(n=%d) = %d, want %d", n, got, want)
		}
	}
}

func TestTotalPriceWithBoard(t *testing.T) {
	room := &model.Room{
		BasePrice:    29900,
		BoardOptions: map[string]int64{model.BoardBB: 1500, model.BoardHB: 3000},
	}
	if got := TotalPrice(room, 3, model.BoardBB); got != 94200 {
		t.Fatalf("TotalPrice with BB = %d, want 94200", got)
	}
	if got := TotalPrice(room, 2, model.BoardHB); got != 29900*2+3000*2 {
		t.Fatalf("TotalPrice with HB = %d, want %d", got, 29900*2+3000*2)
	}
}

func TestTotalPriceUnknownBoardContributesZero(t *testing.T) {
	room := &model.Room{BasePrice: 10000, BoardOptions: map[string]int64{model.BoardBB: 500}}
	if got := TotalPrice(room, 2, model.BoardFB); got != 20000 {
		t.Fatalf("unknown board code: got %d, want 20000", got)
	}
	if got := TotalPrice(&model.Room{BasePrice: 10000}, 2, model.BoardBB); got != 20000 {
		t.Fatalf("room without board options: got %d, want 20000", got)
	}
}
