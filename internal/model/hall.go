package model

import "fmt"

// MaxHallPlaces caps the seating capacity of a single hall.
const MaxHallPlaces = 400

// Hall is a screening room identified by its number.  Places is the seating
// capacity used by the booking ledger to compute free seats.
type Hall struct {
	Number int64 `json:"number"`
	Places int   `json:"places"`
}

// Validate checks the capacity bounds.
func (h *Hall) Validate() error {
	if h.Places < 0 || h.Places > MaxHallPlaces {
		return &ValidationError{
			Entity: "hall",
			Field:  "places",
			Reason: fmt.Sprintf("%d is not a correct number of places", h.Places),
		}
	}
	return nil
}

// String renders the hall the way staff-facing listings display it.
func (h *Hall) String() string {
	return fmt.Sprintf("Hall number %d (%d places)", h.Number, h.Places)
}
