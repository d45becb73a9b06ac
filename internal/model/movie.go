package model // model defines the domain entities shared by all layers

import (
	"fmt"
	"time"

	"github.com/gosimple/slug" // slug builds URL-safe identifiers from movie titles
)

// Year and duration bounds enforced on movies.  The lower year bound is the
// year the first motion picture was made.
const (
	MinYearOfProduction = 1888
	MaxYearOfProduction = 3000 // exclusive
	MaxDurationMinutes  = 600
)

// Movie represents a film that can be scheduled in a hall.  The Slug is
// derived from the title and is recomputed whenever the title changes, so it
// must never be set by hand.
//
// Fields:
//  ID                – primary key identifier.
//  Slug              – unique, URL-safe identifier derived from Title.
//  Title             – movie title.
//  Director          – director's name.
//  YearOfProduction  – must satisfy 1888 <= year < 3000.
//  Type              – free-form category label (e.g. "comedy").
//  DurationInMinutes – running time, 0..600 minutes.
//  Description       – free-text synopsis.
type Movie struct {
	ID                int64  `json:"id"`
	Slug              string `json:"slug"`
	Title             string `json:"title"`
	Director          string `json:"director"`
	YearOfProduction  int    `json:"year_of_production"`
	Type              string `json:"type"`
	DurationInMinutes int    `json:"duration_in_minutes"`
	Description       string `json:"description"`
}

// Reslug recomputes the slug from the current title.  Called on every create
// and on every title edit so the slug always mirrors the title.
func (m *Movie) Reslug() {
	m.Slug = slug.Make(m.Title)
}

// Duration returns the running time as a time.Duration.
func (m *Movie) Duration() time.Duration {
	return time.Duration(m.DurationInMinutes) * time.Minute
}

// Validate checks the field bounds and returns a *ValidationError describing
// the first violated constraint, or nil when the movie is well-formed.
func (m *Movie) Validate() error {
	if m.Title == "" {
		return &ValidationError{Entity: "movie", Field: "title", Reason: "must not be empty"}
	}
	if m.YearOfProduction < MinYearOfProduction || m.YearOfProduction >= MaxYearOfProduction {
		return &ValidationError{
			Entity: "movie",
			Field:  "year_of_production",
			Reason: fmt.Sprintf("%d is not a correct year", m.YearOfProduction),
		}
	}
	if m.DurationInMinutes < 0 || m.DurationInMinutes > MaxDurationMinutes {
		return &ValidationError{
			Entity: "movie",
			Field:  "duration_in_minutes",
			Reason: fmt.Sprintf("%d is not a correct duration", m.DurationInMinutes),
		}
	}
	return nil
}

// String renders the movie the way staff-facing listings display it.
func (m *Movie) String() string {
	return fmt.Sprintf("%s(%d) by %s", m.Title, m.YearOfProduction, m.Director)
}
