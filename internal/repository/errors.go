// Package repository contains MySQL data access for the domain entities.
// Sentinel errors defined here let handlers distinguish failure scenarios
// (missing rows, duplicate keys) without inspecting SQL error strings.
package repository

import "errors"

// ErrMovieNotFound is returned when a movie lookup matches no row.
var ErrMovieNotFound = errors.New("movie not found")

// ErrHallNotFound is returned when a hall lookup matches no row.
var ErrHallNotFound = errors.New("hall not found")

// ErrShowingNotFound is returned when a showing lookup matches no row.
var ErrShowingNotFound = errors.New("showing not found")

// ErrOrderNotFound is returned when an order lookup matches no row.
var ErrOrderNotFound = errors.New("order not found")

// ErrUserNotFound is returned when a user lookup matches no row.
var ErrUserNotFound = errors.New("user not found")

// ErrEmailExists is returned when registering with an email already in use.
var ErrEmailExists = errors.New("email already exists")

// ErrSlugExists is returned when a movie's recomputed slug collides with
// another movie's slug.
var ErrSlugExists = errors.New("slug already exists")
