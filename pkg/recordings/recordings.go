// Package recordings stores user-study recordings.
//
// Each recording captures one read-aloud exercise: the text the user was
// asked to read, what the transcription engine heard, and the study
// metadata (participant, reading level, theme). Recordings are written by
// the study frontend and consumed by offline analysis, so the store is
// append-mostly with simple list/get access.
package recordings

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when no recording exists with the given ID.
var ErrNotFound = errors.New("recordings: not found")

// Recording is one saved study exercise.
type Recording struct {
	ID              string    `bson:"_id,omitempty" json:"_id,omitempty"`
	User            string    `bson:"user" json:"user"`
	OriginalText    string    `bson:"originalText" json:"originalText"`
	TranscribedText string    `bson:"transcribedText" json:"transcribedText"`
	Level           int       `bson:"level" json:"level"`
	Theme           string    `bson:"theme" json:"theme"`
	Timestamp       time.Time `bson:"timestamp" json:"timestamp"`
}

// Store is the recording persistence interface.
type Store interface {
	// Save persists a recording and returns its ID.
	// A missing ID or timestamp is filled in.
	Save(ctx context.Context, rec *Recording) (string, error)

	// List returns all recordings in insertion order.
	List(ctx context.Context) ([]Recording, error)

	// Get returns the recording with the given ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Recording, error)

	// Health checks store connectivity.
	Health(ctx context.Context) error

	// Close releases store resources.
	Close(ctx context.Context) error
}
