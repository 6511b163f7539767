// Package store defines the per-profile key/value session store and the
// observable wrapper that fans out changes to watchers.
package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Keys persisted inside a profile namespace.
const (
	KeyUser            = "user"
	KeySurveyCompleted = "surveyCompleted"
	KeyUserProfile     = "userProfile"
)

// SurveyCompletedValue is the only value of KeySurveyCompleted that counts as set.
const SurveyCompletedValue = "true"

// Backend is a string key/value store partitioned by profile ID.
// Read returns domain.ErrNotFound when the key is absent. Deleting an absent
// key is not an error.
type Backend interface {
	Read(ctx context.Context, profileID uuid.UUID, key string) (string, error)
	Write(ctx context.Context, profileID uuid.UUID, key, value string) error
	Delete(ctx context.Context, profileID uuid.UUID, key string) error
	Snapshot(ctx context.Context, profileID uuid.UUID) (map[string]string, error)
	Ping(ctx context.Context) error
}

// TxManager runs fn so that all backend writes made with the derived
// context commit together where the backend supports it.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// NopTx runs fn directly. Used by backends without transactions.
type NopTx struct{}

func (NopTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Op is the kind of mutation recorded in a Change.
type Op string

const (
	OpWrite  Op = "write"
	OpDelete Op = "delete"
)

// Change describes one successful mutation of a profile namespace.
type Change struct {
	ProfileID uuid.UUID `json:"profile_id"`
	Key       string    `json:"key"`
	Op        Op        `json:"op"`
	Origin    string    `json:"origin"`
	At        time.Time `json:"at"`
}
