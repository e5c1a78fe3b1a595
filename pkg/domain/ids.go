// Package domain holds the identifier and role types shared across grantflow
// modules. IDs are distinct types over uuid.UUID so the compiler rejects a
// remark id where a project id is expected.
package domain

import (
	"github.com/google/uuid"

	dErrors "grantflow/pkg/domain-errors"
)

type (
	// ProjectID identifies a grant-funded project owned by the host application.
	ProjectID uuid.UUID
	// UserID identifies an actor (reviewer, compliance officer, assignee).
	UserID uuid.UUID
	// RemarkID identifies an appended decision remark.
	RemarkID uuid.UUID
	// EventID identifies a published lifecycle event.
	EventID uuid.UUID
)

func (id ProjectID) String() string { return uuid.UUID(id).String() }
func (id UserID) String() string    { return uuid.UUID(id).String() }
func (id RemarkID) String() string  { return uuid.UUID(id).String() }
func (id EventID) String() string   { return uuid.UUID(id).String() }

// IsZero reports whether the id is the nil UUID.
func (id ProjectID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }
func (id UserID) IsZero() bool    { return uuid.UUID(id) == uuid.Nil }
func (id RemarkID) IsZero() bool  { return uuid.UUID(id) == uuid.Nil }
func (id EventID) IsZero() bool   { return uuid.UUID(id) == uuid.Nil }

// Ids serialize as canonical UUID strings, not raw byte arrays.
func (id ProjectID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }
func (id UserID) MarshalText() ([]byte, error)    { return uuid.UUID(id).MarshalText() }
func (id RemarkID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id EventID) MarshalText() ([]byte, error)   { return uuid.UUID(id).MarshalText() }

func (id *ProjectID) UnmarshalText(text []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(text)
}

func (id *UserID) UnmarshalText(text []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(text)
}

func (id *RemarkID) UnmarshalText(text []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(text)
}

func (id *EventID) UnmarshalText(text []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(text)
}

// NewRemarkID mints a fresh remark id. Project and user ids are never minted
// here; they arrive from the host application.
func NewRemarkID() RemarkID { return RemarkID(uuid.New()) }

// NewEventID mints a fresh lifecycle event id.
func NewEventID() EventID { return EventID(uuid.New()) }

func parseUUID(raw, kind string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" id is required")
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" id must be a valid UUID")
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" id must not be the nil UUID")
	}
	return parsed, nil
}

// ParseProjectID validates raw as a non-nil UUID project id.
func ParseProjectID(raw string) (ProjectID, error) {
	parsed, err := parseUUID(raw, "project")
	if err != nil {
		return ProjectID{}, err
	}
	return ProjectID(parsed), nil
}

// ParseUserID validates raw as a non-nil UUID user id.
func ParseUserID(raw string) (UserID, error) {
	parsed, err := parseUUID(raw, "user")
	if err != nil {
		return UserID{}, err
	}
	return UserID(parsed), nil
}

// ParseRemarkID validates raw as a non-nil UUID remark id.
func ParseRemarkID(raw string) (RemarkID, error) {
	parsed, err := parseUUID(raw, "remark")
	if err != nil {
		return RemarkID{}, err
	}
	return RemarkID(parsed), nil
}
