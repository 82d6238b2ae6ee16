package domain

import "github.com/google/uuid"

// ModuleID identifies a module build.
type ModuleID uuid.UUID

// ComponentID identifies a component build. It is used as a by-value reference
// between component builds and never implies ownership.
type ComponentID uuid.UUID

// NewModuleID returns a fresh random ModuleID.
func NewModuleID() ModuleID { return ModuleID(uuid.New()) }

// NewComponentID returns a fresh random ComponentID.
func NewComponentID() ComponentID { return ComponentID(uuid.New()) }

// ParseModuleID parses the canonical string form of a ModuleID.
func ParseModuleID(s string) (ModuleID, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return ModuleID{}, err
	}
	return ModuleID(id), nil
}

func (id ModuleID) String() string { return uuid.UUID(id).String() }

// IsZero reports whether the identifier is unset.
func (id ModuleID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }

// MarshalText implements encoding.TextMarshaler.
func (id ModuleID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ModuleID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }

func (id ComponentID) String() string { return uuid.UUID(id).String() }

// IsZero reports whether the identifier is unset.
func (id ComponentID) IsZero() bool { return uuid.UUID(id) == uuid.Nil }

// MarshalText implements encoding.TextMarshaler.
func (id ComponentID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ComponentID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }
