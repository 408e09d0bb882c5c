package models

import (
	"errors"
	"fmt"
)

// ErrInvalidRecord is wrapped by all validation failures.
var ErrInvalidRecord = errors.New("invalid record")

// ValidateRole checks that a role record carries every required field.
// It returns nil for a valid record and a descriptive error otherwise,
// so callers can log why a record was excluded instead of silently
// dropping it.
func ValidateRole(role *RoleRecord) error {
	if role == nil {
		return fmt.Errorf("%w: role is nil", ErrInvalidRecord)
	}

	required := []struct {
		field string
		value string
	}{
		{"role_id", role.RoleID},
		{"title", role.Title},
		{"company", role.Company},
		{"location", role.Location},
		{"summary", role.Summary},
	}
	for _, r := range required {
		if r.value == "" {
			return fmt.Errorf("%w: role missing %s", ErrInvalidRecord, r.field)
		}
	}

	if role.CoreTech == nil {
		return fmt.Errorf("%w: role %s missing core_tech", ErrInvalidRecord, role.RoleID)
	}
	if role.Highlights == nil {
		return fmt.Errorf("%w: role %s missing highlights", ErrInvalidRecord, role.RoleID)
	}
	if role.Timeframe.Start == "" {
		return fmt.Errorf("%w: role %s missing timeframe", ErrInvalidRecord, role.RoleID)
	}

	return nil
}

// RoleIsValid is the predicate form of ValidateRole for callers that
// only need to gate a record.
func RoleIsValid(role *RoleRecord) bool {
	return ValidateRole(role) == nil
}

// ValidateChunk checks that a chunk record carries every required field.
func ValidateChunk(chunk *VectorChunk) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidRecord)
	}
	if chunk.ChunkID == "" {
		return fmt.Errorf("%w: chunk missing chunk_id", ErrInvalidRecord)
	}
	if chunk.Text == "" {
		return fmt.Errorf("%w: chunk %s missing text", ErrInvalidRecord, chunk.ChunkID)
	}
	if chunk.Metadata.RoleID == "" {
		return fmt.Errorf("%w: chunk %s missing metadata", ErrInvalidRecord, chunk.ChunkID)
	}
	return nil
}

// ChunkIsValid is the predicate form of ValidateChunk.
func ChunkIsValid(chunk *VectorChunk) bool {
	return ValidateChunk(chunk) == nil
}
