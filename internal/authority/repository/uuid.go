package repository

import (
	"github.com/google/uuid"

	apperrors "github.com/allisson/carbonledger/internal/errors"
)

// parseRecordID parses the string form MySQL stores for record ids.
func parseRecordID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, apperrors.Wrap(err, "failed to parse record id")
	}
	return parsed, nil
}
