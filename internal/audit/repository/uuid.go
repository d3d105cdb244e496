package repository

import (
	"github.com/google/uuid"

	apperrors "github.com/allisson/carbonledger/internal/errors"
)

// parseEntryID parses the string form MySQL stores for entry ids.
func parseEntryID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, apperrors.Wrap(err, "failed to parse entry id")
	}
	return parsed, nil
}
