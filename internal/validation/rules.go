// Package validation provides custom validation rules for the application.
package validation

import (
	"regexp"
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/allisson/carbonledger/internal/errors"
)

var (
	// principalRegex matches opaque principal identifiers: URL-safe base58/hex
	// style strings between 8 and 64 characters.
	principalRegex = regexp.MustCompile(`^[A-Za-z0-9_-]{8,64}$`)

	// metadataKeyRegex matches metadata field keys (snake_case identifiers).
	metadataKeyRegex = regexp.MustCompile(`^[a-z][a-z0-9_]{0,63}$`)

	// symbolRegex matches certificate display symbols (short uppercase tickers).
	symbolRegex = regexp.MustCompile(`^[A-Z0-9]{1,10}$`)
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string contains non-whitespace characters.
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "cannot be blank"),
)

// Principal validates that a string is a well-formed principal identifier.
var Principal = validation.NewStringRuleWithError(
	func(s string) bool {
		return principalRegex.MatchString(s)
	},
	validation.NewError("validation_principal", "must be a valid principal identifier"),
)

// MetadataKey validates that a string is a well-formed metadata field key.
var MetadataKey = validation.NewStringRuleWithError(
	func(s string) bool {
		return metadataKeyRegex.MatchString(s)
	},
	validation.NewError("validation_metadata_key", "must be a snake_case metadata key"),
)

// Symbol validates that a string is a short uppercase ticker symbol.
var Symbol = validation.NewStringRuleWithError(
	func(s string) bool {
		return symbolRegex.MatchString(s)
	},
	validation.NewError("validation_symbol", "must be 1-10 uppercase letters or digits"),
)
