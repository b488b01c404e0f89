package postgres

import (
	"strings"

	"gorm.io/gorm"

	"minibank/internal/errors"
)

// Constraint-violation checks for PostgreSQL errors. The driver is opened
// with TranslateError, so violations surface as GORM's sentinel errors.

func isUniqueConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

func isNotNullConstraintViolation(err error) bool {
	if err == nil {
		return false
	}

	errMsg := strings.ToLower(err.Error())

	return strings.Contains(errMsg, "null value") ||
		strings.Contains(errMsg, "not null") ||
		strings.Contains(errMsg, "23502") // PostgreSQL not_null_violation
}
