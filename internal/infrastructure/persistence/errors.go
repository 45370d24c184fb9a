package persistence

import (
	"errors"

	"github.com/lib/pq"
)

// Postgres error codes
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// constraintViolation returns the violated constraint when err is a Postgres
// error with the given code
func constraintViolation(err error, code string) (string, bool) {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == code {
		return pqErr.Constraint, true
	}
	return "", false
}
