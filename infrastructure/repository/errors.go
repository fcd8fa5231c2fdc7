package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// ErrNotFound é retornado por operações de escrita quando a linha alvo não existe
var ErrNotFound = errors.New("record not found")

func wrapQueryError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return fmt.Errorf("database error: %w (code: %s)", pqErr, pqErr.Code)
	}
	return fmt.Errorf("failed to execute query: %w", err)
}
