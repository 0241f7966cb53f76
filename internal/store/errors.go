// internal/store/errors.go
//
// Store validation errors.

package store

import "fmt"

func errInvalidScore(score int) error {
	return fmt.Errorf("store: best score must be positive, got %d", score)
}
