package song

import (
	"errors"
	"fmt"
)

// Validation error kinds. All are reported to the caller, never silently
// corrected, and a map's issues are aggregated rather than short-circuited.
var (
	ErrEmptyTitle        = errors.New("title is empty")
	ErrEmptyArtist       = errors.New("artist is empty")
	ErrEmptySongInfoText = errors.New("song info has no language entries")
	ErrEmptyScores       = errors.New("map has no difficulty scores")
	ErrIDNotExists       = errors.New("song ID not in catalog")
	ErrIDExists          = errors.New("song ID already in catalog")
)

func idError(kind error, id string) error {
	return fmt.Errorf("%q: %w", id, kind)
}
