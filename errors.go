package termart

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidImage is returned when the raster has a zero dimension (or is nil)
	ErrInvalidImage = errors.New("invalid image: width and height must be at least 1")
	// ErrInvalidWidth is returned when the target width is not a positive number of cells
	ErrInvalidWidth = errors.New("invalid target width: must be at least 1 character")
	// ErrRenderUnavailable wraps every fetch or decode failure from the image source
	ErrRenderUnavailable = errors.New("rendering unavailable")
)

// StatusError is returned when an image server answers with a non-2xx status
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("GET %s: unexpected status %s", e.URL, e.Status)
}

// unavailable wraps err so that errors.Is(err, ErrRenderUnavailable) holds
func unavailable(format string, args ...any) error {
	return fmt.Errorf("%w: %w", ErrRenderUnavailable, fmt.Errorf(format, args...))
}
