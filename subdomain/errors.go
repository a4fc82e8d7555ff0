package subdomain

import (
	"errors"
	"fmt"

	"github.com/notargets/subdomain/geometry2D"
)

// Fatal conditions of an extraction. Callers test for them with errors.Is.
var (
	// ErrMissingInput is returned when the full mesh file does not exist
	ErrMissingInput = errors.New("missing required input")
	// ErrInvalidShape is returned for unusable shape descriptors
	ErrInvalidShape = geometry2D.ErrInvalidShape
	// ErrTopology is returned when the boundary can not be ordered into one simple loop
	ErrTopology = errors.New("subdomain boundary is not a single simple loop")
	// ErrDegenerateSelection is returned when the shape retains no nodes or no elements
	ErrDegenerateSelection = errors.New("degenerate subdomain selection")
)

// TopologyError reports where the boundary walk stopped
type TopologyError struct {
	Reason    string
	Ring      []int // Boundary nodes ordered before the failure
	Remaining int   // Boundary nodes never reached
}

func (e *TopologyError) Error() string {
	return fmt.Sprintf("%v: %s (ordered %d boundary nodes, %d unvisited)",
		ErrTopology, e.Reason, len(e.Ring), e.Remaining)
}

func (e *TopologyError) Unwrap() error {
	return ErrTopology
}
