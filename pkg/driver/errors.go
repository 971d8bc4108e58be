package driver

import "fmt"

// QueryError reports a driver value that has no cached representation,
// e.g. a blending factor introduced by an extension.
type QueryError struct {
	Name  string
	Value uint32
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("unknown %s: 0x%X", e.Name, e.Value)
}
