package profile

import "fmt"

// FetchError indicates the upstream profile endpoint answered with a
// non-success status.
type FetchError struct {
	URL    string
	Status int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch profile from %s: status %d", e.URL, e.Status)
}

// ParseError indicates the upstream body was not valid JSON.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("profile endpoint did not return valid JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// SchemaError indicates the document parsed but is missing the metadata
// the router depends on.
type SchemaError struct {
	Reason string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("profile document schema invalid: %s", e.Reason)
}
