package weather

import "errors"

var (
	// ErrUnknownCity is returned when the city cannot be resolved to a
	// provider slug, or when the provider serves a placeholder page with no
	// weather block for the slug. The two are indistinguishable to users.
	ErrUnknownCity = errors.New("unknown city")

	// ErrFetch wraps network and HTTP failures against the provider.
	ErrFetch = errors.New("weather fetch failed")

	// ErrDocumentStructure is returned when a required region of the
	// provider page is missing.
	ErrDocumentStructure = errors.New("document structure unrecognized")
)
