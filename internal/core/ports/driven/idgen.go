package driven

// IDGenerator produces identifiers for documents, sections, items and shareable links.
type IDGenerator interface {
	// NewID returns a canonical hyphenated UUID string.
	NewID() string

	// NewShortID returns a short alphanumeric key for shareable links.
	// Uniqueness against existing keys is not checked.
	NewShortID() string
}
