package backup

import "fmt"

// ParseError is returned when a snapshot cannot be decoded as JSON.
type ParseError struct {
	Underlying error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("snapshot is not valid JSON: %v", e.Underlying)
}

func (e *ParseError) Unwrap() error {
	return e.Underlying
}

// NewParseError wraps a JSON decoding failure.
func NewParseError(err error) *ParseError {
	return &ParseError{Underlying: err}
}

// MissingCollectionError is returned when a snapshot lacks one of the
// required top-level collections. An empty collection is valid; an absent
// one means the file cannot fully replace the existing data and the import
// is rejected before anything is deleted.
type MissingCollectionError struct {
	Key string
}

func (e *MissingCollectionError) Error() string {
	return fmt.Sprintf("snapshot is missing required collection %q", e.Key)
}

// NewMissingCollectionError creates an error for an absent top-level collection.
func NewMissingCollectionError(key string) *MissingCollectionError {
	return &MissingCollectionError{Key: key}
}

// RecordError is returned when a single record is malformed beyond
// name resolution: an unparseable amount, an unknown enum value, or an
// invalid transaction shape. Unlike a name-resolution miss, this means the
// file itself is corrupt, so the import aborts.
type RecordError struct {
	Collection string
	Index      int
	Underlying error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s[%d]: %v", e.Collection, e.Index, e.Underlying)
}

func (e *RecordError) Unwrap() error {
	return e.Underlying
}

// NewRecordError wraps a per-record failure with its location in the file.
func NewRecordError(collection string, index int, err error) *RecordError {
	return &RecordError{Collection: collection, Index: index, Underlying: err}
}

// Warning is a non-fatal defect found during import: a reference that could
// not be resolved by name, or a duplicate allocation cell that was merged.
// The affected reference is left empty so the rest of the snapshot still
// restores.
type Warning struct {
	Collection string
	Name       string
	Reason     string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s %q: %s", w.Collection, w.Name, w.Reason)
}
