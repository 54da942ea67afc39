package wikidump

import "fmt"

// A FormatError indicates the dump doesn't have the shape the export
// schema promises at the given byte offset: wrong root element, a
// missing or repeated required field, a non-numeric namespace code, or
// markup nested inside what should be a plain text element.
type FormatError struct {
	Offset int64
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid dump format at offset %d", e.Offset)
}

// A NotSupportedError indicates the dump uses a feature this parser
// deliberately doesn't handle.  In practice this means a page carrying
// more than one revision, i.e. a full-history dump.
type NotSupportedError struct {
	Offset int64
}

func (e *NotSupportedError) Error() string {
	return fmt.Sprintf("unsupported dump feature at offset %d (full-history dumps are not supported)", e.Offset)
}
