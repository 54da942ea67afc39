package wikidump

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// An IndexEntry is one line of a multistream dump index: the offset
// of a bzip2 stream within the data file, and the id and title of one
// page in that stream.
type IndexEntry struct {
	StreamOffset int64
	PageID       int
	Title        string
}

func (e IndexEntry) String() string {
	return fmt.Sprintf("%v:%v:%v", e.StreamOffset, e.PageID, e.Title)
}

// An IndexReader reads a multistream dump index line by line.
//
// Some indexes were generated with 32-bit offsets that wrap around on
// large dumps; since stream offsets only ever grow, a wrapped offset
// is corrected by adding the overflow back.
type IndexReader struct {
	s          *bufio.Scanner
	base       int64
	prevOffset int64
}

// NewIndexReader gets an index reader over the given stream of index
// lines.
func NewIndexReader(r io.Reader) *IndexReader {
	return &IndexReader{s: bufio.NewScanner(r)}
}

// Next gets the next entry from the index, or io.EOF at the end.
func (ir *IndexReader) Next() (IndexEntry, error) {
	if !ir.s.Scan() {
		err := ir.s.Err()
		if err == nil {
			err = io.EOF
		}
		return IndexEntry{}, err
	}
	parts := strings.SplitN(ir.s.Text(), ":", 3)
	if len(parts) != 3 {
		return IndexEntry{}, errors.New("bad index record")
	}

	offset, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return IndexEntry{}, err
	}
	if offset < ir.prevOffset {
		ir.base += 1 << 32
	}
	ir.prevOffset = offset

	id, err := strconv.Atoi(parts[1])
	if err != nil {
		return IndexEntry{}, err
	}

	return IndexEntry{
		StreamOffset: offset + ir.base,
		PageID:       id,
		Title:        parts[2],
	}, nil
}

// An IndexSummaryReader reduces an index to its distinct stream
// offsets and the number of pages each stream holds.
//
// If you don't care about the individual articles, just how many and
// where, this is for you.
type IndexSummaryReader struct {
	index      *IndexReader
	prevOffset int64
	count      int
}

// NewIndexSummaryReader gets a summary reader over the given stream
// of index lines.
func NewIndexSummaryReader(r io.Reader) (*IndexSummaryReader, error) {
	rv := &IndexSummaryReader{index: NewIndexReader(r)}
	first, err := rv.index.Next()
	if err != nil {
		return nil, err
	}
	rv.prevOffset = first.StreamOffset
	rv.count = 1
	return rv, nil
}

// Next gets the next stream offset and page count from the index.
//
// Note that the last summary comes back with io.EOF as the error, but
// a valid offset and count.
func (sr *IndexSummaryReader) Next() (offset int64, count int, err error) {
	for {
		e, err := sr.index.Next()
		if err != nil {
			offset, count = sr.prevOffset, sr.count
			sr.prevOffset, sr.count = 0, 0
			return offset, count, err
		}
		if e.StreamOffset != sr.prevOffset {
			offset, count = sr.prevOffset, sr.count
			sr.prevOffset, sr.count = e.StreamOffset, 1
			return offset, count, nil
		}
		sr.count++
	}
}
