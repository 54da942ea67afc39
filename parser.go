package wikidump

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
)

// The XML namespace qualifying every element of an export dump.  Fixed
// by the export schema, not configurable.
const exportNamespace = "http://www.mediawiki.org/xml/export-0.10/"

// A Page is one <page> element pulled out of a dump: the title and
// namespace code of the page plus the content of its single revision.
//
// Format and Model are nil when the revision doesn't carry the
// corresponding element; older export schemas don't.  For ordinary
// articles the format is "text/x-wiki" and the model is "wikitext".
type Page struct {
	Title     string
	Namespace Namespace
	Format    *string
	Model     *string
	Text      string
}

// A Parser emits wiki pages from a dump.
//
// Next returns the pages in document order, then io.EOF once the
// root element closes.  A *FormatError or *NotSupportedError reports
// a dump that doesn't match the export schema; errors from the XML
// tokenizer itself are wrapped and returned as-is.  The sequence is
// forward-only and doesn't resynchronize: after any error (io.EOF
// included) every further call returns the same error and no more
// pages.
type Parser interface {
	Next() (*Page, error)
}

// Scan states of a dumpParser.
const (
	stateNotStarted = iota // root element not yet located
	stateInsideRoot        // iterating page-level children
	stateExhausted         // root element closed
)

type dumpParser struct {
	d       *xml.Decoder
	state   int
	err     error  // sticky once parsing has ended
	scratch []byte // reused across leaf text extractions
}

// NewParser gets a dump parser reading from the given stream.  The
// stream must hold a single uncompressed XML document; wrap it in a
// bzip2 or gzip reader first if need be.
func NewParser(r io.Reader) Parser {
	return &dumpParser{d: xml.NewDecoder(r)}
}

func (p *dumpParser) Next() (*Page, error) {
	if p.err != nil {
		return nil, p.err
	}
	page, err := p.next()
	if err != nil {
		p.err = err
		return nil, err
	}
	return page, nil
}

func (p *dumpParser) next() (*Page, error) {
	if p.state == stateNotStarted {
		if err := p.findRoot(); err != nil {
			return nil, err
		}
		p.state = stateInsideRoot
	}
	for {
		tok, err := p.token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.EndElement:
			// The only end tag visible at this level is the
			// root's own.
			p.state = stateExhausted
			return nil, io.EOF
		case xml.StartElement:
			if inExportNS(t) && t.Name.Local == "page" {
				return p.readPage()
			}
			// Non-page children of the root (siteinfo, and
			// whatever future schemas add) are skipped whole.
			if err := p.skipElement(); err != nil {
				return nil, err
			}
		}
	}
}

// findRoot scans forward to the document root, which must be a
// <mediawiki> element in the export namespace.
func (p *dumpParser) findRoot() error {
	for {
		tok, err := p.d.Token()
		if err == io.EOF {
			// The document never opened.
			return p.formatError()
		}
		if err != nil {
			return p.wrap(err)
		}
		t, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		if inExportNS(t) && t.Name.Local == "mediawiki" {
			return nil
		}
		return p.formatError()
	}
}

// readPage consumes a <page> element, its start tag having just been
// read.  Exactly one <ns>, one <title> and one <revision> must show
// up before the page closes; anything else is skipped.
func (p *dumpParser) readPage() (*Page, error) {
	var (
		ns            Namespace
		title, text   string
		haveNS        bool
		haveTitle     bool
		haveText      bool
		format, model *string
	)
	for {
		tok, err := p.token()
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if !haveNS || !haveTitle || !haveText {
				return nil, p.formatError()
			}
			return &Page{
				Title:     title,
				Namespace: ns,
				Format:    format,
				Model:     model,
				Text:      text,
			}, nil
		case xml.StartElement:
			if !inExportNS(t) {
				if err := p.skipElement(); err != nil {
					return nil, err
				}
				continue
			}
			switch t.Name.Local {
			case "ns":
				s, err := p.leafText(haveNS)
				if err != nil {
					return nil, err
				}
				code, err := strconv.Atoi(s)
				if err != nil {
					return nil, p.formatError()
				}
				ns, haveNS = Namespace(code), true
			case "title":
				if title, err = p.leafText(haveTitle); err != nil {
					return nil, err
				}
				haveTitle = true
			case "revision":
				if haveText {
					return nil, &NotSupportedError{Offset: p.d.InputOffset()}
				}
				if text, format, model, err = p.readRevision(); err != nil {
					return nil, err
				}
				haveText = true
			default:
				if err := p.skipElement(); err != nil {
					return nil, err
				}
			}
		}
	}
}

// readRevision consumes a <revision> element, returning the revision
// text and the optional format and model.  The text element is
// mandatory.
func (p *dumpParser) readRevision() (text string, format, model *string, err error) {
	haveText := false
	for {
		var tok xml.Token
		if tok, err = p.token(); err != nil {
			return
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if !haveText {
				err = p.formatError()
			}
			return
		case xml.StartElement:
			if !inExportNS(t) {
				if err = p.skipElement(); err != nil {
					return
				}
				continue
			}
			switch t.Name.Local {
			case "format":
				var s string
				if s, err = p.leafText(format != nil); err != nil {
					return
				}
				format = &s
			case "model":
				var s string
				if s, err = p.leafText(model != nil); err != nil {
					return
				}
				model = &s
			case "text":
				if text, err = p.leafText(haveText); err != nil {
					return
				}
				haveText = true
			default:
				if err = p.skipElement(); err != nil {
					return
				}
			}
		}
	}
}

// leafText consumes the text content of the element whose start tag
// was just read.  The element must hold plain text only; a nested
// start tag is a format error.  filled marks a slot that already has
// a value, making this repeat element itself a format error.
func (p *dumpParser) leafText(filled bool) (string, error) {
	if filled {
		return "", p.formatError()
	}
	p.scratch = p.scratch[:0]
	for {
		tok, err := p.token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			// CDATA sections arrive as separate runs.
			p.scratch = append(p.scratch, t...)
		case xml.EndElement:
			return string(p.scratch), nil
		case xml.Comment:
			// not content
		default:
			return "", p.formatError()
		}
	}
}

// skipElement discards the element whose start tag was just read,
// subtree and all.  An explicit depth counter rather than recursion,
// so arbitrarily deep unknown content stays off the call stack.
func (p *dumpParser) skipElement() error {
	depth := 0
	for {
		tok, err := p.token()
		if err != nil {
			return err
		}
		switch tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			if depth == 0 {
				return nil
			}
			depth--
		}
	}
}

// token reads the next event from the underlying tokenizer, wrapping
// any tokenizer error with the stream offset.
func (p *dumpParser) token() (xml.Token, error) {
	tok, err := p.d.Token()
	if err != nil {
		return nil, p.wrap(err)
	}
	return tok, nil
}

func (p *dumpParser) wrap(err error) error {
	return fmt.Errorf("reading dump at offset %d: %w", p.d.InputOffset(), err)
}

func (p *dumpParser) formatError() error {
	return &FormatError{Offset: p.d.InputOffset()}
}

func inExportNS(t xml.StartElement) bool {
	return t.Name.Space == exportNamespace
}
