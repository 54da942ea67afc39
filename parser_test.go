package wikidump

import (
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"
)

const testDump = `<mediawiki xmlns="http://www.mediawiki.org/xml/export-0.10/">` +
	`<page>` +
	`<ns>0</ns>` +
	`<title>alpha</title>` +
	`<revision>` +
	`<format>beta</format>` +
	`<model>gamma</model>` +
	`<text>delta</text>` +
	`</revision>` +
	`</page>` +
	`<page>` +
	`<ns>4</ns>` +
	`<title>epsilon</title>` +
	`<revision>` +
	`<text>zeta</text>` +
	`</revision>` +
	`</page>` +
	`</mediawiki>`

func strptr(s string) *string {
	return &s
}

func wrapDump(body string) string {
	return `<mediawiki xmlns="http://www.mediawiki.org/xml/export-0.10/">` +
		body + `</mediawiki>`
}

func TestParseDump(t *testing.T) {
	p := NewParser(strings.NewReader(testDump))

	expected := []*Page{
		{
			Title:     "alpha",
			Namespace: NamespaceMain,
			Format:    strptr("beta"),
			Model:     strptr("gamma"),
			Text:      "delta",
		},
		{
			Title:     "epsilon",
			Namespace: NamespaceWikipedia,
			Text:      "zeta",
		},
	}

	for i, want := range expected {
		got, err := p.Next()
		if err != nil {
			t.Fatalf("Error on page %v: %v", i, err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("Page %v: got %+v, want %+v", i, got, want)
		}
	}

	if _, err := p.Next(); err != io.EOF {
		t.Fatalf("Expected io.EOF at end of dump, got %v", err)
	}
	// Exhaustion is sticky.
	if _, err := p.Next(); err != io.EOF {
		t.Fatalf("Expected io.EOF on repeat call, got %v", err)
	}
}

func TestOptionalFieldsAbsentVsEmpty(t *testing.T) {
	// format/model absent vs present-but-empty must be
	// distinguishable on the output.
	p := NewParser(strings.NewReader(wrapDump(
		`<page><ns>0</ns><title>a</title>` +
			`<revision><format></format><text></text></revision></page>`)))
	page, err := p.Next()
	if err != nil {
		t.Fatalf("Error parsing page: %v", err)
	}
	if page.Format == nil || *page.Format != "" {
		t.Errorf("Expected empty format, got %v", page.Format)
	}
	if page.Model != nil {
		t.Errorf("Expected nil model, got %q", *page.Model)
	}
	if page.Text != "" {
		t.Errorf("Expected empty text, got %q", page.Text)
	}
}

func TestSelfClosingText(t *testing.T) {
	p := NewParser(strings.NewReader(wrapDump(
		`<page><ns>0</ns><title>a</title>` +
			`<revision><text bytes="0"/></revision></page>`)))
	page, err := p.Next()
	if err != nil {
		t.Fatalf("Error parsing page: %v", err)
	}
	if page.Text != "" {
		t.Errorf("Expected empty text, got %q", page.Text)
	}
}

func TestTextDecoding(t *testing.T) {
	p := NewParser(strings.NewReader(wrapDump(
		`<page><ns>0</ns><title>a&amp;b</title>` +
			`<revision><text>x<![CDATA[<y>]]>z</text></revision></page>`)))
	page, err := p.Next()
	if err != nil {
		t.Fatalf("Error parsing page: %v", err)
	}
	if page.Title != "a&b" {
		t.Errorf("Expected title %q, got %q", "a&b", page.Title)
	}
	if page.Text != "x<y>z" {
		t.Errorf("Expected text %q, got %q", "x<y>z", page.Text)
	}
}

func TestUnknownElementsSkipped(t *testing.T) {
	// A realistic page: ids, redirect, contributor subtree, sha1 and
	// friends must all be ignored without disturbing extraction.
	p := NewParser(strings.NewReader(wrapDump(
		`<siteinfo><sitename>Wikipedia</sitename>` +
			`<namespaces><namespace key="0"/></namespaces></siteinfo>` +
			`<page>` +
			`<title>alpha</title>` +
			`<ns>0</ns>` +
			`<id>12</id>` +
			`<redirect title="beta"/>` +
			`<revision>` +
			`<id>34</id>` +
			`<parentid>33</parentid>` +
			`<timestamp>2001-01-15T13:15:00Z</timestamp>` +
			`<contributor><username>ip</username><id>56</id></contributor>` +
			`<minor/>` +
			`<comment>fixed typo</comment>` +
			`<sha1>phoiac9h4m842xq45sp7s6u21eteeq1</sha1>` +
			`<text>delta</text>` +
			`</revision>` +
			`</page>`)))
	page, err := p.Next()
	if err != nil {
		t.Fatalf("Error parsing page: %v", err)
	}
	if page.Title != "alpha" || page.Text != "delta" {
		t.Errorf("Got %+v", page)
	}
	if _, err := p.Next(); err != io.EOF {
		t.Fatalf("Expected io.EOF, got %v", err)
	}
}

func TestSecondRevisionNotSupported(t *testing.T) {
	p := NewParser(strings.NewReader(wrapDump(
		`<page><ns>0</ns><title>a</title>` +
			`<revision><text>one</text></revision>` +
			`<revision><text>two</text></revision>` +
			`</page>`)))
	_, err := p.Next()
	nse := &NotSupportedError{}
	if !errors.As(err, &nse) {
		t.Fatalf("Expected NotSupportedError, got %v", err)
	}
	if nse.Offset == 0 {
		t.Errorf("Expected a nonzero offset in %v", err)
	}
}

func TestFormatErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing title",
			`<page><ns>0</ns><revision><text>x</text></revision></page>`},
		{"missing ns",
			`<page><title>a</title><revision><text>x</text></revision></page>`},
		{"missing revision",
			`<page><ns>0</ns><title>a</title></page>`},
		{"revision missing text",
			`<page><ns>0</ns><title>a</title><revision><format>f</format></revision></page>`},
		{"duplicate title",
			`<page><ns>0</ns><title>a</title><title>b</title><revision><text>x</text></revision></page>`},
		{"duplicate ns",
			`<page><ns>0</ns><ns>1</ns><title>a</title><revision><text>x</text></revision></page>`},
		{"duplicate text",
			`<page><ns>0</ns><title>a</title><revision><text>x</text><text>y</text></revision></page>`},
		{"duplicate format",
			`<page><ns>0</ns><title>a</title><revision><format>f</format><format>g</format><text>x</text></revision></page>`},
		{"duplicate model",
			`<page><ns>0</ns><title>a</title><revision><model>m</model><model>n</model><text>x</text></revision></page>`},
		{"non-integer ns",
			`<page><ns>zero</ns><title>a</title><revision><text>x</text></revision></page>`},
		{"markup inside title",
			`<page><ns>0</ns><title><b>a</b></title><revision><text>x</text></revision></page>`},
		{"markup inside text",
			`<page><ns>0</ns><title>a</title><revision><text>x<b/></text></revision></page>`},
	}

	for _, test := range tests {
		p := NewParser(strings.NewReader(wrapDump(test.body)))
		_, err := p.Next()
		fe := &FormatError{}
		if !errors.As(err, &fe) {
			t.Errorf("%v: expected FormatError, got %v", test.name, err)
			continue
		}
		if fe.Offset == 0 {
			t.Errorf("%v: expected a nonzero offset in %v", test.name, err)
		}
	}
}

func TestBadRoot(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"empty input", ``},
		{"no elements", `<?xml version="1.0"?> <!-- nothing here -->`},
		{"wrong root name",
			`<notawiki xmlns="http://www.mediawiki.org/xml/export-0.10/"></notawiki>`},
		{"unqualified root", `<mediawiki></mediawiki>`},
		{"wrong namespace",
			`<mediawiki xmlns="http://example.com/"></mediawiki>`},
	}

	for _, test := range tests {
		p := NewParser(strings.NewReader(test.doc))
		_, err := p.Next()
		fe := &FormatError{}
		if !errors.As(err, &fe) {
			t.Errorf("%v: expected FormatError, got %v", test.name, err)
		}
	}
}

func TestRootProlog(t *testing.T) {
	// Declarations, comments and whitespace ahead of the root are
	// discarded by the root scan.
	p := NewParser(strings.NewReader(
		"<?xml version=\"1.0\" encoding=\"utf-8\"?>\n<!-- export -->\n" +
			wrapDump(`<page><ns>0</ns><title>a</title><revision><text>x</text></revision></page>`)))
	page, err := p.Next()
	if err != nil {
		t.Fatalf("Error parsing page: %v", err)
	}
	if page.Title != "a" {
		t.Errorf("Got %+v", page)
	}
}

func TestTextDirectlyInPageIgnored(t *testing.T) {
	// A <text> outside a revision is just an unknown page child; the
	// required revision text is still missing at the page's close.
	p := NewParser(strings.NewReader(wrapDump(
		`<page><ns>0</ns><title>a</title><text>stray</text></page>`)))
	_, err := p.Next()
	fe := &FormatError{}
	if !errors.As(err, &fe) {
		t.Fatalf("Expected FormatError, got %v", err)
	}
}

func TestErrorIsSticky(t *testing.T) {
	p := NewParser(strings.NewReader(wrapDump(
		`<page><ns>0</ns><title>a</title></page>` +
			`<page><ns>0</ns><title>b</title><revision><text>x</text></revision></page>`)))
	_, err := p.Next()
	if err == nil {
		t.Fatal("Expected an error for the broken page")
	}
	again, err2 := p.Next()
	if again != nil {
		t.Fatalf("Parser resumed after error, produced %+v", again)
	}
	if err2 != err {
		t.Fatalf("Expected the original error again, got %v", err2)
	}
}

func TestTokenizerErrorWrapped(t *testing.T) {
	p := NewParser(strings.NewReader(wrapDump(
		`<page><ns>0</ns><title>a</title>` +
			`<revision><text>x</text></revision>`))) // page never closes
	_, err := p.Next()
	if err == nil {
		t.Fatal("Expected an error for the truncated dump")
	}
	fe := &FormatError{}
	nse := &NotSupportedError{}
	if errors.As(err, &fe) || errors.As(err, &nse) {
		t.Fatalf("Expected a wrapped tokenizer error, got %v", err)
	}
}

func TestTrailingGarbageUnread(t *testing.T) {
	// Nothing past the root's end tag is ever pulled from the stream.
	p := NewParser(strings.NewReader(testDump + "<<< not even xml"))
	for {
		_, err := p.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Error parsing dump: %v", err)
		}
	}
}
