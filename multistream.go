package wikidump

import (
	"compress/bzip2"
	"io"
	"log"
	"os"
	"strings"
	"sync"
)

// Each bzip2 stream inside a multistream dump holds a bare run of
// <page> elements with no enclosing document, so a root element is
// synthesized before the chunk is handed to the parser.
const streamRoot = `<mediawiki xmlns="` + exportNamespace + `">`

type streamChunk struct {
	offset int64
	count  int
}

type multiStreamParser struct {
	workerch chan streamChunk
	entries  chan *Page
}

func multiStreamIndexWorker(indexfn string, p *multiStreamParser) {
	defer close(p.workerch)

	r, err := os.Open(indexfn)
	if err != nil {
		log.Fatalf("Error opening %v: %v", indexfn, err)
	}
	defer r.Close()

	sr, err := NewIndexSummaryReader(bzip2.NewReader(r))
	if err != nil {
		log.Fatalf("Error creating index summary: %v", err)
	}
	for {
		offset, count, err := sr.Next()
		p.workerch <- streamChunk{offset, count}
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatalf("Error reading index: %v", err)
		}
	}
}

func multiStreamWorker(datafn string, wg *sync.WaitGroup, p *multiStreamParser) {
	defer wg.Done()

	r, err := os.Open(datafn)
	if err != nil {
		log.Fatalf("Error opening %v: %v", datafn, err)
	}
	defer r.Close()

	for chunk := range p.workerch {
		if _, err := r.Seek(chunk.offset, io.SeekStart); err != nil {
			log.Fatalf("Error seeking to offset %v: %v", chunk.offset, err)
		}
		parser := NewParser(io.MultiReader(
			strings.NewReader(streamRoot),
			bzip2.NewReader(r)))

		for i := 0; i < chunk.count; i++ {
			page, err := parser.Next()
			if err != nil {
				log.Printf("Error parsing page in chunk at %v: %v",
					chunk.offset, err)
				break
			}
			p.entries <- page
		}
	}
}

// NewIndexedParser gets a parser over a multistream dump, using the
// dump's companion index to fan the bzip2 streams out over numWorkers
// goroutines.  Pages come back in no particular order.
func NewIndexedParser(indexfn, datafn string, numWorkers int) (Parser, error) {
	r, err := os.Open(datafn)
	if err != nil {
		return nil, err
	}
	r.Close()

	rv := &multiStreamParser{
		workerch: make(chan streamChunk, 1000),
		entries:  make(chan *Page, 1000),
	}

	wg := sync.WaitGroup{}
	wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go multiStreamWorker(datafn, &wg, rv)
	}

	go multiStreamIndexWorker(indexfn, rv)

	go func() {
		wg.Wait()
		close(rv.entries)
	}()

	return rv, nil
}

func (p *multiStreamParser) Next() (*Page, error) {
	page, ok := <-p.entries
	if !ok {
		return nil, io.EOF
	}
	return page, nil
}
