// Load a wikipedia dump into CouchBase
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/couchbase/go-couchbase"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-wikidump"
)

var numWorkers = flag.Int("numWorkers", 8, "Number of page workers")

var wg sync.WaitGroup

func init() {
	flag.Usage = usage
}

func usage() {
	fmt.Fprintf(os.Stderr,
		"Usage:\n  %s [opts] wikipedia.index.bz2 wikipedia.xml.bz2\n",
		os.Args[0])
	fmt.Fprintf(os.Stderr, "\nOptions:\n")
	flag.PrintDefaults()
	os.Exit(1)
}

type article struct {
	Title     string  `json:"title"`
	Namespace int     `json:"ns"`
	Format    *string `json:"format,omitempty"`
	Model     *string `json:"model,omitempty"`
	Text      string  `json:"text"`
}

func doPage(db *couchbase.Bucket, p *wikidump.Page) {
	a := article{
		Title:     p.Title,
		Namespace: int(p.Namespace),
		Format:    p.Format,
		Model:     p.Model,
		Text:      p.Text,
	}

	if err := db.Set(p.Title, 0, a); err != nil {
		log.Printf("Error setting %v: %v", p.Title, err)
	}
}

func pageHandler(db *couchbase.Bucket, ch <-chan *wikidump.Page) {
	defer wg.Done()
	for p := range ch {
		doPage(db, p)
	}
}

func main() {
	couchbaseServer := flag.String("couchbase", "http://localhost:8091/",
		"Couchbase URL")
	couchbaseBucket := flag.String("bucket", "default", "Couchbase bucket")
	procs := flag.Int("cpus", runtime.NumCPU(), "Number of CPUS to use")
	flag.Parse()

	if flag.NArg() != 2 {
		usage()
	}

	runtime.GOMAXPROCS(*procs)

	db, err := couchbase.GetBucket(*couchbaseServer,
		"default", *couchbaseBucket)
	if err != nil {
		log.Fatalf("Error connecting to couchbase: %v", err)
	}

	p, err := wikidump.NewIndexedParser(flag.Arg(0), flag.Arg(1),
		runtime.GOMAXPROCS(0))
	if err != nil {
		log.Fatalf("Error initializing multistream parser: %v", err)
	}

	ch := make(chan *wikidump.Page, 1000)

	for i := 0; i < *numWorkers; i++ {
		wg.Add(1)
		go pageHandler(db, ch)
	}

	pages := int64(0)
	start := time.Now()
	prev := start
	reportfreq := int64(1000)
	for err == nil {
		var page *wikidump.Page
		page, err = p.Next()
		if err == nil {
			ch <- page
		}

		pages++
		if pages%reportfreq == 0 {
			now := time.Now()
			d := now.Sub(prev)
			log.Printf("Processed %s pages total (%.2f/s)",
				humanize.Comma(pages), float64(reportfreq)/d.Seconds())
			prev = now
		}
	}
	close(ch)
	wg.Wait()
	log.Printf("Ended with err after %v:  %v after %s pages",
		time.Since(start), err, humanize.Comma(pages))
}
