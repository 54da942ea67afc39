// Load a wikipedia dump into CouchDB
package main

import (
	"log"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-couch"
	"github.com/dustin/go-humanize"
	"github.com/dustin/go-wikidump"
)

var wg sync.WaitGroup

type article struct {
	ID        string  `json:"_id"`
	Rev       string  `json:"_rev,omitempty"`
	Title     string  `json:"title"`
	Namespace int     `json:"ns"`
	Format    *string `json:"format,omitempty"`
	Model     *string `json:"model,omitempty"`
	Text      string  `json:"text"`
}

func escapeTitle(in string) string {
	return strings.Replace(strings.Replace(in, "/", "%2f", -1),
		"+", "%2b", -1)
}

func resolveConflict(db *couch.Database, a *article) {
	log.Printf("Resolving conflict on %s", a.ID)
	var prev article
	err := db.Retrieve(a.ID, &prev)
	if err != nil {
		log.Printf("  Error retrieving existing %v: %v", a.ID, err)
		return
	}
	if prev.Rev == "" {
		log.Printf("Got no rev from %v", a.ID)
		return
	}
	_, err = db.EditWith(a, a.ID, prev.Rev)
	if err != nil {
		log.Printf("  Error updating %v: %v", a.ID, err)
	}
}

func doPage(db *couch.Database, p *wikidump.Page) {
	defer wg.Done()
	a := article{
		ID:        escapeTitle(p.Title),
		Title:     p.Title,
		Namespace: int(p.Namespace),
		Format:    p.Format,
		Model:     p.Model,
		Text:      p.Text,
	}

	_, _, err := db.Insert(&a)
	httpe, isHTTPError := err.(*couch.HTTPError)
	switch {
	case err == nil:
		// yay
	case isHTTPError && httpe.Status == 409:
		resolveConflict(db, &a)
	default:
		log.Printf("Error inserting %v: %v", a.ID, err)
	}
}

func pageHandler(db couch.Database, ch <-chan *wikidump.Page) {
	for p := range ch {
		doPage(&db, p)
	}
}

func main() {
	if len(os.Args) != 4 {
		log.Fatalf("Usage: %s couchurl index.txt.bz2 dump.xml.bz2", os.Args[0])
	}
	dburl, idx, file := os.Args[1], os.Args[2], os.Args[3]

	db, err := couch.Connect(dburl)
	if err != nil {
		log.Fatalf("Error connecting to couchdb: %v", err)
	}

	p, err := wikidump.NewIndexedParser(idx, file, runtime.GOMAXPROCS(0))
	if err != nil {
		log.Fatalf("Error initializing multistream parser: %v", err)
	}

	ch := make(chan *wikidump.Page, 1000)

	for i := 0; i < 20; i++ {
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
			wg.Add(1)
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
	wg.Wait()
	close(ch)
	log.Printf("Ended with err after %v:  %v after %s pages",
		time.Since(start), err, humanize.Comma(pages))
}
