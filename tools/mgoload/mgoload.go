// Load a wikipedia dump into MongoDB
package main

import (
	"compress/bzip2"
	"flag"
	"log"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-wikidump"
	"gopkg.in/mgo.v2"
)

var proc = flag.Int("proc", 8, "How many processes to run.")
var file = flag.String("file", "", "The bz2 dump file.")
var cpus = flag.Int("cpus", runtime.NumCPU(), "Number of CPUs to use.")
var dburl = flag.String("dburl", "localhost", "The dburl(s). I.e. localhost.")
var verbose = flag.Bool("v", false, "Verbose logging?")
var collection = flag.String("collection", "articles", "The collection to store dumped articles in.")
var dbname = flag.String("dbname", "wp", "The database name to use.")

var wg sync.WaitGroup

// Titles are unique in a dump; they are the URL path in wikimedia
// (My Title => My_Title).
var titleIndex = mgo.Index{
	Key:        []string{"title"},
	Unique:     true,
	DropDups:   true,
	Background: true,
	Sparse:     true,
}

type article struct {
	Title     string  `bson:"title"`
	Namespace int     `bson:"ns"`
	Format    *string `bson:"format,omitempty"`
	Model     *string `bson:"model,omitempty"`
	Text      string  `bson:"text"`
}

func pageHandler(db *mgo.Database, ch <-chan *wikidump.Page) {
	for p := range ch {
		makeArticle(db, p)
	}
}

func makeArticle(db *mgo.Database, p *wikidump.Page) {
	defer wg.Done()
	a := article{
		Title:     p.Title,
		Namespace: int(p.Namespace),
		Format:    p.Format,
		Model:     p.Model,
		Text:      p.Text,
	}

	err := db.C(*collection).Insert(&a)
	if err != nil {
		if mgo.IsDup(err) {
			if *verbose {
				log.Printf("Duplicate Key Error inserting %s", a.Title)
			}
		} else {
			log.Printf("Error inserting %s: %s", a.Title, err)
		}
	}
}

func processDump(p wikidump.Parser, db *mgo.Database) {
	ch := make(chan *wikidump.Page, 1000)
	for i := 0; i < *proc; i++ {
		go pageHandler(db, ch)
	}

	pages := int64(0)
	start := time.Now()
	prev := start
	reportfreq := int64(10000)
	var err error
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

	d := time.Since(start)
	log.Printf("Ended with err after %v:  %v after %s pages (%.2f p/s)",
		d, err, humanize.Comma(pages), float64(pages)/d.Seconds())
}

func main() {
	flag.Parse()
	if *file == "" {
		log.Fatal("You must supply a bz2 dump file.")
	}
	runtime.GOMAXPROCS(*cpus)

	session, err := mgo.Dial(*dburl)
	if err != nil {
		log.Fatalf("Error connecting to mongodb: %v", err)
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Fatalf("Error opening file: %v", err)
	}
	defer f.Close()

	p := wikidump.NewParser(bzip2.NewReader(f))

	err = session.DB(*dbname).C(*collection).EnsureIndex(titleIndex)
	if err != nil {
		log.Fatal("Error creating title index", err)
	}
	processDump(p, session.DB(*dbname))
}
