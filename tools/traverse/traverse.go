// Walk a dump, counting pages per namespace.
package main

import (
	"compress/bzip2"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-wikidump"
)

var numWorkers = flag.Int("numWorkers", runtime.GOMAXPROCS(0),
	"Number of workers for multistream parsing")

func init() {
	flag.Usage = usage
}

func usage() {
	fmt.Fprintf(os.Stderr,
		"Usage:\n  %s [opts] dump.xml.bz2\n  %s [opts] index.txt.bz2 dump.xml.bz2\n",
		os.Args[0], os.Args[0])
	fmt.Fprintf(os.Stderr, "\nOptions:\n")
	flag.PrintDefaults()
	os.Exit(1)
}

func process(p wikidump.Parser) {
	counts := map[wikidump.Namespace]int64{}

	pages := int64(0)
	start := time.Now()
	prev := start
	reportfreq := int64(1000)
	var err error
	for {
		var page *wikidump.Page
		page, err = p.Next()
		if err != nil {
			break
		}
		counts[page.Namespace]++

		pages++
		if pages%reportfreq == 0 {
			now := time.Now()
			d := now.Sub(prev)
			log.Printf("Processed %s pages total (%.2f/s)",
				humanize.Comma(pages), float64(reportfreq)/d.Seconds())
			prev = now
		}
	}

	d := time.Since(start)
	log.Printf("Ended with err after %v:  %v after %s pages (%.2f p/s)",
		d, err, humanize.Comma(pages), float64(pages)/d.Seconds())

	nss := make([]wikidump.Namespace, 0, len(counts))
	for ns := range counts {
		nss = append(nss, ns)
	}
	sort.Slice(nss, func(i, j int) bool { return nss[i] < nss[j] })
	for _, ns := range nss {
		log.Printf("  %v: %s pages", ns, humanize.Comma(counts[ns]))
	}
}

func processSingleStream(filename string) {
	f, err := os.Open(filename)
	if err != nil {
		log.Fatalf("Error opening file: %v", err)
	}
	defer f.Close()

	process(wikidump.NewParser(bzip2.NewReader(f)))
}

func processMultiStream(idx, data string) {
	p, err := wikidump.NewIndexedParser(idx, data, *numWorkers)
	if err != nil {
		log.Fatalf("Error initializing multistream parser: %v", err)
	}
	process(p)
}

func main() {
	flag.Parse()

	switch flag.NArg() {
	case 1:
		processSingleStream(flag.Arg(0))
	case 2:
		processMultiStream(flag.Arg(0), flag.Arg(1))
	default:
		usage()
	}
}
