// Command replay feeds a recorded walk through the detection engine and
// prints the alerts it raises. It can also append them to a SQLite alert log
// and render a step profile and an alert timeline.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/banshee-data/pathguard/internal/fsutil"
	"github.com/banshee-data/pathguard/internal/monitoring"
	"github.com/banshee-data/pathguard/internal/version"
)

var (
	inPath      = flag.String("in", "", "Recorded session to replay (.pgrec)")
	configPath  = flag.String("config", "", "Tuning config JSON; built-in defaults when empty")
	dbPath      = flag.String("db", "", "SQLite alert log to append emitted alerts to")
	plotPath    = flag.String("plot", "", "Write a PNG step profile to this path")
	htmlPath    = flag.String("html", "", "Write an HTML alert timeline to this path")
	reportDir   = flag.String("report-dir", "", "Write both reports here, named after the session")
	debug       = flag.Bool("debug", false, "Log per-frame diagnostics")
	showVersion = flag.Bool("version", false, "Print version and exit")
)

func main() {
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		return
	}
	if *inPath == "" {
		log.Fatal("-in is required")
	}
	monitoring.SetDebug(*debug)

	opts := options{
		In:     *inPath,
		Config: *configPath,
		DB:     *dbPath,
		Plot:   *plotPath,
		HTML:   *htmlPath,

		ReportDir: *reportDir,
	}
	if _, err := run(opts, fsutil.OSFileSystem{}, os.Stdout); err != nil {
		log.Fatalf("replay: %v", err)
	}
}
