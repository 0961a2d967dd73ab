package main

import (
	"fmt"
	"io"
	"io/ioutil"
	"log"
	"os"
	"runtime"

	"github.com/bodgit/ledheader"
	"github.com/muesli/termenv"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

func run(c *cli.Context) error {
	logger := log.New(ioutil.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}

	var cache *ledheader.Cache
	if file := c.String("cache"); file != "" {
		var err error
		if cache, err = ledheader.NewCache(file); err != nil {
			return err
		}
		defer cache.Close()
	}

	return ledheader.New(cache, logger, c.Int("jobs")).Run(c.String("input"), c.String("output"))
}

// printError reports err on w with the marker in red if w is a terminal.
func printError(w io.Writer, err error) {
	out := termenv.NewOutput(w)
	fmt.Fprintf(w, "%s %v\n", out.String("error:").Foreground(termenv.ANSIRed), err)
}

func newApp() *cli.App {
	app := cli.NewApp()

	app.Name = "ledheader"
	app.Usage = "Convert images and animations to a C header for LED matrix firmware"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "input",
			Aliases: []string{"i"},
			Value:   ledheader.DefaultManifest,
			Usage:   "input manifest path",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Value:   ledheader.DefaultOutput,
			Usage:   "output path",
		},
		&cli.StringFlag{
			Name:    "cache",
			Aliases: []string{"c"},
			EnvVars: []string{"LEDHEADER_CACHE"},
			Usage:   "path to cache database",
		},
		&cli.IntFlag{
			Name:    "jobs",
			Aliases: []string{"j"},
			Value:   runtime.NumCPU(),
			Usage:   "number of assets to load concurrently",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Action = run

	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		printError(os.Stdout, err)
		os.Exit(1)
	}
}
