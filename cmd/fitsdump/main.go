// Command fitsdump prints the structure of a FITS file: its header/data
// units, header cards, array shapes, and optional data statistics.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/simonhull/fitsview"
)

func main() {
	var (
		asJSON    bool
		hduIndex  int
		showStats bool
		showCards bool
		strict    bool
	)

	app := &cli.Command{
		Name:      "fitsdump",
		Usage:     "Inspect the structure of a FITS file",
		ArgsUsage: "<file.fits>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "emit machine-readable JSON", Destination: &asJSON},
			&cli.IntFlag{Name: "hdu", Usage: "dump only the HDU at this index", Value: -1, Destination: &hduIndex},
			&cli.BoolFlag{Name: "stats", Usage: "compute min/max/mean over array data", Destination: &showStats},
			&cli.BoolFlag{Name: "cards", Usage: "print every header card verbatim", Destination: &showCards},
			&cli.BoolFlag{Name: "strict", Usage: "fail on recoverable parse warnings", Destination: &strict},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 1 {
				return cli.ShowAppHelp(c)
			}
			path := c.Args().First()

			var opts []fitsview.Option
			if strict {
				opts = append(opts, fitsview.WithStrictParsing())
			}

			f, err := fitsview.OpenContext(ctx, path, opts...)
			if err != nil {
				return err
			}
			defer f.Close()

			hdus := f.HDUs()
			if hduIndex >= 0 {
				if hduIndex >= len(hdus) {
					return fmt.Errorf("hdu %d out of range (file has %d)", hduIndex, len(hdus))
				}
				hdus = hdus[hduIndex : hduIndex+1]
			}

			if asJSON {
				return dumpJSON(os.Stdout, f, hdus, showStats)
			}
			return dumpText(os.Stdout, f, hdus, showStats, showCards)
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
