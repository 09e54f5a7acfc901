// Command presets prints the bundled themes as terminal swatches.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/jessevdk/go-flags"

	"github.com/Gumbachi/Vibrant-sub000/internal/palette"
	"github.com/Gumbachi/Vibrant-sub000/internal/presets"
)

type options struct {
	NoColor bool `long:"no-color" description:"Print hex codes without swatches"`
}

func main() {
	var opts options
	args, err := flags.Parse(&opts)
	if err != nil {
		if flags.WroteHelp(err) {
			return
		}
		os.Exit(1)
	}
	if opts.NoColor {
		color.NoColor = true
	}

	catalog, err := presets.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error loading presets:", err)
		os.Exit(1)
	}

	themes := catalog.Themes()
	if query := strings.Join(args, " "); query != "" {
		t := catalog.Find(query)
		if t == nil {
			fmt.Fprintf(os.Stderr, "no preset matches %q\n", query)
			os.Exit(1)
		}
		themes = []*palette.Theme{t}
	}

	title := color.New(color.Bold)
	for _, t := range themes {
		title.Printf("%s", t.Name)
		if t.Description != "" {
			fmt.Printf(" - %s", t.Description)
		}
		fmt.Println()

		for _, c := range t.Colors {
			fmt.Printf("  %s %-7s %s\n", swatch(c), c.Hex, c.Name)
		}
		fmt.Println()
	}
}

func swatch(c *palette.Color) string {
	v := c.Value()
	return color.BgRGB((v>>16)&0xff, (v>>8)&0xff, v&0xff).Sprint("    ")
}
