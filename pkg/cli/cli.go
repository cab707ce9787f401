// Package cli is the terminal control surface: a single-key REPL that drives
// the filter engine, previews renders inline and exports them.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/Fepozopo/instafilter/pkg/app"
	"github.com/Fepozopo/instafilter/pkg/config"
	"github.com/Fepozopo/instafilter/pkg/engine"
	"github.com/Fepozopo/instafilter/pkg/filter"
)

// CLI holds one interactive session.
type CLI struct {
	app     *app.App
	cfg     *config.Config
	preview *Previewer

	in  *bufio.Reader
	mu  sync.Mutex
	out io.Writer

	pickFilter func([]filter.Variant) (filter.Variant, error)
	pickFile   func(string) (string, error)

	saves sync.WaitGroup
}

// New builds a session reading commands from in and writing to out. preview
// may be nil to disable inline previews.
func New(a *app.App, cfg *config.Config, preview *Previewer, in io.Reader, out io.Writer) *CLI {
	return &CLI{
		app:        a,
		cfg:        cfg,
		preview:    preview,
		in:         bufio.NewReader(in),
		out:        out,
		pickFilter: SelectFilterWithFzf,
		pickFile:   SelectFileWithFzf,
	}
}

func (c *CLI) printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format, args...)
}

func (c *CLI) usage() {
	c.printf("Commands available:\n" +
		"  o [path]       - open an image\n" +
		"  f [name]       - change filter\n" +
		"  i [value]      - set intensity (0-1 or percent)\n" +
		"  + / -          - nudge intensity\n" +
		"  p              - print current state\n" +
		"  s              - save current image\n" +
		"  u              - check for updates\n" +
		"  h              - show this help message\n" +
		"  q              - quit\n")
}

// Run opens args[0] when given and processes commands until q or end of
// input. Pending saves are awaited before it returns.
func (c *CLI) Run(args []string) error {
	defer c.saves.Wait()

	if len(args) > 0 && args[0] != "" {
		if err := c.app.Open(args[0]); err != nil {
			return err
		}
		c.report()
	}

	c.printf("Instafilter\n")
	c.usage()

	for {
		c.printf("> ")
		line, err := c.in.ReadString('\n')
		if err != nil && line == "" {
			if !errors.Is(err, io.EOF) {
				return fmt.Errorf("read input error: %w", err)
			}
			return nil
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if quit := c.dispatch(line[0], strings.TrimSpace(line[1:])); quit {
			return nil
		}
	}
}

func (c *CLI) dispatch(key byte, arg string) (quit bool) {
	switch key {
	case 'o':
		c.open(arg)
	case 'f':
		c.chooseFilter(arg)
	case 'i':
		c.setIntensity(arg)
	case '+':
		c.app.Nudge(c.cfg.Step)
		c.report()
	case '-':
		c.app.Nudge(-c.cfg.Step)
		c.report()
	case 'p':
		c.printState()
	case 's':
		c.save()
	case 'u':
		if err := c.checkForUpdates(); err != nil {
			c.printf("update check error: %v\n", err)
		}
	case 'h':
		c.usage()
	case 'q':
		c.printf("Exiting...\n")
		return true
	default:
		c.printf("unknown command %q, press h for help\n", key)
	}
	return false
}

func (c *CLI) open(path string) {
	if path == "" {
		selected, err := c.pickFile(".")
		if err != nil || selected == "" {
			path, _ = c.promptLine("Enter path to image to open (leave empty to cancel): ")
			if path == "" {
				c.printf("open cancelled\n")
				return
			}
		} else {
			path = selected
		}
	}
	if err := c.app.Open(path); err != nil {
		c.printf("failed to read image %s: %v\n", path, err)
		return
	}
	c.printf("Opened %s\n", path)
	c.report()
}

func (c *CLI) chooseFilter(selection string) {
	variants := filter.Variants()
	if selection == "" {
		if v, err := c.pickFilter(variants); err == nil {
			c.app.SelectFilter(v)
			c.report()
			return
		}
		c.printf("Filter selection (fallback):\n")
		for i, v := range variants {
			c.printf("  %d) %s\n", i+1, v.Title())
		}
		selection, _ = c.promptLine("Enter number or filter name (leave empty to cancel): ")
		if selection == "" {
			c.printf("selection cancelled\n")
			return
		}
	}
	v, err := matchVariant(selection, variants)
	if err != nil {
		c.printf("%v\n", err)
		return
	}
	c.app.SelectFilter(v)
	c.report()
}

func (c *CLI) setIntensity(value string) {
	if value == "" {
		value, _ = c.promptLine(fmt.Sprintf("Intensity [0-1 or %%] (current %.2f): ", c.app.Engine().Intensity()))
		if value == "" {
			c.printf("intensity unchanged\n")
			return
		}
	}
	v, err := parseIntensity(value)
	if err != nil {
		c.printf("%v\n", err)
		return
	}
	c.app.SetIntensity(v)
	c.report()
}

// report prints the filter line and previews the render when there is one.
func (c *CLI) report() {
	eng := c.app.Engine()
	c.printf("%s  intensity %.2f  [%s]\n", c.app.FilterLabel(), eng.Intensity(), eng.Params())

	switch eng.State() {
	case engine.Empty:
		return
	case engine.Configured:
		c.printf("no output for %s\n", eng.Variant().Title())
		return
	}
	if c.preview == nil {
		return
	}
	out, _ := c.app.Rendered()
	if err := c.preview.Show(out); err != nil {
		log.Debug().Err(err).Msg("preview unavailable")
	}
}

func (c *CLI) printState() {
	eng := c.app.Engine()
	c.printf("Filter:    %s (%s)\n", eng.Variant().Title(), eng.Variant())
	c.printf("Intensity: %.2f\n", eng.Intensity())
	c.printf("Params:    %s\n", eng.Params())
	c.printf("State:     %s\n", eng.State())
	c.printf("Image:     %s\n", describeImage(eng.Image()))
}

// save starts an export and reports its result when it arrives, without
// blocking the prompt.
func (c *CLI) save() {
	results, err := c.app.Save()
	if err != nil {
		var n *app.Notice
		if errors.As(err, &n) {
			c.printf("%s: %s\n", n.Title, n.Message)
			return
		}
		c.printf("save failed: %v\n", err)
		return
	}
	c.printf("Saving...\n")
	c.saves.Add(1)
	go func() {
		defer c.saves.Done()
		for res := range results {
			if !res.OK() {
				log.Error().Err(res.Err).Msg("export failed")
				c.printf("failed to write image: %v\n", res.Err)
				continue
			}
			c.printf("Saved to %s\n", res.Path)
		}
	}()
}
