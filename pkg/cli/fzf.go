package cli

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/Fepozopo/instafilter/pkg/filter"
)

// SelectFilterWithFzf displays the filter catalog in fzf and returns the
// selected variant.
func SelectFilterWithFzf(variants []filter.Variant) (filter.Variant, error) {
	var b strings.Builder
	for _, v := range variants {
		fmt.Fprintf(&b, "%s: %s\n", v, v.Title())
	}

	cmd := exec.Command("fzf", "--prompt=Filter> ")
	cmd.Stdin = strings.NewReader(b.String())

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return 0, fmt.Errorf("error running fzf: %w", err)
	}

	id, _, _ := strings.Cut(strings.TrimSpace(out.String()), ":")
	if strings.TrimSpace(id) == "" {
		return 0, fmt.Errorf("no filter selected")
	}
	return filter.ParseVariant(id)
}

// SelectFileWithFzf lists image files under startDir in fzf and returns the
// chosen path. It needs find and fzf on PATH. The fzf preview pane uses the
// best renderer the terminal detection finds.
func SelectFileWithFzf(startDir string) (string, error) {
	const chafa = "chafa --fill=block --symbols=block -s 80x40 {} 2>/dev/null"

	var previewCmd string
	switch {
	case isKitty():
		previewCmd = "printf \"\\x1b_Ga=d\\x1b\\\\\"; kitty +kitten icat --silent {} 2>/dev/null || " + chafa
	case isInlineImageCapable():
		previewCmd = "imgcat {} 2>/dev/null || " + chafa
	case isSixelCapable():
		previewCmd = "img2sixel {} 2>/dev/null || " + chafa
	default:
		previewCmd = chafa
	}

	cmdStr := fmt.Sprintf(
		"find %s -type f \\( -iname '*.jpg' -o -iname '*.jpeg' -o -iname '*.png' -o -iname '*.gif' -o -iname '*.tif' -o -iname '*.tiff' -o -iname '*.bmp' \\) | fzf --height 100%% --border --prompt='Files> ' --ansi --preview=%q --preview-window='right:60%%'",
		strconv.Quote(startDir),
		previewCmd,
	)
	cmd := exec.Command("bash", "-lc", cmdStr)

	var out bytes.Buffer
	cmd.Stdout = &out

	err := cmd.Run()
	clearKittyImages()
	if err != nil {
		return "", fmt.Errorf("error running fzf for files: %w", err)
	}

	selection := strings.TrimSpace(out.String())
	if selection == "" {
		return "", fmt.Errorf("no file selected")
	}
	return selection, nil
}

// clearKittyImages emits the kitty graphics "delete" control sequence.
// Terminals that don't understand it ignore it.
func clearKittyImages() {
	fmt.Fprint(os.Stdout, "\x1b_Ga=d\x1b\\")
}
