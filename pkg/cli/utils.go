package cli

import (
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"

	"github.com/Fepozopo/instafilter/pkg/filter"
)

// promptLine displays a prompt and reads a full line from the session input.
// The returned string is trimmed of surrounding whitespace.
func (c *CLI) promptLine(prompt string) (string, error) {
	c.printf("%s", prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptPathOrFzf reads a path. A single "/" launches fzf instead; if fzf is
// unavailable or cancelled the prompt is shown again.
func (c *CLI) promptPathOrFzf(prompt string) (string, error) {
	input, err := c.promptLine(prompt)
	if err != nil || input != "/" {
		return input, err
	}
	if sel, selErr := c.pickFile("."); selErr == nil && sel != "" {
		c.printf(" [fzf] %s\n", sel)
		return sel, nil
	}
	return c.promptLine(prompt)
}

// parseIntensity accepts a fraction ("0.7") or a percentage ("70%").
// Out-of-range values are left to the engine to clamp.
func parseIntensity(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty intensity")
	}
	percent := strings.HasSuffix(s, "%")
	v, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(s, "%")), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid intensity %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("invalid intensity %q", s)
	}
	if percent {
		v /= 100
	}
	return v, nil
}

// matchVariant resolves a typed selection: a 1-based index into variants, an
// identifier or title, or an unambiguous prefix of either.
func matchVariant(selection string, variants []filter.Variant) (filter.Variant, error) {
	selection = strings.TrimSpace(selection)
	if idx, err := strconv.Atoi(selection); err == nil {
		if idx < 1 || idx > len(variants) {
			return 0, fmt.Errorf("invalid selection %d", idx)
		}
		return variants[idx-1], nil
	}
	if v, err := filter.ParseVariant(selection); err == nil {
		return v, nil
	}

	lower := strings.ToLower(selection)
	var matches []filter.Variant
	for _, v := range variants {
		if strings.HasPrefix(strings.ToLower(v.String()), lower) || strings.HasPrefix(strings.ToLower(v.Title()), lower) {
			matches = append(matches, v)
		}
	}
	switch len(matches) {
	case 0:
		return 0, fmt.Errorf("unknown filter: %s", selection)
	case 1:
		return matches[0], nil
	}
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m.String()
	}
	return 0, fmt.Errorf("ambiguous selection, candidates: %s", strings.Join(names, ", "))
}

// describeImage returns a short info string for an image.
func describeImage(img image.Image) string {
	if img == nil {
		return "none"
	}
	b := img.Bounds()
	return fmt.Sprintf("Width: %d, Height: %d", b.Dx(), b.Dy())
}
