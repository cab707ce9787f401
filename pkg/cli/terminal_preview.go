package cli

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"io"
	"math"
	"os"
	"os/exec"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"

	"github.com/Fepozopo/instafilter/pkg/render"
)

// Terminal preview of the rendered bitmap.
//
// Detection order:
//   - PREVIEW_BACKEND (kitty, inline, sixel, chafa) is tried first when set.
//   - Inline OSC 1337 for iTerm2, WezTerm, Warp, Tabby, VSCode and friends.
//   - The kitty graphics protocol for kitty, ghostty and Konsole.
//   - Sixel through img2sixel for foot, Windows Terminal and similar.
//   - chafa block rendering for anything else, when chafa is on PATH.

// Character cell pixel assumptions and clamp ranges for the preview area.
const (
	charW   = 8
	charH   = 16
	minCols = 6
	minRows = 3
	maxCols = 80
	maxRows = 40
)

// PreviewSize conveys a target placement for terminal preview backends.
type PreviewSize struct {
	Cols        int
	Rows        int
	PixelWidth  int
	PixelHeight int
}

// Previewer draws images into the terminal behind out.
type Previewer struct {
	out  io.Writer
	rctx *render.Context
}

// NewPreviewer returns a previewer that downscales through rctx.
func NewPreviewer(out io.Writer, rctx *render.Context) *Previewer {
	return &Previewer{out: out, rctx: rctx}
}

func isKitty() bool {
	if os.Getenv("KITTY_WINDOW_ID") != "" {
		return true
	}
	term := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(term, "kitty") || strings.Contains(term, "ghost") {
		return true
	}
	return os.Getenv("KONSOLE_VERSION") != ""
}

func isInlineImageCapable() bool {
	switch os.Getenv("TERM_PROGRAM") {
	case "iTerm.app", "WezTerm", "Warp", "Hyper", "vscode", "VSCode", "Tabby", "Bobcat":
		return true
	}
	term := strings.ToLower(os.Getenv("TERM"))
	for _, hint := range []string{"wez", "warp", "tabby", "vscode"} {
		if strings.Contains(term, hint) {
			return true
		}
	}
	return os.Getenv("ITERM_SESSION_ID") != ""
}

func isSixelCapable() bool {
	if os.Getenv("SIXEL_PREVIEW") == "1" {
		return true
	}
	term := strings.ToLower(os.Getenv("TERM"))
	if strings.Contains(term, "foot") || strings.Contains(term, "st") || strings.Contains(term, "linux") {
		return true
	}
	return os.Getenv("WT_SESSION") != ""
}

func hasChafa() bool {
	if os.Getenv("NO_CHAFA") == "1" {
		return false
	}
	_, err := exec.LookPath("chafa")
	return err == nil
}

// PreviewSupported reports whether any preview backend is likely to work.
func PreviewSupported() bool {
	kitty, inline, sixel, chafa := isKitty(), isInlineImageCapable(), isSixelCapable(), hasChafa()
	log.Debug().Bool("kitty", kitty).Bool("inline", inline).Bool("sixel", sixel).Bool("chafa", chafa).
		Msg("preview capabilities")
	return kitty || inline || sixel || chafa
}

// postImageNewlines is the padding printed after an image so the prompt
// lands just below it.
func postImageNewlines(rows int) int {
	switch {
	case rows <= 0, rows <= 2:
		return 1
	case rows <= 6:
		return 2
	case rows <= 20:
		return 3
	}
	return 4
}

// computePreviewSize maps pixel dimensions onto terminal cells, never
// scaling up.
func computePreviewSize(b image.Rectangle) PreviewSize {
	w, h := b.Dx(), b.Dy()
	scale := 1.0
	if w > 0 && h > 0 {
		scale = math.Min(1, math.Min(float64(maxCols*charW)/float64(w), float64(maxRows*charH)/float64(h)))
	}
	cols := clampCells(int(math.Round(float64(w)*scale/charW)), minCols, maxCols)
	rows := clampCells(int(math.Round(float64(h)*scale/charH)), minRows, maxRows)
	return PreviewSize{Cols: cols, Rows: rows, PixelWidth: cols * charW, PixelHeight: rows * charH}
}

func clampCells(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Show downsizes img to the preview area and sends it as PNG.
func (p *Previewer) Show(img image.Image) error {
	if img == nil {
		return fmt.Errorf("nil image")
	}
	fitted := p.rctx.Fit(img, maxCols*charW, maxRows*charH)
	if fitted == nil {
		return fmt.Errorf("render context unavailable")
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, fitted, imaging.PNG); err != nil {
		return fmt.Errorf("png encode failed: %w", err)
	}
	return p.send(buf.Bytes(), computePreviewSize(fitted.Bounds()))
}

func (p *Previewer) send(blob []byte, size PreviewSize) error {
	if len(blob) == 0 {
		return fmt.Errorf("empty image blob")
	}

	senders := map[string]func([]byte, PreviewSize) error{
		"kitty":  p.sendKitty,
		"inline": p.sendInline,
		"sixel":  p.sendSixel,
		"chafa":  p.sendChafa,
	}
	if v := strings.ToLower(os.Getenv("PREVIEW_BACKEND")); v != "" {
		if fn, ok := senders[v]; ok {
			if err := fn(blob, size); err == nil {
				return nil
			} else {
				log.Debug().Err(err).Str("backend", v).Msg("preview override failed")
			}
		} else {
			log.Debug().Str("backend", v).Msg("unknown PREVIEW_BACKEND")
		}
	}

	var order []string
	if isInlineImageCapable() {
		order = append(order, "inline")
	}
	if isKitty() {
		order = append(order, "kitty")
	}
	if isSixelCapable() {
		order = append(order, "sixel")
	}
	if hasChafa() {
		order = append(order, "chafa")
	}

	var lastErr error
	for _, name := range order {
		if err := senders[name](blob, size); err != nil {
			log.Debug().Err(err).Str("backend", name).Msg("preview backend failed")
			lastErr = err
			continue
		}
		return nil
	}
	if lastErr != nil {
		return fmt.Errorf("preview failed: %w", lastErr)
	}
	return fmt.Errorf("no preview protocol matched")
}

func (p *Previewer) padding(rows int) {
	for i := 0; i < postImageNewlines(rows); i++ {
		fmt.Fprintln(p.out)
	}
}

// sendKitty transmits PNG bytes with the kitty graphics protocol in base64
// chunks of at most 4096 bytes. Only the first chunk carries placement keys.
func (p *Previewer) sendKitty(data []byte, size PreviewSize) error {
	enc := base64.StdEncoding.EncodeToString(data)
	const chunkSize = 4096

	for pos := 0; pos < len(enc); pos += chunkSize {
		end := min(pos+chunkSize, len(enc))
		more := "0"
		if end < len(enc) {
			more = "1"
		}
		var seq string
		if pos == 0 {
			seq = fmt.Sprintf("\x1b_Ga=T,f=100,t=d,q=2,c=%d,r=%d,m=%s;%s\x1b\\", size.Cols, size.Rows, more, enc[pos:end])
		} else {
			seq = "\x1b_Gm=" + more + ";" + enc[pos:end] + "\x1b\\"
		}
		if _, err := io.WriteString(p.out, seq); err != nil {
			return err
		}
	}
	p.padding(size.Rows)
	return nil
}

// sendInline emits the iTerm2-style OSC 1337 inline file sequence.
func (p *Previewer) sendInline(data []byte, size PreviewSize) error {
	meta := fmt.Sprintf("size=%d;", len(data))
	if size.PixelWidth > 0 && size.PixelHeight > 0 {
		meta += fmt.Sprintf("width=%dpx;height=%dpx;", size.PixelWidth, size.PixelHeight)
	}
	seq := "\x1b]1337;File=name=preview.png;inline=1;" + meta + ":" + base64.StdEncoding.EncodeToString(data) + "\a"
	if _, err := io.WriteString(p.out, seq); err != nil {
		return err
	}
	p.padding(0)
	return nil
}

// sendSixel pipes the PNG through img2sixel.
func (p *Previewer) sendSixel(data []byte, _ PreviewSize) error {
	cmd := exec.Command("img2sixel", "-")
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stdout = p.out
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("img2sixel failed: %w", err)
	}
	p.padding(0)
	return nil
}

// sendChafa renders block symbols with chafa. CHAFA_FILL and CHAFA_SYMBOLS
// override the defaults.
func (p *Previewer) sendChafa(data []byte, size PreviewSize) error {
	if !hasChafa() {
		return fmt.Errorf("chafa not available")
	}
	fill, symbols := "block", "block"
	if f := os.Getenv("CHAFA_FILL"); f != "" {
		fill = f
	}
	if s := os.Getenv("CHAFA_SYMBOLS"); s != "" {
		symbols = s
	}
	cmd := exec.Command("chafa", "--fill="+fill, "--symbols="+symbols, "-s", fmt.Sprintf("%dx%d", size.Cols, size.Rows), "-")
	cmd.Stdin = bytes.NewReader(data)
	cmd.Stdout = p.out
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("chafa failed: %w", err)
	}
	p.padding(size.Rows)
	return nil
}
