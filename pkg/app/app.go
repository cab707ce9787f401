// Package app connects user actions to the filter engine and the exporter.
package app

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	"github.com/rs/zerolog/log"

	"github.com/Fepozopo/instafilter/pkg/engine"
	"github.com/Fepozopo/instafilter/pkg/export"
	"github.com/Fepozopo/instafilter/pkg/filter"
)

// Notice is a user-facing, dismissible message. It is also an error so it can
// travel through ordinary error returns.
type Notice struct {
	Title   string
	Message string
}

func (n *Notice) Error() string {
	return n.Title + ": " + n.Message
}

// ErrNoImage is returned by Save when there is nothing rendered to export.
var ErrNoImage = &Notice{Title: "No image", Message: "Please select an image first"}

// DefaultFilterLabel is shown until the user picks a filter explicitly.
const DefaultFilterLabel = "Change Filter"

// App is the application state behind the control surface.
type App struct {
	engine   *engine.Engine
	exporter export.Exporter
	label    string
}

// New wires an engine to an exporter.
func New(eng *engine.Engine, exp export.Exporter) *App {
	return &App{engine: eng, exporter: exp, label: DefaultFilterLabel}
}

// Engine exposes the underlying engine for read access.
func (a *App) Engine() *engine.Engine { return a.engine }

// Open decodes the image at path, honouring EXIF orientation, and makes it the
// engine input.
func (a *App) Open(path string) error {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return fmt.Errorf("failed to read image %s: %w", path, err)
	}
	log.Info().Str("path", path).Str("bounds", img.Bounds().String()).Msg("image opened")
	a.engine.SetImage(img)
	return nil
}

// SetImage hands an already decoded image to the engine.
func (a *App) SetImage(img image.Image) {
	a.engine.SetImage(img)
}

// SelectFilter switches filters and updates the filter button label.
func (a *App) SelectFilter(v filter.Variant) {
	a.engine.SelectFilter(v)
	a.label = v.Title()
}

// SetIntensity forwards the slider position.
func (a *App) SetIntensity(v float64) {
	a.engine.SetIntensity(v)
}

// Nudge moves the intensity by delta, clamped to [0,1].
func (a *App) Nudge(delta float64) {
	a.engine.SetIntensity(a.engine.Intensity() + delta)
}

// FilterLabel is the text for the filter button.
func (a *App) FilterLabel() string { return a.label }

// Rendered returns the current output, if any.
func (a *App) Rendered() (*image.NRGBA, bool) {
	return a.engine.Output()
}

// Save starts exporting the current output and returns without waiting. When
// nothing is rendered it returns ErrNoImage and the exporter is not called.
func (a *App) Save() (<-chan export.Result, error) {
	out, ok := a.engine.Output()
	if !ok {
		log.Debug().Str("state", a.engine.State().String()).Msg("save requested without output")
		return nil, ErrNoImage
	}
	return a.exporter.Export(out), nil
}
