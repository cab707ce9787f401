//go:build magick

package cli

import (
	"github.com/Fepozopo/instafilter/pkg/filter"
	"github.com/Fepozopo/instafilter/pkg/magick"
)

func openMagick() (filter.Backend, func() error, error) {
	b := magick.Open()
	return b, b.Close, nil
}
