//go:build !magick

package cli

import (
	"errors"

	"github.com/Fepozopo/instafilter/pkg/filter"
)

func openMagick() (filter.Backend, func() error, error) {
	return nil, nil, errors.New("magick backend not compiled in; rebuild with -tags magick")
}
