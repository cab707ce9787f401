package cli

import (
	"fmt"

	"github.com/Fepozopo/instafilter/pkg/filter"
	"github.com/Fepozopo/instafilter/pkg/stdimg"
)

// OpenBackend returns the renderer named by the backend setting and a
// function that releases it.
func OpenBackend(name string) (filter.Backend, func() error, error) {
	switch name {
	case "", "stdimg":
		return stdimg.NewBackend(), func() error { return nil }, nil
	case "magick":
		return openMagick()
	}
	return nil, nil, fmt.Errorf("unknown backend %q", name)
}
