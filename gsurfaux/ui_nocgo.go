//go:build tinygo || !cgo

package gsurfaux

import (
	"errors"

	"github.com/soypat/gsurf"
)

func ui(cfg gsurf.Config, uicfg UIConfig) error {
	return errors.New("require cgo for UI rendering")
}
