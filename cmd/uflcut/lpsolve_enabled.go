//go:build lpsolve

package main

import (
	log "github.com/sirupsen/logrus"

	"github.com/costela/uflcut/lpsolve"
	"github.com/costela/uflcut/reference"
	"github.com/costela/uflcut/settings"
)

func init() {
	optimizers[settings.ReferenceLPSolve] = func(s settings.Settings, logger log.FieldLogger) (reference.Optimizer, error) {
		return lpsolve.Optimizer{Logger: printer(logger.Debug)}, nil
	}
}
