//go:build glpk

package main

import (
	log "github.com/sirupsen/logrus"

	"github.com/costela/uflcut/glpk"
	"github.com/costela/uflcut/reference"
	"github.com/costela/uflcut/settings"
)

func init() {
	optimizers[settings.ReferenceGLPK] = func(s settings.Settings, logger log.FieldLogger) (reference.Optimizer, error) {
		return glpk.Optimizer{}, nil
	}
	relaxations[settings.RelaxationGLPK] = glpk.Relaxation
}
