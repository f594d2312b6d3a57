package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/costela/uflcut/reference"
	"github.com/costela/uflcut/settings"
)

type optimizerFactory func(s settings.Settings, logger log.FieldLogger) (reference.Optimizer, error)

// optimizers and relaxations map the settings to their implementations.
// Backends linking C libraries register themselves from files behind build
// tags.
var (
	optimizers = map[string]optimizerFactory{
		settings.ReferenceBranchAndBound: newBranchAndBound,
		settings.ReferenceEnumerate: func(settings.Settings, log.FieldLogger) (reference.Optimizer, error) {
			return reference.Enumerator{}, nil
		},
	}
	relaxations = map[string]reference.Relaxation{
		settings.RelaxationTableau: reference.TableauRelaxation,
		settings.RelaxationGonum:   reference.GonumRelaxation,
	}
)

const rebuildHint = "not available in this build, rebuild with -tags %s"

func newBranchAndBound(s settings.Settings, logger log.FieldLogger) (reference.Optimizer, error) {
	relax, ok := relaxations[s.Relaxation]
	if !ok {
		return nil, fmt.Errorf("relaxation %q is "+rebuildHint, s.Relaxation, s.Relaxation)
	}
	return reference.NewBranchAndBound(
		reference.WithRelaxation(relax),
		reference.WithNodeLimit(s.NodeLimit),
		reference.WithLogger(printer(logger.Debug)),
	), nil
}

func newOptimizer(s settings.Settings, logger log.FieldLogger) (reference.Optimizer, error) {
	factory, ok := optimizers[s.Reference]
	if !ok {
		return nil, fmt.Errorf("reference optimizer %q is "+rebuildHint, s.Reference, s.Reference)
	}
	return factory(s, logger)
}
