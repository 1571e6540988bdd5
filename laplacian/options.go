package laplacian

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/kabukunz/libigl-legacy/geometry"
	"github.com/kabukunz/libigl-legacy/mesh"
)

// ManifoldCheck selects what happens when a triangle mesh is not edge-manifold
type ManifoldCheck uint8

const (
	ManifoldError ManifoldCheck = iota // reject with ErrNotEdgeManifold
	ManifoldWarn                       // log a warning and assemble anyway
	ManifoldSkip                       // do not check
)

var manifoldCheckNames = map[string]ManifoldCheck{
	"error": ManifoldError,
	"warn":  ManifoldWarn,
	"skip":  ManifoldSkip,
}

func NewManifoldCheck(label string) (mc ManifoldCheck, err error) {
	var ok bool
	if mc, ok = manifoldCheckNames[strings.ToLower(strings.TrimSpace(label))]; !ok {
		err = fmt.Errorf("unknown manifold check %q, must be one of error, warn, skip", label)
	}
	return
}

func (mc ManifoldCheck) String() string {
	switch mc {
	case ManifoldError:
		return "error"
	case ManifoldWarn:
		return "warn"
	case ManifoldSkip:
		return "skip"
	}
	return fmt.Sprintf("ManifoldCheck(%d)", uint8(mc))
}

type Option func(*Assembler)

// WithParallelDegree splits the element scatter over n workers, n < 2 runs it on the calling goroutine
func WithParallelDegree(n int) Option {
	return func(a *Assembler) {
		if n < 1 {
			n = 1
		}
		a.ParallelDegree = n
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(a *Assembler) {
		if logger != nil {
			a.logger = logger
		}
	}
}

func WithManifoldCheck(mc ManifoldCheck) Option {
	return func(a *Assembler) { a.ManifoldCheck = mc }
}

func WithFacetResolver(r mesh.FacetResolver) Option {
	return func(a *Assembler) { a.resolver = r }
}

func WithCotangentProvider(p geometry.CotangentProvider) Option {
	return func(a *Assembler) { a.provider = p }
}

func WithManifoldChecker(mc mesh.ManifoldChecker) Option {
	return func(a *Assembler) { a.checker = mc }
}
