package laplacian

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// Config holds assembler parameters read from a YAML document like:
//
//	ParallelDegree: 4
//	ManifoldCheck: warn # error, warn or skip
type Config struct {
	ParallelDegree int    `json:"ParallelDegree"`
	ManifoldCheck  string `json:"ManifoldCheck"`
}

func (cfg *Config) Parse(data []byte) error {
	return yaml.Unmarshal(data, cfg)
}

// Options converts the configuration, unset fields keep the assembler defaults
func (cfg *Config) Options() (opts []Option, err error) {
	if cfg.ParallelDegree < 0 {
		err = fmt.Errorf("ParallelDegree must not be negative, have %d", cfg.ParallelDegree)
		return
	}
	if cfg.ParallelDegree > 0 {
		opts = append(opts, WithParallelDegree(cfg.ParallelDegree))
	}
	if len(cfg.ManifoldCheck) != 0 {
		var mc ManifoldCheck
		if mc, err = NewManifoldCheck(cfg.ManifoldCheck); err != nil {
			return nil, err
		}
		opts = append(opts, WithManifoldCheck(mc))
	}
	return
}

func (cfg *Config) Print() {
	fmt.Printf("[%d]\t\t\t\t= Parallel Degree\n", cfg.ParallelDegree)
	fmt.Printf("[%s]\t\t\t= Manifold Check\n", cfg.ManifoldCheck)
}
