// Package dispatcher builds the command line for the tuning dispatcher
// process from a declarative settings block.
package dispatcher

import (
	"errors"
	"fmt"

	"github.com/tunekit/trialkeeper/internal/platform"
)

// ErrInvalidConfiguration reports a conflicting or missing algorithm
// selection. Callers treat it as fatal to the launch attempt.
var ErrInvalidConfiguration = errors.New("invalid dispatcher configuration")

// AlgorithmSpec describes one pluggable algorithm the dispatcher should
// load: a tuner, an assessor, or an advisor.
type AlgorithmSpec struct {
	ClassName     string         `yaml:"className"`
	CodeDirectory string         `yaml:"codeDirectory"`
	ClassFileName string         `yaml:"classFileName"`
	ClassArgs     map[string]any `yaml:"classArgs"`
}

// Settings selects the algorithms and execution modes for one experiment.
// An advisor subsumes both tuner and assessor roles, so it is mutually
// exclusive with them.
type Settings struct {
	MultiPhase  bool           `yaml:"multiPhase"`
	MultiThread bool           `yaml:"multiThread"`
	Tuner       *AlgorithmSpec `yaml:"tuner"`
	Assessor    *AlgorithmSpec `yaml:"assessor"`
	Advisor     *AlgorithmSpec `yaml:"advisor"`
}

// Validate checks the mutual-exclusion rules without building anything.
func (s Settings) Validate() error {
	if s.Advisor != nil && (s.Tuner != nil || s.Assessor != nil) {
		return fmt.Errorf("%w: advisor excludes tuner and assessor", ErrInvalidConfiguration)
	}
	if s.Advisor == nil && s.Tuner == nil {
		return fmt.Errorf("%w: either a tuner or an advisor is required", ErrInvalidConfiguration)
	}
	return nil
}

// BuildArgs produces the dispatcher argument list for the given platform.
// Structured classArgs are serialized through the strategy so the encoding
// depth matches what the dispatcher's decoder expects after shell
// processing on that platform.
func BuildArgs(s Settings, strat platform.Strategy) ([]string, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	var args []string
	if s.MultiPhase {
		args = append(args, "--multi_phase")
	}
	if s.MultiThread {
		args = append(args, "--multi_thread")
	}

	if s.Advisor != nil {
		return appendAlgorithm(args, "advisor", s.Advisor, strat)
	}

	args, err := appendAlgorithm(args, "tuner", s.Tuner, strat)
	if err != nil {
		return nil, err
	}
	if s.Assessor != nil {
		args, err = appendAlgorithm(args, "assessor", s.Assessor, strat)
		if err != nil {
			return nil, err
		}
	}
	return args, nil
}

func appendAlgorithm(args []string, role string, spec *AlgorithmSpec, strat platform.Strategy) ([]string, error) {
	args = append(args, "--"+role+"_class_name", spec.ClassName)
	if spec.ClassArgs != nil {
		token, err := strat.EncodeClassArgs(spec.ClassArgs)
		if err != nil {
			return nil, fmt.Errorf("%s args: %w", role, err)
		}
		args = append(args, "--"+role+"_args", token)
	}
	// A single character is not a meaningful path or file name; the
	// threshold is deliberate and matched by the dispatcher side.
	if len(spec.CodeDirectory) > 1 {
		args = append(args, "--"+role+"_directory", spec.CodeDirectory)
	}
	if len(spec.ClassFileName) > 1 {
		args = append(args, "--"+role+"_class_filename", spec.ClassFileName)
	}
	return args, nil
}
