// Package config loads trial manifests.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tunekit/trialkeeper/internal/dispatcher"
	"github.com/tunekit/trialkeeper/internal/platform"
)

// Trial describes the user command to supervise.
type Trial struct {
	Command  string            `yaml:"command"`
	Workdir  string            `yaml:"workdir"`
	Platform platform.Tag      `yaml:"platform"`
	Env      []platform.EnvVar `yaml:"env"`
}

// Manifest is a parsed trial manifest file.
type Manifest struct {
	Trial      Trial               `yaml:"trial"`
	Dispatcher dispatcher.Settings `yaml:"dispatcher"`

	// Source is the absolute path of the manifest file.
	Source string `yaml:"-"`
}

// Load reads a trial manifest from the provided path. The workdir is
// env-expanded and resolved against the manifest's directory; the platform
// tag defaults to the host platform when omitted.
func Load(path string) (*Manifest, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve manifest path: %w", err)
	}

	f, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("open manifest: %w", err)
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	decoder.KnownFields(true)
	var doc Manifest
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", absPath, err)
	}
	doc.Source = absPath

	if doc.Trial.Command == "" {
		return nil, fmt.Errorf("%s: trial.command is required", absPath)
	}
	if doc.Trial.Platform == "" {
		doc.Trial.Platform = platform.Default()
	}
	if _, err := platform.Select(doc.Trial.Platform); err != nil {
		return nil, fmt.Errorf("%s: %w", absPath, err)
	}

	workdir := os.ExpandEnv(doc.Trial.Workdir)
	if workdir != "" && !filepath.IsAbs(workdir) {
		workdir = filepath.Clean(filepath.Join(filepath.Dir(absPath), workdir))
	}
	doc.Trial.Workdir = workdir

	return &doc, nil
}

// LaunchSpec converts the manifest's trial block into a launcher spec,
// generating a working directory under the manifest's directory when none
// is configured. The newName callback supplies the per-trial identifier.
func (m *Manifest) LaunchSpec(newName func() (string, error)) (*Trial, error) {
	if m.Trial.Workdir != "" {
		trial := m.Trial
		return &trial, nil
	}
	name, err := newName()
	if err != nil {
		return nil, fmt.Errorf("derive trial directory: %w", err)
	}
	trial := m.Trial
	trial.Workdir = filepath.Join(filepath.Dir(m.Source), "trials", name)
	return &trial, nil
}
