package config

import (
	"path/filepath"
	"slices"
	"strings"
	"time"
)

const (
	defaultBase        = "/"
	defaultAddr        = "localhost:3030"
	defaultMetricsPath = "/metrics"
	defaultDebounce    = 300 * time.Millisecond
	defaultOutputDir   = "dist"
	defaultDeckFile    = "slides.md"
	defaultEntryFile   = "main.ts"
)

func (c *Config) applyDefaults(dir string) {
	if c.UserRoot == "" {
		c.UserRoot = dir
	}
	c.UserRoot = absFrom(dir, c.UserRoot)
	if c.ClientRoot != "" {
		c.ClientRoot = absFrom(dir, c.ClientRoot)
	}

	for i, r := range c.Roots {
		c.Roots[i] = absFrom(dir, r)
	}
	if !slices.Contains(c.Roots, c.UserRoot) {
		c.Roots = append(c.Roots, c.UserRoot)
	}

	if c.Deck == "" {
		c.Deck = filepath.Join(c.UserRoot, defaultDeckFile)
	}
	c.Deck = absFrom(dir, c.Deck)

	if c.Entry == "" && c.ClientRoot != "" {
		c.Entry = filepath.Join(c.ClientRoot, defaultEntryFile)
	}
	if c.Entry != "" {
		c.Entry = absFrom(dir, c.Entry)
	}

	c.Base = NormalizeBase(c.Base)

	if m := NormalizeMode(string(c.Mode)); m != "" {
		c.Mode = m
	} else if c.Mode == "" {
		c.Mode = ModeBuild
	}

	if c.Output.Directory == "" {
		c.Output.Directory = defaultOutputDir
	}
	c.Output.Directory = absFrom(dir, c.Output.Directory)

	if c.Server.Addr == "" {
		c.Server.Addr = defaultAddr
	}
	if c.Server.MetricsPath == "" {
		c.Server.MetricsPath = defaultMetricsPath
	}
	if c.Server.Debounce <= 0 {
		c.Server.Debounce = defaultDebounce
	}
}

func absFrom(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Clean(filepath.Join(dir, p))
}

// NormalizeBase defaults base to "/" and ensures the trailing slash.
func NormalizeBase(base string) string {
	if base == "" {
		return defaultBase
	}
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	return base
}
