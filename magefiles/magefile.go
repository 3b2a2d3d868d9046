//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main provides build targets for the frontdesk project using Mage.
//
// Usage:
//
//	mage build            Compile the frontdesk binary to bin/
//	mage install          Install frontdesk to GOPATH/bin
//	mage clean            Remove build artifacts
//	mage smoke            Build, then run init and a report against a scratch directory
//	mage test:all         Run all tests
//	mage test:run -run X  Run tests matching a pattern
//	mage test:race        Run all tests with the race detector
//	mage test:cover       Write coverage.out and print per-function coverage
//	mage lint             Run golangci-lint
//	mage vet              Run go vet
//	mage stats            Print Go LOC per package as JSON
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo       = "go"
	binaryName  = "frontdesk"
	binaryDir   = "bin"
	cmdDir      = "./cmd/frontdesk"
	versionVar  = "github.com/mesh-intelligence/frontdesk/internal/cli.Version"
	versionFile = "VERSION"
)

// version returns the release version from VERSION, or "dev".
func version() string {
	data, err := os.ReadFile(versionFile)
	if err != nil {
		return "dev"
	}
	if v := strings.TrimSpace(string(data)); v != "" {
		return v
	}
	return "dev"
}

// Build compiles the frontdesk binary to bin/ with the version stamped in.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	ldflags := fmt.Sprintf("-X %s=%s", versionVar, version())
	return sh.RunV(binGo, "build", "-v", "-ldflags", ldflags, "-o", filepath.Join(binaryDir, binaryName), cmdDir)
}

// Clean removes build artifacts.
func Clean() error {
	for _, path := range []string{binaryDir, coverProfile} {
		if err := os.RemoveAll(path); err != nil {
			return err
		}
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}

// Smoke builds the binary and runs init, a room create, and the free-rooms
// report in a scratch directory.
func Smoke() error {
	mg.Deps(Build)
	dir, err := os.MkdirTemp("", "frontdesk-smoke-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	bin, err := filepath.Abs(filepath.Join(binaryDir, binaryName))
	if err != nil {
		return err
	}
	global := []string{"--config-dir", filepath.Join(dir, "config"), "--data-dir", filepath.Join(dir, "data")}
	steps := [][]string{
		{"init"},
		{"room", "create", "number=101", "maximum_capacity=2", "diary_price=80"},
		{"report", "free"},
	}
	for _, step := range steps {
		if err := sh.RunV(bin, append(global, step...)...); err != nil {
			return fmt.Errorf("smoke %v: %w", step, err)
		}
	}
	return nil
}
