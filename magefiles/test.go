//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

package main

import (
	"flag"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const coverProfile = "coverage.out"

// Test groups test targets.
type Test mg.Namespace

// All runs every test in the module.
func (Test) All() error {
	return sh.RunV(binGo, "test", "./...")
}

// Run runs tests matching a pattern, optionally limited to one package.
//
//	mage test:run -run TestReservation -pkg ./internal/hotel
func (Test) Run() error {
	fs := flag.NewFlagSet("test:run", flag.ContinueOnError)
	pattern := fs.String("run", "", "test name pattern")
	pkg := fs.String("pkg", "./...", "package pattern")
	verbose := fs.Bool("v", false, "verbose output")
	parseTargetFlags(fs)

	args := []string{"test"}
	if *verbose {
		args = append(args, "-v")
	}
	if *pattern != "" {
		args = append(args, "-run", *pattern)
	}
	args = append(args, *pkg)
	return sh.RunV(binGo, args...)
}

// Race runs every test with the race detector.
func (Test) Race() error {
	return sh.RunV(binGo, "test", "-race", "./...")
}

// Cover writes a coverage profile and prints per-function coverage.
func (Test) Cover() error {
	if err := sh.RunV(binGo, "test", "-coverprofile", coverProfile, "./..."); err != nil {
		return err
	}
	return sh.RunV(binGo, "tool", "cover", "-func", coverProfile)
}
