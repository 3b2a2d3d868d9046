//go:build mage

package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Stats prints Go lines of code per package, split into production and
// test lines, as one JSON object.
func Stats() error {
	type counts struct {
		Prod int `json:"prod"`
		Test int `json:"test"`
	}
	perPkg := map[string]*counts{}

	err := filepath.Walk(".", func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			switch {
			case path == "vendor", path == ".git", path == binaryDir, path == "magefiles":
				return filepath.SkipDir
			case strings.HasPrefix(info.Name(), "_") && path != ".":
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") {
			return nil
		}
		n, countErr := countLines(path)
		if countErr != nil {
			return nil
		}
		pkg := filepath.ToSlash(filepath.Dir(path))
		c, ok := perPkg[pkg]
		if !ok {
			c = &counts{}
			perPkg[pkg] = c
		}
		if strings.HasSuffix(path, "_test.go") {
			c.Test += n
		} else {
			c.Prod += n
		}
		return nil
	})
	if err != nil {
		return err
	}

	pkgs := make([]string, 0, len(perPkg))
	var total counts
	for pkg, c := range perPkg {
		pkgs = append(pkgs, pkg)
		total.Prod += c.Prod
		total.Test += c.Test
	}
	sort.Strings(pkgs)

	record := map[string]any{
		"go_loc_prod": total.Prod,
		"go_loc_test": total.Test,
		"go_loc":      total.Prod + total.Test,
		"packages":    perPkg,
	}
	line, err := json.Marshal(record)
	if err != nil {
		return err
	}
	fmt.Println(string(line))
	for _, pkg := range pkgs {
		fmt.Fprintf(os.Stderr, "%-24s %6d %6d\n", pkg, perPkg[pkg].Prod, perPkg[pkg].Test)
	}
	return nil
}

func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	count := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		count++
	}
	return count, scanner.Err()
}
