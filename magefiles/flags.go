//go:build mage

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
)

// targetArgs holds the arguments that follow the mage target name. Mage only
// passes positional parameters, so init moves everything after the target
// out of os.Args for targets to parse with flag.NewFlagSet.
//
// "mage test:run -run TestBalance" sets targetArgs to ["-run", "TestBalance"]
// and leaves os.Args as ["mage", "test:run"].
var targetArgs []string

func init() {
	if len(os.Args) < 2 {
		return
	}

	// [binary] [mage-flags...] [target] [target-args...]
	targetIdx := -1
	for i := 1; i < len(os.Args); i++ {
		if os.Args[i] == "--" {
			break
		}
		if len(os.Args[i]) > 0 && os.Args[i][0] != '-' {
			targetIdx = i
			break
		}
	}

	if targetIdx < 0 || targetIdx+1 >= len(os.Args) {
		return
	}

	targetArgs = os.Args[targetIdx+1:]
	os.Args = os.Args[:targetIdx+1]
}

// parseTargetFlags parses targetArgs into fs. On -help it exits cleanly; on
// other parse errors it prints the error and exits with 1.
func parseTargetFlags(fs *flag.FlagSet) {
	err := fs.Parse(targetArgs)
	if err == nil {
		return
	}
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
