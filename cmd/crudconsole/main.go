package main

import (
	"os"
	"strings"

	"crudconsole/internal/cli"
	"crudconsole/internal/route"
)

func rewriteRouteArgs(argv []string) []string {
	// Convenience: `crudconsole /posts?userId=3` works like
	// `crudconsole open /posts?userId=3`.
	//
	// Cobra treats the first non-flag token as a subcommand, so argv is
	// rewritten before parsing. Persistent flags may come first, so look for
	// the first positional token, not just argv[1].
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--env-file":  true,
		"--base-url":  true,
		"--timeout":   true,
		"--data-dir":  true,
		"--format":    true,
		"--log-file":  true,
		"--log-level": true,
		"--route":     true,
	}

	insertOpen := func(i int) []string {
		out := make([]string, 0, len(argv)+1)
		out = append(out, argv[:i]...)
		out = append(out, "open")
		return append(out, argv[i:]...)
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && route.LooksLikeRoute(argv[i+1]) {
				return insertOpen(i + 1)
			}
			return argv
		}
		if strings.HasPrefix(a, "-") {
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		}
		if route.LooksLikeRoute(a) {
			return insertOpen(i)
		}
		return argv
	}
	return argv
}

func main() {
	os.Args = rewriteRouteArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
