package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/pflag"
	"github.com/tidwall/jsonc"

	"github.com/geozarr/toolkit/conventions"
	"github.com/geozarr/toolkit/store"
	"github.com/geozarr/toolkit/validate"
)

func runValidate(args []string) int {
	flags := pflag.NewFlagSet("validate", pflag.ContinueOnError)
	convFlag := flags.StringSlice("conventions", nil,
		"conventions to validate (spatial, proj, multiscales); auto-detected if not given")
	attrsFile := flags.String("attrs", "",
		"validate an attributes JSON document instead of a store path (accepts comments)")
	structure := flags.Bool("structure", false,
		"also check that multiscale asset paths resolve to group members")
	verbose := flags.BoolP("verbose", "v", false, "show detailed output")
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: geozarr validate <path> [flags]")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return 2
	}

	requested, err := checkConventionNames(*convFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}

	ctx := context.Background()

	if *attrsFile != "" {
		return validateAttrsFile(ctx, *attrsFile, requested, *verbose)
	}

	if flags.NArg() != 1 {
		flags.Usage()
		return 2
	}
	path := flags.Arg(0)

	grp, err := store.Open(ctx, path, "")
	if err != nil {
		fmt.Printf("Error: failed to open Zarr store: %v\n", err)
		return 1
	}

	attrs, err := grp.Attrs(ctx)
	if err != nil {
		fmt.Printf("Error: failed to read attributes: %v\n", err)
		return 1
	}

	if len(requested) == 0 {
		requested = validate.Detect(attrs)
		if *verbose {
			fmt.Printf("Auto-detected conventions: %s\n", joinOrNone(requested))
		}
	}
	if len(requested) == 0 {
		fmt.Println("No conventions detected in store")
		return 0
	}

	results := validate.Attrs(ctx, attrs, requested...)

	if *structure {
		structErrs, err := validate.MultiscalesStructure(ctx, grp)
		if err != nil {
			fmt.Printf("Error: structure check failed: %v\n", err)
			return 1
		}
		results[conventions.NameMultiscales] = append(results[conventions.NameMultiscales], structErrs...)
	}

	if reportResults(results, *verbose) {
		return 1
	}
	fmt.Printf("Validation passed for: %s\n", strings.Join(requested, ", "))
	return 0
}

// validateAttrsFile validates a local attributes document. The file may
// carry // and /* */ comments; they are stripped before parsing.
func validateAttrsFile(ctx context.Context, path string, requested []string, verbose bool) int {
	raw, err := os.ReadFile(path)
	if err != nil {
		fmt.Printf("Error: failed to read attributes file: %v\n", err)
		return 1
	}
	var attrs map[string]any
	if err := json.Unmarshal(jsonc.ToJSON(raw), &attrs); err != nil {
		fmt.Printf("Error: failed to parse attributes file: %v\n", err)
		return 1
	}

	if len(requested) == 0 {
		requested = validate.Detect(attrs)
		if verbose {
			fmt.Printf("Auto-detected conventions: %s\n", joinOrNone(requested))
		}
	}
	if len(requested) == 0 {
		fmt.Println("No conventions detected in attributes")
		return 0
	}

	results := validate.Attrs(ctx, attrs, requested...)
	if reportResults(results, verbose) {
		return 1
	}
	fmt.Printf("Validation passed for: %s\n", strings.Join(requested, ", "))
	return 0
}

// reportResults prints per-convention outcomes and reports whether any
// convention failed.
func reportResults(results validate.Results, verbose bool) bool {
	names := make([]string, 0, len(results))
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)

	hasErrors := false
	for _, name := range names {
		errs := results[name]
		if len(errs) > 0 {
			hasErrors = true
			fmt.Printf("[FAIL] %s:\n", name)
			for _, e := range errs {
				fmt.Printf("  - %s\n", e)
			}
		} else if verbose {
			fmt.Printf("[OK] %s\n", name)
		}
	}
	return hasErrors
}

// checkConventionNames rejects convention names the toolkit does not know.
func checkConventionNames(names []string) ([]string, error) {
	for _, name := range names {
		switch name {
		case conventions.NameSpatial, conventions.NameProj, conventions.NameMultiscales:
		default:
			return nil, fmt.Errorf("unknown convention %q (choose from: spatial, proj, multiscales)", name)
		}
	}
	return names, nil
}

func joinOrNone(names []string) string {
	if len(names) == 0 {
		return "none"
	}
	return strings.Join(names, ", ")
}
