package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
	"github.com/spf13/pflag"

	"github.com/geozarr/toolkit/attrs"
	"github.com/geozarr/toolkit/conventions"
	"github.com/geozarr/toolkit/store"
	"github.com/geozarr/toolkit/validate"
)

func runInfo(args []string) int {
	flags := pflag.NewFlagSet("info", pflag.ContinueOnError)
	asJSON := flags.Bool("json", false, "output as JSON")
	verbose := flags.BoolP("verbose", "v", false, "show detailed output")
	flags.Usage = func() {
		fmt.Fprintln(os.Stderr, "usage: geozarr info <path> [flags]")
		flags.PrintDefaults()
	}
	if err := flags.Parse(args); err != nil {
		return 2
	}
	if flags.NArg() != 1 {
		flags.Usage()
		return 2
	}
	path := flags.Arg(0)

	ctx := context.Background()
	grp, err := store.Open(ctx, path, "")
	if err != nil {
		fmt.Printf("Error: failed to open Zarr store: %v\n", err)
		return 1
	}
	m, err := grp.Attrs(ctx)
	if err != nil {
		fmt.Printf("Error: failed to read attributes: %v\n", err)
		return 1
	}
	detected := validate.Detect(m)

	if *asJSON {
		return printInfoJSON(ctx, grp, path, m, detected, *verbose)
	}
	return printInfoText(ctx, grp, path, m, detected, *verbose)
}

func printInfoJSON(ctx context.Context, grp store.Group, path string, m map[string]any, detected []string, verbose bool) int {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	info := map[string]any{
		"path":        abs,
		"conventions": detected,
		"attributes":  m,
	}
	if verbose {
		members, err := grp.Members(ctx)
		if err != nil && !errors.Is(err, store.ErrNoListing) {
			fmt.Printf("Error: failed to list members: %v\n", err)
			return 1
		}
		info["members"] = members
	}

	out, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return 1
	}
	fmt.Println(string(out))
	return 0
}

func printInfoText(ctx context.Context, grp store.Group, path string, m map[string]any, detected []string, verbose bool) int {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	fmt.Printf("Path: %s\n", abs)
	fmt.Printf("Conventions: %s\n", joinOrNoneDetected(detected))
	fmt.Println()

	for _, conv := range detected {
		switch conv {
		case conventions.NameSpatial:
			fmt.Println("Spatial:")
			fmt.Printf("  Dimensions: %v\n", attrs.GetStringSlice(m, conventions.KeySpatialDimensions))
			if tr := attrs.GetFloatSlice(m, conventions.KeySpatialTransform); tr != nil {
				fmt.Printf("  Transform: %v\n", tr)
			}
			if bbox := attrs.GetFloatSlice(m, conventions.KeySpatialBBox); bbox != nil {
				fmt.Printf("  BBox: %v\n", bbox)
			}
			fmt.Println()
		case conventions.NameProj:
			fmt.Println("Projection:")
			switch {
			case attrs.GetString(m, conventions.KeyProjCode, "") != "":
				fmt.Printf("  Code: %s\n", attrs.GetString(m, conventions.KeyProjCode, ""))
			case attrs.GetString(m, conventions.KeyProjWKT2, "") != "":
				fmt.Println("  WKT2: (present)")
			case attrs.GetMap(m, conventions.KeyProjJSON) != nil:
				fmt.Println("  PROJJSON: (present)")
			}
			fmt.Println()
		case conventions.NameMultiscales:
			ms := attrs.GetMap(m, conventions.KeyMultiscales)
			layout := attrs.GetSlice(ms, "layout")
			fmt.Println("Multiscales:")
			fmt.Printf("  Levels: %d\n", len(layout))
			for _, entry := range layout {
				level, ok := entry.(map[string]any)
				if !ok {
					continue
				}
				asset := attrs.GetString(level, "asset", "?")
				if derived := attrs.GetString(level, "derived_from", ""); derived != "" {
					fmt.Printf("    - %s (from %s)\n", asset, derived)
				} else {
					fmt.Printf("    - %s\n", asset)
				}
			}
			fmt.Println()
		}
	}

	if verbose {
		members, err := grp.Members(ctx)
		if err != nil && !errors.Is(err, store.ErrNoListing) {
			fmt.Printf("Error: failed to list members: %v\n", err)
			return 1
		}
		fmt.Println("Members:")
		for _, member := range members {
			if member.Kind == store.KindGroup {
				fmt.Printf("  %s/ (group)\n", member.Name)
			} else {
				fmt.Printf("  %s: %v %s\n", member.Name, member.Shape, member.DType)
			}
		}
	}
	return 0
}

func joinOrNoneDetected(names []string) string {
	if len(names) == 0 {
		return "none detected"
	}
	return joinOrNone(names)
}
