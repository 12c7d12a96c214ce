// Command geozarr validates Zarr stores against the GeoZarr metadata
// conventions (spatial, proj, multiscales), inspects stores, and runs the
// validation HTTP API.
//
// Usage:
//
//	geozarr validate <path> [--conventions spatial,proj,multiscales] [--structure] [--verbose]
//	geozarr validate --attrs attributes.json
//	geozarr info <path> [--json] [--verbose]
//	geozarr serve [--addr :8080] [--config geozarr.yaml]
//	geozarr version
package main

import (
	"fmt"
	"os"

	toolkit "github.com/geozarr/toolkit"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return 0
	}

	switch args[0] {
	case "validate":
		return runValidate(args[1:])
	case "info":
		return runInfo(args[1:])
	case "serve":
		return runServe(args[1:])
	case "version", "--version":
		fmt.Printf("geozarr %s\n", toolkit.Version)
		return 0
	case "help", "--help", "-h":
		printUsage()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "error: unknown command %q\n", args[0])
		printUsage()
		return 2
	}
}

func printUsage() {
	fmt.Print(`geozarr - GeoZarr convention utilities

Commands:
  validate <path>   Validate a Zarr store against GeoZarr conventions
  info <path>       Display information about a Zarr store
  serve             Run the validation HTTP API
  version           Print the version

Run 'geozarr <command> --help' for command-specific flags.
`)
}
