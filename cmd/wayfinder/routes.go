package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wayfinder-dev/wayfinder/internal/config"
	"github.com/wayfinder-dev/wayfinder/pkg/pattern"
)

// routesManifest is the routes.json schema: a list of route templates
// with optional names.
type routesManifest struct {
	Routes []manifestRoute `json:"routes"`
}

type manifestRoute struct {
	Template string `json:"template"`
	Name     string `json:"name,omitempty"`
}

func routesCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "Validate and list the project's route templates",
		Long: `Validate and list the route templates in routes.json.

Each template is compiled with the same rules the router applies at
registration time, so a template this command accepts will never panic
in Handle. Matching is first-registered-wins: the manifest order is the
match order, and a broad template shadows everything after it.

Examples:
  wayfinder routes
  wayfinder routes --file=src/routes.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoutes(file)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Path to routes.json (default: routes.json at the project root)")

	return cmd
}

func runRoutes(file string) error {
	if file == "" {
		root, err := config.FindProjectRoot(".")
		if err != nil {
			return err
		}
		file = filepath.Join(root, "routes.json")
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	var manifest routesManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return fmt.Errorf("parse %s: %w", file, err)
	}

	printBanner()
	fmt.Println("  routes")
	fmt.Println()

	invalid := 0
	for i, route := range manifest.Routes {
		p, err := pattern.Compile(route.Template)
		if err != nil {
			invalid++
			errorMsg("%2d  %s", i+1, route.Template)
			info("    %v", err)
			continue
		}

		detail := describePattern(p)
		if route.Name != "" {
			detail = route.Name + "  " + detail
		}
		success("%2d  %-30s %s", i+1, route.Template, detail)
	}

	fmt.Println()
	if invalid > 0 {
		warn("%d of %d templates invalid", invalid, len(manifest.Routes))
		return fmt.Errorf("%d invalid route template(s)", invalid)
	}
	info("%d routes, match order as listed", len(manifest.Routes))
	return nil
}

// describePattern summarizes a compiled pattern's captures.
func describePattern(p *pattern.Pattern) string {
	var parts []string
	if names := p.ParamNames(); len(names) > 0 {
		parts = append(parts, "params: "+strings.Join(names, ", "))
	}
	if p.HasWildcard() {
		parts = append(parts, "wildcard")
	}
	if len(parts) == 0 {
		return "static"
	}
	return strings.Join(parts, "; ")
}
