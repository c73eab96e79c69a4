package main

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jeetkhinde/RHTML/internal/config"
	"github.com/jeetkhinde/RHTML/pkg/loader"
	"github.com/jeetkhinde/RHTML/pkg/router"
)

func routesCmd() *cobra.Command {
	var pagesDir string

	cmd := &cobra.Command{
		Use:   "routes",
		Short: "List the route table",
		Long: `Compile the pages directory and print every route in match
order, together with layouts and error pages.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadFromWorkingDir()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("pages") {
				cfg.PagesDir = pagesDir
			}

			l := loader.New(loader.Config{
				PagesDir:  cfg.PagesDir,
				Extension: cfg.Extension,
			})
			snap, err := l.LoadAll()
			if err != nil {
				return fmt.Errorf("load templates: %w", err)
			}

			rt := snap.Router()
			out := cmd.OutOrStdout()

			fmt.Fprintf(out, "Routes (%d, in match order):\n", rt.Len())
			w := tabwriter.NewWriter(out, 2, 4, 2, ' ', 0)
			fmt.Fprintln(w, "  PATTERN\tPRIORITY\tSOURCE")
			for _, r := range rt.Routes() {
				fmt.Fprintf(w, "  %s\t%d\t%s\n", r.Pattern, r.Priority, r.SourcePath)
			}
			w.Flush()

			if layouts := rt.Layouts(); len(layouts) > 0 {
				fmt.Fprintf(out, "\nLayouts (%d):\n", len(layouts))
				for _, r := range sortedByPattern(layouts) {
					fmt.Fprintf(out, "  %s  (%s)\n", r.Pattern, r.SourcePath)
				}
			}
			if errorPages := rt.ErrorPages(); len(errorPages) > 0 {
				fmt.Fprintf(out, "\nError pages (%d):\n", len(errorPages))
				for _, r := range sortedByPattern(errorPages) {
					fmt.Fprintf(out, "  %s  (%s)\n", r.Pattern, r.SourcePath)
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&pagesDir, "pages", config.DefaultPagesDir, "Templates directory")

	return cmd
}

// sortedByPattern orders a route partition by pattern for stable output.
func sortedByPattern(byPattern map[string]*router.Route) []*router.Route {
	routes := make([]*router.Route, 0, len(byPattern))
	for _, r := range byPattern {
		routes = append(routes, r)
	}
	sort.Slice(routes, func(i, j int) bool {
		return routes[i].Pattern < routes[j].Pattern
	})
	return routes
}
