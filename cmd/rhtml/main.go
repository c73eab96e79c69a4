package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ╦═╗╦ ╦╔╦╗╔╦╗╦
  ╠╦╝╠═╣ ║ ║║║║
  ╩╚═╩ ╩ ╩ ╩ ╩╩═╝
`

func main() {
	rootCmd := &cobra.Command{
		Use:   "rhtml",
		Short: "File-based routing and serving for RHTML templates",
		Long: `RHTML maps a directory of templates onto URL routes.

Drop .rhtml files under pages/ and the file tree becomes the route
table:

  pages/index.rhtml        -> /
  pages/users/[id].rhtml   -> /users/:id
  pages/docs/[...slug].rhtml -> /docs/*slug
  pages/_layout.rhtml      -> layout for the subtree
  pages/_error.rhtml       -> error page for the subtree

The serve command watches the directory and hot-reloads routes and
templates without dropping in-flight requests.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		serveCmd(),
		routesCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

// printBanner prints the ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("\033[32m✓\033[0m %s\n", fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("\033[33m⚠\033[0m %s\n", fmt.Sprintf(format, args...))
}
