package cli

import (
	"fmt"

	"github.com/jakoblorz/create-vclight/internal/filesystem"
	"github.com/jakoblorz/create-vclight/internal/manifest"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "dev"

// NewRootCommand creates the root command. A nil resolver talks to the
// configured npm registry; a nil prompter asks interactively on the
// command's input and output.
func NewRootCommand(fs filesystem.FileSystem, resolver manifest.Resolver, prompter Prompter) *cobra.Command {
	create := &CreateCommand{
		fs:       fs,
		resolver: resolver,
		prompter: prompter,
	}

	rootCmd := &cobra.Command{
		Use:   "create-vclight <name>",
		Short: "Create a new VCLight project",
		Long: `Create a new VCLight project in a new folder.

The project is generated from the router or blank template, optionally with
tooling plugins, and gets a package.json with the latest dependency versions
from the npm registry.`,
		Args:          cobra.ExactArgs(1),
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          create.Run,
	}

	create.registerFlags(rootCmd)

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	fs := filesystem.NewOSFileSystem()

	rootCmd := NewRootCommand(fs, nil, nil)

	if err := rootCmd.Execute(); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}

	return nil
}
