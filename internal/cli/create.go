package cli

import (
	"fmt"

	"github.com/jakoblorz/create-vclight/internal/config"
	"github.com/jakoblorz/create-vclight/internal/filesystem"
	"github.com/jakoblorz/create-vclight/internal/manifest"
	"github.com/jakoblorz/create-vclight/internal/models"
	"github.com/jakoblorz/create-vclight/internal/registry"
	"github.com/jakoblorz/create-vclight/internal/scaffold"
	"github.com/jakoblorz/create-vclight/internal/tui"
	"github.com/jakoblorz/create-vclight/internal/tui/create"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Prompter asks for the project options. A nil result means the user aborted.
type Prompter interface {
	Run(name string) (*models.Options, error)
}

// PrompterFunc adapts a function to Prompter.
type PrompterFunc func(name string) (*models.Options, error)

func (f PrompterFunc) Run(name string) (*models.Options, error) {
	return f(name)
}

// CreateCommand generates a project
type CreateCommand struct {
	fs       filesystem.FileSystem
	resolver manifest.Resolver
	prompter Prompter

	template    string
	plugins     []string
	pins        []string
	templateDir string
	configFile  string
}

func (c *CreateCommand) registerFlags(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&c.template, "template", "t", "", "Template to use (router or blank); prompts when omitted")
	flags.StringSliceVarP(&c.plugins, "plugin", "p", nil, "Plugin to add (prettier); repeatable")
	flags.StringArrayVar(&c.pins, "pin", nil, "Pin a dependency to an exact version (name@version); repeatable")
	flags.StringVar(&c.templateDir, "template-dir", "", "Directory holding the template layers instead of the built-in ones")
	flags.StringVar(&c.configFile, "config", "", "Config file (default $HOME/.create-vclight.yaml)")
	flags.String("registry", "", "npm registry URL")
	flags.Duration("timeout", 0, "Timeout for registry lookups")
	flags.Int("concurrency", 0, "Number of files written in parallel")
}

func (c *CreateCommand) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := config.New()
	for key, flag := range map[string]string{
		config.KeyRegistryURL:     "registry",
		config.KeyRegistryTimeout: "timeout",
		config.KeyConcurrency:     "concurrency",
	} {
		if err := v.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return nil, fmt.Errorf("failed to bind flag %s: %w", flag, err)
		}
	}

	if err := config.ReadFile(v, c.configFile); err != nil {
		return nil, err
	}
	if err := c.applyPins(v); err != nil {
		return nil, err
	}

	return config.Resolve(v)
}

func (c *CreateCommand) applyPins(v *viper.Viper) error {
	if len(c.pins) == 0 {
		return nil
	}

	pinned := v.GetStringMapString(config.KeyPinned)
	for _, pin := range c.pins {
		name, version, err := config.ParsePin(pin)
		if err != nil {
			return err
		}
		pinned[name] = version
	}
	v.Set(config.KeyPinned, pinned)
	return nil
}

// Run executes the create command
func (c *CreateCommand) Run(cmd *cobra.Command, args []string) error {
	cfg, err := c.loadConfig(cmd)
	if err != nil {
		return err
	}

	printer := tui.NewPrinter(cmd.OutOrStdout())

	resolver := c.resolver
	if resolver == nil {
		resolver = registry.NewNPMResolver(cfg.RegistryURL, registry.WithUserAgent("create-vclight/"+Version))
	}

	genCfg := scaffold.Config{
		FS:          c.fs,
		Resolver:    resolver,
		Timeout:     cfg.Timeout,
		Concurrency: cfg.Concurrency,
		Pinned:      cfg.Pinned,
		Reporter:    printer.Stage,
	}
	if c.templateDir != "" {
		genCfg.Templates = c.fs
		genCfg.TemplateRoot = c.templateDir
	}
	gen := scaffold.NewGenerator(genCfg)

	name := args[0]
	dir, err := gen.Target(name)
	if err != nil {
		return err
	}
	printer.Info("Creating project %s in %s", name, dir)

	opts, err := c.options(gen, name, cmd)
	if err != nil {
		return err
	}
	if opts == nil {
		printer.Warn("Aborted, nothing was created")
		return nil
	}

	result, err := gen.Generate(cmd.Context(), name, *opts)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(cmd.OutOrStdout(), create.RenderSuccess(result))

	return nil
}

func (c *CreateCommand) options(gen *scaffold.Generator, name string, cmd *cobra.Command) (*models.Options, error) {
	if c.template == "" {
		gen.Report(scaffold.StagePrompting)

		prompter := c.prompter
		if prompter == nil {
			prompter = create.NewFlow(cmd.InOrStdin(), cmd.OutOrStdout())
		}
		opts, err := prompter.Run(name)
		if err != nil {
			return nil, fmt.Errorf("failed to run TUI: %w", err)
		}
		return opts, nil
	}

	template, err := models.ParseTemplateKind(c.template)
	if err != nil {
		return nil, err
	}

	opts := &models.Options{Template: template}
	for _, p := range c.plugins {
		plugin, err := models.ParsePlugin(p)
		if err != nil {
			return nil, err
		}
		if !opts.HasPlugin(plugin) {
			opts.Plugins = append(opts.Plugins, plugin)
		}
	}
	return opts, nil
}
