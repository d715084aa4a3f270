package mkprojectdir

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/mkprojectdir/internal/version"
	"github.com/arthur-debert/mkprojectdir/pkg/cobrax/topics"
	"github.com/arthur-debert/mkprojectdir/pkg/commands/genconfig"
	"github.com/arthur-debert/mkprojectdir/pkg/commands/instantiate"
	"github.com/arthur-debert/mkprojectdir/pkg/commands/list"
	"github.com/arthur-debert/mkprojectdir/pkg/commands/remove"
	"github.com/arthur-debert/mkprojectdir/pkg/commands/save"
	"github.com/arthur-debert/mkprojectdir/pkg/commands/show"
	"github.com/arthur-debert/mkprojectdir/pkg/config"
	"github.com/arthur-debert/mkprojectdir/pkg/errors"
	"github.com/arthur-debert/mkprojectdir/pkg/filesystem"
	"github.com/arthur-debert/mkprojectdir/pkg/logging"
	"github.com/arthur-debert/mkprojectdir/pkg/paths"
	"github.com/arthur-debert/mkprojectdir/pkg/resolver"
	"github.com/arthur-debert/mkprojectdir/pkg/templates"
	"github.com/arthur-debert/mkprojectdir/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

//go:embed topics
var helpTopics embed.FS

// app carries the global flags shared by every command
type app struct {
	verbosity    int
	output       string
	configFile   string
	templatesDir string

	fs afero.Fs
}

// instantiateFlags are the flags of the root and 'new' commands
type instantiateFlags struct {
	set      []string
	varsFile string
	noInput  bool
	dryRun   bool
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	a := &app{fs: filesystem.NewOS()}
	flags := &instantiateFlags{}

	rootCmd := &cobra.Command{
		Use:     "mkprojectdir <template> <destination>",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    rootArgs,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(a.verbosity)
			logging.LogCommand(cmd.Name(), args)
		},
		ValidArgsFunction: a.templateNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			return a.runInstantiate(cmd, args[0], args[1], flags)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().StringVarP(&a.output, "output", "o", "auto", MsgFlagOutput)
	rootCmd.PersistentFlags().StringVar(&a.configFile, "config", "", MsgFlagConfig)
	rootCmd.PersistentFlags().StringVar(&a.templatesDir, "templates-dir", "", MsgFlagTemplatesDir)
	addInstantiateFlags(rootCmd, flags)

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "templates", Title: "TEMPLATES:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(a.newNewCmd())
	rootCmd.AddCommand(a.newListCmd())
	rootCmd.AddCommand(a.newSaveCmd())
	rootCmd.AddCommand(a.newShowCmd())
	rootCmd.AddCommand(a.newRemoveCmd())
	rootCmd.AddCommand(a.newConfigCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newVersionCmd())

	if sub, err := fs.Sub(helpTopics, "topics"); err == nil {
		opts := topics.Options{Extensions: []string{".md"}, Renderer: topics.NewGlamourRenderer()}
		if err := topics.InitializeWithOptions(rootCmd, sub, opts); err != nil {
			log.Warn().Err(err).Msg("Help topics unavailable")
		}
	}
	rootCmd.SetHelpCommandGroupID("misc")

	return rootCmd
}

// rootArgs accepts no arguments (help) or exactly a template and a
// destination
func rootArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 || len(args) == 2 {
		return nil
	}
	return errors.Newf(errors.ErrInvalidInput, MsgErrArgs, len(args))
}

func addInstantiateFlags(cmd *cobra.Command, f *instantiateFlags) {
	cmd.Flags().StringArrayVarP(&f.set, "set", "s", nil, MsgFlagSet)
	cmd.Flags().StringVar(&f.varsFile, "vars-file", "", MsgFlagVarsFile)
	cmd.Flags().BoolVar(&f.noInput, "no-input", false, MsgFlagNoInput)
	cmd.Flags().BoolVar(&f.dryRun, "dry-run", false, MsgFlagDryRun)
}

// loadConfig merges the configuration, applying --templates-dir last
func (a *app) loadConfig() (*config.Config, error) {
	overrides := map[string]interface{}{}
	if a.templatesDir != "" {
		overrides["templates_dir"] = a.templatesDir
	}
	return config.Load(config.LoadOptions{ConfigFile: a.configFile, Overrides: overrides})
}

// store opens the template store. The configured directory already carries
// the flag > environment > file precedence of loadConfig.
func (a *app) store(cfg *config.Config) (*templates.Store, error) {
	dir := cfg.TemplatesDir
	if dir == "" {
		p, err := cfg.Paths()
		if err != nil {
			return nil, err
		}
		dir = p.TemplatesDir()
	} else {
		abs, err := filepath.Abs(paths.ExpandHome(dir))
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrIOFailure, "failed to get absolute path for %s", dir)
		}
		dir = abs
	}
	return templates.NewStore(a.fs, dir, cfg.Save.Ignore), nil
}

func (a *app) openStore() (*config.Config, *templates.Store, error) {
	cfg, err := a.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	store, err := a.store(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, store, nil
}

func (a *app) render(cmd *cobra.Command, result interface{}) error {
	format, err := ui.ParseFormat(a.output)
	if err != nil {
		return err
	}
	renderer, err := ui.NewRenderer(format, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return renderer.RenderResult(result)
}

// resolverFor chains --set, --vars-file, then the prompt or the configured
// defaults
func (a *app) resolverFor(cmd *cobra.Command, cfg *config.Config, f *instantiateFlags) (resolver.Resolver, error) {
	set, err := resolver.ParseAssignments(f.set)
	if err != nil {
		return nil, err
	}
	chain := resolver.Chain{set}
	if f.varsFile != "" {
		chain = append(chain, resolver.NewFile(a.fs, f.varsFile))
	}
	if !f.noInput && cfg.Prompt.Interactive {
		chain = append(chain, resolver.NewPrompt(cmd.InOrStdin(), cmd.ErrOrStderr(), cfg.Variables))
	} else {
		chain = append(chain, resolver.Defaults(cfg.Variables))
	}
	return chain, nil
}

func (a *app) runInstantiate(cmd *cobra.Command, template, destination string, f *instantiateFlags) error {
	cfg, store, err := a.openStore()
	if err != nil {
		return err
	}
	table, err := cfg.FormatsTable()
	if err != nil {
		return err
	}
	vars, err := a.resolverFor(cmd, cfg, f)
	if err != nil {
		return err
	}

	log.Info().
		Str("template", template).
		Str("destination", destination).
		Bool("dry_run", f.dryRun).
		Msg("Instantiating template")

	result, err := instantiate.Instantiate(cmd.Context(), instantiate.InstantiateOptions{
		Template:    template,
		Destination: destination,
		Store:       store,
		Resolver:    vars,
		Formats:     table,
		DryRun:      f.dryRun,
		FileSystem:  a.fs,
	})
	if err != nil {
		return err
	}
	return a.render(cmd, result)
}

// templateNamesCompletion completes the first argument with stored
// template names
func (a *app) templateNamesCompletion(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveDefault
	}
	_, store, err := a.openStore()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	infos, err := store.List()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name)
	}
	return names, cobra.ShellCompDirectiveDefault
}

func (a *app) newNewCmd() *cobra.Command {
	flags := &instantiateFlags{}
	cmd := &cobra.Command{
		Use:               "new <template> <destination>",
		Short:             MsgNewShort,
		Long:              MsgRootLong,
		Example:           MsgRootExample,
		GroupID:           "core",
		Args:              cobra.ExactArgs(2),
		ValidArgsFunction: a.templateNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInstantiate(cmd, args[0], args[1], flags)
		},
	}
	addInstantiateFlags(cmd, flags)
	return cmd
}

func (a *app) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   MsgListShort,
		GroupID: "templates",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := a.openStore()
			if err != nil {
				return err
			}
			result, err := list.ListTemplates(list.ListTemplatesOptions{Store: store})
			if err != nil {
				return err
			}
			return a.render(cmd, result)
		},
	}
}

func (a *app) newSaveCmd() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:     "save <source> <name>",
		Short:   MsgSaveShort,
		Long:    MsgSaveLong,
		GroupID: "templates",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := a.openStore()
			if err != nil {
				return err
			}
			result, err := save.SaveTemplate(save.SaveTemplateOptions{
				Store:  store,
				Source: args[0],
				Name:   args[1],
				Force:  force,
			})
			if err != nil {
				return err
			}
			return a.render(cmd, result)
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, MsgFlagForce)
	return cmd
}

func (a *app) newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "show <template>",
		Short:             MsgShowShort,
		GroupID:           "templates",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: a.templateNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := a.openStore()
			if err != nil {
				return err
			}
			table, err := cfg.FormatsTable()
			if err != nil {
				return err
			}
			result, err := show.ShowTemplate(show.ShowTemplateOptions{
				Store:    store,
				Template: args[0],
				Formats:  table,
			})
			if err != nil {
				return err
			}
			return a.render(cmd, result)
		},
	}
}

func (a *app) newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "rm <name>",
		Aliases:           []string{"remove"},
		Short:             MsgRemoveShort,
		GroupID:           "templates",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: a.templateNamesCompletion,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := a.openStore()
			if err != nil {
				return err
			}
			result, err := remove.RemoveTemplate(remove.RemoveTemplateOptions{Store: store, Name: args[0]})
			if err != nil {
				return err
			}
			return a.render(cmd, result)
		},
	}
}

func (a *app) newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		GroupID: "misc",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init",
		Short: MsgConfigInitShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			target := a.configFile
			if target == "" {
				p, err := paths.New("")
				if err != nil {
					return err
				}
				target = p.ConfigFilePath()
			}
			result, err := genconfig.GenConfig(genconfig.GenConfigOptions{
				ConfigFile: target,
				Write:      true,
				Force:      force,
				FileSystem: a.fs,
			})
			if err != nil {
				return err
			}
			return a.render(cmd, result)
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, MsgFlagForce)

	showCmd := &cobra.Command{
		Use:   "show",
		Short: MsgConfigShowShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			result, err := genconfig.ShowConfig(cfg)
			if err != nil {
				return err
			}
			return a.render(cmd, result)
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

// PrintError writes err to the error output of cmd in the format selected
// by --output
func PrintError(cmd *cobra.Command, err error) {
	value, _ := cmd.PersistentFlags().GetString("output")
	format, ferr := ui.ParseFormat(value)
	if ferr != nil {
		format = ui.FormatAuto
	}
	renderer, rerr := ui.NewRenderer(format, cmd.ErrOrStderr())
	if rerr != nil {
		_, _ = fmt.Fprintln(cmd.ErrOrStderr(), "Error: "+errors.Message(err))
		return
	}
	_ = renderer.RenderError(err)
}
