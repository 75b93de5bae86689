package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/albertocavalcante/ktgradle/cmd/ktgradle/internal/detect"
	"github.com/albertocavalcante/ktgradle/internal/log"
	"github.com/albertocavalcante/ktgradle/pkg/buildscript"
	"github.com/albertocavalcante/ktgradle/pkg/config"
	"github.com/albertocavalcante/ktgradle/pkg/framework"
	"github.com/albertocavalcante/ktgradle/pkg/kotlin"
	"github.com/albertocavalcante/ktgradle/pkg/registry"
	"github.com/albertocavalcante/ktgradle/pkg/settings"
)

// ErrCheckFailed is returned by --check when the build script on disk
// differs from the generated one.
var ErrCheckFailed = errors.New("build script is out of date")

type addSupportFlags struct {
	target         string
	pluginsBlock   bool
	kotlinVersion  string
	jdk            int
	settingsParser string
	check          bool
	dryRun         bool
	force          bool
}

func newAddSupportCmd() *cobra.Command {
	flags := &addSupportFlags{}

	cmd := &cobra.Command{
		Use:   "add-support [path]",
		Short: "Add Kotlin support to a Gradle module",
		Long: `Generates build.gradle.kts for the module at path (default: current directory)
with the Kotlin plugin, standard library and repositories.

Flags override configuration from ktgradle.toml, .ktgradle/config.toml,
the global config, .env and KTGRADLE_* environment variables.

Use --check to verify the build script is up to date (useful for CI).
Use --dry-run to preview changes without applying them.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAddSupport(cmd, flags, args)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&flags.target, "target", "t", "",
		fmt.Sprintf("Target platform %v", registry.AvailableTargets()))
	f.BoolVar(&flags.pluginsBlock, "plugins-block", true,
		"Use the plugins {} DSL instead of buildscript {} and apply {}")
	f.StringVar(&flags.kotlinVersion, "kotlin-version", "",
		"Kotlin version (defaults to the bundled version)")
	f.IntVar(&flags.jdk, "jdk", 0,
		"Java language level of the module (detected from JAVA_HOME if not specified)")
	f.StringVar(&flags.settingsParser, "settings-parser", "",
		"Settings script validation (heuristic, treesitter, auto)")
	f.BoolVar(&flags.check, "check", false,
		"Check if the build script is up to date (exit 1 if not)")
	f.BoolVar(&flags.dryRun, "dry-run", false,
		"Show what would change without applying")
	f.BoolVar(&flags.force, "force", false,
		"Overwrite an existing build script")
	cmd.MarkFlagsMutuallyExclusive("check", "dry-run")

	return cmd
}

func runAddSupport(cmd *cobra.Command, flags *addSupportFlags, args []string) error {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}
	if info, err := os.Stat(absPath); err != nil {
		return fmt.Errorf("failed to stat module directory: %w", err)
	} else if !info.IsDir() {
		return fmt.Errorf("%s is not a directory", absPath)
	}

	cfg := config.LoadFrom(absPath)
	applyFlags(cmd, flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	provider, err := registry.LoadProvider(cfg)
	if err != nil {
		return err
	}

	m := framework.Module{
		Name:        filepath.Base(absPath),
		ContentRoot: absPath,
		BaseDir:     detect.BuildRoot(absPath),
	}
	if provider.ID() == "jvm" {
		m.SDK = detect.SDK(cfg.JVM.JDK)
	}
	out := filepath.Join(absPath, cfg.Output.FileName)
	exists := fileExists(out)

	if !flags.check && !flags.dryRun && exists && !flags.force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", out)
	}

	inj := &framework.Injector{
		Provider: provider,
		Versions: kotlin.StaticVersions{Version: cfg.Kotlin.Version},
	}
	switch {
	case flags.check:
		inj.Settings = previewSettingsWriter{out: io.Discard}
	case flags.dryRun:
		inj.Settings = previewSettingsWriter{out: cmd.OutOrStdout()}
	default:
		v, err := settings.NewValidator(cfg.Settings.Parser)
		if err != nil {
			return err
		}
		inj.Settings = framework.NewSettingsFileWriter(v)
	}

	log.Info("adding kotlin support",
		"module", m.Name,
		"target", provider.ID(),
		"version", cfg.Kotlin.Version,
		"plugins_block", provider.WithPluginsBlock(),
	)

	b := buildscript.New()
	if err := inj.AddSupport(m, b); err != nil {
		return fmt.Errorf("failed to add kotlin support: %w", err)
	}

	switch {
	case flags.check:
		return runAddSupportCheck(cmd, b, out)
	case flags.dryRun:
		return runAddSupportDryRun(cmd, b, out, exists)
	default:
		return runAddSupportApply(cmd, b, out, exists)
	}
}

// applyFlags applies explicitly set flags over the loaded configuration.
func applyFlags(cmd *cobra.Command, flags *addSupportFlags, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("target") {
		cfg.Kotlin.Target = flags.target
	}
	if f.Changed("plugins-block") {
		v := flags.pluginsBlock
		cfg.Kotlin.PluginsBlock = &v
	}
	if f.Changed("kotlin-version") {
		cfg.Kotlin.Version = flags.kotlinVersion
	}
	if f.Changed("jdk") {
		cfg.JVM.JDK = flags.jdk
	}
	if f.Changed("settings-parser") {
		cfg.Settings.Parser = flags.settingsParser
	}
}

func runAddSupportCheck(cmd *cobra.Command, b *buildscript.Builder, out string) error {
	upToDate, err := b.UpToDate(out)
	if err != nil {
		return err
	}
	if !upToDate {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s is missing or out of date\n", out)
		fmt.Fprintln(cmd.ErrOrStderr(), "\nRun 'ktgradle add-support --force' to regenerate it")
		return ErrCheckFailed
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s is up to date\n", out)
	return nil
}

func runAddSupportDryRun(cmd *cobra.Command, b *buildscript.Builder, out string, exists bool) error {
	w := cmd.OutOrStdout()
	if exists {
		fmt.Fprintf(w, "Would overwrite %s:\n", out)
	} else {
		fmt.Fprintf(w, "Would create %s:\n", out)
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, b.Render())
	return nil
}

func runAddSupportApply(cmd *cobra.Command, b *buildscript.Builder, out string, exists bool) error {
	if err := b.WriteFile(out); err != nil {
		return err
	}
	if exists {
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", out)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", out)
	}
	return nil
}

// previewSettingsWriter reports the settings script edit instead of
// performing it.
type previewSettingsWriter struct {
	out io.Writer
}

func (w previewSettingsWriter) AddPluginRepository(line string, m framework.Module) error {
	path := settings.Find(m.ContentRoot, m.BaseDir)
	if path == "" {
		return nil
	}
	fmt.Fprintf(w.out, "Would add plugin repository to %s:\n    %s\n\n", path, line)
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
