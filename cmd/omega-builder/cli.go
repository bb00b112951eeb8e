package main

import (
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/omega-builder/builder"
	"github.com/lixenwraith/omega-builder/config"
	"github.com/lixenwraith/omega-builder/selection"
	"github.com/lixenwraith/omega-builder/ui"
)

// cliOptions holds the parsed flags
type cliOptions struct {
	configPath  string
	output      string
	hexPath     string
	debug       bool
	noIntKeys   bool
	noBackslash bool
}

func newRootCmd() *cobra.Command {
	var opts cliOptions

	root := &cobra.Command{
		Use:           "omega-builder",
		Short:         "Assemble a 256 KB Omega MSX flash image",
		Long:          "Pick ROM components for the 16 blocks of the Omega cartridge, then build omega_output.bin",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInteractive(opts)
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "configuration file (default "+config.DefaultFile+" if present)")
	root.PersistentFlags().StringVar(&opts.output, "output", "", "output image path (default from config)")
	root.PersistentFlags().StringVar(&opts.hexPath, "hex", "", "also write the image as Intel HEX to this path")
	root.PersistentFlags().BoolVar(&opts.debug, "debug", false, "write a debug log to "+logDir+"/"+logFileName)

	buildCmd := &cobra.Command{
		Use:   "build",
		Short: "Build the image from the saved selections without the UI",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runBuild(opts)
		},
	}
	buildCmd.Flags().BoolVar(&opts.noIntKeys, "no-int-keys", false, "skip the international keyboard patch")
	buildCmd.Flags().BoolVar(&opts.noBackslash, "no-backslash", false, "skip the backslash yen patch")
	root.AddCommand(buildCmd)

	return root
}

// loadConfig resolves the configuration and applies flag overrides
func loadConfig(opts cliOptions) (*config.Config, error) {
	path, explicit := opts.configPath, true
	if path == "" {
		path, explicit = config.DefaultFile, false
	}
	cfg, err := config.Load(path, explicit)
	if err != nil {
		return nil, err
	}
	if opts.output != "" {
		cfg.Output = opts.output
	}
	return cfg, nil
}

// loadStore reads the saved selections, falling back to an empty store
func loadStore(m *selection.Manager) *selection.Store {
	store, err := m.Load()
	if err != nil {
		log.Printf("main: %v, starting with empty selections", err)
	}
	return store
}

func runInteractive(opts cliOptions) error {
	if logFile := setupLogging(opts.debug); logFile != nil {
		defer logFile.Close()
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	manager := selection.NewManager(cfg.StateFile)
	store := loadStore(manager)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %w", err)
	}

	sess := ui.New(screen, store, ui.Options{
		Sources: cfg.Sources,
		Patches: cfg.Patches,
		Manager: manager,
	})
	saveErr := runSession(screen, sess)
	screen.Fini()

	if saveErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: selections not saved: %v\n", saveErr)
	}

	buildOpts := cfg.BuildOptions()
	buildOpts.Patches = sess.Patches()
	return build(cfg, store, buildOpts, opts.hexPath)
}

// runSession runs the UI, restoring the terminal if it panics
func runSession(screen tcell.Screen, sess *ui.Session) error {
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			fmt.Fprintf(os.Stderr, "\n\x1b[31mOMEGA-BUILDER CRASHED: %v\x1b[0m\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()
	return sess.Run()
}

func runBuild(opts cliOptions) error {
	if logFile := setupLogging(opts.debug); logFile != nil {
		defer logFile.Close()
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	store := loadStore(selection.NewManager(cfg.StateFile))

	buildOpts := cfg.BuildOptions()
	if opts.noIntKeys {
		disablePatch(buildOpts.Patches, 0)
	}
	if opts.noBackslash {
		disablePatch(buildOpts.Patches, 1)
	}
	return build(cfg, store, buildOpts, opts.hexPath)
}

func disablePatch(patches []builder.Patch, i int) {
	if i < len(patches) {
		patches[i].Enabled = false
	}
}

// build assembles and writes the image, then prints the summary. Only a
// failure to write the image is returned.
func build(cfg *config.Config, store *selection.Store, opts builder.Options, hexPath string) error {
	img, report := builder.Assemble(store, opts)

	if err := builder.WriteFile(img, cfg.Output); err != nil {
		return fmt.Errorf("write %s: %w", cfg.Output, err)
	}
	log.Printf("main: wrote %s sha1=%s", cfg.Output, img.SHA1())

	if hexPath != "" {
		if err := builder.WriteHex(img, hexPath); err != nil {
			return fmt.Errorf("write %s: %w", hexPath, err)
		}
		log.Printf("main: wrote %s", hexPath)
	}

	ui.WriteSummary(os.Stdout, store, img, report, cfg.Output, ui.ColorEnabled(os.Stdout))
	return nil
}
