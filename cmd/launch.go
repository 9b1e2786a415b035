package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"jarstage.dev/launcher/internal/config"
	"jarstage.dev/launcher/internal/core/domain"
	"jarstage.dev/launcher/internal/core/launch"
	"jarstage.dev/launcher/internal/core/ports"
	"jarstage.dev/launcher/internal/infrastructure/fetch"
	"jarstage.dev/launcher/internal/infrastructure/logging"
	"jarstage.dev/launcher/internal/infrastructure/stage"
	"jarstage.dev/launcher/internal/infrastructure/vfs"
	cliui "jarstage.dev/launcher/internal/interfaces/cli"
)

// launchFlags holds command-line flags for the launch command.
type launchFlags struct {
	Profile  string
	Root     string
	JavaBin  string
	Primary  string
	Mods     []string
	DryRun   bool
	Quiet    bool
	LogLevel string
}

func newLaunchCommand() *cobra.Command {
	flags := &launchFlags{}

	cmd := &cobra.Command{
		Use:   "launch",
		Short: "Stage all archives and launch the runtime entry point",
		Long: `Launch runs the full staging sequence: the primary archive, any
side-loaded archives, and every dependency archive are staged into the
staging filesystem, the classpath is assembled, and the JVM entry point is
started with it.

Examples:
  jarstage launch --profile client.toml --root ./stage
  jarstage launch --primary ./client.jar --mods extra.jar --dry-run`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLaunch(cmd.Context(), flags)
		},
	}

	cmd.Flags().StringVar(&flags.Profile, "profile", "", "Path to the launcher profile (TOML)")
	cmd.Flags().StringVar(&flags.Root, "root", "./stage", "Host directory backing the staging filesystem")
	cmd.Flags().StringVar(&flags.JavaBin, "java", "", "JVM binary to launch with (default: java from PATH)")
	cmd.Flags().StringVar(&flags.Primary, "primary", "", "Local primary archive; overrides the profile's primary URL")
	cmd.Flags().StringSliceVar(&flags.Mods, "mods", nil, "Archives to side-load into the override directory")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "Stage into memory and skip the real JVM launch")
	cmd.Flags().BoolVar(&flags.Quiet, "quiet", false, "Disable the progress display")
	cmd.Flags().StringVar(&flags.LogLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	return cmd
}

func runLaunch(ctx context.Context, flags *launchFlags) error {
	level, err := zerolog.ParseLevel(flags.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", flags.LogLevel, err)
	}
	logger := logging.New("jarstage", level)

	profile, err := config.Load(flags.Profile)
	if err != nil {
		return err
	}

	source, err := resolvePrimarySource(flags, profile)
	if err != nil {
		return err
	}

	archives, err := readSideloadArchives(flags.Mods)
	if err != nil {
		return err
	}

	var bridge ports.RuntimeBridge
	if flags.DryRun {
		bridge = vfs.NewMemoryBridge()
	} else {
		bridge, err = vfs.NewDiskBridge(flags.Root, flags.JavaBin)
		if err != nil {
			return err
		}
	}

	cfg := launch.Config{
		PrimarySource:    source,
		PrimaryPath:      profile.PrimaryPath,
		MainClass:        profile.MainClass,
		RuntimeArgs:      profile.RuntimeArgs,
		Libraries:        profile.Libraries,
		Sideload:         profile.Sideload || len(archives) > 0,
		SideloadDir:      profile.SideloadDir,
		SideloadArchives: archives,
		SupportPaths:     profile.SupportPaths,
	}

	var ui *cliui.ProgressUI
	if !flags.Quiet {
		ui = cliui.NewProgressUI("launching")
		ui.Start()
		defer ui.Finish()
		cfg.Bar = ui
		cfg.OnProgress = ui.Sample
	}

	fetcher := fetch.NewChunkedFetcher(nil)
	stager := stage.NewAssetStager(fetcher, vfs.NewWriter(bridge))
	prep := stage.NewDirectoryPreparer(bridge, logger)
	orch := launch.NewOrchestrator(cfg, stager, prep, bridge, logger)

	code, err := orch.Run(ctx)
	if ui != nil {
		ui.Finish()
	}
	if err != nil {
		return err
	}

	fmt.Printf("runtime exited with status %d\n", code)
	return nil
}

// resolvePrimarySource picks the primary source: a local file wins over
// the profile's URL.
func resolvePrimarySource(flags *launchFlags, profile *config.Profile) (domain.AssetSource, error) {
	if flags.Primary != "" {
		data, err := os.ReadFile(flags.Primary)
		if err != nil {
			return domain.AssetSource{}, fmt.Errorf("failed to read primary archive: %w", err)
		}
		return domain.InlineSource(data), nil
	}
	if profile.PrimaryURL != "" {
		return domain.NetworkSource(profile.PrimaryURL), nil
	}
	return domain.AssetSource{}, domain.ErrMissingSource
}

// readSideloadArchives loads the side-load archives from disk. The
// extension filter itself lives in the orchestrator.
func readSideloadArchives(paths []string) ([]domain.SideloadArchive, error) {
	var archives []domain.SideloadArchive
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read side-load archive %s: %w", p, err)
		}
		archives = append(archives, domain.SideloadArchive{
			Name: filepath.Base(p),
			Data: data,
		})
	}
	return archives, nil
}
