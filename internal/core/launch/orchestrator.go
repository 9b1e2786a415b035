// Package launch drives the full staging-and-launch sequence: primary
// asset staging, optional side-load cleanup and staging, dependency
// staging, classpath assembly, and the handoff to the runtime entry
// point, under a single-flight guarantee.
package launch

import (
	"context"
	"path"
	"sync"

	"github.com/rs/zerolog"

	"jarstage.dev/launcher/internal/core/classpath"
	"jarstage.dev/launcher/internal/core/domain"
	"jarstage.dev/launcher/internal/core/ports"
)

// State is the orchestrator's lifecycle state.
type State string

const (
	StateIdle        State = "idle"
	StateStaging     State = "staging"
	StateConfiguring State = "configuring"
	StateLaunching   State = "launching"
)

// Well-known staging conventions.
const (
	DefaultPrimaryPath = "/files/client.jar"
	DefaultSideloadDir = "/files/mods"
	DefaultMainClass   = "client.Client"

	// SideloadExtension filters which caller-supplied archives are
	// staged into the side-load directory.
	SideloadExtension = ".jar"
)

// DefaultSupportPaths are the runtime support archives always appended
// to the classpath, after the primary.
var DefaultSupportPaths = []string{"/runtime/rt.jar", "/runtime/support.jar"}

// Stage-unit progress convention: the launch sequence is presented to
// the progress bar as four units. The primary download spans the first
// two, dependency staging advances to the third, and the handoff to the
// runtime completes the fourth.
const (
	totalStageUnits    = 4.0
	primaryStageUnits  = 2.0
	librariesStageUnit = 3.0
)

// ProgressBar receives coarse launch progress as a fraction in [0,1].
// A nil bar is a safe no-op.
type ProgressBar interface {
	Set(fraction float64)
}

// Config is the explicit, fully-typed configuration for one
// orchestrator. Defaults for zero fields are applied at construction;
// nothing is read from ambient state at run time. The slices are
// treated as read-only inputs and never mutated.
type Config struct {
	// PrimarySource is the origin of the primary archive. Required.
	PrimarySource domain.AssetSource
	// PrimaryPath is the staging path of the primary archive.
	PrimaryPath string
	// MainClass overrides the entry-point class.
	MainClass string
	// RuntimeArgs are passed to the entry point in order.
	RuntimeArgs []string

	// Libraries are the dependency archives to download and stage.
	// Descriptors missing either field are skipped.
	Libraries []domain.LibraryDescriptor

	// Sideload enables the side-loaded-content variant: the side-load
	// directory is cleared and the supplied archives staged into it.
	Sideload         bool
	SideloadDir      string
	SideloadArchives []domain.SideloadArchive

	// SupportPaths are the fixed runtime support archives appended
	// last to the classpath.
	SupportPaths []string

	// OnProgress receives raw byte-progress samples from network
	// stages. Optional.
	OnProgress domain.ProgressFunc
	// Bar receives coarse stage-unit progress. Optional.
	Bar ProgressBar
}

// step is one pipeline stage with a declared failure policy. A lenient
// step's failure is logged and dropped; a fatal step's failure aborts
// the whole sequence.
type step struct {
	name    string
	lenient bool
	run     func(ctx context.Context) error
}

// Orchestrator sequences one launch at a time. Each instance owns its
// own run flag, so independent orchestrators may run concurrently as
// long as their staging paths do not overlap.
type Orchestrator struct {
	cfg    Config
	stager ports.Stager
	prep   ports.DirectoryPreparer
	bridge ports.RuntimeBridge
	logger zerolog.Logger

	mu    sync.Mutex
	state State
}

// NewOrchestrator creates an orchestrator, filling defaulted Config
// fields.
func NewOrchestrator(cfg Config, stager ports.Stager, prep ports.DirectoryPreparer, bridge ports.RuntimeBridge, logger zerolog.Logger) *Orchestrator {
	if cfg.PrimaryPath == "" {
		cfg.PrimaryPath = DefaultPrimaryPath
	}
	if cfg.SideloadDir == "" {
		cfg.SideloadDir = DefaultSideloadDir
	}
	if cfg.MainClass == "" {
		cfg.MainClass = DefaultMainClass
	}
	if cfg.SupportPaths == nil {
		cfg.SupportPaths = DefaultSupportPaths
	}
	return &Orchestrator{
		cfg:    cfg,
		stager: stager,
		prep:   prep,
		bridge: bridge,
		logger: logger,
		state:  StateIdle,
	}
}

// State returns the current lifecycle state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// IsRunning reports whether a launch sequence is in flight.
func (o *Orchestrator) IsRunning() bool {
	return o.State() != StateIdle
}

// Run performs the full sequence and returns the runtime's exit status
// uninterpreted. It fails immediately with ErrAlreadyRunning when a
// prior Run on this instance has not returned. The run flag returns to
// idle before Run returns, on every path.
func (o *Orchestrator) Run(ctx context.Context) (int, error) {
	o.mu.Lock()
	if o.state != StateIdle {
		o.mu.Unlock()
		return 0, domain.ErrAlreadyRunning
	}
	o.state = StateStaging
	o.mu.Unlock()

	defer o.setState(StateIdle)

	// Staged dependency paths accumulate here, in declaration order;
	// the classpath builder applies the reversal rule itself.
	var libraryPaths []string

	steps := []step{
		{name: "stage primary archive", run: o.stagePrimary},
		{name: "clear sideload directory", lenient: true, run: o.clearSideloadDir},
		{name: "stage sideload archives", run: o.stageSideloadArchives},
		{name: "stage libraries", run: func(ctx context.Context) error {
			staged, err := o.stageLibraries(ctx)
			libraryPaths = staged
			return err
		}},
	}

	for _, s := range steps {
		if err := s.run(ctx); err != nil {
			if s.lenient {
				o.logger.Debug().Str("step", s.name).Err(err).Msg("lenient step failed, continuing")
				continue
			}
			o.logger.Error().Str("step", s.name).Err(err).Msg("launch step failed")
			return 0, err
		}
	}

	o.setState(StateConfiguring)
	entries := classpath.Build(o.cfg.PrimaryPath, libraryPaths, o.cfg.SupportPaths)
	cp := classpath.Join(entries)
	spec := domain.LaunchSpec{
		PrimaryPath:      o.cfg.PrimaryPath,
		MainClass:        o.cfg.MainClass,
		ClasspathEntries: entries,
		Args:             o.cfg.RuntimeArgs,
	}

	o.setState(StateLaunching)
	o.setBar(1)
	o.logger.Info().
		Str("main_class", spec.MainClass).
		Str("classpath", cp).
		Msg("starting runtime entry point")

	code, err := o.bridge.RunEntryPoint(ctx, spec.MainClass, cp, spec.Args...)
	if err != nil {
		return 0, err
	}
	o.logger.Info().Int("exit_code", code).Msg("runtime exited")
	return code, nil
}

func (o *Orchestrator) setState(s State) {
	o.mu.Lock()
	o.state = s
	o.mu.Unlock()
}

func (o *Orchestrator) setBar(fraction float64) {
	if o.cfg.Bar != nil {
		o.cfg.Bar.Set(fraction)
	}
}

// stagePrimary stages the primary archive. A network source reports a
// continuous byte fraction scaled into the primary's stage-unit range;
// an inline source reports the fixed point the units place it at.
func (o *Orchestrator) stagePrimary(ctx context.Context) error {
	src := o.cfg.PrimarySource
	if src.IsZero() {
		return domain.ErrMissingSource
	}

	switch src.Kind() {
	case domain.AssetSourceNetwork:
		return o.stager.Stage(ctx, src, o.cfg.PrimaryPath, func(s domain.ProgressSample) {
			o.cfg.OnProgress.Report(s)
			if s.Total > 0 {
				o.setBar(s.Fraction() * primaryStageUnits / totalStageUnits)
			}
		})
	case domain.AssetSourceInline:
		o.setBar(primaryStageUnits / totalStageUnits)
		return o.stager.Stage(ctx, src, o.cfg.PrimaryPath, o.cfg.OnProgress)
	default:
		return domain.ErrMissingSource
	}
}

// clearSideloadDir deletes the side-load directory ahead of restaging.
// A missing directory is the common case, which is why this step is
// declared lenient.
func (o *Orchestrator) clearSideloadDir(ctx context.Context) error {
	if !o.cfg.Sideload {
		return nil
	}
	return o.bridge.DeleteTree(ctx, o.cfg.SideloadDir)
}

// stageSideloadArchives recreates the side-load directory and stages
// each supplied archive with the accepted extension into it, in order.
// Unlike the cleanup step these writes are load-bearing: an individual
// failure propagates and aborts the sequence.
func (o *Orchestrator) stageSideloadArchives(ctx context.Context) error {
	if !o.cfg.Sideload {
		return nil
	}

	o.prep.Ensure(ctx, parentDir(o.cfg.SideloadDir))
	o.prep.Ensure(ctx, o.cfg.SideloadDir)

	for _, archive := range o.cfg.SideloadArchives {
		if !archive.HasExtension(SideloadExtension) {
			o.logger.Debug().Str("name", archive.Name).Msg("skipping archive without accepted extension")
			continue
		}
		target := o.cfg.SideloadDir + "/" + archive.Name
		if err := o.stager.Stage(ctx, domain.InlineSource(archive.Data), target, nil); err != nil {
			return err
		}
	}
	return nil
}

// stageLibraries downloads each complete dependency descriptor to its
// path and returns the staged paths in declaration order. Descriptors
// missing either field are skipped silently; directory preparation is
// lenient, the download itself is not.
func (o *Orchestrator) stageLibraries(ctx context.Context) ([]string, error) {
	var staged []string
	for _, lib := range o.cfg.Libraries {
		if !lib.Complete() {
			o.logger.Debug().Str("url", lib.URL).Str("path", lib.Path).Msg("skipping incomplete library descriptor")
			continue
		}
		o.prep.Ensure(ctx, parentDir(lib.Path))
		if err := o.stager.Stage(ctx, domain.NetworkSource(lib.URL), lib.Path, o.cfg.OnProgress); err != nil {
			return staged, err
		}
		staged = append(staged, lib.Path)
	}
	o.setBar(librariesStageUnit / totalStageUnits)
	return staged, nil
}

// parentDir returns the parent of a slash-separated staging path.
func parentDir(p string) string {
	return path.Dir(p)
}
