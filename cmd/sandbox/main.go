package main

import (
	"os"

	"github.com/hubastard/groveui/engine/core"
	glbackend "github.com/hubastard/groveui/engine/gfx/gl"
	"github.com/hubastard/groveui/engine/logging"
	"github.com/hubastard/groveui/engine/platform"
	"github.com/hubastard/groveui/engine/profiler"
	"github.com/hubastard/groveui/engine/ui"
	"github.com/spf13/cobra"
)

type App struct {
	ui    *ui.System
	scene *LayerScene
	stats *LayerStats
}

func (a *App) OnStart(e *core.Engine) {
	profiler.Init(1 << 10) // ~1K scope samples

	sys, err := ui.NewSystem(e.Renderer, e.Config)
	if err != nil {
		logging.Error("sandbox", err, "ui init failed")
		e.Window.RequestClose()
		return
	}
	a.ui = sys

	// The scene renders first and sees only the input the UI leaves alone.
	a.scene = &LayerScene{ui: sys}
	e.Layers.Push(a.scene)
	e.Layers.Push(sys)
	a.stats = &LayerStats{ui: sys}
	e.Layers.Push(a.stats)
}

func (a *App) OnUpdate(e *core.Engine, dt float64) {
	if e.Input.IsKeyDown(core.KeyEscape) {
		e.Window.RequestClose()
	}
}

func (a *App) OnRender(e *core.Engine, alpha float64) {}
func (a *App) OnEvent(e *core.Engine, ev core.Event)  {}
func (a *App) OnShutdown(e *core.Engine)              {}

// newRootCmd builds the sandbox command; run receives the --config path.
func newRootCmd(run func(cfgPath string) error) *cobra.Command {
	var cfgPath string
	cmd := &cobra.Command{
		Use:   "sandbox",
		Short: "Try groveui forms in a 3D scene",
		Long: `sandbox opens a window with a 3D scene, a form attached to a scene node
and screen overlays, for exercising input routing and draw batching by hand.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cfgPath)
		},
	}
	cmd.PersistentFlags().StringVar(&cfgPath, "config", "sandbox.yaml", "engine config file")
	return cmd
}

func runSandbox(cfgPath string) error {
	cfg, err := core.LoadConfig(cfgPath)
	logging.Init(logging.ParseLevel(cfg.LogLevel), os.Stderr)
	if err != nil {
		logging.Warn("sandbox", "%v; using defaults", err)
	}

	newWindow := func(cfg core.Config) (core.Window, error) {
		return platform.NewGLFWWindow(cfg)
	}
	newRenderer := func(win core.Window, cfg core.Config) (core.Renderer, error) {
		return glbackend.NewRendererGL(win, cfg)
	}
	return core.Run(&App{}, cfg, newWindow, newRenderer)
}

func main() {
	if err := newRootCmd(runSandbox).Execute(); err != nil {
		// cobra has already printed the error.
		os.Exit(1)
	}
}
