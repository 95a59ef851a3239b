package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"runtime"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/urfave/cli/v3"

	"github.com/cam-per/ampskin/internal/rendering"
	"github.com/cam-per/ampskin/render"
	"github.com/cam-per/ampskin/render/text"
	"github.com/cam-per/ampskin/render/vis"
	"github.com/cam-per/ampskin/skin"
)

func init() {
	// GLFW event handling must run on the main OS thread.
	runtime.LockOSThread()
}

func viewCommand() *cli.Command {
	return &cli.Command{
		Name:      "view",
		Usage:     "open the skin in an interactive window",
		ArgsUsage: "<skin archive or directory>",
		Flags: []cli.Flag{
			&cli.FloatFlag{
				Name:  "scale",
				Usage: "window scale factor (overrides config)",
			},
		},
		Action: runView,
	}
}

// viewer holds the per-window state of the interactive loop.
type viewer struct {
	manager  *skin.Manager
	path     string
	cfg      viewerConfig
	renderer *render.Renderer
	texter   *text.Renderer
	overlay  *vis.Overlay
	ticker   *text.Ticker
	gen      uint64
	phase    int
}

func runView(ctx context.Context, cmd *cli.Command) error {
	if cmd.Args().Len() != 1 {
		return fmt.Errorf("expected one skin path argument")
	}

	cfg, err := loadConfig(cmd.String("config"))
	if err != nil {
		return err
	}
	if cmd.IsSet("scale") {
		cfg.Scale = cmd.Float("scale")
	}

	v := &viewer{
		manager: skin.NewManager(),
		path:    cmd.Args().First(),
		cfg:     cfg,
		ticker:  text.NewTicker(cfg.Title, titlePx),
	}
	if _, err := v.manager.Load(ctx, v.path); err != nil {
		return err
	}

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("init glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	scale := v.cfg.Scale
	win, err := glfw.CreateWindow(
		int(float64(skin.MainWidth)*scale),
		int(float64(skin.MainHeight)*scale),
		v.manager.Current().Source(), nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	win.MakeContextCurrent()
	glfw.SwapInterval(1)

	if err := gl.Init(); err != nil {
		return fmt.Errorf("init gl: %w", err)
	}
	if err := rendering.LoadShaders(); err != nil {
		return err
	}
	if err := rendering.CompileShaders(); err != nil {
		return err
	}
	presenter, err := rendering.NewPresenter()
	if err != nil {
		return err
	}
	defer presenter.Destroy()

	win.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button != glfw.MouseButtonLeft || action != glfw.Press {
			return
		}
		x, y := w.GetCursorPos()
		pt := image.Pt(int(x/scale), int(y/scale))
		if name := v.renderer.HitTest(pt, v.cfg.State); name != "" {
			slog.Info("hit", "element", name, "at", pt)
		}
	})
	win.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		case glfw.KeyR:
			go func() {
				if _, err := v.manager.Load(ctx, v.path); err != nil && !errors.Is(err, skin.ErrSuperseded) {
					slog.Error("reload failed", "error", err)
				}
			}()
		}
	})

	for !win.ShouldClose() {
		v.refresh()
		frame := v.compose()
		presenter.Present(frame.Image())
		win.SwapBuffers()
		glfw.PollEvents()
	}
	return nil
}

// refresh picks up a newly published skin generation, rebuilding the
// package-bound collaborators.
func (v *viewer) refresh() {
	pkg := v.manager.Current()
	if v.renderer != nil && pkg.Generation() == v.gen {
		return
	}
	v.gen = pkg.Generation()
	v.renderer = newRenderer(pkg)
	v.texter = text.NewFromPackage(pkg)
	v.overlay = vis.New(pkg.VisColors())
	slog.Info("showing skin", "source", pkg.Source(), "generation", v.gen)
}

func (v *viewer) compose() *render.Frame {
	v.phase++
	if v.phase%4 == 0 {
		v.ticker.Tick()
	}
	reqs := buildRequests(v.ticker, v.texter, v.cfg.Band, v.overlay.Spectrum(demoSpectrum(v.phase/2)))
	return v.renderer.Compose(reqs, v.cfg.State, v.cfg.Scale)
}
