package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/philipparndt/findflaw/internal/config"
	"github.com/philipparndt/findflaw/internal/marker"
	"github.com/philipparndt/findflaw/internal/model"
	"github.com/philipparndt/findflaw/internal/session"
	"github.com/philipparndt/findflaw/internal/status"
	"github.com/philipparndt/findflaw/pkg/analysis"
	"github.com/rs/zerolog"
)

// Options select what the viewer opens
type Options struct {
	ModelPath string
	// LinesPath defaults to the sidecar file next to the model
	LinesPath string
}

type App struct {
	cfg       *config.Config
	log       zerolog.Logger
	session   *session.Session
	board     *status.Board
	linesPath string
	info      analysis.ModelInfo

	View        ViewSettings
	Mesh        MeshCache
	Interaction InteractionState
	UI          UIState
}

// Run opens the viewer window and blocks until it is closed or ctx ends
func Run(ctx context.Context, cfg *config.Config, opts Options, log zerolog.Logger) error {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagMsaa4xHint) // Must be before InitWindow
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), "FindFlaw")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Window.FPS))
	rl.SetExitKey(rl.KeyNull) // Escape cancels drawing and selection

	board := status.NewBoard(log)
	app := &App{
		cfg:     cfg,
		log:     log.With().Str("component", "app").Logger(),
		session: session.New(cfg, windowViewport(), board, log),
		board:   board,
		View: ViewSettings{
			showFilled: true,
			topView:    cfg.TopView(),
			colorIndex: cfg.Window.ModelColor,
			emission:   model.DefaultEmissionAlpha,
		},
		UI: UIState{lastClickRow: -1},
	}
	defer app.session.Close()

	app.UI.font = rl.GetFontDefault()
	app.Mesh.material = rl.LoadMaterialDefault()
	app.layout()

	if err := app.session.LoadModel(ctx, opts.ModelPath); err != nil {
		return err
	}
	app.openLines(opts.LinesPath)

	for !rl.WindowShouldClose() && ctx.Err() == nil {
		if rl.IsWindowResized() {
			app.session.Resize(rl.GetScreenWidth(), rl.GetScreenHeight())
			app.layout()
		}
		app.handleDroppedFiles(ctx)
		app.handleInput()

		dt := time.Duration(float64(rl.GetFrameTime()) * float64(time.Second))
		app.session.Frame(ctx, dt)
		app.syncMesh()

		rl.BeginDrawing()
		rl.ClearBackground(rl.NewColor(15, 18, 25, 255))
		app.drawScene()
		app.drawUI()
		rl.EndDrawing()
	}

	app.unloadMesh()
	return nil
}

// openLines loads the line-set file if it exists and remembers it as the
// save target either way
func (app *App) openLines(path string) {
	if path == "" {
		path = marker.SidecarPath(app.session.Models().Path())
	}
	app.linesPath = path

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		app.log.Info().Str("file", path).Msg("no line set yet, it will be created on save")
		return
	}
	if err := app.session.LoadLines(path); err != nil {
		return
	}
	if app.cfg.Watch.Enabled {
		if err := app.session.WatchLines(path); err != nil {
			app.board.SetStatus(fmt.Sprintf("Lines will not reload automatically: %v", err))
		}
	}
}

func (app *App) saveLines() {
	if err := app.session.SaveLines(app.linesPath); err != nil {
		app.log.Error().Err(err).Str("file", app.linesPath).Msg("lines not saved")
	}
}

func (app *App) reloadLines() {
	if err := app.session.LoadLines(app.linesPath); err != nil {
		app.log.Error().Err(err).Str("file", app.linesPath).Msg("lines not reloaded")
	}
}

// handleDroppedFiles opens models and line sets dropped onto the window
func (app *App) handleDroppedFiles(ctx context.Context) {
	if !rl.IsFileDropped() {
		return
	}
	files := rl.LoadDroppedFiles()
	defer rl.UnloadDroppedFiles()

	for _, f := range files {
		switch strings.ToLower(filepath.Ext(f)) {
		case ".json":
			if err := app.session.LoadLines(f); err == nil {
				app.linesPath = f
			}
		case ".stl", ".scad":
			if err := app.session.LoadModel(ctx, f); err == nil {
				app.openLines("")
			}
		default:
			app.log.Warn().Str("file", f).Msg("ignoring dropped file")
		}
	}
}
