// Package game implements the main game loop.
package game

import (
	"fmt"
	"path/filepath"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/wildmere/internal/config"
	"github.com/Faultbox/wildmere/internal/engine/debug"
	"github.com/Faultbox/wildmere/internal/engine/input"
	"github.com/Faultbox/wildmere/internal/engine/lighting"
	"github.com/Faultbox/wildmere/internal/engine/renderer"
	"github.com/Faultbox/wildmere/internal/engine/window"
	"github.com/Faultbox/wildmere/internal/game/controls"
	"github.com/Faultbox/wildmere/internal/game/sim"
	"github.com/Faultbox/wildmere/internal/game/world"
	"github.com/Faultbox/wildmere/internal/logger"
	"github.com/Faultbox/wildmere/internal/network"
	"github.com/Faultbox/wildmere/pkg/math"
)

// chestGlow tints unlooted chests by tier.
var chestGlow = [...]math.Vec3{
	{X: 0.9, Y: 0.7, Z: 0.4},
	{X: 0.5, Y: 0.7, Z: 1.0},
	{X: 1.0, Y: 0.5, Z: 0.9},
}

// Game is the main game instance.
type Game struct {
	cfg      *config.Config
	running  bool
	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input
	session  *sim.Session

	groups      []*renderer.Batch
	player      *renderer.Batch
	overlay     *renderer.Batch
	showOverlay bool
	screenshots *debug.ScreenshotCapture

	feed *network.Server

	log *zap.Logger
}

// New generates the world, opens the window and uploads static geometry.
func New(cfg *config.Config) (*Game, error) {
	g := &Game{cfg: cfg, log: logger.Named("game")}
	g.log.Info("initializing game",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.Int64("seed", cfg.World.Seed),
	)

	var err error
	g.session, err = sim.Start(cfg.WorldParams(), cfg.SessionOptions(), cfg.Saves.Load)
	if err != nil {
		return nil, fmt.Errorf("starting session: %w", err)
	}
	cfg.ApplyCamera(g.session.Camera)

	// Create window (this also creates OpenGL context)
	g.window, err = window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
		Samples:    4,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Create renderer (AFTER window, since OpenGL context must exist)
	w, h := g.window.DrawableSize()
	g.renderer, err = renderer.New(renderer.DefaultConfig(w, h))
	if err != nil {
		g.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	for _, grp := range world.DrawGroups() {
		g.groups = append(g.groups, g.renderer.Upload(g.session.World.Mesh(grp)))
	}
	g.player = g.renderer.NewDynamic()
	g.input = input.New()
	g.screenshots = debug.NewScreenshotCapture(filepath.Join(config.ConfigDir(), "screenshots"), "wildmere")

	if cfg.Feed.Listen != "" {
		g.feed = network.StartServer(cfg.Feed.Listen)
	}

	g.log.Info("game initialized",
		zap.Int("vertices", g.session.World.VertexCount()),
		zap.Int("colliders", g.session.World.Colliders.Len()))
	return g, nil
}

// Run starts the main game loop.
func (g *Game) Run() error {
	g.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	g.log.Info("starting game loop")

	for g.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		if g.input.Update() {
			g.running = false
			break
		}
		for _, event := range g.input.Events() {
			if event.Type == input.EventWindowResize {
				w, h := g.window.DrawableSize()
				g.renderer.Resize(w, h)
			}
		}

		if err := g.update(dt); err != nil {
			return fmt.Errorf("update error: %w", err)
		}
		g.render()
		if g.input.Controls.Pressed(controls.Screenshot) {
			g.screenshot()
		}
		g.window.SwapBuffers()

		if g.cfg.Window.FPSLimit > 0 {
			budget := time.Second / time.Duration(g.cfg.Window.FPSLimit)
			if spent := time.Since(now); spent < budget {
				time.Sleep(budget - spent)
			}
		}

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			g.updateTitle(frameCount)
			g.log.Debug("fps", zap.Int("count", frameCount), zap.Float32("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// Close cleans up game resources.
func (g *Game) Close() {
	g.log.Info("closing game")

	if g.feed != nil {
		if err := g.feed.Stop(); err != nil {
			g.log.Warn("snapshot feed stopped", zap.Error(err))
		}
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}

func (g *Game) update(dt float32) error {
	ctl := &g.input.Controls
	cam := g.session.Camera
	cam.HandleYaw(ctl.LookDelta)
	cam.HandleZoom(ctl.ZoomDelta)

	events := g.session.Tick(ctl.Intent(), dt)
	for _, e := range events {
		g.logEvent(e)
	}

	if g.session.InventoryOpen {
		for _, cmd := range ctl.Commands() {
			if err := g.session.Apply(cmd); err != nil {
				g.log.Warn("inventory command failed", zap.Error(err))
			}
		}
	}

	if g.feed != nil {
		// The HUD feed is optional; losing it does not end the game.
		alive, err := g.feed.Poll()
		if err != nil {
			g.log.Warn("snapshot feed disabled", zap.Error(err))
		}
		if alive {
			g.publish(events)
		} else {
			g.feed = nil
		}
	}

	if ctl.Pressed(controls.ToggleColliders) {
		g.showOverlay = !g.showOverlay
		if g.showOverlay && g.overlay == nil {
			g.overlay = g.renderer.Upload(g.session.World.ColliderOverlay())
		}
	}

	g.renderer.Update(g.player, g.session.Mesh())
	g.placeLights()
	return nil
}

func (g *Game) screenshot() {
	pixels, w, h := g.renderer.ReadPixels()
	path, err := g.screenshots.CaptureFromPixels(pixels, w, h)
	if err != nil {
		g.log.Warn("screenshot failed", zap.Error(err))
		return
	}
	g.log.Info("screenshot saved", zap.String("path", path))
}

func (g *Game) publish(events []sim.Event) {
	frame := g.session.Frame()
	for _, e := range events {
		if err := g.feed.Feed.Publish("event", frame, e); err != nil {
			g.log.Warn("publishing event", zap.Error(err))
		}
	}
	if frame%uint64(g.cfg.Feed.EveryFrames) == 0 {
		if err := g.feed.Feed.Publish("snapshot", frame, g.session.Snapshot()); err != nil {
			g.log.Warn("publishing snapshot", zap.Error(err))
		}
	}
}

// placeLights lights the unlooted chests nearest the player.
func (g *Game) placeLights() {
	buf := g.renderer.Lights()
	buf.Clear()

	p := g.session.Player.Position.XZ()
	chests := slices.Clone(g.session.World.Chests)
	slices.SortFunc(chests, func(a, b world.Chest) int {
		da := p.Distance(a.Position.XZ())
		db := p.Distance(b.Position.XZ())
		switch {
		case da < db:
			return -1
		case da > db:
			return 1
		}
		return a.ID - b.ID
	})
	for _, c := range chests {
		if g.session.Looted(c.ID) {
			continue
		}
		tier := math.Clamp(float32(c.Tier-1), 0, float32(len(chestGlow)-1))
		if !buf.AddLight(lighting.PointLight{
			Position:  c.Position.Add(math.Vec3{Y: 1.2}),
			Color:     chestGlow[int(tier)],
			Range:     6,
			Intensity: 1.5,
		}) {
			break
		}
	}
}

func (g *Game) render() {
	target := g.session.Player.Position
	cam := g.session.Camera
	eye := cam.Position(target)
	g.renderer.Begin(cam.ViewMatrix(target), cam.Projection(g.window.Aspect()), eye)
	for _, b := range g.groups {
		g.renderer.Draw(b)
	}
	g.renderer.Draw(g.player)
	if g.showOverlay {
		g.renderer.Draw(g.overlay)
	}
	g.renderer.End()
}

func (g *Game) updateTitle(fps int) {
	s := g.session.Snapshot()
	title := fmt.Sprintf("%s  |  Lv %d  HP %d/%d  XP %d/%d  Gold %d",
		g.cfg.Window.Title, s.Level, s.HP, s.MaxHP, s.XP, s.XPToNext, s.Gold)
	if s.InventoryOpen {
		title += fmt.Sprintf("  |  Bag %d items", len(s.Inventory))
	}
	if g.cfg.Window.ShowFPS {
		title += fmt.Sprintf("  |  %d fps", fps)
	}
	g.window.SetTitle(title)
}

func (g *Game) logEvent(e sim.Event) {
	fields := []zap.Field{zap.Stringer("kind", e.Kind)}
	switch e.Kind {
	case sim.LootDiscovered:
		fields = append(fields, zap.Int("chest", e.ChestID))
	case sim.LootTaken:
		fields = append(fields,
			zap.Int("chest", e.ChestID),
			zap.String("item", string(e.Item)),
			zap.Int("gold", e.Gold),
			zap.Int("xp", e.XP))
	case sim.LevelUp:
		fields = append(fields, zap.Int("level", e.Level))
	case sim.Saved:
		if e.Err != nil {
			g.log.Warn("save failed", zap.Error(e.Err))
			return
		}
		fields = append(fields, zap.String("path", e.Path))
	}
	g.log.Info("event", fields...)
}
