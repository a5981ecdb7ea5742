package render

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"

	"Skyline/internal/assets"
	"Skyline/internal/config"
	"Skyline/internal/input"
	"Skyline/internal/scene"
)

// Window é o host raylib do loop de frames.
type Window struct {
	Renderer *Renderer

	lastMouse rl.Vector2
	showDebug bool

	log *zap.Logger
}

// OpenWindow cria a janela e o contexto GL. Deve rodar na thread principal.
func OpenWindow(cfg config.Window, cam config.Camera, log *zap.Logger) *Window {
	flags := uint32(rl.FlagWindowResizable | rl.FlagVsyncHint)
	if cfg.MSAA {
		flags |= rl.FlagMsaa4xHint
	}
	rl.SetConfigFlags(flags)
	rl.SetTraceLogLevel(rl.LogWarning)
	rl.InitWindow(cfg.Width, cfg.Height, cfg.Title)

	if cfg.Fullscreen {
		rl.ToggleFullscreen()
	}
	rl.SetTargetFPS(cfg.TargetFPS)

	// o padrão do raylib corta em 1000 unidades; a cena vai até 5000
	rl.SetClipPlanes(float64(cam.Near), float64(cam.Far))

	w := &Window{
		lastMouse: rl.GetMousePosition(),
		log:       log.Named("window"),
	}
	w.Renderer = NewRenderer(log)

	w.log.Info("janela inicializada",
		zap.Int("width", rl.GetScreenWidth()), zap.Int("height", rl.GetScreenHeight()),
		zap.Bool("fullscreen", cfg.Fullscreen))
	return w
}

// Size retorna o tamanho atual da janela.
func (w *Window) Size() (int, int) {
	return rl.GetScreenWidth(), rl.GetScreenHeight()
}

// Upload envia os protótipos carregados para a GPU.
func (w *Window) Upload(c *assets.Collection) {
	w.Renderer.Upload(c)
}

// ShouldClose implementa frame.Host.
func (w *Window) ShouldClose() bool {
	return rl.WindowShouldClose()
}

// FrameTime implementa frame.Host.
func (w *Window) FrameTime() float32 {
	return rl.GetFrameTime()
}

// PollInput registra o ponteiro só quando ele se move, como um evento de mousemove.
func (w *Window) PollInput(tr *input.Tracker) {
	if rl.IsKeyPressed(rl.KeyF3) {
		w.showDebug = !w.showDebug
	}

	pos := rl.GetMousePosition()
	if pos == w.lastMouse {
		return
	}
	w.lastMouse = pos
	tr.MovePointer(pos.X, pos.Y, rl.GetScreenWidth(), rl.GetScreenHeight())
}

// Resized implementa frame.Host.
func (w *Window) Resized() (int, int, bool) {
	if !rl.IsWindowResized() {
		return 0, 0, false
	}
	return rl.GetScreenWidth(), rl.GetScreenHeight(), true
}

// Render desenha o frame; EndDrawing espera o vsync.
func (w *Window) Render(st *scene.State) {
	rl.BeginDrawing()
	w.Renderer.Draw(st)
	if w.showDebug {
		w.drawHUD(st)
	}
	rl.EndDrawing()
}

// drawHUD mostra FPS e contagem de prédios (F3).
func (w *Window) drawHUD(st *scene.State) {
	buildings := 0
	if st.Buildings != nil {
		buildings = len(st.Buildings.Children)
	}

	rl.DrawRectangle(10, 10, 260, 90, rl.NewColor(0, 0, 0, 160))
	rl.DrawText(fmt.Sprintf("FPS: %d", rl.GetFPS()), 20, 20, 20, rl.Green)
	rl.DrawText(fmt.Sprintf("Prédios: %d  Protótipos: %d", buildings, w.Renderer.Prototypes()), 20, 46, 16, rl.RayWhite)
	rl.DrawText(fmt.Sprintf("Rotação: %.3f %.3f  Neblina: %.0f", st.Rotation.X, st.Rotation.Y, st.Fog.Far), 20, 70, 16, rl.RayWhite)
}

// Close libera a GPU e fecha a janela.
func (w *Window) Close() {
	w.Renderer.Unload()
	rl.CloseWindow()
	w.log.Info("janela fechada")
}
