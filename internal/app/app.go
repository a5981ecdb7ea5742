// Package app monta o contexto da aplicação e liga cena, input, animação,
// carregamento do modelo e ponte de inclinação ao loop de frames.
package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"Skyline/internal/anim"
	"Skyline/internal/assets"
	"Skyline/internal/bridge"
	"Skyline/internal/city"
	"Skyline/internal/config"
	"Skyline/internal/frame"
	"Skyline/internal/input"
	"Skyline/internal/metrics"
	"Skyline/internal/scene"
)

// AppState representa os estados possíveis da aplicação.
type AppState int

const (
	StateLoading AppState = iota // Esperando o modelo
	StateViewing                 // Cidade montada
	StateEmpty                   // Modelo falhou; cena sem prédios
)

func (s AppState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateViewing:
		return "viewing"
	case StateEmpty:
		return "empty"
	}
	return "unknown"
}

// Platform é a janela: host do loop de frames e dona da GPU.
type Platform interface {
	frame.Host
	Size() (width, height int)
	Upload(c *assets.Collection)
	Close()
}

// App é a aplicação principal do Skyline.
type App struct {
	Config *config.Config
	State  AppState

	Scene     *scene.State
	Tracker   *input.Tracker
	Timeline  *anim.Timeline
	Generator *city.Generator

	platform Platform
	loader   assets.Loader
	driver   *frame.Driver
	bridge   *bridge.Server

	pending   <-chan assets.Result
	loadStart time.Time
	seed      uint64

	log     *zap.Logger
	metrics *metrics.Metrics
}

// New cria a aplicação sobre uma plataforma já aberta.
func New(cfg *config.Config, platform Platform, loader assets.Loader, m *metrics.Metrics, log *zap.Logger) (*App, error) {
	w, h := platform.Size()
	st, err := scene.Build(cfg.Scene, w, h)
	if err != nil {
		return nil, err
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	a := &App{
		Config:   cfg,
		State:    StateLoading,
		Scene:    st,
		Tracker:  input.NewTracker(cfg.Input.PointerDivisor, cfg.Input.TiltDivisor),
		Timeline: anim.NewTimeline(),
		platform: platform,
		loader:   loader,
		seed:     seed,
		log:      log,
		metrics:  m,
	}
	a.Generator = city.NewGenerator(cfg.Scene, cfg.Animation, seed, log)

	tilts := a.setupTilt()
	a.driver = frame.New(platform, st, a.Tracker, a.Timeline, frame.Options{
		Tilts:        tilts,
		TurnDuration: cfg.Animation.TurnDuration,
		Metrics:      m,
	}, log)
	a.driver.OnTick(a.processModelResult)

	log.Info("aplicação criada",
		zap.Int("width", w), zap.Int("height", h),
		zap.Uint64("seed", seed),
		zap.String("model", cfg.ModelPath))
	return a, nil
}

// Driver expõe o loop de frames.
func (a *App) Driver() *frame.Driver { return a.driver }

// Run pede o modelo, inicia a ponte e roda o loop até a janela fechar ou
// ctx ser cancelado.
func (a *App) Run(parent context.Context) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	bridgeDone := a.startBridge(ctx)
	a.requestModel()

	err := a.driver.Run(ctx)

	cancel()
	if bridgeDone != nil {
		<-bridgeDone
	}
	a.shutdown()

	// encerramento pedido de fora (Ctrl+C, prazo) não é erro
	if err != nil && parent.Err() != nil {
		return nil
	}
	return err
}

// shutdown realiza a limpeza de recursos.
func (a *App) shutdown() {
	a.log.Info("finalizando aplicação",
		zap.Stringer("state", a.State),
		zap.Uint64("frames", a.driver.Frames()))
	a.platform.Close()
}
