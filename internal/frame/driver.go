// Package frame contém o loop cooperativo que gira e desenha a cena.
package frame

import (
	"context"

	"go.uber.org/zap"

	"Skyline/internal/anim"
	"Skyline/internal/input"
	"Skyline/internal/metrics"
	"Skyline/internal/scene"
)

// Host é a plataforma que agenda os frames e desenha.
// Render deve bloquear até o próximo vsync: é ali que o loop cede o controle.
type Host interface {
	ShouldClose() bool
	FrameTime() float32
	PollInput(tr *input.Tracker)
	Resized() (width, height int, ok bool)
	Render(st *scene.State)
}

// Hook roda no início de cada tick, na thread do loop.
type Hook func()

// Driver é o loop de frames. Só sai de "rodando" quando o host fecha
// ou o contexto é cancelado.
type Driver struct {
	host     Host
	state    *scene.State
	tracker  *input.Tracker
	timeline *anim.Timeline
	tilts    <-chan input.Sample
	hooks    []Hook

	turnDuration float32

	log     *zap.Logger
	metrics *metrics.Metrics
	frames  uint64
}

// Options agrupa as dependências opcionais do Driver.
type Options struct {
	Tilts        <-chan input.Sample
	TurnDuration float32
	Metrics      *metrics.Metrics
}

// New cria o driver sobre um estado de cena já construído.
func New(host Host, st *scene.State, tr *input.Tracker, tl *anim.Timeline, opts Options, log *zap.Logger) *Driver {
	if opts.TurnDuration <= 0 {
		opts.TurnDuration = 1
	}
	return &Driver{
		host:         host,
		state:        st,
		tracker:      tr,
		timeline:     tl,
		tilts:        opts.Tilts,
		turnDuration: opts.TurnDuration,
		log:          log.Named("frame"),
		metrics:      opts.Metrics,
	}
}

// OnTick registra um hook executado antes do input em cada tick.
func (d *Driver) OnTick(h Hook) {
	d.hooks = append(d.hooks, h)
}

// Frames retorna quantos ticks já rodaram.
func (d *Driver) Frames() uint64 { return d.frames }

// Run executa ticks até o host pedir para fechar ou ctx ser cancelado.
func (d *Driver) Run(ctx context.Context) error {
	d.log.Info("loop de frames iniciado")
	for {
		select {
		case <-ctx.Done():
			d.log.Info("loop de frames cancelado", zap.Uint64("frames", d.frames))
			return ctx.Err()
		default:
		}

		if d.host.ShouldClose() {
			d.log.Info("janela fechada", zap.Uint64("frames", d.frames))
			return nil
		}
		d.Tick(d.host.FrameTime())
	}
}

// Tick executa um frame completo.
func (d *Driver) Tick(dt float32) {
	for _, h := range d.hooks {
		h()
	}

	d.host.PollInput(d.tracker)
	d.drainTilts()

	if w, h, ok := d.host.Resized(); ok {
		d.state.Camera.SetAspect(w, h)
		d.log.Debug("janela redimensionada", zap.Int("width", w), zap.Int("height", h))
	}

	d.rotateScene()
	d.timeline.Update(dt)

	d.state.Camera.UpdateProjection()
	d.host.Render(d.state)

	d.frames++
	if d.metrics != nil {
		d.metrics.Frames.Inc()
		d.metrics.FrameSeconds.Observe(float64(dt))
		d.metrics.Tweens.Set(float64(d.timeline.Active()))
	}
}

// rotateScene emite um tween curto em direção à última amostra de input.
// Como é reemitido a cada frame, a cena segue o input com atraso suave.
func (d *Driver) rotateScene() {
	target := d.tracker.RotationTarget()
	d.timeline.To(&d.state.Rotation.Y, target.Yaw, d.turnDuration, 0, anim.Power1Out)
	d.timeline.To(&d.state.Rotation.X, target.Pitch, d.turnDuration, 0, anim.Power1Out)
}

func (d *Driver) drainTilts() {
	if d.tilts == nil {
		return
	}
	for {
		select {
		case s, ok := <-d.tilts:
			if !ok {
				d.tilts = nil
				return
			}
			d.tracker.Tilt(s)
		default:
			return
		}
	}
}
