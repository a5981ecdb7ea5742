package app

import (
	"context"

	"go.uber.org/zap"

	"Skyline/internal/bridge"
	"Skyline/internal/input"
)

// setupTilt decide se há fonte de inclinação. Sem a ponte o desktop não
// tem devicemotion e a rotação segue só o ponteiro.
func (a *App) setupTilt() <-chan input.Sample {
	tb := a.Config.Input.TiltBridge
	if !tb.Enabled {
		a.Tracker.SetTiltSupported(false)
		a.log.Info("device motion não suportado")
		return nil
	}

	a.bridge = bridge.New(tb.Addr, tb.Buffer, a.metrics, a.log)
	a.Tracker.SetTiltSupported(true)
	return a.bridge.Samples()
}

// startBridge sobe a ponte numa goroutine. O canal fecha quando ela para.
// Erro ao escutar não derruba a aplicação: a cena continua no ponteiro.
func (a *App) startBridge(ctx context.Context) <-chan struct{} {
	if a.bridge == nil {
		return nil
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := a.bridge.Run(ctx); err != nil {
			a.log.Error("ponte de inclinação parou", zap.Error(err))
		}
	}()
	return done
}
