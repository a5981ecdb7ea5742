package app

import (
	"time"

	"go.uber.org/zap"

	"Skyline/internal/assets"
)

// requestModel dispara o carregamento. Só existe um pedido por execução.
func (a *App) requestModel() {
	a.loadStart = time.Now()
	a.pending = a.loader.Load(a.Config.ModelPath)
	a.log.Info("carregando modelo", zap.String("path", a.Config.ModelPath))
}

// processModelResult consome o resultado do carregamento sem bloquear o frame.
func (a *App) processModelResult() {
	if a.pending == nil {
		return
	}

	select {
	case res, ok := <-a.pending:
		a.pending = nil
		if !ok {
			a.log.Warn("canal do loader fechado sem resultado")
			a.State = StateEmpty
			return
		}
		a.onModelLoaded(res)
	default:
	}
}

// onModelLoaded monta a cidade. Em caso de erro a cena fica sem prédios.
func (a *App) onModelLoaded(res assets.Result) {
	elapsed := time.Since(a.loadStart)
	if a.metrics != nil {
		a.metrics.LoadSeconds.Observe(elapsed.Seconds())
	}

	if res.Err != nil {
		a.failLoad(res.Err)
		return
	}

	if a.Scene.Buildings != nil {
		a.log.Warn("modelo já carregado, resultado ignorado", zap.Int("prototypes", res.Collection.Len()))
		return
	}

	group, err := a.Generator.Layout(res.Collection.Len(), a.Timeline, &a.Scene.Fog.Far)
	if err != nil {
		a.failLoad(err)
		return
	}

	a.platform.Upload(res.Collection)
	a.Scene.Buildings = group
	a.State = StateViewing

	if a.metrics != nil {
		a.metrics.ModelLoad.WithLabelValues("ok").Inc()
		a.metrics.Buildings.Set(float64(len(group.Children)))
	}
	a.log.Info("modelo carregado",
		zap.String("source", res.Collection.Source),
		zap.Int("prototypes", res.Collection.Len()),
		zap.Duration("elapsed", elapsed))
}

func (a *App) failLoad(err error) {
	a.State = StateEmpty
	if a.metrics != nil {
		a.metrics.ModelLoad.WithLabelValues("error").Inc()
	}
	a.log.Error("falha ao carregar modelo", zap.String("path", a.Config.ModelPath), zap.Error(err))
}
