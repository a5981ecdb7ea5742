package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"Skyline/internal/app"
	"Skyline/internal/assets"
	"Skyline/internal/config"
	"Skyline/internal/metrics"
	"Skyline/internal/render"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Abre a janela e anima a cidade",
	Long: `Abre a janela e anima a cidade. É também o comando padrão de "skyline".

Sem --model, carrega assets/models/buildings.gltf relativo ao diretório atual.`,
	RunE: runSkyline,
}

func init() {
	config.RegisterWindowFlags(runCmd.Flags())
	rootCmd.AddCommand(runCmd)

	// "skyline" sem subcomando abre a janela
	config.RegisterWindowFlags(rootCmd.Flags())
	rootCmd.RunE = runSkyline
}

func runSkyline(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	log.Info("iniciando skyline", zap.String("version", version))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	win := render.OpenWindow(cfg.Window, cfg.Scene.Camera, log)

	gltfLoader := assets.NewGLTFLoader(log)
	loader := assets.ByFormat{
		"obj":  render.NewOBJLoader(log),
		"gltf": gltfLoader,
		"glb":  gltfLoader,
	}

	a, err := app.New(cfg, win, loader, metrics.New(), log)
	if err != nil {
		win.Close()
		return err
	}
	return a.Run(ctx)
}
