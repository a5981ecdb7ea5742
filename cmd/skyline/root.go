package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"Skyline/internal/config"
	"Skyline/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "skyline",
	Short: "Cidade low-poly animada em 3D",
	Long: `Skyline desenha uma grade de prédios que sobem do chão enquanto a neblina
recua, e inclina a cena seguindo o mouse ou o acelerômetro de um celular.`,
	SilenceUsage: true,
}

// Execute adiciona os subcomandos ao root e roda.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	config.RegisterCommonFlags(rootCmd.PersistentFlags())
}

// setup carrega a configuração, aplica as flags e cria o logger.
func setup(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	path, _ := cmd.Flags().GetString(config.FlagConfig)
	cfg, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.ApplyFlags(cmd.Flags()); err != nil {
		return nil, nil, err
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return nil, nil, err
	}
	log.Debug("configuração carregada", zap.String("path", path))
	return cfg, log, nil
}
