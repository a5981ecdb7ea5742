package main

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"Skyline/internal/assets"
	"Skyline/internal/city"
)

var layoutCmd = &cobra.Command{
	Use:   "layout",
	Short: "Gera a grade de prédios sem abrir janela e imprime em YAML",
	Long: `Executa o posicionamento, a ordenação e o ajuste de profundidade da cidade
e grava o grupo resultante em YAML. Com --model em glTF, o número de protótipos
vem do arquivo; caso contrário usa --prototypes.`,
	RunE: runLayout,
}

func init() {
	layoutCmd.Flags().Int("prototypes", 0, "Protótipos disponíveis (0 = valor da configuração)")
	layoutCmd.Flags().StringP("out", "o", "", "Arquivo de saída (padrão: stdout)")
	rootCmd.AddCommand(layoutCmd)
}

// layoutDoc é o documento YAML emitido.
type layoutDoc struct {
	Seed       uint64      `yaml:"seed"`
	Prototypes int         `yaml:"prototypes"`
	Group      *city.Group `yaml:"group"`
}

func runLayout(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	prototypes, _ := cmd.Flags().GetInt("prototypes")
	if prototypes <= 0 {
		prototypes = cfg.Scene.Prototypes
	}
	if cmd.Flags().Changed("model") {
		switch assets.Format(cfg.ModelPath) {
		case "gltf", "glb":
			coll, err := assets.DecodeGLTF(cfg.ModelPath)
			if err != nil {
				return err
			}
			prototypes = coll.Len()
		default:
			log.Warn("layout só lê glTF; usando --prototypes", zap.String("model", cfg.ModelPath))
		}
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	group, err := city.NewGenerator(cfg.Scene, cfg.Animation, seed, log).Place(prototypes)
	if err != nil {
		return err
	}

	var out io.Writer = cmd.OutOrStdout()
	if path, _ := cmd.Flags().GetString("out"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return errors.Wrapf(err, "falha ao criar %s", path)
		}
		defer f.Close()
		out = f
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(layoutDoc{Seed: seed, Prototypes: prototypes, Group: group}); err != nil {
		return errors.Wrap(err, "falha ao serializar layout")
	}
	return enc.Close()
}
