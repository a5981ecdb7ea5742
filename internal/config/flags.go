package config

import (
	"github.com/spf13/pflag"
)

// Nomes das flags que sobrescrevem o arquivo de configuração.
const (
	FlagConfig     = "config"
	FlagLogLevel   = "log-level"
	FlagSeed       = "seed"
	FlagModel      = "model"
	FlagFullscreen = "fullscreen"
	FlagWidth      = "width"
	FlagHeight     = "height"
	FlagTiltBridge = "tilt-bridge"
)

// DefaultTiltAddr é usado quando --tilt-bridge vem sem valor.
const DefaultTiltAddr = ":8080"

// RegisterCommonFlags registra as flags aceitas por todos os comandos.
func RegisterCommonFlags(fs *pflag.FlagSet) {
	fs.String(FlagConfig, "skyline.yaml", "Arquivo de configuração YAML")
	fs.String(FlagLogLevel, "", "Nível de log (debug, info, warn, error)")
	fs.Uint64(FlagSeed, 0, "Semente do sorteio dos prédios (0 = relógio)")
	fs.String(FlagModel, "", "Arquivo do modelo com os prédios (.obj, .gltf, .glb)")
}

// RegisterWindowFlags registra as flags da janela e da ponte de inclinação.
func RegisterWindowFlags(fs *pflag.FlagSet) {
	fs.Bool(FlagFullscreen, false, "Iniciar em tela cheia")
	fs.Int32(FlagWidth, 0, "Largura da janela")
	fs.Int32(FlagHeight, 0, "Altura da janela")
	fs.String(FlagTiltBridge, "", "Endereço da ponte de inclinação (vazio desliga)")
	fs.Lookup(FlagTiltBridge).NoOptDefVal = DefaultTiltAddr
}

// ApplyFlags sobrescreve a configuração com as flags alteradas na linha de
// comando e valida o resultado. Flags não registradas em fs são ignoradas.
func (c *Config) ApplyFlags(fs *pflag.FlagSet) error {
	changed := func(name string) bool {
		f := fs.Lookup(name)
		return f != nil && f.Changed
	}

	if changed(FlagLogLevel) {
		c.Log.Level, _ = fs.GetString(FlagLogLevel)
	}
	if changed(FlagSeed) {
		c.Seed, _ = fs.GetUint64(FlagSeed)
	}
	if changed(FlagModel) {
		c.ModelPath, _ = fs.GetString(FlagModel)
	}
	if changed(FlagFullscreen) {
		c.Window.Fullscreen, _ = fs.GetBool(FlagFullscreen)
	}
	if changed(FlagWidth) {
		if w, _ := fs.GetInt32(FlagWidth); w > 0 {
			c.Window.Width = w
		}
	}
	if changed(FlagHeight) {
		if h, _ := fs.GetInt32(FlagHeight); h > 0 {
			c.Window.Height = h
		}
	}
	if changed(FlagTiltBridge) {
		addr, _ := fs.GetString(FlagTiltBridge)
		c.Input.TiltBridge.Enabled = addr != ""
		if addr != "" {
			c.Input.TiltBridge.Addr = addr
		}
	}

	return c.Validate()
}
