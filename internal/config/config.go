package config

import (
	"os"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// ErrInvalidColor indica uma cor do esquema que não é hex válido.
var ErrInvalidColor = errors.New("cor inválida no esquema")

// Config armazena as configurações do Skyline.
type Config struct {
	Window    Window    `yaml:"window"`
	Scene     Scene     `yaml:"scene"`
	Animation Animation `yaml:"animation"`
	Input     Input     `yaml:"input"`
	Log       Log       `yaml:"log"`

	// Arquivo do modelo com os prédios (OBJ ou glTF)
	ModelPath string `yaml:"model_path"`
	// Semente do sorteio de prédios; 0 usa o relógio
	Seed uint64 `yaml:"seed"`
}

// Window agrupa as opções da janela raylib.
type Window struct {
	Width      int32  `yaml:"width"`
	Height     int32  `yaml:"height"`
	Title      string `yaml:"title"`
	Fullscreen bool   `yaml:"fullscreen"`
	TargetFPS  int32  `yaml:"target_fps"`
	MSAA       bool   `yaml:"msaa"`
}

// Scene descreve a cidade e o ambiente estático.
type Scene struct {
	FieldSize  int         `yaml:"field_size"`
	BlockSize  float32     `yaml:"block_size"`
	Prototypes int         `yaml:"prototypes"` // quantos protótipos o sorteio usa
	Colors     ColorScheme `yaml:"colors"`

	PlaneSize     float32    `yaml:"plane_size"`
	LightPosition [3]float32 `yaml:"light_position"`
	LightPower    float32    `yaml:"light_power"`

	Camera Camera `yaml:"camera"`
}

// ColorScheme são as 5 cores nomeadas do esquema.
type ColorScheme struct {
	Background string `yaml:"background"`
	Fog        string `yaml:"fog"`
	Plane      string `yaml:"plane"`
	Light      string `yaml:"light"`
	Building   string `yaml:"building"`
}

// Camera define a câmera perspectiva fixa.
type Camera struct {
	FOV       float32    `yaml:"fov"`
	Near      float32    `yaml:"near"`
	Far       float32    `yaml:"far"`
	Position  [3]float32 `yaml:"position"`
	RotationX float32    `yaml:"rotation_x"`
}

// Animation contém durações, atrasos e alvos das animações.
type Animation struct {
	RiseFrom     float32 `yaml:"rise_from"`
	RiseTo       float32 `yaml:"rise_to"`
	RiseDuration float32 `yaml:"rise_duration"`
	RiseStagger  float32 `yaml:"rise_stagger"` // atraso = índice / stagger
	DepthSkew    float32 `yaml:"depth_skew"`   // scale.y += z / skew
	FogFar       float32 `yaml:"fog_far"`
	FogDuration  float32 `yaml:"fog_duration"`
	TurnDuration float32 `yaml:"turn_duration"`
}

// Input controla a sensibilidade da rotação e a ponte de inclinação.
type Input struct {
	PointerDivisor float32    `yaml:"pointer_divisor"`
	TiltDivisor    float32    `yaml:"tilt_divisor"`
	TiltBridge     TiltBridge `yaml:"tilt_bridge"`
}

// TiltBridge é o servidor que recebe devicemotion de um celular.
type TiltBridge struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
	Buffer  int    `yaml:"buffer"`
}

// Log define nível e arquivo de saída.
type Log struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// DefaultConfig retorna a configuração padrão.
func DefaultConfig() *Config {
	return &Config{
		Window: Window{
			Width:     1280,
			Height:    720,
			Title:     "Skyline",
			TargetFPS: 60,
			MSAA:      true,
		},
		Scene: Scene{
			FieldSize:  30,
			BlockSize:  140,
			Prototypes: 12,
			Colors: ColorScheme{
				Background: "#085f63",
				Fog:        "#085f63",
				Plane:      "#000000",
				Light:      "#49beb7",
				Building:   "#fff",
			},
			PlaneSize:     20000,
			LightPosition: [3]float32{0, 2000, -1000},
			LightPower:    1,
			Camera: Camera{
				FOV:       40,
				Near:      0.1,
				Far:       5000,
				Position:  [3]float32{0, 1500, 2500},
				RotationX: -0.25,
			},
		},
		Animation: Animation{
			RiseFrom:     -600,
			RiseTo:       1,
			RiseDuration: 1.2,
			RiseStagger:  800,
			DepthSkew:    3500,
			FogFar:       4500,
			FogDuration:  1.5,
			TurnDuration: 1,
		},
		Input: Input{
			PointerDivisor: 10000,
			TiltDivisor:    40,
			TiltBridge: TiltBridge{
				Addr:   ":8080",
				Buffer: 64,
			},
		},
		Log: Log{
			Level: "info",
		},
		ModelPath: "assets/models/buildings.gltf",
	}
}

// Load carrega as configurações de um arquivo YAML sobre os valores padrão.
// Caminho vazio ou arquivo inexistente retorna os padrões.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrapf(err, "falha ao ler %s", path)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "falha ao parsear %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save salva as configurações em YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "falha ao serializar config")
	}
	return errors.Wrapf(os.WriteFile(path, data, 0644), "falha ao gravar %s", path)
}

// Validate confere os limites que o resto do programa assume.
func (c *Config) Validate() error {
	if c.Scene.FieldSize < 1 {
		return errors.Errorf("field_size deve ser >= 1, recebido %d", c.Scene.FieldSize)
	}
	if c.Scene.BlockSize <= 0 {
		return errors.Errorf("block_size deve ser > 0, recebido %v", c.Scene.BlockSize)
	}
	if c.Scene.Prototypes < 1 {
		return errors.Errorf("prototypes deve ser >= 1, recebido %d", c.Scene.Prototypes)
	}
	if c.Animation.RiseStagger <= 0 || c.Animation.DepthSkew == 0 {
		return errors.New("rise_stagger e depth_skew não podem ser zero")
	}
	if c.Input.PointerDivisor == 0 || c.Input.TiltDivisor == 0 {
		return errors.New("divisores de input não podem ser zero")
	}

	for name, hex := range c.Scene.Colors.byName() {
		if _, err := colorful.Hex(hex); err != nil {
			return errors.Wrapf(ErrInvalidColor, "%s=%q", name, hex)
		}
	}
	return nil
}

func (s ColorScheme) byName() map[string]string {
	return map[string]string{
		"background": s.Background,
		"fog":        s.Fog,
		"plane":      s.Plane,
		"light":      s.Light,
		"building":   s.Building,
	}
}
