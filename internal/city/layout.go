// Package city gera a grade de prédios e agenda a animação de entrada.
package city

import (
	"math"
	"math/rand/v2"
	"slices"
	"sort"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"Skyline/internal/anim"
	"Skyline/internal/config"
)

// ErrNoPrototypes indica que o modelo carregado não tem nenhuma malha.
var ErrNoPrototypes = errors.New("nenhum protótipo de prédio disponível")

// Faixa do fator de escala sorteado: [scaleMin, scaleMin+scaleSpan).
const (
	scaleMin  = 0.1
	scaleSpan = 0.9 - 0.1 + 0.01
)

// Building é um clone posicionado de um protótipo.
type Building struct {
	Prototype int        `yaml:"prototype"`
	Position  mgl32.Vec3 `yaml:"position,flow"`
	Scale     mgl32.Vec3 `yaml:"scale,flow"`

	CastShadow    bool `yaml:"cast_shadow"`
	ReceiveShadow bool `yaml:"receive_shadow"`

	Delay float32 `yaml:"delay"` // atraso da subida, em segundos
}

// Group é o conjunto ordenado de prédios com sua própria transformação.
type Group struct {
	Rotation    mgl32.Vec3  `yaml:"rotation,flow"`    // Euler XYZ em radianos
	Translation mgl32.Vec3  `yaml:"translation,flow"` // deslocamento para centralizar a grade
	Children    []*Building `yaml:"children"`
}

// Transform retorna T * Rx * Ry * Rz do grupo.
func (g *Group) Transform() mgl32.Mat4 {
	t := mgl32.Translate3D(g.Translation.X(), g.Translation.Y(), g.Translation.Z())
	r := mgl32.HomogRotate3DX(g.Rotation.X()).
		Mul4(mgl32.HomogRotate3DY(g.Rotation.Y())).
		Mul4(mgl32.HomogRotate3DZ(g.Rotation.Z()))
	return t.Mul4(r)
}

// Model retorna a matriz local do prédio (T * S).
func (b *Building) Model() mgl32.Mat4 {
	return mgl32.Translate3D(b.Position.X(), b.Position.Y(), b.Position.Z()).
		Mul4(mgl32.Scale3D(b.Scale.X(), b.Scale.Y(), b.Scale.Z()))
}

// Generator monta a cidade a partir dos protótipos carregados.
type Generator struct {
	scene config.Scene
	anim  config.Animation
	rng   *rand.Rand
	log   *zap.Logger
}

// NewGenerator cria o gerador. seed fixa o sorteio de protótipos e escalas.
func NewGenerator(scene config.Scene, animCfg config.Animation, seed uint64, log *zap.Logger) *Generator {
	return &Generator{
		scene: scene,
		anim:  animCfg,
		rng:   rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		log:   log.Named("city"),
	}
}

// Place executa os passos de posicionamento, ordenação e ajuste de profundidade.
// prototypes é quantos protótipos o modelo oferece; o sorteio usa no máximo
// scene.Prototypes deles.
func (g *Generator) Place(prototypes int) (*Group, error) {
	if prototypes < 1 {
		return nil, ErrNoPrototypes
	}
	choices := min(prototypes, g.scene.Prototypes)
	if choices < g.scene.Prototypes {
		g.log.Warn("modelo com menos protótipos que o esperado, sorteio limitado",
			zap.Int("disponíveis", prototypes), zap.Int("esperados", g.scene.Prototypes))
	}

	n := g.scene.FieldSize
	block := g.scene.BlockSize

	group := &Group{Children: make([]*Building, 0, n*n)}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			proto := g.rng.IntN(choices)
			s := float32(scaleMin + g.rng.Float64()*scaleSpan)

			group.Children = append(group.Children, &Building{
				Prototype:     proto,
				Position:      mgl32.Vec3{float32(i) * block, 0, float32(j) * block},
				Scale:         mgl32.Vec3{s, s, s},
				CastShadow:    true,
				ReceiveShadow: true,
			})
		}
	}

	half := block * float32(n) / 2
	group.Rotation = mgl32.Vec3{0, math.Pi, 0}
	group.Translation = mgl32.Vec3{half, 0, half}

	// z decrescente e depois invertido: a ordem final é z crescente e, para o
	// mesmo z, a ordem de inserção invertida.
	sort.SliceStable(group.Children, func(a, b int) bool {
		return group.Children[a].Position.Z() > group.Children[b].Position.Z()
	})
	slices.Reverse(group.Children)

	for k, b := range group.Children {
		b.Position[1] = g.anim.RiseFrom
		b.Scale[1] += b.Position.Z() / g.anim.DepthSkew
		b.Delay = float32(k) / g.anim.RiseStagger
	}

	return group, nil
}

// Animate agenda a subida de cada prédio e o recuo da neblina.
func (g *Generator) Animate(tl *anim.Timeline, group *Group, fogFar *float32) {
	for _, b := range group.Children {
		tl.To(&b.Position[1], g.anim.RiseTo, g.anim.RiseDuration, b.Delay, anim.Power3Out)
	}
	*fogFar = 0
	tl.To(fogFar, g.anim.FogFar, g.anim.FogDuration, 0, anim.Power3InOut)
}

// Layout é a rotina completa chamada quando o modelo termina de carregar.
func (g *Generator) Layout(prototypes int, tl *anim.Timeline, fogFar *float32) (*Group, error) {
	group, err := g.Place(prototypes)
	if err != nil {
		return nil, err
	}
	g.Animate(tl, group, fogFar)

	g.log.Info("cidade montada",
		zap.Int("prédios", len(group.Children)),
		zap.Int("protótipos", min(prototypes, g.scene.Prototypes)),
		zap.Float32("última subida (s)", group.Children[len(group.Children)-1].Delay+g.anim.RiseDuration))
	return group, nil
}
