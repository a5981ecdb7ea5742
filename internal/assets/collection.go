package assets

import (
	"path/filepath"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

// ErrUnsupportedFormat é retornado para extensões que nenhum loader aceita.
var ErrUnsupportedFormat = errors.New("formato de modelo não suportado")

// ErrIndexOutOfRange indica um índice de triângulo sem vértice correspondente.
var ErrIndexOutOfRange = errors.New("índice fora do intervalo de vértices")

// Prototype é uma malha molde, somente leitura depois de carregada.
type Prototype struct {
	Name      string
	Positions [][3]float32
	Normals   [][3]float32
	Indices   []uint32 // triângulos; vazio quando a malha não é indexada

	Min, Max mgl32.Vec3
}

// NewPrototype cria um protótipo e calcula sua caixa envolvente.
func NewPrototype(name string, positions, normals [][3]float32, indices []uint32) *Prototype {
	p := &Prototype{
		Name:      name,
		Positions: positions,
		Normals:   normals,
		Indices:   indices,
	}
	p.computeBounds()
	return p
}

// Triangles retorna o número de triângulos da malha.
func (p *Prototype) Triangles() int {
	if len(p.Indices) > 0 {
		return len(p.Indices) / 3
	}
	return len(p.Positions) / 3
}

// checkIndices confere se todo índice aponta para uma posição existente.
func (p *Prototype) checkIndices() error {
	for i, idx := range p.Indices {
		if int(idx) >= len(p.Positions) {
			return errors.Wrapf(ErrIndexOutOfRange, "índice %d = %d com %d vértices", i, idx, len(p.Positions))
		}
	}
	return nil
}

// computeBounds preenche Min e Max a partir das posições.
func (p *Prototype) computeBounds() {
	if len(p.Positions) == 0 {
		return
	}
	p.Min = mgl32.Vec3(p.Positions[0])
	p.Max = p.Min
	for _, v := range p.Positions[1:] {
		for i := 0; i < 3; i++ {
			if v[i] < p.Min[i] {
				p.Min[i] = v[i]
			}
			if v[i] > p.Max[i] {
				p.Max[i] = v[i]
			}
		}
	}
}

// Collection é o conjunto de protótipos de um arquivo de modelo.
type Collection struct {
	Source     string
	Prototypes []*Prototype
}

// Len retorna quantos protótipos existem.
func (c *Collection) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Prototypes)
}

// Result é a entrega única de um Load.
type Result struct {
	Collection *Collection
	Err        error
}

// Loader carrega um arquivo de modelo de forma assíncrona.
// O canal retornado recebe exatamente um Result.
type Loader interface {
	Load(path string) <-chan Result
}

// Format retorna a extensão normalizada do arquivo ("obj", "gltf", "glb").
func Format(path string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
}

// failed entrega um erro imediatamente.
func failed(err error) <-chan Result {
	ch := make(chan Result, 1)
	ch <- Result{Err: err}
	return ch
}

// ByFormat escolhe o loader pela extensão do arquivo.
type ByFormat map[string]Loader

// Load implementa Loader.
func (m ByFormat) Load(path string) <-chan Result {
	l, ok := m[Format(path)]
	if !ok {
		return failed(errors.Wrap(ErrUnsupportedFormat, path))
	}
	return l.Load(path)
}
