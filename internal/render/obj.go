package render

import (
	"fmt"
	"os"
	"unsafe"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"Skyline/internal/assets"
)

// OBJLoader usa o leitor de OBJ do raylib. Precisa do contexto GL, então
// roda na thread da janela: o resultado já está no canal quando Load retorna
// e é consumido no próximo tick.
type OBJLoader struct {
	log *zap.Logger
}

// NewOBJLoader cria o loader.
func NewOBJLoader(log *zap.Logger) *OBJLoader {
	return &OBJLoader{log: log.Named("obj")}
}

// Load implementa assets.Loader.
func (l *OBJLoader) Load(path string) <-chan assets.Result {
	ch := make(chan assets.Result, 1)
	coll, err := l.load(path)
	if err == nil {
		l.log.Debug("modelo lido", zap.String("path", path), zap.Int("prototypes", coll.Len()))
	}
	ch <- assets.Result{Collection: coll, Err: err}
	return ch
}

func (l *OBJLoader) load(path string) (*assets.Collection, error) {
	if assets.Format(path) != "obj" {
		return nil, errors.Wrap(assets.ErrUnsupportedFormat, path)
	}
	// raylib só avisa no trace log quando o arquivo não existe
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, "falha ao abrir %s", path)
	}

	model := rl.LoadModel(path)
	defer rl.UnloadModel(model)

	if model.MeshCount == 0 {
		return nil, errors.Errorf("nenhuma malha em %s", path)
	}

	coll := &assets.Collection{Source: path}
	for i, mesh := range model.GetMeshes() {
		coll.Prototypes = append(coll.Prototypes, meshToPrototype(fmt.Sprintf("mesh_%d", i), mesh))
	}
	return coll, nil
}

// meshToPrototype copia os buffers de CPU da malha para memória Go.
func meshToPrototype(name string, mesh rl.Mesh) *assets.Prototype {
	n := int(mesh.VertexCount)
	var positions, normals [][3]float32

	if mesh.Vertices != nil && n > 0 {
		positions = copyVec3(unsafe.Slice(mesh.Vertices, n*3))
	}
	if mesh.Normals != nil && n > 0 {
		normals = copyVec3(unsafe.Slice(mesh.Normals, n*3))
	}

	var indices []uint32
	if mesh.Indices != nil && mesh.TriangleCount > 0 {
		src := unsafe.Slice(mesh.Indices, int(mesh.TriangleCount)*3)
		indices = make([]uint32, len(src))
		for i, idx := range src {
			indices[i] = uint32(idx)
		}
	}

	return assets.NewPrototype(name, positions, normals, indices)
}

func copyVec3(flat []float32) [][3]float32 {
	out := make([][3]float32, len(flat)/3)
	for i := range out {
		out[i] = [3]float32{flat[i*3], flat[i*3+1], flat[i*3+2]}
	}
	return out
}
