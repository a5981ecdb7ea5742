package assets

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"
)

// GLTFLoader decodifica .gltf/.glb numa goroutine própria.
// Não toca na GPU: o upload fica com o renderer, na thread principal.
type GLTFLoader struct {
	log *zap.Logger
}

// NewGLTFLoader cria o loader.
func NewGLTFLoader(log *zap.Logger) *GLTFLoader {
	return &GLTFLoader{log: log.Named("gltf")}
}

// Load implementa Loader.
func (l *GLTFLoader) Load(path string) <-chan Result {
	switch Format(path) {
	case "gltf", "glb":
	default:
		return failed(errors.Wrap(ErrUnsupportedFormat, path))
	}

	ch := make(chan Result, 1)
	go func() {
		coll, err := DecodeGLTF(path)
		if err == nil {
			l.log.Debug("modelo decodificado", zap.String("path", path), zap.Int("prototypes", coll.Len()))
		}
		ch <- Result{Collection: coll, Err: err}
	}()
	return ch
}

// DecodeGLTF lê o arquivo e converte cada mesh em um Prototype.
// Só a primeira primitiva de triângulos com POSITION de cada mesh é usada.
func DecodeGLTF(path string) (*Collection, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "falha ao abrir %s", path)
	}

	coll := &Collection{Source: path}
	for i, mesh := range doc.Meshes {
		proto, err := decodeMesh(doc, mesh)
		if err != nil {
			return nil, errors.Wrapf(err, "mesh %d (%s)", i, mesh.Name)
		}
		if proto == nil {
			continue
		}
		if proto.Name == "" {
			proto.Name = fmt.Sprintf("mesh_%d", i)
		}
		coll.Prototypes = append(coll.Prototypes, proto)
	}
	return coll, nil
}

func decodeMesh(doc *gltf.Document, mesh *gltf.Mesh) (*Prototype, error) {
	for _, prim := range mesh.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			continue
		}
		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}

		proto := &Prototype{Name: mesh.Name}

		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return nil, errors.Wrap(err, "POSITION")
		}
		proto.Positions = positions

		if nIdx, ok := prim.Attributes[gltf.NORMAL]; ok {
			normals, err := modeler.ReadNormal(doc, doc.Accessors[nIdx], nil)
			if err != nil {
				return nil, errors.Wrap(err, "NORMAL")
			}
			proto.Normals = normals
		}

		if prim.Indices != nil {
			indices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return nil, errors.Wrap(err, "indices")
			}
			proto.Indices = indices
			if err := proto.checkIndices(); err != nil {
				return nil, err
			}
		}

		proto.computeBounds()
		return proto, nil
	}
	return nil, nil
}
