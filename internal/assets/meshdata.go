package assets

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// maxIndexedVertices é o limite dos índices de 16 bits aceitos pela GPU.
const maxIndexedVertices = math.MaxUint16 + 1

// MeshData é a malha achatada, pronta para upload.
type MeshData struct {
	Vertices []float32 // XYZ por vértice
	Normals  []float32 // XYZ por vértice
	Indices  []uint16  // nil quando a malha é desindexada
}

// VertexCount retorna o número de vértices.
func (m MeshData) VertexCount() int { return len(m.Vertices) / 3 }

// TriangleCount retorna o número de triângulos.
func (m MeshData) TriangleCount() int {
	if m.Indices != nil {
		return len(m.Indices) / 3
	}
	return m.VertexCount() / 3
}

// MeshData converte o protótipo para o formato de upload.
// Malhas indexadas com normais e até 65536 vértices mantêm os índices;
// o resto é expandido em triângulos soltos, com normais de face quando
// o arquivo não trazia normais.
func (p *Prototype) MeshData() MeshData {
	hasNormals := len(p.Normals) == len(p.Positions)

	if len(p.Indices) > 0 && hasNormals && len(p.Positions) <= maxIndexedVertices {
		md := MeshData{
			Vertices: flatten(p.Positions),
			Normals:  flatten(p.Normals),
			Indices:  make([]uint16, len(p.Indices)),
		}
		for i, idx := range p.Indices {
			md.Indices[i] = uint16(idx)
		}
		return md
	}

	corners := p.Indices
	if len(corners) == 0 {
		corners = make([]uint32, len(p.Positions)-len(p.Positions)%3)
		for i := range corners {
			corners[i] = uint32(i)
		}
	}
	corners = corners[:len(corners)-len(corners)%3]

	md := MeshData{
		Vertices: make([]float32, 0, len(corners)*3),
		Normals:  make([]float32, 0, len(corners)*3),
	}
	for t := 0; t < len(corners); t += 3 {
		a, b, c := corners[t], corners[t+1], corners[t+2]
		var face mgl32.Vec3
		if !hasNormals {
			face = faceNormal(p.Positions[a], p.Positions[b], p.Positions[c])
		}
		for _, idx := range [3]uint32{a, b, c} {
			v := p.Positions[idx]
			md.Vertices = append(md.Vertices, v[0], v[1], v[2])
			n := face
			if hasNormals {
				n = p.Normals[idx]
			}
			md.Normals = append(md.Normals, n[0], n[1], n[2])
		}
	}
	return md
}

func faceNormal(a, b, c [3]float32) mgl32.Vec3 {
	va, vb, vc := mgl32.Vec3(a), mgl32.Vec3(b), mgl32.Vec3(c)
	n := vb.Sub(va).Cross(vc.Sub(va))
	if n.Len() == 0 {
		return mgl32.Vec3{0, 1, 0}
	}
	return n.Normalize()
}

func flatten(vs [][3]float32) []float32 {
	out := make([]float32, 0, len(vs)*3)
	for _, v := range vs {
		out = append(out, v[0], v[1], v[2])
	}
	return out
}
