package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// drawBatches agrupa as transformações de cada protótipo do frame.
// Os buffers são reaproveitados entre frames (zero garbage).
type drawBatches struct {
	transforms [][]rl.Matrix
}

func newDrawBatches() *drawBatches {
	return &drawBatches{}
}

// Clear zera os buffers sem desalocar.
func (d *drawBatches) Clear() {
	for i := range d.transforms {
		d.transforms[i] = d.transforms[i][:0]
	}
}

// Add registra uma instância do protótipo proto.
func (d *drawBatches) Add(proto int, m rl.Matrix) {
	for len(d.transforms) <= proto {
		d.transforms = append(d.transforms, make([]rl.Matrix, 0, 128))
	}
	d.transforms[proto] = append(d.transforms[proto], m)
}

// Draw emite uma chamada por instância, protótipo a protótipo, para o
// material trocar de malha o mínimo possível.
func (d *drawBatches) Draw(prototypes []*gpuMesh, material rl.Material) {
	for proto, batch := range d.transforms {
		if proto >= len(prototypes) || prototypes[proto].mesh.VaoID == 0 {
			continue
		}
		mesh := prototypes[proto].mesh
		for _, m := range batch {
			rl.DrawMesh(mesh, material, m)
		}
	}
}
