package render

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"Skyline/internal/camera"
)

// toMatrix converte uma matriz mgl32 (colunas) para rl.Matrix.
// Os dois usam a mesma convenção de coluna; só os nomes mudam.
func toMatrix(m mgl32.Mat4) rl.Matrix {
	return rl.NewMatrix(
		m[0], m[4], m[8], m[12],
		m[1], m[5], m[9], m[13],
		m[2], m[6], m[10], m[14],
		m[3], m[7], m[11], m[15],
	)
}

func toVector3(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v.X(), v.Y(), v.Z())
}

// rgb normaliza uma cor para o uniform vec3 do shader.
func rgb(c color.RGBA) []float32 {
	return []float32{float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255}
}

// toCamera3D monta a câmera raylib equivalente à perspectiva da cena.
func toCamera3D(c *camera.Perspective) rl.Camera3D {
	return rl.Camera3D{
		Position:   toVector3(c.Position),
		Target:     toVector3(c.Target()),
		Up:         rl.NewVector3(0, 1, 0),
		Fovy:       c.FOV,
		Projection: rl.CameraPerspective,
	}
}
