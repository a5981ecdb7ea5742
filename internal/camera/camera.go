package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Perspective é a câmera fixa da cena.
// A posição e a inclinação não mudam; quem gira é a cena.
type Perspective struct {
	FOV    float32 // vertical, em graus
	Aspect float32
	Near   float32
	Far    float32

	Position  mgl32.Vec3
	RotationX float32 // inclinação em radianos (negativo olha para baixo)

	projection mgl32.Mat4
}

// New cria a câmera e já calcula a projeção.
func New(fov, near, far float32, position mgl32.Vec3, rotationX float32, width, height int) *Perspective {
	c := &Perspective{
		FOV:       fov,
		Near:      near,
		Far:       far,
		Position:  position,
		RotationX: rotationX,
		Aspect:    1,
	}
	c.SetAspect(width, height)
	return c
}

// SetAspect atualiza o aspecto após um redimensionamento e recalcula a projeção.
// Tamanhos nulos (janela minimizada) mantêm o aspecto anterior.
func (c *Perspective) SetAspect(width, height int) {
	if width > 0 && height > 0 {
		c.Aspect = float32(width) / float32(height)
	}
	c.UpdateProjection()
}

// UpdateProjection recalcula a matriz de projeção a partir de FOV, aspecto e planos.
func (c *Perspective) UpdateProjection() {
	c.projection = mgl32.Perspective(mgl32.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

// Projection retorna a última projeção calculada.
func (c *Perspective) Projection() mgl32.Mat4 {
	return c.projection
}

// Forward é a direção de visão: -Z girado por RotationX em torno de X.
func (c *Perspective) Forward() mgl32.Vec3 {
	s, co := math.Sincos(float64(c.RotationX))
	return mgl32.Vec3{0, float32(s), float32(-co)}
}

// Target é um ponto à frente da câmera, usado pelo raylib como "look at".
func (c *Perspective) Target() mgl32.Vec3 {
	return c.Position.Add(c.Forward().Mul(1000))
}

// View retorna a matriz de visão.
func (c *Perspective) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target(), mgl32.Vec3{0, 1, 0})
}
