// Package scene monta o ambiente estático: fundo, neblina, chão, luz e câmera.
package scene

import (
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"

	"Skyline/internal/camera"
	"Skyline/internal/city"
	"Skyline/internal/config"
)

// Fog é uma neblina linear: visibilidade total antes de Near, nenhuma depois de Far.
type Fog struct {
	Color     color.RGBA
	Near, Far float32
}

// Plane é o chão, sem iluminação e visível dos dois lados.
type Plane struct {
	Size     float32
	Color    color.RGBA
	Rotation mgl32.Vec3
}

// PointLight é a única luz da cena.
type PointLight struct {
	Color     color.RGBA
	Intensity float32
	Position  mgl32.Vec3
}

// Rotation é a rotação da cena inteira (Euler XYZ, radianos).
type Rotation struct {
	X, Y float32
}

// Matrix retorna Rx * Ry.
func (r Rotation) Matrix() mgl32.Mat4 {
	return mgl32.HomogRotate3DX(r.X).Mul4(mgl32.HomogRotate3DY(r.Y))
}

// State é tudo que o renderer desenha a cada frame.
type State struct {
	Background    color.RGBA
	BuildingColor color.RGBA
	Fog           Fog
	Plane         Plane
	Light         PointLight
	Camera        *camera.Perspective
	Rotation      Rotation

	// Buildings fica nil até o modelo carregar.
	Buildings *city.Group
}

// Build cria o estado inicial da cena. width/height definem o aspecto da câmera.
func Build(cfg config.Scene, width, height int) (*State, error) {
	colors, err := parseColors(cfg.Colors)
	if err != nil {
		return nil, err
	}

	cam := cfg.Camera
	return &State{
		Background:    colors.Background,
		BuildingColor: colors.Building,
		Fog: Fog{
			Color: colors.Fog,
		},
		Plane: Plane{
			Size:     cfg.PlaneSize,
			Color:    colors.Plane,
			Rotation: mgl32.Vec3{math.Pi / 2, 0, 0},
		},
		Light: PointLight{
			Color:     colors.Light,
			Intensity: cfg.LightPower,
			Position:  mgl32.Vec3(cfg.LightPosition),
		},
		Camera: camera.New(cam.FOV, cam.Near, cam.Far, mgl32.Vec3(cam.Position), cam.RotationX, width, height),
	}, nil
}

// Palette é o esquema de cores já convertido.
type Palette struct {
	Background, Fog, Plane, Light, Building color.RGBA
}

func parseColors(s config.ColorScheme) (Palette, error) {
	var p Palette
	for _, c := range []struct {
		hex string
		dst *color.RGBA
	}{
		{s.Background, &p.Background},
		{s.Fog, &p.Fog},
		{s.Plane, &p.Plane},
		{s.Light, &p.Light},
		{s.Building, &p.Building},
	} {
		rgba, err := ParseHex(c.hex)
		if err != nil {
			return p, err
		}
		*c.dst = rgba
	}
	return p, nil
}

// ParseHex converte "#rrggbb" ou "#rgb" em uma cor opaca.
func ParseHex(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, errors.Wrapf(config.ErrInvalidColor, "%q", hex)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
