package city

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"Skyline/internal/anim"
	"Skyline/internal/config"
)

func newGenerator(n int, block float32, seed uint64) *Generator {
	cfg := config.DefaultConfig()
	cfg.Scene.FieldSize = n
	cfg.Scene.BlockSize = block
	return NewGenerator(cfg.Scene, cfg.Animation, seed, zap.NewNop())
}

func TestPlaceProducesNSquaredBuildings(t *testing.T) {
	for _, tt := range []struct {
		n     int
		block float32
	}{{1, 1}, {2, 140}, {7, 33.5}, {30, 140}} {
		g, err := newGenerator(tt.n, tt.block, 1).Place(12)
		require.NoError(t, err)
		assert.Len(t, g.Children, tt.n*tt.n)
	}
}

func TestScaleRangeBeforeDepthSkew(t *testing.T) {
	g, err := newGenerator(30, 140, 42).Place(12)
	require.NoError(t, err)

	for _, b := range g.Children {
		assert.GreaterOrEqual(t, b.Scale.X(), float32(0.1))
		assert.Less(t, b.Scale.X(), float32(0.91))
		assert.Equal(t, b.Scale.X(), b.Scale.Z())

		// y recebeu o acréscimo de profundidade
		assert.InDelta(t, b.Scale.X()+b.Position.Z()/3500, b.Scale.Y(), 1e-5)
	}
}

func TestDelayIncreasesByStaggerStep(t *testing.T) {
	g, err := newGenerator(10, 140, 3).Place(12)
	require.NoError(t, err)

	for k := 1; k < len(g.Children); k++ {
		prev, cur := g.Children[k-1], g.Children[k]
		assert.LessOrEqual(t, prev.Delay, cur.Delay)
		assert.InDelta(t, 1.0/800, cur.Delay-prev.Delay, 1e-6)
	}
}

func TestOrderIsAscendingDepth(t *testing.T) {
	g, err := newGenerator(6, 140, 9).Place(12)
	require.NoError(t, err)

	for k := 1; k < len(g.Children); k++ {
		assert.LessOrEqual(t, g.Children[k-1].Position.Z(), g.Children[k].Position.Z())
	}
}

func TestGroupCentering(t *testing.T) {
	for _, tt := range []struct {
		n     int
		block float32
	}{{1, 10}, {2, 140}, {30, 140}, {5, 7.5}} {
		g, err := newGenerator(tt.n, tt.block, 1).Place(12)
		require.NoError(t, err)

		half := tt.block * float32(tt.n) / 2
		assert.Equal(t, mgl32.Vec3{half, 0, half}, g.Translation)
		assert.InDelta(t, math.Pi, g.Rotation.Y(), 1e-6)
	}
}

func TestTwoByTwoScenario(t *testing.T) {
	g, err := newGenerator(2, 140, 5).Place(12)
	require.NoError(t, err)

	got := make([][2]float32, 0, 4)
	for _, b := range g.Children {
		got = append(got, [2]float32{b.Position.X(), b.Position.Z()})
		assert.Equal(t, float32(-600), b.Position.Y())
	}

	// ordem estável z decrescente, invertida
	assert.Equal(t, [][2]float32{{140, 0}, {0, 0}, {140, 140}, {0, 140}}, got)
	assert.Equal(t, mgl32.Vec3{140, 0, 140}, g.Translation)
}

func TestFixedSeedIsDeterministic(t *testing.T) {
	a, err := newGenerator(8, 140, 77).Place(12)
	require.NoError(t, err)
	b, err := newGenerator(8, 140, 77).Place(12)
	require.NoError(t, err)

	require.Len(t, b.Children, len(a.Children))
	for k := range a.Children {
		assert.Equal(t, *a.Children[k], *b.Children[k])
	}
}

func TestCellMapsToPositionRegardlessOfSeed(t *testing.T) {
	for _, seed := range []uint64{1, 2, 3} {
		g, err := newGenerator(4, 140, seed).Place(12)
		require.NoError(t, err)

		seen := map[[2]float32]bool{}
		for _, b := range g.Children {
			seen[[2]float32{b.Position.X(), b.Position.Z()}] = true
		}
		for i := 0; i < 4; i++ {
			for j := 0; j < 4; j++ {
				assert.True(t, seen[[2]float32{float32(i) * 140, float32(j) * 140}])
			}
		}
	}
}

func TestPrototypeIndexIsClamped(t *testing.T) {
	g, err := newGenerator(10, 140, 11).Place(3)
	require.NoError(t, err)

	for _, b := range g.Children {
		assert.Less(t, b.Prototype, 3)
	}

	g, err = newGenerator(10, 140, 11).Place(40)
	require.NoError(t, err)
	for _, b := range g.Children {
		assert.Less(t, b.Prototype, 12)
	}
}

func TestPlaceWithoutPrototypesFails(t *testing.T) {
	_, err := newGenerator(2, 140, 1).Place(0)
	assert.ErrorIs(t, err, ErrNoPrototypes)
}

func TestLayoutSchedulesRiseAndFog(t *testing.T) {
	gen := newGenerator(3, 140, 1)
	tl := anim.NewTimeline()
	fogFar := float32(123)

	g, err := gen.Layout(12, tl, &fogFar)
	require.NoError(t, err)

	assert.Equal(t, 9+1, tl.Active())
	assert.Equal(t, float32(0), fogFar)

	// depois do último atraso + duração tudo chegou
	for i := 0; i < 200; i++ {
		tl.Update(1.0 / 60)
	}
	assert.Equal(t, 0, tl.Active())
	assert.Equal(t, float32(4500), fogFar)
	for _, b := range g.Children {
		assert.Equal(t, float32(1), b.Position.Y())
	}
}

func TestNearerBuildingsRiseLater(t *testing.T) {
	gen := newGenerator(4, 140, 1)
	tl := anim.NewTimeline()
	var fogFar float32

	g, err := gen.Layout(12, tl, &fogFar)
	require.NoError(t, err)

	tl.Update(0.005) // só os primeiros 4 índices já começaram
	first, last := g.Children[0], g.Children[len(g.Children)-1]
	assert.Greater(t, first.Position.Y(), float32(-600))
	assert.Equal(t, float32(-600), last.Position.Y())
}

func TestGroupTransformRotatesAndCenters(t *testing.T) {
	g := &Group{Rotation: mgl32.Vec3{0, math.Pi, 0}, Translation: mgl32.Vec3{140, 0, 140}}
	p := g.Transform().Mul4x1(mgl32.Vec4{140, 0, 140, 1})

	assert.InDelta(t, 0, p.X(), 1e-3)
	assert.InDelta(t, 0, p.Z(), 1e-3)
}
