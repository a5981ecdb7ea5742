package anim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTweenReachesTarget(t *testing.T) {
	tl := NewTimeline()
	y := float32(-600)

	tl.To(&y, 1, 1.2, 0, Power3Out)
	for i := 0; i < 100; i++ {
		tl.Update(1.0 / 60)
	}

	assert.Equal(t, float32(1), y)
	assert.Equal(t, 0, tl.Active())
}

func TestTweenWaitsForDelay(t *testing.T) {
	tl := NewTimeline()
	y := float32(-600)

	tw := tl.To(&y, 1, 1, 0.5, Power3Out)

	tl.Update(0.25)
	assert.Equal(t, float32(-600), y)
	assert.False(t, tw.Started())

	tl.Update(0.5)
	assert.True(t, tw.Started())
	assert.Greater(t, y, float32(-600))
	assert.Less(t, y, float32(1))
}

func TestTweenReadsStartValueAfterDelay(t *testing.T) {
	tl := NewTimeline()
	v := float32(0)

	tl.To(&v, 10, 1, 1, Power1Out)
	v = 5 // alterado antes do tween começar
	tl.Update(1)
	assert.Equal(t, float32(5), v)

	tl.Update(1)
	assert.Equal(t, float32(10), v)
}

func TestToOverwritesPreviousTween(t *testing.T) {
	tl := NewTimeline()
	rot := float32(0)

	tl.To(&rot, 1, 1, 0, Power1Out)
	tl.Update(0.5)
	mid := rot

	tl.To(&rot, -1, 1, 0, Power1Out)
	assert.Equal(t, 1, tl.Active())

	tl.Update(0.1)
	assert.Less(t, rot, mid)
}

func TestZeroDurationAppliesImmediately(t *testing.T) {
	tl := NewTimeline()
	v := float32(3)

	tl.To(&v, 7, 0, 0, nil)
	assert.Equal(t, float32(7), v)
	assert.False(t, tl.Has(&v))
}

func TestZeroDurationAfterDelayJumpsToTarget(t *testing.T) {
	for _, steps := range [][]float32{{0.5}, {0.25, 0.25}, {0.3, 0.4}} {
		tl := NewTimeline()
		v := float32(-600)

		tl.To(&v, 1, 0, 0.5, nil)
		for _, dt := range steps {
			tl.Update(dt)
		}
		assert.Equal(t, float32(1), v, steps)
		assert.Equal(t, 0, tl.Active(), steps)
	}
}

func TestEasingCurvesHitEndpoints(t *testing.T) {
	curves := map[string]func(t, b, c, d float32) float32{
		"power1Out":   Power1Out,
		"power3Out":   Power3Out,
		"power3InOut": Power3InOut,
	}
	for name, curve := range curves {
		t.Run(name, func(t *testing.T) {
			assert.InDelta(t, 0, curve(0, 0, 1, 1), 1e-6)
			assert.InDelta(t, 1, curve(1, 0, 1, 1), 1e-6)
		})
	}
}

func TestInOutCurveIsSymmetric(t *testing.T) {
	assert.InDelta(t, 0.5, Power3InOut(0.5, 0, 1, 1), 1e-6)
}

func TestOutCurvesLeadLinear(t *testing.T) {
	// Curvas "out" começam rápido: na metade já passaram da metade.
	assert.Greater(t, Power3Out(0.5, 0, 1, 1), float32(0.5))
	assert.Greater(t, Power1Out(0.5, 0, 1, 1), float32(0.5))
}
