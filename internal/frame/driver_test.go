package frame

import (
	"context"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"Skyline/internal/anim"
	"Skyline/internal/config"
	"Skyline/internal/input"
	"Skyline/internal/metrics"
	"Skyline/internal/scene"
)

type mockHost struct {
	mock.Mock
	pointer *input.Sample
	width   int
	height  int
}

func (h *mockHost) ShouldClose() bool { return h.Called().Bool(0) }

func (h *mockHost) FrameTime() float32 { return 1.0 / 60 }

func (h *mockHost) PollInput(tr *input.Tracker) {
	if h.pointer != nil {
		tr.MovePointer(h.pointer.X, h.pointer.Y, h.width, h.height)
	}
}

func (h *mockHost) Resized() (int, int, bool) {
	args := h.Called()
	return args.Int(0), args.Int(1), args.Bool(2)
}

func (h *mockHost) Render(st *scene.State) { h.Called(st) }

func newDriver(t *testing.T, host Host, tilts <-chan input.Sample) (*Driver, *scene.State, *input.Tracker) {
	t.Helper()
	cfg := config.DefaultConfig()
	st, err := scene.Build(cfg.Scene, 1280, 720)
	require.NoError(t, err)

	tr := input.NewTracker(cfg.Input.PointerDivisor, cfg.Input.TiltDivisor)
	d := New(host, st, tr, anim.NewTimeline(), Options{Tilts: tilts, TurnDuration: 1}, zap.NewNop())
	return d, st, tr
}

func TestTickRendersOncePerFrame(t *testing.T) {
	host := &mockHost{}
	host.On("Resized").Return(0, 0, false)
	host.On("Render", mock.Anything).Return()

	d, st, _ := newDriver(t, host, nil)
	d.Tick(1.0 / 60)
	d.Tick(1.0 / 60)

	host.AssertNumberOfCalls(t, "Render", 2)
	host.AssertCalled(t, "Render", st)
	assert.Equal(t, uint64(2), d.Frames())
}

func TestRotationFollowsPointer(t *testing.T) {
	// ponteiro em (500, -300) relativo ao centro de 1280x720
	host := &mockHost{pointer: &input.Sample{X: 1140, Y: 60}, width: 1280, height: 720}
	host.On("Resized").Return(0, 0, false)
	host.On("Render", mock.Anything).Return()

	d, st, tr := newDriver(t, host, nil)
	d.Tick(1.0 / 60)

	target := tr.RotationTarget()
	assert.InDelta(t, 0.05, target.Yaw, 1e-6)
	assert.InDelta(t, -0.03, target.Pitch, 1e-6)

	// rotação anda em direção ao alvo, sem saltar
	assert.Greater(t, st.Rotation.Y, float32(0))
	assert.Less(t, st.Rotation.Y, float32(0.05))
	assert.Less(t, st.Rotation.X, float32(0))

	for i := 0; i < 600; i++ {
		d.Tick(1.0 / 60)
	}
	assert.InDelta(t, 0.05, st.Rotation.Y, 1e-3)
	assert.InDelta(t, -0.03, st.Rotation.X, 1e-3)
}

func TestTiltSamplesOverridePointer(t *testing.T) {
	host := &mockHost{pointer: &input.Sample{X: 1140, Y: 60}, width: 1280, height: 720}
	host.On("Resized").Return(0, 0, false)
	host.On("Render", mock.Anything).Return()

	tilts := make(chan input.Sample, 4)
	d, st, tr := newDriver(t, host, tilts)
	tr.SetTiltSupported(true)

	tilts <- input.Sample{X: 1, Y: 1}
	tilts <- input.Sample{X: 8, Y: -4}
	for i := 0; i < 600; i++ {
		d.Tick(1.0 / 60)
	}

	assert.Equal(t, input.Sample{X: 8, Y: -4}, tr.LastTilt())
	assert.InDelta(t, 0.2, st.Rotation.Y, 1e-3)
	assert.InDelta(t, -0.1, st.Rotation.X, 1e-3)
}

func TestClosedTiltChannelIsIgnored(t *testing.T) {
	host := &mockHost{}
	host.On("Resized").Return(0, 0, false)
	host.On("Render", mock.Anything).Return()

	tilts := make(chan input.Sample)
	close(tilts)
	d, _, _ := newDriver(t, host, tilts)

	d.Tick(1.0 / 60)
	d.Tick(1.0 / 60)
	assert.Equal(t, uint64(2), d.Frames())
}

func TestResizeUpdatesCameraAspect(t *testing.T) {
	host := &mockHost{}
	host.On("Resized").Return(600, 600, true).Once()
	host.On("Resized").Return(0, 0, false)

	var rendered mgl32.Mat4
	host.On("Render", mock.Anything).Run(func(args mock.Arguments) {
		rendered = args.Get(0).(*scene.State).Camera.Projection()
	}).Return()

	d, st, _ := newDriver(t, host, nil)
	d.Tick(1.0 / 60)

	cam := st.Camera
	assert.Equal(t, float32(1), cam.Aspect)
	assert.Equal(t, mgl32.Perspective(mgl32.DegToRad(cam.FOV), 1, cam.Near, cam.Far), rendered)
}

func TestHooksRunBeforeRender(t *testing.T) {
	host := &mockHost{}
	host.On("Resized").Return(0, 0, false)

	var order []string
	host.On("Render", mock.Anything).Run(func(mock.Arguments) { order = append(order, "render") }).Return()

	d, _, _ := newDriver(t, host, nil)
	d.OnTick(func() { order = append(order, "hook") })
	d.Tick(1.0 / 60)

	assert.Equal(t, []string{"hook", "render"}, order)
}

func TestRunStopsWhenHostCloses(t *testing.T) {
	host := &mockHost{}
	host.On("ShouldClose").Return(false).Times(3)
	host.On("ShouldClose").Return(true)
	host.On("Resized").Return(0, 0, false)
	host.On("Render", mock.Anything).Return()

	m := metrics.New()
	cfg := config.DefaultConfig()
	st, err := scene.Build(cfg.Scene, 800, 600)
	require.NoError(t, err)
	d := New(host, st, input.NewTracker(10000, 40), anim.NewTimeline(), Options{Metrics: m}, zap.NewNop())

	require.NoError(t, d.Run(context.Background()))
	assert.Equal(t, uint64(3), d.Frames())
	assert.Equal(t, float64(3), testutil.ToFloat64(m.Frames))
}

func TestRunStopsOnCancel(t *testing.T) {
	host := &mockHost{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d, _, _ := newDriver(t, host, nil)
	assert.ErrorIs(t, d.Run(ctx), context.Canceled)
	host.AssertNotCalled(t, "Render", mock.Anything)
}
