package brightness

import (
	"fmt"
	"testing"

	"brightd/internal/backlight"
	"brightd/internal/config"
	"brightd/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeView struct {
	label     string
	slider    Level
	indicator float64
	updates   int
}

func (v *fakeView) SetLabel(text string)          { v.label = text; v.updates++ }
func (v *fakeView) SetSlider(level Level)         { v.slider = level }
func (v *fakeView) SetIndicator(fraction float64) { v.indicator = fraction }

type viewSet struct {
	views map[int]*fakeView
}

func (s *viewSet) factory(m backlight.Monitor, _ Level) View {
	v := &fakeView{}
	s.views[m.Index] = v
	return v
}

func twoMonitors() *backlight.Memory {
	return backlight.NewMemory(
		backlight.Monitor{Index: 0, Name: "intel_backlight"},
		backlight.Monitor{Index: 1, Name: "ddcci1"},
	)
}

func setup(t *testing.T, p backlight.Provider) (*Synchronizer, *Registry, *viewSet) {
	t.Helper()
	views := &viewSet{views: map[int]*fakeView{}}
	s := NewSynchronizer(p, DefaultFallbackLevel)
	reg := s.Initialize(views.factory)
	require.NotNil(t, reg)
	return s, reg, views
}

func TestClamp(t *testing.T) {
	assert.Equal(t, Level(0), Clamp(-3))
	assert.Equal(t, Level(100), Clamp(103))
	assert.Equal(t, Level(42), Clamp(42))
	assert.InDelta(t, 0.42, Level(42).Fraction(), 1e-9)
	assert.Equal(t, "42%", Level(42).String())
}

func TestInitialize(t *testing.T) {
	p := twoMonitors()
	p.SetLevel(0, 35)
	p.SetLevel(1, 80)

	_, reg, views := setup(t, p)
	require.Equal(t, 2, reg.Len())
	assert.False(t, reg.Synthetic())
	assert.Equal(t, []backlight.Monitor{
		{Index: 0, Name: "intel_backlight"},
		{Index: 1, Name: "ddcci1"},
	}, reg.Monitors())

	assert.Equal(t, Level(35), reg.At(0).Level())
	assert.Equal(t, "Monitor 0: 35%", views.views[0].label)
	assert.Equal(t, "Monitor 1: 80%", views.views[1].label)
	assert.InDelta(t, 0.8, views.views[1].indicator, 1e-9)
	assert.Equal(t, Level(80), views.views[1].slider)
}

func TestInitializeQueryFailureFallsBack(t *testing.T) {
	p := twoMonitors()
	p.SetLevel(1, 80)
	p.FailGet(0, fmt.Errorf("i2c timeout"))

	_, reg, views := setup(t, p)
	assert.Equal(t, Level(50), reg.At(0).Level())
	assert.Equal(t, "Monitor 0: 50%", views.views[0].label)
	assert.Equal(t, Level(80), reg.At(1).Level())
}

func TestInitializeEnumerationFailure(t *testing.T) {
	p := twoMonitors()
	p.FailList(fmt.Errorf("no backlight class"))

	_, reg, views := setup(t, p)
	require.Equal(t, 1, reg.Len())
	assert.True(t, reg.Synthetic())
	b, ok := reg.Get(0)
	require.True(t, ok)
	assert.Equal(t, 0, b.Monitor.Index)
	assert.Equal(t, Level(50), b.Level())
	assert.Equal(t, "Monitor 0: 50%", views.views[0].label)
}

func TestInitializeEmptyEnumeration(t *testing.T) {
	_, reg, _ := setup(t, backlight.NewMemory())
	require.Equal(t, 1, reg.Len())
	assert.True(t, reg.Synthetic())
	assert.Equal(t, Level(50), reg.At(0).Level())
}

func TestInitializeIsIdempotent(t *testing.T) {
	s, reg, _ := setup(t, twoMonitors())
	assert.Same(t, reg, s.Initialize(nil))
	assert.Same(t, reg, s.Registry())
}

func TestSetLevelUpdatesLabelForEveryLevel(t *testing.T) {
	p := twoMonitors()
	s, _, views := setup(t, p)

	for _, failing := range []bool{false, true} {
		if failing {
			p.FailSet(1, fmt.Errorf("write refused"))
		}
		for l := 0; l <= 100; l++ {
			res := s.SetLevel(1, l)
			assert.Equal(t, fmt.Sprintf("Monitor 1: %d%%", l), views.views[1].label)
			assert.Equal(t, Level(l), res.Requested)
			assert.Equal(t, !failing, res.OK())
		}
	}
}

func TestSetLevelProviderFailure(t *testing.T) {
	p := twoMonitors()
	p.SetLevel(0, 60)
	s, reg, views := setup(t, p)
	p.FailSet(0, fmt.Errorf("permission denied"))

	res := s.SetLevel(0, 10)
	require.False(t, res.OK())
	assert.True(t, errors.IsBrightnessSetFailed(res.Err))
	assert.Equal(t, Level(10), res.Requested)

	// Display follows the request, hardware keeps its value
	assert.Equal(t, "Monitor 0: 10%", views.views[0].label)
	assert.InDelta(t, 0.1, views.views[0].indicator, 1e-9)
	assert.Equal(t, Level(10), reg.At(0).Level())
	assert.Equal(t, 60, p.Level(0))

	// Reconcile brings the display back to the hardware value
	p.FailSet(0, nil)
	rec := s.Reconcile(0)
	require.True(t, rec.OK())
	assert.Equal(t, Level(60), rec.Requested)
	assert.Equal(t, "Monitor 0: 60%", views.views[0].label)
}

func TestSetLevelClampsAndRejectsUnknownMonitor(t *testing.T) {
	p := twoMonitors()
	s, _, views := setup(t, p)

	res := s.SetLevel(0, 140)
	assert.Equal(t, Level(100), res.Requested)
	assert.Equal(t, 100, p.Level(0))

	before := views.views[0].updates
	res = s.SetLevel(9, 20)
	assert.True(t, errors.IsMonitorNotFound(res.Err))
	assert.Equal(t, before, views.views[0].updates)
}

func TestSetLevelOnSyntheticMonitor(t *testing.T) {
	p := backlight.NewMemory()
	p.FailList(fmt.Errorf("gone"))
	s, _, views := setup(t, p)

	// Provider knows nothing about the synthetic monitor; the display still
	// follows the request
	res := s.SetLevel(0, 70)
	assert.False(t, res.OK())
	assert.Equal(t, "Monitor 0: 70%", views.views[0].label)
}

func TestReconcileQueryFailureKeepsDisplay(t *testing.T) {
	p := twoMonitors()
	s, _, views := setup(t, p)
	s.SetLevel(1, 40)
	p.FailGet(1, fmt.Errorf("i2c timeout"))

	res := s.Reconcile(1)
	assert.True(t, errors.IsBrightnessQueryFailed(res.Err))
	assert.Equal(t, "Monitor 1: 40%", views.views[1].label)
}

func TestUninitialized(t *testing.T) {
	s := NewSynchronizer(twoMonitors(), DefaultFallbackLevel)
	assert.True(t, errors.IsMonitorNotFound(s.SetLevel(0, 10).Err))
	assert.True(t, errors.IsMonitorNotFound(s.Reconcile(0).Err))
	assert.Nil(t, s.Registry())
}

func newController(t *testing.T, p backlight.Provider) (*Controller, *viewSet) {
	t.Helper()
	s, _, views := setup(t, p)
	return NewController(s, config.New()), views
}

func TestAdjustByDeltaClamps(t *testing.T) {
	c, views := newController(t, twoMonitors())

	c.SetLevel(98)
	res := c.AdjustByDelta(5)
	assert.Equal(t, Level(100), res.Requested)
	assert.Equal(t, Level(100), c.Level())
	assert.Equal(t, "Monitor 0: 100%", views.views[0].label)

	c.SetLevel(2)
	res = c.AdjustByDelta(-5)
	assert.Equal(t, Level(0), res.Requested)
	assert.Equal(t, Level(0), c.Level())

	c.SetLevel(50)
	assert.Equal(t, Level(55), c.StepUp().Requested)
	assert.Equal(t, Level(50), c.StepDown().Requested)
}

func TestPresets(t *testing.T) {
	p := twoMonitors()
	c, _ := newController(t, p)

	for _, start := range []int{0, 45, 100} {
		c.SetLevel(start)
		res, err := c.ApplyPreset("Night")
		require.NoError(t, err)
		assert.Equal(t, Level(30), res.Requested)
		assert.Equal(t, 30, p.Level(0))

		c.SetLevel(start)
		res, err = c.ApplyPreset("Gaming")
		require.NoError(t, err)
		assert.Equal(t, Level(90), res.Requested)
	}

	res, err := c.ApplyPreset("Reading")
	require.NoError(t, err)
	assert.Equal(t, Level(70), res.Requested)
	res, err = c.ApplyPreset("Movie")
	require.NoError(t, err)
	assert.Equal(t, Level(50), res.Requested)

	_, err = c.ApplyPreset("night")
	assert.True(t, errors.IsPresetNotFound(err))
	assert.Equal(t, Level(50), c.Level())
}

func TestBatterySaver(t *testing.T) {
	for _, before := range []int{0, 20, 73, 100} {
		c, _ := newController(t, twoMonitors())
		c.SetLevel(before)

		res := c.SetBatterySaver(true)
		assert.Equal(t, Level(20), res.Requested)
		assert.True(t, c.BatterySaver())

		c.SetLevel(before)
		res = c.SetBatterySaver(false)
		assert.Equal(t, Level(50), res.Requested)
		assert.False(t, c.BatterySaver())
	}
}

func TestSelectMonitorReappliesLevel(t *testing.T) {
	p := twoMonitors()
	p.SetLevel(1, 90)
	c, views := newController(t, p)
	assert.Equal(t, 0, c.Selected())

	c.SetLevel(35)
	res := c.SelectMonitor(1)
	require.True(t, res.OK())
	assert.Equal(t, 1, c.Selected())
	assert.Equal(t, 35, p.Level(1))
	assert.Equal(t, "Monitor 1: 35%", views.views[1].label)

	res = c.SelectMonitor(5)
	assert.True(t, errors.IsMonitorNotFound(res.Err))
	assert.Equal(t, 1, c.Selected())
}

func TestUpdateConfig(t *testing.T) {
	c, _ := newController(t, twoMonitors())

	cfg := config.New()
	cfg.Presets = []config.Preset{{Name: "Office", Level: 65}}
	cfg.Levels.Step = 10
	cfg.Levels.BatterySaver = 15
	c.UpdateConfig(cfg)

	assert.Equal(t, []config.Preset{{Name: "Office", Level: 65}}, c.Presets())
	assert.Equal(t, 10, c.Step())
	_, err := c.ApplyPreset("Night")
	assert.Error(t, err)
	assert.Equal(t, Level(15), c.SetBatterySaver(true).Requested)
}
