package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	err := New("test error")
	assert.NotNil(t, err)
	assert.Equal(t, "test error", err.Error())

	err = Newf("formatted %s", "error")
	assert.NotNil(t, err)
	assert.Equal(t, "formatted error", err.Error())

	var appErr *ApplicationError
	assert.True(t, As(err, &appErr))
	assert.Equal(t, "formatted error", appErr.Error())
	assert.Equal(t, Unknown, appErr.Kind())
}

func TestWrapping(t *testing.T) {
	origErr := New("original error")
	wrappedErr := Wrap(origErr, "wrapped")
	assert.NotNil(t, wrappedErr)
	assert.Equal(t, "wrapped: original error", wrappedErr.Error())

	unwrappedErr := Unwrap(wrappedErr)
	assert.Equal(t, origErr, unwrappedErr)

	wrappedFormatted := Wrapf(origErr, "formatted %s", "wrapper")
	assert.NotNil(t, wrappedFormatted)
	assert.Equal(t, "formatted wrapper: original error", wrappedFormatted.Error())

	// Wrapping nil returns nil
	assert.Nil(t, Wrap(nil, "wrapper"))
	assert.Nil(t, Wrapf(nil, "formatted %s", "wrapper"))

	deepWrapped := Wrap(wrappedErr, "deeper")
	assert.Equal(t, "deeper: wrapped: original error", deepWrapped.Error())

	assert.True(t, Is(wrappedErr, origErr))
	assert.True(t, Is(deepWrapped, origErr))
}

func TestBrightnessError(t *testing.T) {
	bErr := NewBrightnessError("cannot set brightness", 1, BrightnessSetFailed, nil)
	assert.Equal(t, "cannot set brightness: monitor 1", bErr.Error())
	assert.Equal(t, 1, bErr.Monitor())
	assert.Equal(t, BrightnessSetFailed, bErr.Kind())

	origErr := fmt.Errorf("permission denied")
	bErr = NewBrightnessError("cannot set brightness", 1, BrightnessSetFailed, origErr)
	assert.Equal(t, "cannot set brightness: monitor 1: permission denied", bErr.Error())
	assert.Equal(t, origErr, Unwrap(bErr))

	assert.True(t, IsBrightnessSetFailed(bErr))
	assert.False(t, IsBrightnessQueryFailed(bErr))
	assert.False(t, IsMonitorNotFound(bErr))

	// Negative monitor index falls back to the plain message
	enumErr := NewBrightnessError("cannot list monitors", -1, MonitorEnumerationFailed, origErr)
	assert.Equal(t, "cannot list monitors: permission denied", enumErr.Error())
}

func TestConfigError(t *testing.T) {
	configErr := NewConfigError("invalid value", "step", InvalidConfig, nil)
	assert.Equal(t, "invalid value: step", configErr.Error())
	assert.Equal(t, "step", configErr.Param())
	assert.Equal(t, InvalidConfig, configErr.Kind())

	origErr := fmt.Errorf("must be positive")
	configErr = NewConfigError("invalid value", "step", InvalidConfig, origErr)
	assert.Equal(t, "invalid value: step: must be positive", configErr.Error())

	assert.True(t, IsInvalidConfig(configErr))
	assert.False(t, IsInvalidConfig(New("other")))
}

func TestIsMatchesByKind(t *testing.T) {
	notFound := NewBrightnessError("no such monitor", 4, MonitorNotFound, nil)
	assert.True(t, errors.Is(notFound, ErrMonitorNotFound))
	assert.True(t, errors.Is(Wrap(notFound, "select"), ErrMonitorNotFound))

	setFailed := NewBrightnessError("set", 0, BrightnessSetFailed, nil)
	assert.False(t, errors.Is(setFailed, ErrMonitorNotFound))

	assert.True(t, errors.Is(NewPresetError("Disco"), ErrPresetNotFound))
	assert.True(t, IsPresetNotFound(NewPresetError("Disco")))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, Unknown, KindOf(fmt.Errorf("plain")))
	assert.Equal(t, Unknown, KindOf(nil))
	assert.Equal(t, BrightnessQueryFailed, KindOf(NewBrightnessError("q", 0, BrightnessQueryFailed, nil)))
	assert.Equal(t, InvalidConfig, KindOf(fmt.Errorf("load: %w", ErrInvalidConfig)))
}

func TestErrorKindString(t *testing.T) {
	assert.Equal(t, "brightness_set_failed", BrightnessSetFailed.String())
	assert.Equal(t, "monitor_enumeration_failed", MonitorEnumerationFailed.String())
	assert.Equal(t, "unknown", ErrorKind(99).String())
}
