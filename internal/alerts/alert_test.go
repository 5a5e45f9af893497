package alerts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogueIsComplete(t *testing.T) {
	for a := Stop; a <= Low; a++ {
		assert.NotEmpty(t, a.MessageID(), "%v", a)
		assert.NotEmpty(t, a.Text(), "%v", a)
		assert.NotEqual(t, VibrationNone, a.Vibration(), "%v", a)

		parsed, err := ParseAlert(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, parsed)
	}
	assert.Empty(t, None.MessageID())
	assert.Equal(t, VibrationNone, None.Vibration())
}

func TestVibrationMapping(t *testing.T) {
	tests := map[Alert]VibrationPattern{
		Stop:     VibrationDanger,
		Narrow:   VibrationGeneric,
		StepUp:   VibrationDown,
		StepDown: VibrationUp,
		LeftHuge: VibrationLeft,
		RightBig: VibrationRight,
	}
	for a, want := range tests {
		assert.Equal(t, want, a.Vibration(), "%v", a)
	}
}

func TestPriorityOrder(t *testing.T) {
	assert.Equal(t, 0, Stop.Priority())
	assert.Less(t, Center.Priority(), StepUp.Priority())
	assert.Less(t, Pit.Priority(), High.Priority())
	assert.Greater(t, None.Priority(), Low.Priority())
}

func TestParseAlertUnknown(t *testing.T) {
	_, err := ParseAlert("BOGUS")
	assert.Error(t, err)

	a, err := ParseAlert("NONE")
	require.NoError(t, err)
	assert.Equal(t, None, a)
	assert.Equal(t, "Alert(99)", Alert(99).String())
}

func TestIsVertical(t *testing.T) {
	for _, a := range []Alert{StepUp, StepDown, Pit, AlmostOnStep} {
		assert.True(t, a.IsVertical(), "%v", a)
	}
	for _, a := range []Alert{None, Stop, Center, Low, LeftHuge} {
		assert.False(t, a.IsVertical(), "%v", a)
	}
}
