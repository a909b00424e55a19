package inspector

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/titan/components"
)

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag     string
		widget  Widget
		options map[string]string
	}{
		{"", WidgetAuto, map[string]string{}},
		{"bar,max:300", WidgetBar, map[string]string{"max": "300"}},
		{"angle", WidgetAngle, map[string]string{}},
		{"label,fmt:%.1f", WidgetLabel, map[string]string{"fmt": "%.1f"}},
		{"skip", WidgetSkip, map[string]string{}},
		{"mystery", WidgetAuto, map[string]string{}},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			w, opts := ParseTag(tt.tag)
			assert.Equal(t, tt.widget, w)
			assert.Equal(t, tt.options, opts)
		})
	}
}

func TestExtractFields_Boss(t *testing.T) {
	boss := &components.Boss{
		Activated:     true,
		Phase:         components.Phase3,
		Enraged:       true,
		AimDir:        math.Pi / 2,
		CurrentAttack: components.AttackLaser,
		Tunables:      components.DefaultBossTunables(),
	}

	fields := ExtractFields(boss)
	require.Len(t, fields, 5, "Tunables is skipped")

	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}
	assert.Equal(t, []string{"Activated", "Phase", "Enraged", "AimDir", "CurrentAttack"}, names)

	assert.Equal(t, WidgetBool, fields[0].Widget)
	assert.Equal(t, WidgetLabel, fields[1].Widget)
	assert.Equal(t, "phase3", FormatValue(fields[1].Value, ""))
	assert.Equal(t, WidgetAngle, fields[3].Widget)
	assert.Equal(t, "laser", FormatValue(fields[4].Value, ""))
}

func TestExtractFields_NonStruct(t *testing.T) {
	assert.Nil(t, ExtractFields(42))
	assert.Nil(t, ExtractFields((*components.Boss)(nil)))
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "1.50", FormatValue(1.5, ""))
	assert.Equal(t, "12.3", FormatValue(12.34, "%.1f"))
	assert.Equal(t, "critical", FormatValue(components.LifeCritical, ""))
	assert.Equal(t, "7", FormatValue(7, ""))
}

func TestGetMax(t *testing.T) {
	assert.Equal(t, 1.0, GetMax(nil))
	assert.Equal(t, 300.0, GetMax(map[string]string{"max": "300"}))
	assert.Equal(t, 1.0, GetMax(map[string]string{"max": "nope"}))
}

func TestFieldHeight(t *testing.T) {
	assert.Equal(t, int32(44), FieldHeight(Field{Widget: WidgetAngle, Value: 1.0}))
	assert.Equal(t, int32(18), FieldHeight(Field{Widget: WidgetBool, Value: true}))
	assert.Equal(t, int32(20), FieldHeight(Field{Widget: WidgetBool, Value: "yes"}))
	assert.Equal(t, int32(20), FieldHeight(Field{Widget: WidgetLabel, Value: "x"}))
}
