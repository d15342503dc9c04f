package fare

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShiftRule_Classify(t *testing.T) {
	tests := []struct {
		hour int
		want Shift
	}{
		{0, ShiftNight},
		{6, ShiftNight},
		{7, ShiftDay},
		{12, ShiftDay},
		{21, ShiftDay},
		{22, ShiftNight},
		{23, ShiftNight},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DefaultShiftRule.Classify(tt.hour), "hour %d", tt.hour)
	}
}

func TestShiftRule_Validate(t *testing.T) {
	tests := []struct {
		name    string
		rule    ShiftRule
		wantErr bool
	}{
		{"default", DefaultShiftRule, false},
		{"night at midnight", ShiftRule{DayStart: 6, NightStart: 24}, false},
		{"inverted", ShiftRule{DayStart: 22, NightStart: 7}, true},
		{"empty day", ShiftRule{DayStart: 7, NightStart: 7}, true},
		{"negative", ShiftRule{DayStart: -1, NightStart: 22}, true},
		{"past midnight", ShiftRule{DayStart: 7, NightStart: 25}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.rule.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestShift_MarshalText(t *testing.T) {
	data, err := json.Marshal(struct {
		Shift Shift `json:"shift"`
	}{ShiftNight})
	require.NoError(t, err)
	assert.JSONEq(t, `{"shift":"Night"}`, string(data))
}
