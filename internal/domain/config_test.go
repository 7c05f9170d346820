package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoardConfig_Validate(t *testing.T) {
	valid := func() *BoardConfig {
		return &BoardConfig{
			DayStartHour:    10,
			DayEndHour:      26,
			IntervalMinutes: 30,
			RolloverHour:    2,
		}
	}

	t.Run("конфигурация по умолчанию валидна", func(t *testing.T) {
		require.NoError(t, DefaultBoardConfig().Validate())
	})

	t.Run("окно через полночь валидно", func(t *testing.T) {
		require.NoError(t, valid().Validate())
	})

	t.Run("окно без перехода через полночь валидно", func(t *testing.T) {
		cfg := valid()
		cfg.DayEndHour = 20
		cfg.RolloverHour = 0
		require.NoError(t, cfg.Validate())
	})

	tests := []struct {
		name   string
		mutate func(*BoardConfig)
	}{
		{"конец раньше начала", func(c *BoardConfig) { c.DayEndHour = 9 }},
		{"конец равен началу", func(c *BoardConfig) { c.DayEndHour = c.DayStartHour }},
		{"окно длиннее суток", func(c *BoardConfig) { c.DayStartHour = 0; c.DayEndHour = 25 }},
		{"нулевой интервал", func(c *BoardConfig) { c.IntervalMinutes = 0 }},
		{"отрицательный интервал", func(c *BoardConfig) { c.IntervalMinutes = -30 }},
		{"интервал больше максимума", func(c *BoardConfig) { c.IntervalMinutes = 300 }},
		{"час начала вне диапазона", func(c *BoardConfig) { c.DayStartHour = 24 }},
		{"отрицательный час переката", func(c *BoardConfig) { c.RolloverHour = -1 }},
		{"час переката больше максимума", func(c *BoardConfig) { c.RolloverHour = 13 }},
		{"перекат раньше конца окна", func(c *BoardConfig) { c.DayEndHour = 27; c.RolloverHour = 2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestBoardConfig_WrapsPastMidnight(t *testing.T) {
	cfg := DefaultBoardConfig()
	assert.True(t, cfg.WrapsPastMidnight())

	cfg.DayEndHour = 20
	assert.False(t, cfg.WrapsPastMidnight())

	cfg.DayEndHour = 24
	assert.False(t, cfg.WrapsPastMidnight())
}
