package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWorkDayOf(t *testing.T) {
	march1 := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	march2 := time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "midday belongs to its own date",
			now:  time.Date(2025, 3, 1, 14, 0, 0, 0, time.UTC),
			want: march1,
		},
		{
			name: "half past one still belongs to the previous day",
			now:  time.Date(2025, 3, 2, 1, 30, 0, 0, time.UTC),
			want: march1,
		},
		{
			name: "rollover hour sharp opens the new day",
			now:  time.Date(2025, 3, 2, 2, 0, 0, 0, time.UTC),
			want: march2,
		},
		{
			name: "just before rollover",
			now:  time.Date(2025, 3, 2, 1, 59, 59, 0, time.UTC),
			want: march1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WorkDayOf(tt.now, DefaultRolloverHour))
		})
	}
}

func TestWorkDayOf_ZeroRollover(t *testing.T) {
	// При rollover 0 бизнес-дата совпадает с календарной
	now := time.Date(2025, 3, 2, 0, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 3, 2, 0, 0, 0, 0, time.UTC), WorkDayOf(now, 0))
}

func TestIsSameWorkDay(t *testing.T) {
	evening := time.Date(2025, 3, 1, 23, 30, 0, 0, time.UTC)
	pastMidnight := time.Date(2025, 3, 2, 1, 15, 0, 0, time.UTC)
	nextMorning := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)

	assert.True(t, IsSameWorkDay(evening, pastMidnight, DefaultRolloverHour))
	assert.False(t, IsSameWorkDay(evening, nextMorning, DefaultRolloverHour))
}
