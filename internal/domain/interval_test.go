package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "midnight", input: "00:00", want: 0},
		{name: "morning", input: "09:00", want: 540},
		{name: "with minutes", input: "10:30", want: 630},
		{name: "end of day", input: "24:00", want: MinutesPerDay},
		{name: "past end of day", input: "24:01", wantErr: true},
		{name: "hours out of range", input: "25:00", wantErr: true},
		{name: "minutes out of range", input: "10:60", wantErr: true},
		{name: "garbage", input: "morning", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseClock(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInterval)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatClock(t *testing.T) {
	assert.Equal(t, "00:00", FormatClock(0))
	assert.Equal(t, "09:05", FormatClock(545))
	assert.Equal(t, "24:00", FormatClock(MinutesPerDay))
}

func TestNewTimeInterval(t *testing.T) {
	_, err := NewTimeInterval(540, 540)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = NewTimeInterval(600, 540)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = NewTimeInterval(-10, 540)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	_, err = NewTimeInterval(540, MinutesPerDay+1)
	assert.ErrorIs(t, err, ErrInvalidInterval)

	iv, err := NewTimeInterval(0, MinutesPerDay)
	require.NoError(t, err)
	assert.Equal(t, MinutesPerDay, iv.Duration())
}

func TestTimeInterval_Overlaps(t *testing.T) {
	a := TimeInterval{Start: 540, End: 600} // 09:00-10:00
	b := TimeInterval{Start: 600, End: 660} // 10:00-11:00

	// Полуинтервалы: касание границ не считается пересечением
	assert.False(t, a.Overlaps(b))
	assert.False(t, b.Overlaps(a))

	c := TimeInterval{Start: 590, End: 610}
	assert.True(t, a.Overlaps(c))
	assert.True(t, c.Overlaps(b))
}

func TestTimeInterval_Contains(t *testing.T) {
	slot := TimeInterval{Start: 540, End: 720} // 09:00-12:00

	assert.True(t, slot.Contains(TimeInterval{Start: 540, End: 720}))
	assert.True(t, slot.Contains(TimeInterval{Start: 600, End: 660}))
	assert.False(t, slot.Contains(TimeInterval{Start: 480, End: 600}))
	assert.False(t, slot.Contains(TimeInterval{Start: 660, End: 780}))
}

func TestTimeInterval_Subtract(t *testing.T) {
	slot := TimeInterval{Start: 540, End: 720} // 09:00-12:00

	t.Run("nothing removed", func(t *testing.T) {
		got := slot.Subtract(nil)
		assert.Equal(t, []TimeInterval{slot}, got)
	})

	t.Run("split in the middle", func(t *testing.T) {
		got := slot.Subtract([]TimeInterval{{Start: 600, End: 660}}) // 10:00-11:00
		assert.Equal(t, []TimeInterval{
			{Start: 540, End: 600},
			{Start: 660, End: 720},
		}, got)
	})

	t.Run("full removal", func(t *testing.T) {
		got := slot.Subtract([]TimeInterval{{Start: 480, End: 780}})
		assert.Empty(t, got)
	})

	t.Run("removal outside the slot", func(t *testing.T) {
		got := slot.Subtract([]TimeInterval{{Start: 780, End: 840}})
		assert.Equal(t, []TimeInterval{slot}, got)
	})

	t.Run("removal touching the start", func(t *testing.T) {
		got := slot.Subtract([]TimeInterval{{Start: 480, End: 600}})
		assert.Equal(t, []TimeInterval{{Start: 600, End: 720}}, got)
	})

	t.Run("overlapping removals are merged", func(t *testing.T) {
		got := slot.Subtract([]TimeInterval{
			{Start: 570, End: 630},
			{Start: 600, End: 660},
		})
		assert.Equal(t, []TimeInterval{
			{Start: 540, End: 570},
			{Start: 660, End: 720},
		}, got)
	})
}

func TestMergeIntervals(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.Nil(t, MergeIntervals(nil))
	})

	t.Run("adjacent intervals are glued", func(t *testing.T) {
		got := MergeIntervals([]TimeInterval{
			{Start: 600, End: 660},
			{Start: 540, End: 600},
		})
		assert.Equal(t, []TimeInterval{{Start: 540, End: 660}}, got)
	})

	t.Run("disjoint stay separate", func(t *testing.T) {
		got := MergeIntervals([]TimeInterval{
			{Start: 780, End: 840},
			{Start: 540, End: 600},
		})
		assert.Equal(t, []TimeInterval{
			{Start: 540, End: 600},
			{Start: 780, End: 840},
		}, got)
	})
}
