package impl

import (
	"testing"
	"time"

	"capwatch/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func TestStripHTML(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain text unchanged",
			input:    "Flooding in the valley",
			expected: "Flooding in the valley",
		},
		{
			name:     "br becomes newline",
			input:    "first<br>second<br/>third<BR />fourth",
			expected: "first\nsecond\nthird\nfourth",
		},
		{
			name:     "tags removed",
			input:    "<p>Stay <b>indoors</b></p>",
			expected: "Stay indoors",
		},
		{
			name:     "entities decoded",
			input:    "Wind &amp; rain &gt; 40 km/h",
			expected: "Wind & rain > 40 km/h",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, stripHTML(tt.input))
		})
	}
}

func TestReformatTimestamp(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		value    string
		expected string
	}{
		{
			name:     "other day keeps date",
			value:    "2024-03-10T08:30:00Z",
			expected: "10.03.2024 08:30",
		},
		{
			name:     "same day shortened to time",
			value:    "2024-03-15T09:45:00Z",
			expected: "09:45",
		},
		{
			name:     "without zone suffix",
			value:    "2024-02-01T18:05:00",
			expected: "01.02.2024 18:05",
		},
		{
			name:     "unparseable passed through",
			value:    "soon",
			expected: "soon",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, reformatTimestamp(tt.value, now))
		})
	}
}

func TestFormatNotification(t *testing.T) {
	t.Parallel()

	t.Run("joins non-empty parts", func(t *testing.T) {
		t.Parallel()

		info := entity.AlertInfo{
			Headline:    "Severe storm warning",
			Description: "Gusts up to 100 km/h expected.",
		}

		text := formatNotification(info, nil)
		assert.Equal(t, "Severe storm warning\nGusts up to 100 km/h expected.", text)
	})

	t.Run("leads with area names", func(t *testing.T) {
		t.Parallel()

		info := entity.AlertInfo{Headline: "Flood warning"}

		text := formatNotification(info, []string{"District A", "District B"})
		assert.Equal(t, "District A, District B\nFlood warning", text)
	})

	t.Run("appends timestamps and strips markup", func(t *testing.T) {
		t.Parallel()

		info := entity.AlertInfo{
			Headline:    "Heat advisory",
			Instruction: "Drink <b>water</b>.<br>Avoid the sun.",
			Effective:   "2020-06-01T10:00:00Z",
			Expires:     "2020-06-02T10:00:00Z",
		}

		text := formatNotification(info, nil)
		assert.Equal(t,
			"Heat advisory\nDrink water.\nAvoid the sun.\nEffective: 01.06.2020 10:00\nExpires: 02.06.2020 10:00",
			text)
	})
}
