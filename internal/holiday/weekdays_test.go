package holiday

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeekdays(t *testing.T) {
	tests := []struct {
		in   string
		want []time.Weekday
	}{
		{"1,3", []time.Weekday{time.Monday, time.Wednesday}},
		{"lun, mer", []time.Weekday{time.Monday, time.Wednesday}},
		{"Martedì,thu", []time.Weekday{time.Tuesday, time.Thursday}},
		{"0,dom,sun", []time.Weekday{time.Sunday}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseWeekdays(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	for _, bad := range []string{"", "7", "lunes", " , "} {
		_, err := ParseWeekdays(bad)
		assert.Error(t, err, bad)
	}
}
