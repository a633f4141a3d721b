package create_booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateDate(t *testing.T) {
	// Дата события приходит как UTC-полночь после парсинга YYYY-MM-DD
	today := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		event   time.Time
		now     time.Time
		wantErr bool
	}{
		{
			name:  "today accepted",
			event: today,
			now:   time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			name:  "future accepted",
			event: today.AddDate(0, 1, 0),
			now:   time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			name:  "today accepted with server clock behind UTC",
			event: today,
			now:   time.Date(2026, 9, 1, 18, 0, 0, 0, time.FixedZone("EST", -5*3600)),
		},
		{
			name:  "tomorrow accepted with server clock ahead of UTC",
			event: today.AddDate(0, 0, 1),
			now:   time.Date(2026, 9, 2, 0, 30, 0, 0, time.FixedZone("NPT", 5*3600+45*60)),
		},
		{
			name:    "yesterday rejected",
			event:   today.AddDate(0, 0, -1),
			now:     time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateDate(tt.event, tt.now)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidDate)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
