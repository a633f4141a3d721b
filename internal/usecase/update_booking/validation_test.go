package update_booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateDate_TimezoneIndependent(t *testing.T) {
	// Дата события приходит как UTC-полночь после парсинга YYYY-MM-DD
	event := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	// Вечер того же дня по серверным часам западнее UTC
	now := time.Date(2026, 9, 1, 18, 0, 0, 0, time.FixedZone("EST", -5*3600))
	assert.NoError(t, validateDate(event, now))

	now = time.Date(2026, 9, 2, 12, 0, 0, 0, time.UTC)
	assert.ErrorIs(t, validateDate(event, now), ErrInvalidDate)
}
