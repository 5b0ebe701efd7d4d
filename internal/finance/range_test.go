package finance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonthRange(t *testing.T) {
	start, end := MonthRange(2024, 2, time.UTC)

	assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), start)
	// 2024 artık yıl: ay 29 Şubat 23:59:59.999999'da biter
	assert.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, 999999000, time.UTC), end)

	start, end = MonthRange(2023, 12, time.UTC)
	assert.Equal(t, time.Date(2023, 12, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2023, 12, 31, 23, 59, 59, 999999000, time.UTC), end)
}

func TestDayRange(t *testing.T) {
	day := time.Date(2024, 3, 5, 14, 30, 0, 0, time.UTC)
	start, end := DayRange(day)

	assert.Equal(t, time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), start)
	// üst uç hariç: ertesi günün gece yarısı
	assert.Equal(t, time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC), end)
	assert.True(t, end.Sub(start) == 24*time.Hour)
}
