package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWarrantyEnd(t *testing.T) {
	tests := []struct {
		name  string
		buy   time.Time
		years int
		want  time.Time
	}{
		{"two years", date(2024, time.August, 9), 2, date(2026, time.August, 9)},
		{"new year", date(2024, time.January, 1), 2, date(2026, time.January, 1)},
		{"leap day clamps", date(2024, time.February, 29), 2, date(2026, time.February, 28)},
		{"leap day to leap year", date(2024, time.February, 29), 4, date(2028, time.February, 29)},
		{"custom length", date(2023, time.December, 31), 3, date(2026, time.December, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WarrantyEnd(tt.buy, tt.years))
		})
	}
}

func TestPage_TotalPages(t *testing.T) {
	assert.Equal(t, 0, Page[Product]{Size: 20, Total: 0}.TotalPages())
	assert.Equal(t, 1, Page[Product]{Size: 20, Total: 20}.TotalPages())
	assert.Equal(t, 2, Page[Product]{Size: 20, Total: 21}.TotalPages())
	assert.Equal(t, 0, Page[Product]{Size: 0, Total: 5}.TotalPages())
}

func TestPageRequest_Offset(t *testing.T) {
	assert.Equal(t, 40, PageRequest{Page: 2, Size: 20}.Offset())
}
