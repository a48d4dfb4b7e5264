package storage

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "foto.jpg", "foto.jpg"},
		{"spaces", "minha foto.jpg", "minha_foto.jpg"},
		{"accents stripped", "férias.png", "frias.png"},
		{"path chars stripped", "../../etc/passwd", "....etcpasswd"},
		{"kept set", "a-b_c.1.JPG", "a-b_c.1.JPG"},
		{"all stripped", "<<<>>>", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SanitizeName(tc.in))
		})
	}
}

func TestObjectName_TimestampPrefix(t *testing.T) {
	at := time.Date(2025, 12, 25, 21, 30, 0, 0, time.UTC)

	got := ObjectName(at, "minha foto.jpg")
	assert.Equal(t, "20251225213000_minha_foto.jpg", got)
}

func TestObjectName_SortsByTime(t *testing.T) {
	earlier := ObjectName(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), "a.jpg")
	later := ObjectName(time.Date(2025, 1, 2, 3, 4, 6, 0, time.UTC), "a.jpg")
	assert.Less(t, earlier, later)
}
