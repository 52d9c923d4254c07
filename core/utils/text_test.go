package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Guápiles", "guapiles"},
		{"  GUAPILES ", "guapiles"},
		{"Pérez Zeledón", "perez zeledon"},
		{"Cristian Bolaños", "cristian bolanos"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "perez-zeledon", Slug("Pérez Zeledón"))
	assert.Equal(t, "la-cruz", Slug(" La Cruz"))
}

func TestToString(t *testing.T) {
	assert.Equal(t, "", ToString(nil))
	assert.Equal(t, "C170135", ToString("C170135"))
	assert.Equal(t, "170135", ToString(float64(170135)))
	assert.Equal(t, "1.5", ToString(1.5))
	assert.Equal(t, "abc", ToString([]byte("abc")))
	assert.Equal(t, "true", ToString(true))
}
