package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCaptureFilename(t *testing.T) {
	var tests = []struct {
		prefix string
		index  int
		want   string
	}{
		{"img", 3, "img3.png"},
		{"img", 4, "img4.png"},
		{"", 0, "0.png"},
		{"left_", 12, "left_12.png"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, CaptureFilename(tt.prefix, tt.index))
		})
	}
}

func TestCapturePath(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "img3.png"), CapturePath("out", "img", 3))
}

func TestEnsureDir(t *testing.T) {
	dir := t.TempDir()
	assert.NoError(t, EnsureDir(dir))

	file := filepath.Join(dir, "f")
	assert.NoError(t, os.WriteFile(file, nil, 0644))
	assert.Error(t, EnsureDir(file))
	assert.Error(t, EnsureDir(filepath.Join(dir, "missing")))
}
