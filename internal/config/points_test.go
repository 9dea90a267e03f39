package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/elemental/internal/game/pointroll"
)

func TestParsePointsSpec(t *testing.T) {
	tests := []struct {
		raw     string
		want    pointroll.Spec
		wantErr bool
	}{
		{"", pointroll.None(), false},
		{"none", pointroll.None(), false},
		{" NONE ", pointroll.None(), false},
		{"73", pointroll.Fixed(73), false},
		{"0", pointroll.Fixed(0), false},
		{"50-100", pointroll.Range(50, 100), false},
		{" 20 - 40 ", pointroll.Range(20, 40), false},
		{"40-40", pointroll.Range(40, 40), false},
		{"100-50", pointroll.Range(100, 50), false},
		{"-5", pointroll.None(), true},
		{"abc", pointroll.None(), true},
		{"10-", pointroll.None(), true},
		{"1.5", pointroll.None(), true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParsePointsSpec(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSpecCache(t *testing.T) {
	c := NewSpecCache()

	assert.Equal(t, pointroll.Range(50, 100), c.Get("50-100"))
	assert.Equal(t, pointroll.None(), c.Get("garbage"))
	assert.Equal(t, pointroll.Range(50, 100), c.Get("50-100"))
	assert.Equal(t, 2, c.Len())

	c.Invalidate()
	assert.Zero(t, c.Len())
	assert.Equal(t, pointroll.Fixed(7), c.Get("7"))
}
