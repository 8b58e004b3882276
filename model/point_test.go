package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPoint(t *testing.T) {
	p := Point{X: 4, Y: 6}
	q := Point{X: 1, Y: 2}

	assert.Equal(t, Point{X: 3, Y: 4}, p.Sub(q))
	assert.Equal(t, "(4, 6)", p.String())
}

func TestClonePoints(t *testing.T) {
	assert.Nil(t, ClonePoints(nil))

	src := []Point{{X: 1, Y: 1}, {X: 2, Y: 2}}
	dst := ClonePoints(src)
	dst[0].X = 99

	assert.Equal(t, 1.0, src[0].X)
	assert.Len(t, dst, 2)
}
