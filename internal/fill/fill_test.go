package fill

import (
	"testing"

	"Snowfold/internal/geom"
	"Snowfold/internal/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func segment(a, b geom.Point) state.BakedPath {
	return state.BakedPath{
		Path: geom.Path{Cmds: []geom.Cmd{
			{Op: geom.MoveTo, Pts: []geom.Point{a}},
			{Op: geom.LineTo, Pts: []geom.Point{b}},
		}},
		Width: 4,
	}
}

// A closed square of strokes encloses paper; everything else is cut away.
func closedSquare() []state.BakedPath {
	return []state.BakedPath{
		segment(geom.Point{400, 400}, geom.Point{600, 400}),
		segment(geom.Point{600, 400}, geom.Point{600, 600}),
		segment(geom.Point{600, 600}, geom.Point{400, 600}),
		segment(geom.Point{400, 600}, geom.Point{400, 400}),
	}
}

func TestMaskCoversStrokes(t *testing.T) {
	mask := Mask([]state.BakedPath{segment(geom.Point{400, 500}, geom.Point{600, 500})})
	// Canvas (500,500) is mask pixel (250,250), on the segment.
	assert.GreaterOrEqual(t, mask.AlphaAt(250, 250).A, uint8(coverageAlpha))
	// Far off the segment there is no coverage.
	assert.Less(t, mask.AlphaAt(250, 100).A, uint8(coverageAlpha))
}

func TestClassifyEnclosedRegionIsPaper(t *testing.T) {
	mask := Mask(closedSquare())
	paper := Classify(mask)

	at := func(x, y int) bool { return paper[y*MaskSize+x] }
	// Square center (canvas 500,500 -> pixel 250,250) is enclosed.
	assert.True(t, at(250, 250))
	// Border corner and a point well outside the square are cut away.
	assert.False(t, at(0, 0))
	assert.False(t, at(250, 50))
}

func TestClassifyOpenStrokesAllCut(t *testing.T) {
	mask := Mask([]state.BakedPath{segment(geom.Point{400, 500}, geom.Point{600, 500})})
	paper := Classify(mask)
	for _, p := range paper {
		assert.False(t, p)
	}
}

func TestPreviewDimensions(t *testing.T) {
	img := Preview(closedSquare())
	require.NotNil(t, img)
	assert.Equal(t, MaskSize, img.Bounds().Dx())
	assert.Equal(t, MaskSize, img.Bounds().Dy())
	// Enclosed center painted as paper.
	assert.Equal(t, rgba(paperColor), img.RGBAAt(250, 250))
	assert.Equal(t, rgba(cutColor), img.RGBAAt(10, 10))
}
