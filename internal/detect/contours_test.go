package detect

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindContours_SingleBlob(t *testing.T) {
	img := createTestImage(60, 60, color.White)
	for y := 20; y < 40; y++ {
		for x := 20; x < 40; x++ {
			img.Set(x, y, color.Black)
		}
	}
	mask := maskOf(t, img)

	contours := FindContours(mask, mask.Bounds(), 50)
	require.Len(t, contours, 1)
	assert.GreaterOrEqual(t, len(contours[0]), 300, "a 20x20 square should survive blurring mostly intact")
}

func TestFindContours_MinSizeFilters(t *testing.T) {
	img := createTestImage(60, 60, color.White)
	for y := 20; y < 25; y++ {
		for x := 20; x < 25; x++ {
			img.Set(x, y, color.Black)
		}
	}
	mask := maskOf(t, img)

	contours := FindContours(mask, mask.Bounds(), 500)
	assert.Empty(t, contours, "a 5x5 blob must not pass a 500px minimum")
}

func TestFindContours_SeparatesBlobs(t *testing.T) {
	img := createTestImage(100, 100, color.White)
	for y := 10; y < 25; y++ {
		for x := 10; x < 25; x++ {
			img.Set(x, y, color.Black)
		}
	}
	for y := 60; y < 75; y++ {
		for x := 60; x < 75; x++ {
			img.Set(x, y, color.Black)
		}
	}
	mask := maskOf(t, img)

	contours := FindContours(mask, mask.Bounds(), 50)
	assert.Len(t, contours, 2)
}

func TestFindContours_RegionRestricted(t *testing.T) {
	img := createTestImage(100, 100, color.White)
	for y := 10; y < 30; y++ {
		for x := 10; x < 30; x++ {
			img.Set(x, y, color.Black)
		}
	}
	mask := maskOf(t, img)

	contours := FindContours(mask, image.Rect(50, 50, 100, 100), 20)
	assert.Empty(t, contours, "the blob lies outside the searched region")
}

func TestFindContours_Deterministic(t *testing.T) {
	img := createTestImage(80, 80, color.White)
	drawSolidTriangle(img, 40, 15, 30)
	mask := maskOf(t, img)

	first := FindContours(mask, mask.Bounds(), 20)
	second := FindContours(mask, mask.Bounds(), 20)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i], second[i], "contour %d", i)
	}
}

func TestContourAxis_TooFewPoints(t *testing.T) {
	_, ok := contourAxis(Contour{{1, 1}, {2, 2}, {3, 3}})
	assert.False(t, ok)
}

func TestContourAxis_CollinearPoints(t *testing.T) {
	c := make(Contour, 0, 20)
	for i := 0; i < 20; i++ {
		c = append(c, Point{X: i, Y: 5})
	}

	axis, ok := contourAxis(c)
	require.True(t, ok)
	assert.Greater(t, axis.elongation, 50.0, "a straight run is maximally elongated")
	assert.InDelta(t, 0, axis.angleRad, 1e-6, "axis should be horizontal")
}

func TestArrowScore_TriangleBeatsSquare(t *testing.T) {
	triangle := createTestImage(80, 80, color.White)
	drawSolidTriangle(triangle, 40, 15, 40)
	triMask := maskOf(t, triangle)
	triContours := FindContours(triMask, triMask.Bounds(), 30)
	require.NotEmpty(t, triContours)
	triAxis, ok := contourAxis(triContours[0])
	require.True(t, ok)

	square := createTestImage(80, 80, color.White)
	for y := 20; y < 60; y++ {
		for x := 20; x < 60; x++ {
			square.Set(x, y, color.Black)
		}
	}
	sqMask := maskOf(t, square)
	sqContours := FindContours(sqMask, sqMask.Bounds(), 30)
	require.NotEmpty(t, sqContours)
	sqAxis, ok := contourAxis(sqContours[0])
	require.True(t, ok)

	assert.Greater(t, arrowScore(triAxis), arrowScore(sqAxis),
		"a solid triangle must look more arrow-like than a square")
	assert.Less(t, arrowScore(sqAxis), 0.08, "a square must not pass the default tip gate")
}

func TestTipDirection_UpwardTriangle(t *testing.T) {
	img := createTestImage(100, 100, color.White)
	drawSolidTriangle(img, 50, 20, 40)
	mask := maskOf(t, img)

	contours := FindContours(mask, mask.Bounds(), 30)
	require.NotEmpty(t, contours)
	axis, ok := contourAxis(contours[0])
	require.True(t, ok)

	dx, dy := tipDirection(contours[0], axis)
	assert.Less(t, dy, 0.0, "the apex is the top end, so the direction must point up")
	assert.InDelta(t, 0, dx, 0.3)

	bearing := bearingFromVector(dx, dy)
	assert.LessOrEqual(t, circularDiff(bearing, 0), 20.0)
}
