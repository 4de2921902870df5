package export

import (
	"image"
	"image/png"
	"io"

	"jcuts/pkg/cfg"
	"jcuts/pkg/compare"
	"jcuts/pkg/geometry"

	"golang.org/x/xerrors"
)

// Silhouette renders the polygons black on white over their bounding box.
func Silhouette(polygons []geometry.Polyline) *image.Gray {
	mask := compare.Rasterize(polygons, compare.Bounds(polygons...), cfg.RasterScale)
	img := image.NewGray(mask.Bounds())
	for i, a := range mask.Pix {
		img.Pix[i] = 0xff - a
	}
	return img
}

// Preview writes the silhouette as a PNG.
func Preview(w io.Writer, polygons []geometry.Polyline) error {
	if err := png.Encode(w, Silhouette(polygons)); err != nil {
		return xerrors.Errorf("encoding preview: %w", err)
	}
	return nil
}
