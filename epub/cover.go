package epub

import (
	"bytes"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
)

// defaultCover renders a solid placeholder cover for editions where the
// edition cover could not be fetched.
func defaultCover() []byte {
	img := image.NewRGBA(image.Rect(0, 0, 800, 1200))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{R: 0xE3, G: 0x12, B: 0x0B, A: 0xFF}), image.Point{}, draw.Src)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
		return nil
	}
	return buf.Bytes()
}
