package imageproxy

import (
	"bytes"
	"image"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
)

// Downscale shrinks the image so neither dimension exceeds the caps,
// preserving aspect ratio. Images already within bounds, non-positive
// caps and undecodable payloads come back untouched.
func Downscale(res Result, maxW, maxH int) Result {
	if maxW <= 0 && maxH <= 0 {
		return res
	}

	src, format, err := image.Decode(bytes.NewReader(res.Bytes))
	if err != nil {
		return res
	}

	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	scale := 1.0
	if maxW > 0 && w > maxW {
		scale = float64(maxW) / float64(w)
	}
	if maxH > 0 && h > maxH {
		if s := float64(maxH) / float64(h); s < scale {
			scale = s
		}
	}
	if scale >= 1.0 {
		return res
	}

	dw := int(float64(w) * scale)
	dh := int(float64(h) * scale)
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)

	var buf bytes.Buffer
	switch format {
	case "png":
		if err := png.Encode(&buf, dst); err != nil {
			return res
		}
		return Result{Bytes: buf.Bytes(), ContentType: "image/png"}
	default:
		if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: 85}); err != nil {
			return res
		}
		return Result{Bytes: buf.Bytes(), ContentType: "image/jpeg"}
	}
}
