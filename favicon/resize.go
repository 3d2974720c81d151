package favicon

import (
	"image"
	"math"

	"golang.org/x/image/draw"
)

const lanczosA = 3

// Lanczos3 窗口半径为 3 的 sinc 插值核
var Lanczos3 = &draw.Kernel{
	Support: lanczosA,
	At: func(t float64) float64 {
		if t == 0 {
			return 1
		}
		if t >= lanczosA {
			return 0
		}
		x := math.Pi * t
		return lanczosA * math.Sin(x) * math.Sin(x/lanczosA) / (x * x)
	},
}

// Resize 将 src 直接缩放到 w×h，不保持宽高比
func Resize(src image.Image, w, h int) *image.NRGBA {
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	Lanczos3.Scale(dst, dst.Rect, src, src.Bounds(), draw.Src, nil)
	return dst
}
