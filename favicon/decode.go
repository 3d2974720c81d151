package favicon

import (
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Decode 按文件头匹配已注册的格式解码，文件不存在也归为 KindDecode
func Decode(path string) (image.Image, string, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, "", &Error{Kind: KindDecode, Op: "open", Path: path, Err: err}
	}
	defer in.Close()

	src, format, err := image.Decode(in)
	if err != nil {
		return nil, "", &Error{Kind: KindDecode, Op: "decode", Path: path, Err: err}
	}
	if b := src.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, "", &Error{Kind: KindDecode, Op: "decode", Path: path, Err: errEmptyImage}
	}
	return src, format, nil
}
