package favicon

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
)

const (
	icoHeaderSize = 6
	icoEntrySize  = 16
	icoMaxSize    = 256
)

var (
	errEmptyImage   = errors.New("image has no pixels")
	errNoImages     = errors.New("ico: no images")
	errNotICO       = errors.New("ico: not an icon file")
	errBadEntry     = errors.New("ico: entry out of range")
	errNotPNGRecord = errors.New("ico: only PNG-compressed entries are supported")
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

type ICOEntry struct {
	Width  int
	Height int
	Image  image.Image
}

type icoDirEntry struct {
	W, H       byte
	ColorCount byte
	Reserved   byte
	Planes     uint16
	BitCount   uint16
	Size       uint32
	Offset     uint32
}

// EncodeICO 写出 ICO 文件，每个尺寸以 PNG 数据保存
func EncodeICO(w io.Writer, imgs []image.Image) error {
	if len(imgs) == 0 {
		return errNoImages
	}

	entries := make([]icoDirEntry, len(imgs))
	blobs := make([][]byte, len(imgs))
	offset := uint32(icoHeaderSize + len(imgs)*icoEntrySize)

	for i, img := range imgs {
		b := img.Bounds()
		if b.Dx() <= 0 || b.Dy() <= 0 || b.Dx() > icoMaxSize || b.Dy() > icoMaxSize {
			return fmt.Errorf("ico: unsupported size %dx%d", b.Dx(), b.Dy())
		}
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return err
		}
		entries[i] = icoDirEntry{
			W:        byte(b.Dx() % icoMaxSize),
			H:        byte(b.Dy() % icoMaxSize),
			Planes:   1,
			BitCount: 32,
			Size:     uint32(buf.Len()),
			Offset:   offset,
		}
		blobs[i] = buf.Bytes()
		offset += uint32(buf.Len())
	}

	var out bytes.Buffer
	binary.Write(&out, binary.LittleEndian, uint16(0))
	binary.Write(&out, binary.LittleEndian, uint16(1))
	binary.Write(&out, binary.LittleEndian, uint16(len(imgs)))
	for _, e := range entries {
		binary.Write(&out, binary.LittleEndian, e)
	}
	for _, blob := range blobs {
		out.Write(blob)
	}
	_, err := w.Write(out.Bytes())
	return err
}

// ParseICO 读取 EncodeICO 写出的文件
func ParseICO(r io.Reader) ([]ICOEntry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if len(data) < icoHeaderSize {
		return nil, errNotICO
	}
	if binary.LittleEndian.Uint16(data[0:2]) != 0 || binary.LittleEndian.Uint16(data[2:4]) != 1 {
		return nil, errNotICO
	}
	count := int(binary.LittleEndian.Uint16(data[4:6]))
	if count == 0 || len(data) < icoHeaderSize+count*icoEntrySize {
		return nil, errNotICO
	}

	result := make([]ICOEntry, 0, count)
	for i := 0; i < count; i++ {
		var e icoDirEntry
		rec := data[icoHeaderSize+i*icoEntrySize : icoHeaderSize+(i+1)*icoEntrySize]
		if err := binary.Read(bytes.NewReader(rec), binary.LittleEndian, &e); err != nil {
			return nil, err
		}
		end := uint64(e.Offset) + uint64(e.Size)
		if end > uint64(len(data)) {
			return nil, errBadEntry
		}
		blob := data[e.Offset:end]
		if !bytes.HasPrefix(blob, pngSignature) {
			return nil, errNotPNGRecord
		}
		img, err := png.Decode(bytes.NewReader(blob))
		if err != nil {
			return nil, fmt.Errorf("ico: entry %d: %w", i, err)
		}
		result = append(result, ICOEntry{
			Width:  dimension(e.W),
			Height: dimension(e.H),
			Image:  img,
		})
	}
	return result, nil
}

// 0 表示 256
func dimension(b byte) int {
	if b == 0 {
		return icoMaxSize
	}
	return int(b)
}
