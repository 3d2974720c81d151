// Package favicon 由一张源图片生成网站图标：多尺寸 favicon.ico，
// 以及 icon.png（PWA/Android）和 apple-icon.png（iOS）
package favicon

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/amalfra/etag/v3"
	"github.com/hymkor/trash-go"
)

type Format int

const (
	FormatICO Format = iota
	FormatPNG
)

func (f Format) String() string {
	if f == FormatICO {
		return "ico"
	}
	return "png"
}

type Artifact struct {
	Name   string
	Format Format
	Sizes  []int
}

// Artifacts 全部输出文件，按写入顺序
var Artifacts = []Artifact{
	{Name: "favicon.ico", Format: FormatICO, Sizes: []int{16, 32, 48}},
	{Name: "icon.png", Format: FormatPNG, Sizes: []int{192}},
	{Name: "apple-icon.png", Format: FormatPNG, Sizes: []int{180}},
}

const tmpSuffix = ".tmp"

type Reporter interface {
	Printf(format string, params ...any)
}

type Written struct {
	Name string
	Path string
	Size int
	ETag string
}

type Generator struct {
	Log Reporter
	// UseTrash 覆盖前将旧文件放入回收站
	UseTrash bool
}

// Render 每个尺寸都直接从 src 缩放，再按 a 的格式编码
func Render(src image.Image, a Artifact) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch a.Format {
	case FormatICO:
		imgs := make([]image.Image, len(a.Sizes))
		for i, sz := range a.Sizes {
			imgs[i] = Resize(src, sz, sz)
		}
		err = EncodeICO(&buf, imgs)
	case FormatPNG:
		if len(a.Sizes) != 1 {
			err = fmt.Errorf("png holds one size, got %d", len(a.Sizes))
			break
		}
		err = png.Encode(&buf, Resize(src, a.Sizes[0], a.Sizes[0]))
	default:
		err = fmt.Errorf("unknown format %d", a.Format)
	}
	if err != nil {
		return nil, &Error{Kind: KindEncode, Op: "encode", Path: a.Name, Err: err}
	}
	return buf.Bytes(), nil
}

// Generate 先解码并编码全部文件，再创建目录写入；
// 解码或编码失败时不会改动输出目录
func (g *Generator) Generate(sourcePath, outputDir string) ([]Written, error) {
	src, _, err := Decode(sourcePath)
	if err != nil {
		return nil, err
	}
	g.printf("打开图片: %s", sourcePath)

	blobs := make([][]byte, len(Artifacts))
	for i, a := range Artifacts {
		if blobs[i], err = Render(src, a); err != nil {
			return nil, err
		}
	}

	dir, err := ensureDir(outputDir)
	if err != nil {
		return nil, &Error{Kind: KindFilesystem, Op: "mkdir", Path: outputDir, Err: err}
	}

	written := make([]Written, 0, len(Artifacts))
	for i, a := range Artifacts {
		fp := filepath.Join(dir, a.Name)
		if err = g.writeFile(fp, blobs[i]); err != nil {
			return written, err
		}
		written = append(written, Written{
			Name: a.Name,
			Path: fp,
			Size: len(blobs[i]),
			ETag: etag.Generate(string(blobs[i]), false),
		})
		g.printf("生成成功: %s", fp)
	}
	return written, nil
}

// writeFile 先写临时文件再重命名，避免留下写了一半的图标
func (g *Generator) writeFile(fp string, data []byte) error {
	tmp := fp + tmpSuffix
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		os.Remove(tmp)
		return &Error{Kind: KindFilesystem, Op: "write", Path: tmp, Err: err}
	}

	if g.UseTrash {
		if info, err := os.Stat(fp); err == nil && !info.IsDir() {
			if err := trash.Throw(fp); err != nil {
				os.Remove(tmp)
				return &Error{Kind: KindFilesystem, Op: "trash", Path: fp, Err: err}
			}
		}
	}

	if err := os.Rename(tmp, fp); err != nil {
		os.Remove(tmp)
		return &Error{Kind: KindFilesystem, Op: "rename", Path: fp, Err: err}
	}
	return nil
}

func (g *Generator) printf(format string, params ...any) {
	if g.Log != nil {
		g.Log.Printf(format, params...)
	}
}
