package favicon

import (
	"errors"
	"fmt"
)

// Kind 错误分类
type Kind int

const (
	KindDecode Kind = iota + 1
	KindFilesystem
	KindEncode
)

func (k Kind) String() string {
	switch k {
	case KindDecode:
		return "decode"
	case KindFilesystem:
		return "filesystem"
	case KindEncode:
		return "encode"
	}
	return "unknown"
}

type Error struct {
	Kind Kind
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind 判断 err 链中是否存在指定分类的 *Error
func IsKind(err error, kind Kind) bool {
	var fe *Error
	return errors.As(err, &fe) && fe.Kind == kind
}
