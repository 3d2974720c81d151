package utils

import (
	"fmt"
	"io"
	"os"
	"path"
	"runtime"
	"strings"
	"sync"
	"time"
)

var logLock sync.Mutex

func log(out io.Writer, calldepth int, level string, id string, params ...any) {
	var now = time.Now().Format("2006-01-02 15:04:05")
	_, file, line, _ := runtime.Caller(calldepth)
	var msg = make([]string, len(params))
	for i, p := range params {
		msg[i] = fmt.Sprintf("%+v", p)
	}
	if out == nil {
		out = os.Stdout
	}
	logLock.Lock()
	defer logLock.Unlock()
	fmt.Fprintf(out, "%s|%s|%s:%d|%s|%s\n", now, level, path.Base(file), line, id, strings.Join(msg, " "))
}

type Logger struct {
	ID  string
	Out io.Writer
}

func (l *Logger) Print(params ...any) {
	log(l.Out, 2, "inf", l.ID, params...)
}

// Printf 满足 favicon.Reporter，调用位置取生成器内部的行号
func (l *Logger) Printf(format string, params ...any) {
	log(l.Out, 2, "inf", l.ID, fmt.Sprintf(format, params...))
}

func (l *Logger) Error(params ...any) {
	log(l.Out, 2, "err", l.ID, params...)
}

func (l *Logger) Errorf(format string, params ...any) {
	log(l.Out, 2, "err", l.ID, fmt.Sprintf(format, params...))
}
