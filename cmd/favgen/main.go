package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"favkit/favicon"
	"favkit/utils"

	"golang.org/x/term"
)

var (
	configPath  string
	watch       bool
	printHTML   bool
	inspectPath string
)

var logger = utils.Logger{ID: "favgen"}

var interactive = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("favgen", flag.ContinueOnError)
	var cfg utils.Config
	var source, output, baseURL string
	var useTrash bool
	fs.StringVar(&configPath, "c", "", "配置文件路径（yaml）")
	fs.StringVar(&source, "i", "", "源图片路径")
	fs.StringVar(&output, "o", "", "输出目录，默认与源图片相同")
	fs.BoolVar(&useTrash, "t", false, "覆盖前将旧文件放入回收站")
	fs.BoolVar(&watch, "w", false, "监听源图片变化并重新生成")
	fs.BoolVar(&printHTML, "html", false, "输出 <link> 标签")
	fs.StringVar(&baseURL, "base", "", "<link> 标签中的路径前缀")
	fs.StringVar(&inspectPath, "inspect", "", "查看 ICO 文件包含的尺寸")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if inspectPath != "" {
		return inspect(inspectPath)
	}

	if configPath != "" {
		c, err := utils.LoadConfig(configPath)
		if err != nil {
			logger.Error("错误：", err)
			return 1
		}
		cfg = *c
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		logger.Error("错误：", err)
		return 1
	}

	flagSet := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { flagSet[f.Name] = true })
	if flagSet["i"] {
		cfg.Source = source
	}
	if flagSet["o"] {
		cfg.Output = output
	}
	if flagSet["t"] {
		cfg.Trash = useTrash
	}
	if flagSet["base"] {
		cfg.BaseURL = baseURL
	}
	if fs.NArg() > 0 {
		cfg.Source = fs.Arg(0)
	}
	if fs.NArg() > 1 {
		cfg.Output = fs.Arg(1)
	}

	if cfg.Source == "" && interactive() {
		prompt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		logger.Error("错误：", err)
		fmt.Fprintln(os.Stderr, "用法：favgen [-o 输出目录] <源图片>")
		return 1
	}

	gen := &favicon.Generator{Log: &logger, UseTrash: cfg.Trash}
	if err := generate(gen, &cfg); err != nil {
		return 1
	}
	if !watch {
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	logger.Printf("监听中: %s", cfg.Source)
	var mu sync.Mutex
	err := utils.WatchFile(ctx, cfg.Source, 500*time.Millisecond, func() {
		mu.Lock()
		defer mu.Unlock()
		generate(gen, &cfg)
	})
	if err != nil {
		logger.Error("错误：", err)
		return 1
	}
	return 0
}

func generate(gen *favicon.Generator, cfg *utils.Config) error {
	written, err := gen.Generate(cfg.Source, cfg.Output)
	if err != nil {
		var fe *favicon.Error
		if errors.As(err, &fe) {
			logger.Errorf("错误（%s）：%v", fe.Kind, err)
		} else {
			logger.Error("错误：", err)
		}
		return err
	}
	if printHTML {
		fmt.Print(favicon.LinkTags(written, cfg.BaseURL))
	}
	return nil
}

func prompt(cfg *utils.Config) {
	r := bufio.NewReader(os.Stdin)
	fmt.Print("源图片路径：")
	line, _ := r.ReadString('\n')
	cfg.Source = trimPath(line)
	if cfg.Output != "" {
		return
	}
	fmt.Print("输出目录（回车使用源图片目录）：")
	line, _ = r.ReadString('\n')
	cfg.Output = trimPath(line)
}

// 拖入终端的路径可能带引号
func trimPath(s string) string {
	return strings.Trim(strings.TrimSpace(s), `"'`)
}

func inspect(path string) int {
	f, err := os.Open(path)
	if err != nil {
		logger.Error("错误：", err)
		return 1
	}
	defer f.Close()

	entries, err := favicon.ParseICO(f)
	if err != nil {
		logger.Error("错误：", err)
		return 1
	}
	fmt.Printf("%s（%d）：\n", path, len(entries))
	for i, e := range entries {
		b := e.Image.Bounds()
		fmt.Printf("%d %dx%d png %dx%d\n", i+1, e.Width, e.Height, b.Dx(), b.Dy())
	}
	return 0
}
