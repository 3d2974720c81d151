package utils

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"favkit/favicon"

	"gopkg.in/yaml.v3"
)

const (
	EnvSource  = "FAVGEN_SOURCE"
	EnvOutput  = "FAVGEN_OUTPUT"
	EnvTrash   = "FAVGEN_TRASH"
	EnvBaseURL = "FAVGEN_BASE_URL"
)

var (
	ErrNoSource       = errors.New("未指定源图片")
	ErrSourceIsOutput = errors.New("源图片与输出文件同名，会被覆盖")
)

// Config 优先级：配置文件 < 环境变量 < 命令行参数
type Config struct {
	Source  string `yaml:"source"`
	Output  string `yaml:"output"`
	Trash   bool   `yaml:"trash"`
	BaseURL string `yaml:"base_url"`
}

// LoadConfig 读取 yaml 配置，相对路径以配置文件所在目录为准
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	base := filepath.Dir(path)
	cfg.Source = resolve(base, cfg.Source)
	cfg.Output = resolve(base, cfg.Output)
	return &cfg, nil
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// ApplyEnv 用环境变量覆盖配置，lookup 一般传 os.LookupEnv
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvSource); ok && v != "" {
		c.Source = v
	}
	if v, ok := lookup(EnvOutput); ok && v != "" {
		c.Output = v
	}
	if v, ok := lookup(EnvBaseURL); ok && v != "" {
		c.BaseURL = v
	}
	if v, ok := lookup(EnvTrash); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTrash, err)
		}
		c.Trash = b
	}
	return nil
}

// Validate 检查必填项，输出目录缺省为源图片所在目录
func (c *Config) Validate() error {
	if c.Source == "" {
		return ErrNoSource
	}
	if c.Output == "" {
		c.Output = filepath.Dir(c.Source)
	}

	src, err := filepath.Abs(c.Source)
	if err != nil {
		return err
	}
	out, err := filepath.Abs(c.Output)
	if err != nil {
		return err
	}
	for _, a := range favicon.Artifacts {
		if filepath.Join(out, a.Name) == src {
			return fmt.Errorf("%w: %s", ErrSourceIsOutput, src)
		}
	}
	return nil
}
