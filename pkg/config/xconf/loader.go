package xconf

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// koanfConfig 是 Config 接口的 koanf 实现。
//
// 当前快照由 snapshot 原子持有；Reload 由 reloadMu 序列化，
// 防止并发重载时新配置被旧配置覆盖。
type koanfConfig struct {
	snapshot atomic.Pointer[koanf.Koanf]
	reloadMu sync.Mutex
	path     string
	format   Format
	opts     *Options
}

// New 从文件路径创建配置实例。
// 根据文件扩展名自动检测格式（.yaml/.yml 或 .json）。
func New(path string, opts ...Option) (Config, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}

	format, err := detectFormat(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	options := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(options)
		}
	}

	k, err := parseData(data, format, options.Delim)
	if err != nil {
		return nil, err
	}

	c := &koanfConfig{
		path:   path,
		format: format,
		opts:   options,
	}
	c.snapshot.Store(k)
	return c, nil
}

// NewFromBytes 从字节数据创建配置实例。
// 需要显式指定格式，适用于 K8s ConfigMap 等场景。
// 空数据创建空配置，与 New 读取空文件的行为一致。
func NewFromBytes(data []byte, format Format, opts ...Option) (Config, error) {
	if !isValidFormat(format) {
		return nil, ErrUnsupportedFormat
	}

	options := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(options)
		}
	}

	k, err := parseData(data, format, options.Delim)
	if err != nil {
		return nil, err
	}

	c := &koanfConfig{
		path:   "",
		format: format,
		opts:   options,
	}
	c.snapshot.Store(k)
	return c, nil
}

// Client 返回当前配置快照。
func (c *koanfConfig) Client() *koanf.Koanf {
	return c.snapshot.Load()
}

// Unmarshal 将指定路径的配置反序列化到目标结构体。
func (c *koanfConfig) Unmarshal(path string, target any) error {
	k := c.snapshot.Load()
	if err := k.UnmarshalWithConf(path, target, koanf.UnmarshalConf{
		Tag: c.opts.Tag,
	}); err != nil {
		return fmt.Errorf("%w: %w", ErrUnmarshalFailed, err)
	}
	return nil
}

// MustUnmarshal 与 Unmarshal 相同，但失败时 panic。
func (c *koanfConfig) MustUnmarshal(path string, target any) {
	if err := c.Unmarshal(path, target); err != nil {
		panic(err)
	}
}

// Reload 重新加载配置文件。
// 解析失败时保留旧快照，调用方看到的始终是一份完整配置。
func (c *koanfConfig) Reload() error {
	if c.path == "" {
		return ErrNotReloadable
	}

	c.reloadMu.Lock()
	defer c.reloadMu.Unlock()

	data, err := os.ReadFile(c.path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}

	k, err := parseData(data, c.format, c.opts.Delim)
	if err != nil {
		return err
	}

	c.snapshot.Store(k)
	return nil
}

// Path 返回配置文件路径。
func (c *koanfConfig) Path() string {
	return c.path
}

// Format 返回配置格式。
func (c *koanfConfig) Format() Format {
	return c.format
}

// detectFormat 根据文件扩展名检测配置格式。
func detectFormat(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown extension %q", ErrUnsupportedFormat, ext)
	}
}

func isValidFormat(format Format) bool {
	switch format {
	case FormatYAML, FormatJSON:
		return true
	default:
		return false
	}
}

// parseData 解析数据并返回新的 koanf 实例。
func parseData(data []byte, format Format, delim string) (*koanf.Koanf, error) {
	k := koanf.New(delim)
	if len(data) == 0 {
		return k, nil
	}

	var parser koanf.Parser
	switch format {
	case FormatYAML:
		parser = yaml.Parser()
	case FormatJSON:
		parser = json.Parser()
	default:
		return nil, ErrUnsupportedFormat
	}

	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParseFailed, err)
	}
	return k, nil
}
