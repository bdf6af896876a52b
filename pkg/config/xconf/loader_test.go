package xconf

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cleanerYAML = `
cleaner:
  dir: /tmp/profiles
  prefix: "profile."
  glob: "profile.*.tmp"
  interval: 30s
log:
  level: info
`

const cleanerJSON = `{
  "cleaner": {
    "dir": "/tmp/profiles",
    "glob": "*.tmp"
  }
}`

// cleanerSpec 测试用的清理任务配置结构。
type cleanerSpec struct {
	Dir      string        `koanf:"dir"`
	Prefix   string        `koanf:"prefix"`
	Glob     string        `koanf:"glob"`
	Interval time.Duration `koanf:"interval"`
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestNew_YAML(t *testing.T) {
	cfg, err := New(writeConfig(t, "config.yaml", cleanerYAML))
	require.NoError(t, err)

	assert.Equal(t, FormatYAML, cfg.Format())
	assert.Equal(t, "/tmp/profiles", cfg.Client().String("cleaner.dir"))
	assert.Equal(t, "info", cfg.Client().String("log.level"))
}

func TestNew_JSON(t *testing.T) {
	cfg, err := New(writeConfig(t, "config.json", cleanerJSON))
	require.NoError(t, err)

	assert.Equal(t, FormatJSON, cfg.Format())
	assert.Equal(t, "*.tmp", cfg.Client().String("cleaner.glob"))
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{name: "empty path", path: "", wantErr: ErrEmptyPath},
		{name: "unknown extension", path: "config.toml", wantErr: ErrUnsupportedFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.path)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestNew_MissingFile(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.ErrorIs(t, err, ErrLoadFailed)
}

func TestNew_MalformedYAML(t *testing.T) {
	_, err := New(writeConfig(t, "bad.yaml", "cleaner: [unclosed"))
	assert.ErrorIs(t, err, ErrParseFailed)
}

func TestNewFromBytes(t *testing.T) {
	cfg, err := NewFromBytes([]byte(cleanerJSON), FormatJSON)
	require.NoError(t, err)

	assert.Empty(t, cfg.Path())
	assert.Equal(t, "/tmp/profiles", cfg.Client().String("cleaner.dir"))
}

func TestNewFromBytes_EmptyData(t *testing.T) {
	cfg, err := NewFromBytes(nil, FormatYAML)
	require.NoError(t, err)

	var spec cleanerSpec
	require.NoError(t, cfg.Unmarshal("cleaner", &spec))
	assert.Zero(t, spec)
}

func TestNewFromBytes_InvalidFormat(t *testing.T) {
	_, err := NewFromBytes([]byte("{}"), Format("toml"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestUnmarshal(t *testing.T) {
	cfg, err := New(writeConfig(t, "config.yaml", cleanerYAML))
	require.NoError(t, err)

	var spec cleanerSpec
	require.NoError(t, cfg.Unmarshal("cleaner", &spec))
	assert.Equal(t, cleanerSpec{
		Dir:      "/tmp/profiles",
		Prefix:   "profile.",
		Glob:     "profile.*.tmp",
		Interval: 30 * time.Second,
	}, spec)
}

func TestMustUnmarshal_Panics(t *testing.T) {
	cfg, err := NewFromBytes([]byte(`{"cleaner":{"interval":"not-a-duration"}}`), FormatJSON)
	require.NoError(t, err)

	var spec cleanerSpec
	assert.Panics(t, func() {
		cfg.MustUnmarshal("cleaner", &spec)
	})
}

func TestReload(t *testing.T) {
	path := writeConfig(t, "config.yaml", cleanerYAML)
	cfg, err := New(path)
	require.NoError(t, err)

	old := cfg.Client()
	require.NoError(t, os.WriteFile(path, []byte("cleaner:\n  glob: \"heap.*.tmp\"\n"), 0600))
	require.NoError(t, cfg.Reload())

	assert.Equal(t, "heap.*.tmp", cfg.Client().String("cleaner.glob"))
	// 旧快照保持快照语义
	assert.Equal(t, "profile.*.tmp", old.String("cleaner.glob"))
}

func TestReload_ParseFailureKeepsSnapshot(t *testing.T) {
	path := writeConfig(t, "config.yaml", cleanerYAML)
	cfg, err := New(path)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("cleaner: [broken"), 0600))
	assert.ErrorIs(t, cfg.Reload(), ErrParseFailed)

	// 重载失败后仍是旧配置
	assert.Equal(t, "profile.*.tmp", cfg.Client().String("cleaner.glob"))
}

func TestReload_FromBytes(t *testing.T) {
	cfg, err := NewFromBytes([]byte("{}"), FormatJSON)
	require.NoError(t, err)
	assert.ErrorIs(t, cfg.Reload(), ErrNotReloadable)
}

func TestReload_Concurrent(t *testing.T) {
	path := writeConfig(t, "config.yaml", cleanerYAML)
	cfg, err := New(path)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = cfg.Reload()
		}()
		go func() {
			defer wg.Done()
			var spec cleanerSpec
			_ = cfg.Unmarshal("cleaner", &spec)
		}()
	}
	wg.Wait()

	assert.Equal(t, "profile.*.tmp", cfg.Client().String("cleaner.glob"))
}

func TestWithDelim(t *testing.T) {
	cfg, err := NewFromBytes([]byte(cleanerJSON), FormatJSON, WithDelim("/"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/profiles", cfg.Client().String("cleaner/dir"))
}

func TestWithTag(t *testing.T) {
	type spec struct {
		Dir string `json:"dir"`
	}
	cfg, err := NewFromBytes([]byte(cleanerJSON), FormatJSON, WithTag("json"))
	require.NoError(t, err)

	var s spec
	require.NoError(t, cfg.Unmarshal("cleaner", &s))
	assert.Equal(t, "/tmp/profiles", s.Dir)
}
