//go:build unix

package xsys

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// captureRawWrites 替换底层写入函数，收集每次写入的块。
// 不可与 t.Parallel() 同用：替换包级变量会引发竞态。
func captureRawWrites(t *testing.T) *[][]byte {
	t.Helper()
	var chunks [][]byte
	orig := rawWrite
	rawWrite = func(fd int, p []byte) (int, error) {
		require.Equal(t, 2, fd)
		chunks = append(chunks, bytes.Clone(p))
		return len(p), nil
	}
	t.Cleanup(func() { rawWrite = orig })
	return &chunks
}

func TestWriteStderr_Empty(t *testing.T) {
	chunks := captureRawWrites(t)
	WriteStderr(nil)
	WriteStderr([]byte{})
	assert.Empty(t, *chunks)
}

func TestWriteStderr_SingleChunk(t *testing.T) {
	chunks := captureRawWrites(t)
	WriteStderr([]byte("short diagnostic"))
	require.Len(t, *chunks, 1)
	assert.Equal(t, "short diagnostic", string((*chunks)[0]))
}

func TestWriteStderr_ChunkBoundary(t *testing.T) {
	tests := []struct {
		name       string
		size       int
		wantChunks int
	}{
		{name: "exactly one chunk", size: 80, wantChunks: 1},
		{name: "one byte over", size: 81, wantChunks: 2},
		{name: "two full chunks", size: 160, wantChunks: 2},
		{name: "large", size: 1000, wantChunks: 13},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := captureRawWrites(t)
			payload := strings.Repeat("x", tt.size)
			WriteStderr([]byte(payload))

			require.Len(t, *chunks, tt.wantChunks)
			var got []byte
			for _, c := range *chunks {
				assert.LessOrEqual(t, len(c), stderrChunk)
				got = append(got, c...)
			}
			// 分块不改变内容和顺序
			assert.Equal(t, payload, string(got))
		})
	}
}

func FuzzWriteStderr_Chunking(f *testing.F) {
	f.Add([]byte(nil))
	f.Add([]byte("a"))
	f.Add(bytes.Repeat([]byte("b"), 80))
	f.Add(bytes.Repeat([]byte("c"), 81))
	f.Add(bytes.Repeat([]byte("d"), 4096))

	f.Fuzz(func(t *testing.T, payload []byte) {
		var got []byte
		orig := rawWrite
		rawWrite = func(fd int, p []byte) (int, error) {
			if len(p) == 0 || len(p) > stderrChunk {
				t.Errorf("chunk size %d out of range (0, %d]", len(p), stderrChunk)
			}
			got = append(got, p...)
			return len(p), nil
		}
		defer func() { rawWrite = orig }()

		WriteStderr(payload)
		if !bytes.Equal(payload, got) {
			t.Errorf("reassembled output differs from input: %d vs %d bytes", len(got), len(payload))
		}
	})
}
