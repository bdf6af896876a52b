//go:build !unix && !windows

package xsys

import "os"

// writeRawStderr 在其他平台回退到 os.Stderr。
func writeRawStderr(p []byte) {
	_, _ = os.Stderr.Write(p)
}
