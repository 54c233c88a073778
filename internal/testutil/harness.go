package testutil

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/tomeview/internal/cli"
	"github.com/vk/tomeview/internal/registry"
)

// SafeBuffer is a thread-safe buffer for capturing command output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// HarnessResult holds the outcomes of a single command line run.
type HarnessResult struct {
	Output    string
	LogOutput string
	Err       error
	// Root is the temporary directory the files were written to.
	Root string
}

// WriteFiles writes files, keyed by slash-separated relative path, below a
// fresh temporary directory and returns that directory.
func WriteFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		filePath := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o600))
	}
	return root
}

// RunCLI runs the command line with a background context. See
// RunCLIWithContext.
func RunCLI(t *testing.T, files map[string]string, args ...string) *HarnessResult {
	t.Helper()
	return RunCLIWithContext(context.Background(), t, files, nil, args...)
}

// RunCLIWithContext writes files to a temporary directory, points
// --manifests at it and runs the command line with args at debug level
// unless args set another level.
// The string "{root}" in an argument is replaced by that directory. A nil
// modules slice keeps the built-in modules.
func RunCLIWithContext(ctx context.Context, t *testing.T, files map[string]string, modules []registry.Module, args ...string) *HarnessResult {
	t.Helper()

	root := WriteFiles(t, files)
	// Caller flags come last and override these.
	full := []string{"--log-level", "debug"}
	if len(files) > 0 {
		full = append(full, "--manifests", root)
	}
	for _, a := range args {
		full = append(full, expandRoot(a, root))
	}

	out, logs := &SafeBuffer{}, &SafeBuffer{}
	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("application startup panicked | %v", r)
			}
		}()
		err = cli.Execute(ctx, full, out, logs, modules...)
	}()

	if os.Getenv("TOMEVIEW_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logs.String())
	}

	return &HarnessResult{
		Output:    out.String(),
		LogOutput: logs.String(),
		Err:       err,
		Root:      root,
	}
}

func expandRoot(arg, root string) string {
	return strings.ReplaceAll(arg, "{root}", root)
}
