package app

import (
	"bytes"
	"os"
	"sync"
	"testing"

	"github.com/specialistvlad/factgraph/internal/config"
)

// SafeBuffer is a thread-safe buffer for capturing log output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// SetupAppTest creates a new app instance that logs at debug level into a
// buffer. Set FACTGRAPH_TEST_LOGS=true to print the log after the test.
func SetupAppTest(t *testing.T, cfg *Config, loader config.Loader) (*App, *SafeBuffer) {
	t.Helper()

	logBuffer := &SafeBuffer{}
	cfg.LogLevel = "debug"
	testApp := NewApp(logBuffer, cfg, loader)

	t.Cleanup(func() {
		if os.Getenv("FACTGRAPH_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), logBuffer.String())
		}
	})

	return testApp, logBuffer
}
