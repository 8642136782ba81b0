//go:build basic || database || integration

package integration

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"testing"
)

var (
	// sharedQualensPath holds the path to a shared qualens binary built once for all tests.
	sharedQualensPath string

	// buildOnce ensures we only build the binary once.
	buildOnce sync.Once

	// buildMutex protects the shared binary path.
	buildMutex sync.Mutex

	// tempDir holds the temp directory for cleanup.
	tempDir string
)

// TestMain handles setup and cleanup for all integration tests.
func TestMain(m *testing.M) {
	// Run all tests
	code := m.Run()

	// Cleanup the shared binary after all tests
	if tempDir != "" {
		_ = os.RemoveAll(tempDir)
	}

	os.Exit(code)
}

// getQualensBinary returns the path to the qualens binary, building it once if needed.
func getQualensBinary() string {
	buildMutex.Lock()
	defer buildMutex.Unlock()

	buildOnce.Do(func() {
		// Create a temp directory for the binary
		var err error
		tempDir, err = os.MkdirTemp("", "qualens-integration-*")
		if err != nil {
			panic(fmt.Sprintf("failed to create temp dir: %v", err))
		}

		qualensPath := filepath.Join(tempDir, "qualens")
		buildCmd := exec.Command("go", "build", "-o", qualensPath, "./cmd/qualens")
		buildCmd.Dir = ".." // Build from parent directory (project root)
		err = buildCmd.Run()
		if err != nil {
			panic(fmt.Sprintf("failed to build qualens: %v", err))
		}

		sharedQualensPath = qualensPath
	})

	return sharedQualensPath
}

// runQualensCommand runs the shared qualens binary with the given arguments,
// logging combined output on failure.
func runQualensCommand(t *testing.T, args ...string) error {
	t.Helper()

	cmd := exec.Command(getQualensBinary(), args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Logf("qualens %v failed: %v\nOutput: %s", args, err, string(output))
	}
	return err
}
