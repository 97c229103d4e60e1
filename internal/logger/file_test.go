package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func readRunLog(t *testing.T, fl *FileLogger) string {
	t.Helper()
	if err := fl.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	data, err := os.ReadFile(fl.Path())
	if err != nil {
		t.Fatalf("failed to read run log: %v", err)
	}
	return string(data)
}

func TestFileLoggerDefaultDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	fl, err := NewFileLogger()
	if err != nil {
		t.Fatalf("NewFileLogger() error = %v", err)
	}
	defer fl.Close()

	logDir := filepath.Join(tmpDir, ".sourcelink", "logs")
	if _, err := os.Stat(logDir); err != nil {
		t.Errorf("expected log directory %s: %v", logDir, err)
	}
}

func TestFileLoggerRunFileAndSymlink(t *testing.T) {
	logDir := t.TempDir()
	fl, err := NewFileLoggerWithDirAndLevel(logDir, "info")
	if err != nil {
		t.Fatalf("NewFileLoggerWithDirAndLevel() error = %v", err)
	}
	defer fl.Close()

	name := filepath.Base(fl.Path())
	if !strings.HasPrefix(name, "run-") || !strings.HasSuffix(name, fl.RunID()[:8]+".log") {
		t.Errorf("unexpected run log name %q for run %s", name, fl.RunID())
	}

	target, err := os.Readlink(filepath.Join(logDir, "latest.log"))
	if err != nil {
		t.Fatalf("latest.log is not a symlink: %v", err)
	}
	if target != name {
		t.Errorf("latest.log -> %q, want %q", target, name)
	}
}

func TestFileLoggerSymlinkFollowsNewestRun(t *testing.T) {
	logDir := t.TempDir()
	first, err := NewFileLoggerWithDirAndLevel(logDir, "info")
	if err != nil {
		t.Fatal(err)
	}
	first.Close()

	second, err := NewFileLoggerWithDirAndLevel(logDir, "info")
	if err != nil {
		t.Fatal(err)
	}
	defer second.Close()

	if first.RunID() == second.RunID() {
		t.Fatal("expected distinct run ids")
	}
	target, _ := os.Readlink(filepath.Join(logDir, "latest.log"))
	if target != filepath.Base(second.Path()) {
		t.Errorf("latest.log -> %q, want %q", target, filepath.Base(second.Path()))
	}
}

func TestFileLoggerHeaderAndLevels(t *testing.T) {
	fl, err := NewFileLoggerWithDirAndLevel(t.TempDir(), "warn")
	if err != nil {
		t.Fatal(err)
	}
	fl.LogInfo("hidden")
	fl.LogWarn("shown")

	out := readRunLog(t, fl)
	if !strings.Contains(out, "=== Sourcelink Run Log ===") {
		t.Errorf("missing header:\n%s", out)
	}
	if !strings.Contains(out, "Run ID: "+fl.RunID()) {
		t.Errorf("missing run id:\n%s", out)
	}
	if strings.Contains(out, "hidden") {
		t.Errorf("info message logged at warn level:\n%s", out)
	}
	if !strings.Contains(out, "[WARN] shown") {
		t.Errorf("missing warn message:\n%s", out)
	}
}

func TestFileLoggerLogAssociations(t *testing.T) {
	fl, err := NewFileLoggerWithDirAndLevel(t.TempDir(), "error")
	if err != nil {
		t.Fatal(err)
	}
	fl.LogAssociations(sampleTable(t))
	fl.LogCopySummary(2, 1, time.Second)

	out := readRunLog(t, fl)
	for _, want := range []string{
		"--- Associations (1) ---",
		"case1 [training] image: 1, annotation: 1",
		"/labels/case1.xml",
		"unpaired: could not find matching files for key: case2 (/data/case2.tif)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("run log missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Copy finished") {
		t.Errorf("copy summary logged below configured level:\n%s", out)
	}
}

func TestFileLoggerCloseTwice(t *testing.T) {
	fl, err := NewFileLoggerWithDirAndLevel(t.TempDir(), "info")
	if err != nil {
		t.Fatal(err)
	}
	if err := fl.Close(); err != nil {
		t.Fatal(err)
	}
	if err := fl.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}
	fl.LogInfo("after close")
}
