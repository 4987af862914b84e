// Package logger provides crash logging and recovery for momentum.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"sort"
	"strings"
	"sync"
	"time"
)

const (
	// CrashLogDir is the directory for crash logs relative to the data dir.
	CrashLogDir = "crash_logs"

	// MaxCrashLogs is the maximum number of crash logs to keep.
	MaxCrashLogs = 10
)

// CrashContext stores context for crash logging.
type CrashContext struct {
	mu         sync.RWMutex
	lastInput  string
	lastPrompt string
	command    string
	version    string
	basePath   string
}

var globalContext = &CrashContext{}

// SetBasePath sets the base path for crash logs (the momentum data dir).
func SetBasePath(path string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.basePath = path
}

// SetVersion sets the application version for crash logs.
func SetVersion(version string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.version = version
}

// SetCommand sets the current command being executed.
func SetCommand(cmd string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.command = cmd
}

// SetLastInput sets the last user input (goal text, reflection) for crash
// context.
func SetLastInput(input string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.lastInput = truncateForLog(strings.TrimSpace(input), 500)
}

// SetLastPrompt sets the last generation prompt for crash context.
func SetLastPrompt(prompt string) {
	globalContext.mu.Lock()
	defer globalContext.mu.Unlock()
	globalContext.lastPrompt = truncateForLog(prompt, 2000)
}

func truncateForLog(value string, maxLen int) string {
	if len(value) <= maxLen {
		return value
	}
	return value[:maxLen] + "... [truncated]"
}

// CrashLog represents a crash log entry.
type CrashLog struct {
	Timestamp  time.Time
	Version    string
	Command    string
	PanicValue string
	StackTrace string
	LastInput  string
	LastPrompt string
	GoVersion  string
	OS         string
	Arch       string
}

// HandlePanic is a deferred function that recovers from panics and logs them.
// Usage: defer logger.HandlePanic()
func HandlePanic() {
	if r := recover(); r != nil {
		log := createCrashLog(r)
		if err := writeCrashLog(log); err != nil {
			fmt.Fprintf(os.Stderr, "\n[CRASH] Failed to write crash log: %v\n", err)
			fmt.Fprintf(os.Stderr, "[CRASH] Panic: %v\n%s\n", r, debug.Stack())
		}

		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "momentum encountered an unexpected error.\n")
		fmt.Fprintf(os.Stderr, "A crash log has been saved to:\n")
		fmt.Fprintf(os.Stderr, "  %s\n", getCrashLogPath(log.Timestamp))
		fmt.Fprintf(os.Stderr, "\n")

		os.Exit(1)
	}
}

func createCrashLog(panicValue any) CrashLog {
	globalContext.mu.RLock()
	defer globalContext.mu.RUnlock()

	return CrashLog{
		Timestamp:  time.Now(),
		Version:    globalContext.version,
		Command:    globalContext.command,
		PanicValue: fmt.Sprintf("%v", panicValue),
		StackTrace: string(debug.Stack()),
		LastInput:  globalContext.lastInput,
		LastPrompt: globalContext.lastPrompt,
		GoVersion:  runtime.Version(),
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
	}
}

func writeCrashLog(log CrashLog) error {
	dir := getCrashLogDir()

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create crash log dir: %w", err)
	}

	if err := cleanOldCrashLogs(dir); err != nil {
		// Non-fatal, continue with writing
		fmt.Fprintf(os.Stderr, "[WARN] Failed to clean old crash logs: %v\n", err)
	}

	path := getCrashLogPath(log.Timestamp)
	if err := os.WriteFile(path, []byte(formatCrashLog(log)), 0644); err != nil {
		return fmt.Errorf("write crash log: %w", err)
	}
	return nil
}

// cleanOldCrashLogs keeps at most MaxCrashLogs logs in dir, removing the
// oldest first. Filenames embed the timestamp, so lexical order is
// chronological.
func cleanOldCrashLogs(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), "crash_") && strings.HasSuffix(e.Name(), ".log") {
			names = append(names, e.Name())
		}
	}
	if len(names) <= MaxCrashLogs {
		return nil
	}

	sort.Strings(names)
	for _, name := range names[:len(names)-MaxCrashLogs] {
		if err := os.Remove(filepath.Join(dir, name)); err != nil {
			return fmt.Errorf("remove old crash log %s: %w", name, err)
		}
	}
	return nil
}

// ListCrashLogs returns paths of all saved crash logs.
func ListCrashLogs() ([]string, error) {
	dir := getCrashLogDir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var logs []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), "crash_") && strings.HasSuffix(e.Name(), ".log") {
			logs = append(logs, filepath.Join(dir, e.Name()))
		}
	}
	return logs, nil
}

// ReadCrashLog reads a crash log file.
func ReadCrashLog(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

func getCrashLogDir() string {
	globalContext.mu.RLock()
	basePath := globalContext.basePath
	globalContext.mu.RUnlock()

	if basePath == "" {
		basePath = ".momentum"
	}
	return filepath.Join(basePath, CrashLogDir)
}

func getCrashLogPath(t time.Time) string {
	filename := fmt.Sprintf("crash_%s.log", t.Format("20060102_150405"))
	return filepath.Join(getCrashLogDir(), filename)
}

func formatCrashLog(log CrashLog) string {
	var sb strings.Builder

	sb.WriteString(strings.Repeat("=", 80) + "\n")
	sb.WriteString("MOMENTUM CRASH LOG\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n\n")

	sb.WriteString(fmt.Sprintf("Timestamp: %s\n", log.Timestamp.Format(time.RFC3339)))
	sb.WriteString(fmt.Sprintf("Version:   %s\n", log.Version))
	sb.WriteString(fmt.Sprintf("Command:   %s\n", log.Command))
	sb.WriteString(fmt.Sprintf("Go:        %s\n", log.GoVersion))
	sb.WriteString(fmt.Sprintf("OS/Arch:   %s/%s\n", log.OS, log.Arch))

	sb.WriteString("\n" + strings.Repeat("-", 80) + "\n")
	sb.WriteString("PANIC VALUE\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(log.PanicValue + "\n")

	sb.WriteString("\n" + strings.Repeat("-", 80) + "\n")
	sb.WriteString("STACK TRACE\n")
	sb.WriteString(strings.Repeat("-", 80) + "\n")
	sb.WriteString(log.StackTrace)

	if log.LastInput != "" {
		sb.WriteString("\n" + strings.Repeat("-", 80) + "\n")
		sb.WriteString("LAST USER INPUT\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		sb.WriteString(log.LastInput + "\n")
	}

	if log.LastPrompt != "" {
		sb.WriteString("\n" + strings.Repeat("-", 80) + "\n")
		sb.WriteString("LAST GENERATION PROMPT\n")
		sb.WriteString(strings.Repeat("-", 80) + "\n")
		sb.WriteString(log.LastPrompt + "\n")
	}

	sb.WriteString("\n" + strings.Repeat("=", 80) + "\n")
	sb.WriteString("END OF CRASH LOG\n")
	sb.WriteString(strings.Repeat("=", 80) + "\n")

	return sb.String()
}
