package simplelogger

import (
	"bytes"
	"fmt"
	"os"
	"sync"
)

// EnvLogFile names the environment variable holding the log file path.
const EnvLogFile = "SYMDIFF_LOG_FILE"

var mu sync.Mutex

// Enabled reports whether Log would write anything. Callers can use it to skip building expensive log arguments.
func Enabled() bool {
	return os.Getenv(EnvLogFile) != ""
}

// Log is a minimal printf-style logger. It appends formatted output to the file
// specified by the SYMDIFF_LOG_FILE environment variable.
//
// If SYMDIFF_LOG_FILE is unset/empty or the path can't be opened as a file,
// Log is a no-op.
func Log(format string, args ...any) {
	path := os.Getenv(EnvLogFile)
	if path == "" {
		return
	}

	// Serialize open/write/close to reduce interleaving within a single process.
	mu.Lock()
	defer mu.Unlock()

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return
	}
	defer f.Close()

	var b bytes.Buffer
	_, _ = fmt.Fprintf(&b, format, args...)
	if b.Len() == 0 || b.Bytes()[b.Len()-1] != '\n' {
		_ = b.WriteByte('\n')
	}
	_, _ = f.Write(b.Bytes())
}
