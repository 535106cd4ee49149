package preflight

import (
	"fmt"
	"os"
	"os/exec"

	"golang.org/x/sys/unix"

	"lingoview/internal/config"
)

// CheckDirectoryAccess verifies that the directory exists and is
// readable and writable.
func CheckDirectoryAccess(name, path string) Result {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Result{Name: name, Detail: fmt.Sprintf("%s (error: does not exist)", path)}
		}
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: stat: %v)", path, err)}
	}
	if !info.IsDir() {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: is not a directory)", path)}
	}
	if err := unix.Access(path, unix.R_OK|unix.W_OK|unix.X_OK); err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s (error: insufficient permissions: %v)", path, err)}
	}
	return Result{Name: name, Passed: true, Detail: fmt.Sprintf("%s (read/write ok)", path)}
}

// CheckBinary verifies that an external executable resolves on PATH or
// at an absolute location.
func CheckBinary(name, binary string) Result {
	if binary == "" {
		return Result{Name: name, Detail: "binary not configured"}
	}
	path, err := exec.LookPath(binary)
	if err != nil {
		return Result{Name: name, Detail: fmt.Sprintf("%s not found", binary)}
	}
	return Result{Name: name, Passed: true, Detail: path}
}

// CheckWhisperAPI verifies that transcription credentials are present.
// It does not call the API; a missing key is the common misconfiguration
// worth failing fast on.
func CheckWhisperAPI(cfg config.Whisper) Result {
	const name = "Whisper API"
	if cfg.APIKey == "" {
		return Result{Name: name, Detail: "api key missing (set whisper.api_key or OPENAI_API_KEY)"}
	}
	if cfg.APIBase == "" {
		return Result{Name: name, Detail: "api base missing"}
	}
	return Result{Name: name, Passed: true, Detail: cfg.APIBase}
}
