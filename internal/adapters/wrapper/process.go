// Package wrapper implements the §6.3 compiler-wrapper capability: a
// process wrapper that shells out to a local solcjs-compatible binary, a
// fake wrapper for tests, and the family-dispatching lazy registry that
// selects between them by normalized version.
package wrapper

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"go.trai.ch/solcbuild/internal/core/ports"
	"go.trai.ch/zerr"
)

// standardJSONInput is the shape fed to a solcjs-compatible binary on
// stdin. Only the fields this driver fills in are modeled; everything else
// in Settings is passed through opaquely.
type standardJSONInput struct {
	Language string                    `json:"language"`
	Sources  map[string]sourceEntry    `json:"sources"`
	Settings json.RawMessage           `json:"settings,omitempty"`
}

type sourceEntry struct {
	Content string `json:"content"`
}

// Process shells out to a solcjs-compatible binary located via $SOLCJS_PATH
// or PATH, feeding it standard-JSON input on stdin and parsing standard-JSON
// from stdout.
type Process struct {
	version     string
	binaryPath  string
	settings    json.RawMessage
	invokeTimeout time.Duration
}

// NewProcess constructs a Process wrapper for the given normalized version.
// binaryPath is resolved by the caller (env override, then PATH lookup).
func NewProcess(version, binaryPath string, settings json.RawMessage) *Process {
	return &Process{version: version, binaryPath: binaryPath, settings: settings, invokeTimeout: 2 * time.Minute}
}

// ResolveBinaryPath implements the $SOLCJS_PATH / PATH lookup order from
// spec §6.2.
func ResolveBinaryPath() (string, error) {
	if p := os.Getenv("SOLCJS_PATH"); p != "" {
		return p, nil
	}
	p, err := exec.LookPath("solcjs")
	if err != nil {
		return "", zerr.Wrap(err, "solcjs binary not found; set SOLCJS_PATH or add it to PATH")
	}
	return p, nil
}

func (p *Process) Version() string {
	return p.version
}

func (p *Process) SettingsEqual(persistedSettings json.RawMessage) bool {
	return bytes.Equal(normalizeJSON(persistedSettings), normalizeJSON(p.settings))
}

func (p *Process) Compile(unitContents map[string]string, remappings map[string]string) (ports.CompileResult, error) {
	sources := make(map[string]sourceEntry, len(unitContents))
	for path, content := range unitContents {
		sources[path] = sourceEntry{Content: content}
	}

	input := standardJSONInput{
		Language: "Solidity",
		Sources:  sources,
		Settings: p.settings,
	}

	inputBytes, err := json.Marshal(input)
	if err != nil {
		return ports.CompileResult{}, zerr.Wrap(err, "failed to marshal standard-JSON input")
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.invokeTimeout)
	defer cancel()

	args := standardJSONArgs(remappings)
	cmd := exec.CommandContext(ctx, p.binaryPath, args...)
	cmd.Stdin = bytes.NewReader(inputBytes)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return ports.CompileResult{}, zerr.With(zerr.Wrap(err, "compiler invocation failed"), "stderr", stderr.String())
	}

	return ports.CompileResult{Input: inputBytes, Output: stdout.Bytes()}, nil
}

func standardJSONArgs(remappings map[string]string) []string {
	args := []string{"--standard-json"}
	for prefix, root := range remappings {
		args = append(args, prefix+"="+filepath.Clean(root))
	}
	return args
}

// normalizeJSON re-marshals JSON through a generic interface so that
// byte-level formatting differences (whitespace, key order) do not affect
// equality comparison.
func normalizeJSON(raw json.RawMessage) []byte {
	if len(raw) == 0 {
		return nil
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return raw
	}
	out, err := json.Marshal(v)
	if err != nil {
		return raw
	}
	return out
}
