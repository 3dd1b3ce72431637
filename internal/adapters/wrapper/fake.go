package wrapper

import (
	"encoding/json"
	"fmt"

	"go.trai.ch/solcbuild/internal/core/ports"
)

// Fake is an in-memory CompilerWrapper for tests. It never shells out; it
// synthesizes a standard-JSON output that places every requested contract
// name under every unit path, so planner/dispatcher/writer tests can run
// without a real solcjs binary.
type Fake struct {
	version      string
	settings     json.RawMessage
	ContractName string
	Calls        int
	Err          error
}

// NewFake creates a Fake wrapper pinned to version, reporting contractName
// as the single contract produced per source file.
func NewFake(version, contractName string, settings json.RawMessage) *Fake {
	return &Fake{version: version, settings: settings, ContractName: contractName}
}

func (f *Fake) Version() string { return f.version }

func (f *Fake) SettingsEqual(persistedSettings json.RawMessage) bool {
	return string(persistedSettings) == string(f.settings)
}

func (f *Fake) Compile(unitContents map[string]string, _ map[string]string) (ports.CompileResult, error) {
	f.Calls++
	if f.Err != nil {
		return ports.CompileResult{}, f.Err
	}

	contracts := make(map[string]map[string]json.RawMessage, len(unitContents))
	for path := range unitContents {
		contracts[path] = map[string]json.RawMessage{
			f.ContractName: json.RawMessage(fmt.Sprintf(`{"abi":[],"evm":{"bytecode":{"object":"%s"}}}`, f.version)),
		}
	}

	output, err := json.Marshal(map[string]any{"contracts": contracts})
	if err != nil {
		return ports.CompileResult{}, err
	}
	return ports.CompileResult{Input: json.RawMessage(`{}`), Output: output}, nil
}
