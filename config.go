package bfvm

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	bf "nickandperla.net/bfvm/brainfuck"
)

// ToolConfig is what the cmd tools load from a TOML file: machine settings
// plus the optional run-history persistence settings.
type ToolConfig struct {
	Machine     *bf.MachineConfig  `toml:"machine"`
	Persistence *PersistenceConfig `toml:"persistence"`
}

func DefaultToolConfig() *ToolConfig {
	return &ToolConfig{
		Machine: &bf.MachineConfig{
			CellCount:                    bf.DEFAULT_CELL_COUNT,
			MaxInstructionExecutionCount: 0,
		},
		Persistence: &PersistenceConfig{
			Name:          "bfvm_history.db",
			Path:          ".",
			SQLitePragmas: []string{"journal_mode(WAL)"},
		},
	}
}

// LoadToolConfig reads a TOML config file. Missing sections fall back to
// defaults so a config can set just the keys it cares about.
func LoadToolConfig(path string) (*ToolConfig, error) {
	conffile, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("Unable to load bfvm config: %v", err)
	}
	defer conffile.Close()

	config := DefaultToolConfig()
	if _, err := toml.NewDecoder(conffile).Decode(config); err != nil {
		return nil, fmt.Errorf("Failed to unmarshal tool config: %v", err)
	}

	return config, nil
}
