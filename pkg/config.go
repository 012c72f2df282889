package decoder

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

type Configuration struct {
	FileIn           string `json:"file_in" toml:"file_in"`
	FileOut          string `json:"file_out" toml:"file_out"`
	Verbosity        int    `json:"verbosity" toml:"verbosity"`
	NoDB             bool   `json:"no_db" toml:"no_db"`
	Host             string `json:"host" toml:"host"`
	User             string `json:"user" toml:"user"`
	Passwd           string `json:"pass" toml:"pass"`
	DBName           string `json:"dbname" toml:"dbname"`
	RunNumber        int    `json:"run_number" toml:"run_number"`
	Skip             int    `json:"skip" toml:"skip"`
	MaxChunks        int    `json:"max_chunks" toml:"max_chunks"`
	WriteData        bool   `json:"write_data" toml:"write_data"`
	CompressionLevel int    `json:"compression_level" toml:"compression_level"`
	ChunkIndex       int    `json:"chunk_index" toml:"chunk_index"`
	NumWorkers       int    `json:"num_workers" toml:"num_workers"`
}

var configuration Configuration

func GetConfiguration() Configuration {
	return configuration
}

func SetConfiguration(config Configuration) {
	configuration = config
}

func DefaultConfiguration() Configuration {
	var config Configuration
	config.Verbosity = 0
	config.NoDB = false
	config.Host = "next.ific.uv.es"
	config.User = "nextreader"
	config.Passwd = "readonly"
	config.DBName = "TDCPIX"
	config.RunNumber = 0
	config.Skip = 0
	config.MaxChunks = 1000000000
	config.WriteData = true
	config.CompressionLevel = 4
	config.ChunkIndex = 0
	config.NumWorkers = 1
	return config
}

// LoadConfiguration reads a JSON file, or TOML when the extension is
// ".toml", on top of the default values.
func LoadConfiguration(filename string) (Configuration, error) {
	config := DefaultConfiguration()

	if filepath.Ext(filename) == ".toml" {
		if _, err := toml.DecodeFile(filename, &config); err != nil {
			return config, fmt.Errorf("error decoding %s: %w", filename, err)
		}
		return config, nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, fmt.Errorf("error reading %s: %w", filename, err)
	}
	err = json.Unmarshal(data, &config)
	if err != nil {
		return config, fmt.Errorf("error decoding %s: %w", filename, err)
	}
	return config, nil
}
