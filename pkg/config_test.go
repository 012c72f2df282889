package decoder

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigurationJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"file_in": "run.txt", "file_out": "run.h5", "verbosity": 2, "no_db": true, "max_chunks": 10}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	config, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if config.FileIn != "run.txt" || config.FileOut != "run.h5" || config.Verbosity != 2 || !config.NoDB || config.MaxChunks != 10 {
		t.Fatalf("unexpected configuration %+v", config)
	}
	// not in the file
	if config.Host != "next.ific.uv.es" || config.CompressionLevel != 4 || !config.WriteData || config.NumWorkers != 1 {
		t.Fatalf("expected default values got %+v", config)
	}
}

func TestLoadConfigurationTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
file_in = "run.txt.zst"
run_number = 14780
skip = 3
num_workers = 8
write_data = false
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	config, err := LoadConfiguration(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if config.FileIn != "run.txt.zst" || config.RunNumber != 14780 || config.Skip != 3 || config.NumWorkers != 8 || config.WriteData {
		t.Fatalf("unexpected configuration %+v", config)
	}
	if config.DBName != "TDCPIX" || config.MaxChunks != 1000000000 {
		t.Fatalf("expected default values got %+v", config)
	}
}

func TestLoadConfigurationErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadConfiguration(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatalf("expected error for missing file")
	}

	badJSON := filepath.Join(dir, "bad.json")
	badTOML := filepath.Join(dir, "bad.toml")
	os.WriteFile(badJSON, []byte(`{"verbosity": "high"}`), 0644)
	os.WriteFile(badTOML, []byte(`verbosity = [`), 0644)
	for _, filename := range []string{badJSON, badTOML} {
		_, err := LoadConfiguration(filename)
		if err == nil {
			t.Fatalf("expected error for %s", filename)
		}
		if !strings.Contains(err.Error(), filename) {
			t.Fatalf("expected %s in error got %v", filename, err)
		}
	}

	missing := filepath.Join(dir, "missing.json")
	_, err := LoadConfiguration(missing)
	if !errors.Is(err, os.ErrNotExist) || !strings.Contains(err.Error(), missing) {
		t.Fatalf("expected wrapped not-exist error for %s got %v", missing, err)
	}
}
