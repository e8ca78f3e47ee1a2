package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/misterclayt0n/mapty/internal/store"
)

type tomlDump struct {
	Workouts []record `toml:"workout"`
}

// ExportTOML writes every workout as a [[workout]] table, in store order.
func ExportTOML(w io.Writer, s *store.Store) error {
	if err := toml.NewEncoder(w).Encode(tomlDump{Workouts: toRecords(s)}); err != nil {
		return fmt.Errorf("encoding TOML: %w", err)
	}
	return nil
}

// ImportTOML parses a dump written by ExportTOML. Unlike Load it reports
// what is wrong with the file instead of starting empty.
func ImportTOML(r io.Reader) (*store.Store, error) {
	var dump tomlDump
	if _, err := toml.NewDecoder(r).Decode(&dump); err != nil {
		return nil, fmt.Errorf("decoding TOML: %w", err)
	}
	st, err := fromRecords(dump.Workouts)
	if err != nil {
		return nil, err
	}
	return st, nil
}

// ExportFile writes the dump to outputPath, relative to the current directory.
func ExportFile(outputPath string, s *store.Store) error {
	outputPath, err := filepath.Abs(outputPath)
	if err != nil {
		return err
	}

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("writing export file: %w", err)
	}
	defer f.Close()

	if err := ExportTOML(f, s); err != nil {
		return err
	}
	return f.Close()
}

func ImportFile(filePath string) (*store.Store, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("Reading file %s: %w", filePath, err)
	}
	defer f.Close()

	return ImportTOML(f)
}
