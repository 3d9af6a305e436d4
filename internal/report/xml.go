// Package report implements the XML wire format for bug analysis reports
// and the decomposition of a report into single-finding units.
package report

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"

	"github.com/buglens/buglens/internal/domain"
	"github.com/google/uuid"
)

const xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

// Decode parses a bug analysis report from its XML wire form.
func Decode(data []byte) (*domain.Report, error) {
	var rep domain.Report
	if err := xml.Unmarshal(data, &rep); err != nil {
		return nil, fmt.Errorf("parsing bug analysis report: %w", err)
	}
	return &rep, nil
}

// Encode serializes a report to its XML wire form. An empty bugs or
// affected_files sequence stays present as an empty container element, and
// an absent summary produces no summary element at all.
func Encode(rep *domain.Report) ([]byte, error) {
	body, err := xml.MarshalIndent(rep, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding bug analysis report: %w", err)
	}
	return append([]byte(xmlHeader), body...), nil
}

// Load reads and parses a report file. A missing file and an unparseable
// file are both fatal to the caller, but surface as distinct errors: the
// former wraps fs.ErrNotExist.
func Load(path string) (*domain.Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading bug analysis report %s: %w", path, err)
	}
	return Decode(data)
}

// Save writes a report to the given path in the XML wire format.
func Save(path string, rep *domain.Report) error {
	data, err := Encode(rep)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing bug analysis report %s: %w", path, err)
	}
	return nil
}

// SaveTemp writes a report to a uniquely named file in dir and returns its
// path. Used for ephemeral single-finding units; the caller owns deletion.
func SaveTemp(dir string, rep *domain.Report) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("%s_single_bug.xml", uuid.NewString()))
	if err := Save(path, rep); err != nil {
		return "", err
	}
	return path, nil
}
