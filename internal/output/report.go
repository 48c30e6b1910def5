package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rgehrsitz/goalplan/internal/domain"
)

// GenerateReport renders the report in the specified format and writes it to w.
func GenerateReport(w io.Writer, report *domain.Report, format string) error {
	f := GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("unsupported format: %s (available: %s)", format, strings.Join(AvailableFormatterNames(), ", "))
	}

	data, err := f.Format(report)
	if err != nil {
		return fmt.Errorf("failed to format report: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// FileExtension returns the file extension used when a format is saved to disk.
func FileExtension(format string) string {
	f := GetFormatterByName(format)
	if f == nil {
		return "txt"
	}
	switch f.Name() {
	case "json", "csv", "html":
		return f.Name()
	default:
		return "txt"
	}
}

// SaveReport writes the JSON export of a report to filename.
func SaveReport(report *domain.Report, filename string) error {
	data, err := JSONFormatter{}.Format(report)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, data, 0644)
}

// LoadReport reads a JSON export written by SaveReport or the json formatter.
func LoadReport(filename string) (*domain.Report, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read report %s: %w", filename, err)
	}

	var report domain.Report
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to parse report %s: %w", filename, err)
	}
	if report.Result == nil {
		return nil, fmt.Errorf("report %s has no result", filename)
	}
	return &report, nil
}
