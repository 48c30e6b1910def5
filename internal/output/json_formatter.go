package output

import (
	"encoding/json"
	"fmt"

	"github.com/rgehrsitz/goalplan/internal/domain"
)

// JSONFormatter exports the full report envelope as indented JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(report *domain.Report) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("report is nil")
	}
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}
	return append(data, '\n'), nil
}
