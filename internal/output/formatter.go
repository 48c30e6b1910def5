package output

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/rgehrsitz/goalplan/internal/domain"
)

// Formatter renders a report into a byte representation.
type Formatter interface {
	Name() string
	Format(report *domain.Report) ([]byte, error)
}

// FormatterFunc adapts a plain function to the Formatter interface.
type FormatterFunc struct {
	ID string
	F  func(report *domain.Report) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(report *domain.Report) ([]byte, error) { return f.F(report) }

var formatters = map[string]Formatter{}

// formatAliases maps alternative names onto registered formatters.
var formatAliases = map[string]string{
	"verbose": "console-verbose",
	"detail":  "console-verbose",
	"text":    "share",
	"summary": "share",
}

func register(f Formatter) {
	formatters[f.Name()] = f
}

func init() {
	register(ConsoleFormatter{})
	register(ConsoleFormatter{Verbose: true})
	register(JSONFormatter{})
	register(CSVFormatter{})
	register(ShareFormatter{})
	register(HTMLFormatter{})
}

// GetFormatterByName returns the formatter registered under name or one of
// its aliases, or nil.
func GetFormatterByName(name string) Formatter {
	if target, ok := formatAliases[name]; ok {
		name = target
	}
	return formatters[name]
}

// AvailableFormatterNames lists registered formatter names in sorted order.
func AvailableFormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists the accepted aliases in sorted order.
func AvailableFormatAliases() []string {
	aliases := make([]string, 0, len(formatAliases))
	for alias := range formatAliases {
		aliases = append(aliases, alias)
	}
	sort.Strings(aliases)
	return aliases
}

// WriteFormatted renders the report and writes it to a timestamped file in
// the working directory. It returns the file name.
func WriteFormatted(f Formatter, report *domain.Report, ext string) (string, error) {
	data, err := f.Format(report)
	if err != nil {
		return "", fmt.Errorf("%s formatter failed: %w", f.Name(), err)
	}

	filename := fmt.Sprintf("goalplan_report_%s.%s", time.Now().Format("20060102_150405"), ext)
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return filename, nil
}
