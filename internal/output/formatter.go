package output

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/fiscalite/taxsim/internal/domain"
	"github.com/samber/lo"
)

// Formatter renders a simulation outcome.
type Formatter interface {
	Name() string
	Format(out *domain.SimulationOutcome) ([]byte, error)
}

// FormatterFunc adapts a function to the Formatter interface.
type FormatterFunc struct {
	ID string
	F  func(out *domain.SimulationOutcome) ([]byte, error)
}

func (f FormatterFunc) Name() string { return f.ID }

func (f FormatterFunc) Format(out *domain.SimulationOutcome) ([]byte, error) { return f.F(out) }

var formatters = []Formatter{
	ConsoleFormatter{},
	ConsoleLiteFormatter{},
	CSVFormatter{},
	JSONFormatter{},
	HTMLFormatter{},
	PDFFormatter{},
}

var formatAliases = map[string]string{
	"text":    "console",
	"table":   "console",
	"verbose": "console",
	"summary": "console-lite",
}

var extensions = map[string]string{
	"console":      "txt",
	"console-lite": "txt",
	"csv":          "csv",
	"json":         "json",
	"html":         "html",
	"pdf":          "pdf",
}

// GetFormatterByName returns the formatter registered under name, or nil.
func GetFormatterByName(name string) Formatter {
	f, ok := lo.Find(formatters, func(f Formatter) bool { return f.Name() == name })
	if !ok {
		return nil
	}
	return f
}

// ResolveFormatter accepts a formatter name or alias, case-insensitively.
func ResolveFormatter(name string) (Formatter, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if alias, ok := formatAliases[key]; ok {
		key = alias
	}
	if f := GetFormatterByName(key); f != nil {
		return f, nil
	}
	return nil, fmt.Errorf("unsupported format %q (available: %s)", name, strings.Join(AvailableFormatterNames(), ", "))
}

// AvailableFormatterNames lists the registered formatter names.
func AvailableFormatterNames() []string {
	return lo.Map(formatters, func(f Formatter, _ int) string { return f.Name() })
}

// AvailableFormatAliases lists the accepted aliases, sorted.
func AvailableFormatAliases() []string {
	aliases := lo.Keys(formatAliases)
	sort.Strings(aliases)
	return aliases
}

// Extension is the file extension used for a formatter's output.
func Extension(f Formatter) string {
	if ext, ok := extensions[f.Name()]; ok {
		return ext
	}
	return "txt"
}

// WriteFormatted renders out and writes it to path. An empty path writes
// simulation_<kind>_<timestamp>.<ext> in the working directory.
func WriteFormatted(f Formatter, out *domain.SimulationOutcome, path string) (string, error) {
	data, err := f.Format(out)
	if err != nil {
		return "", err
	}
	if path == "" {
		path = fmt.Sprintf("simulation_%s_%s.%s", out.Kind, time.Now().Format("20060102_150405"), Extension(f))
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", err
	}
	return path, nil
}
