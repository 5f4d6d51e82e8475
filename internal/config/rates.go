package config

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fiscalite/taxsim/internal/domain"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
)

//go:embed rates/*.yaml
var embeddedRates embed.FS

// RateBook is a read-only set of rate tables keyed by tax year.
type RateBook struct {
	tables map[int]*domain.RateTables
}

// NewRateBook builds a book from already decoded tables. Every table is validated.
func NewRateBook(tables ...*domain.RateTables) (*RateBook, error) {
	book := &RateBook{tables: make(map[int]*domain.RateTables, len(tables))}
	for _, rt := range tables {
		if err := book.add(rt); err != nil {
			return nil, err
		}
	}
	if len(book.tables) == 0 {
		return nil, fmt.Errorf("rate book is empty")
	}
	return book, nil
}

// LoadDefaultRateBook loads the rate tables shipped with the binary.
func LoadDefaultRateBook() (*RateBook, error) {
	return loadRateBook(embeddedRates, "rates", nil)
}

// LoadRateBook loads the shipped tables, then every *.yaml file in dir.
// A file for a year already shipped replaces it.
func LoadRateBook(dir string) (*RateBook, error) {
	if dir == "" {
		return LoadDefaultRateBook()
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("rates directory %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("rates directory %s is not a directory", dir)
	}
	base, err := LoadDefaultRateBook()
	if err != nil {
		return nil, err
	}
	return loadRateBook(os.DirFS(dir), ".", base)
}

func loadRateBook(fsys fs.FS, dir string, base *RateBook) (*RateBook, error) {
	book := &RateBook{tables: map[int]*domain.RateTables{}}
	if base != nil {
		for y, rt := range base.tables {
			book.tables[y] = rt
		}
	}

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list rate tables: %w", err)
	}
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		data, err := fs.ReadFile(fsys, filepath.ToSlash(filepath.Join(dir, e.Name())))
		if err != nil {
			return nil, fmt.Errorf("failed to read rate table %s: %w", e.Name(), err)
		}
		rt, err := ParseRateTables(data)
		if err != nil {
			return nil, fmt.Errorf("rate table %s: %w", e.Name(), err)
		}
		book.tables[rt.Metadata.TaxYear] = rt
	}
	if len(book.tables) == 0 {
		return nil, fmt.Errorf("no rate tables found")
	}
	return book, nil
}

// ParseRateTables decodes and validates one YAML rate table.
func ParseRateTables(data []byte) (*domain.RateTables, error) {
	var rt domain.RateTables
	if err := yaml.Unmarshal(data, &rt); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := rt.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rate table: %w", err)
	}
	return &rt, nil
}

func (b *RateBook) add(rt *domain.RateTables) error {
	if rt == nil {
		return fmt.Errorf("nil rate table")
	}
	if err := rt.Validate(); err != nil {
		return fmt.Errorf("invalid rate table: %w", err)
	}
	if _, dup := b.tables[rt.Metadata.TaxYear]; dup {
		return fmt.Errorf("duplicate rate table for %d", rt.Metadata.TaxYear)
	}
	b.tables[rt.Metadata.TaxYear] = rt
	return nil
}

// ForYear returns the table of a tax year. Unknown years are lookup errors,
// never a silent fallback to another year.
func (b *RateBook) ForYear(year int) (*domain.RateTables, error) {
	rt, ok := b.tables[year]
	if !ok {
		return nil, domain.NewLookupError("rate table year", year)
	}
	return rt, nil
}

// Resolve maps year 0 to the latest table.
func (b *RateBook) Resolve(year int) (*domain.RateTables, error) {
	if year == 0 {
		return b.Latest(), nil
	}
	return b.ForYear(year)
}

// Latest returns the table of the most recent tax year.
func (b *RateBook) Latest() *domain.RateTables {
	return b.tables[lo.Max(b.Years())]
}

// Years lists the loaded tax years in ascending order.
func (b *RateBook) Years() []int {
	years := lo.Keys(b.tables)
	sort.Ints(years)
	return years
}
