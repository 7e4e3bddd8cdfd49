package catalog

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/Veraticus/smartfood/internal/matcher"
)

//go:embed hints.yaml
var hintsYAML []byte

// Hint is a commonly stocked ingredient with its usual unit and category.
type Hint struct {
	Name     string `yaml:"name"`
	Unit     string `yaml:"unit"`
	Category string `yaml:"category"`
}

var (
	hintsOnce sync.Once
	hints     []Hint
	hintsErr  error
)

func loadHints() ([]Hint, error) {
	hintsOnce.Do(func() {
		var f struct {
			Hints []Hint `yaml:"hints"`
		}
		if err := yaml.Unmarshal(hintsYAML, &f); err != nil {
			hintsErr = fmt.Errorf("failed to parse built-in hints: %w", err)
			return
		}
		hints = f.Hints
	})
	return hints, hintsErr
}

// Hints returns every built-in ingredient hint.
func Hints() []Hint {
	all, err := loadHints()
	if err != nil {
		panic(err)
	}
	return append([]Hint(nil), all...)
}

// SearchHints returns the hints whose folded name contains term. An empty
// term returns every hint.
func SearchHints(term string) []Hint {
	all := Hints()
	needle := matcher.NormalizeName(term)
	if needle == "" {
		return all
	}

	out := make([]Hint, 0, len(all))
	for _, h := range all {
		if strings.Contains(matcher.NormalizeName(h.Name), needle) {
			out = append(out, h)
		}
	}
	return out
}

// LookupHint returns the hint whose name matches name after normalization.
func LookupHint(name string) (Hint, bool) {
	key := matcher.NormalizeName(name)
	if key == "" {
		return Hint{}, false
	}
	for _, h := range Hints() {
		if matcher.NormalizeName(h.Name) == key {
			return h, true
		}
	}
	return Hint{}, false
}
