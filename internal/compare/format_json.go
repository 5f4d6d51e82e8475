package compare

import (
	"encoding/json"
	"strings"
)

// JSONFormatter renders a status comparison as JSON.
type JSONFormatter struct {
	Pretty bool
}

// Format encodes compSet; non-ASCII text such as "€" is kept as is.
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	var sb strings.Builder
	enc := json.NewEncoder(&sb)
	enc.SetEscapeHTML(false)
	if jf.Pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(compSet); err != nil {
		return "", err
	}
	return sb.String(), nil
}
