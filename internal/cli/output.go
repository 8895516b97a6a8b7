package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// emit writes v as JSON, optionally narrowed by a JSONPath expression.
func emit(w io.Writer, v any, format, query string) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}

	if expr := strings.TrimSpace(query); expr != "" {
		data, err = applyQuery(data, expr)
		if err != nil {
			return err
		}
	}

	var buf bytes.Buffer
	switch format {
	case "json", "":
		if err := json.Indent(&buf, data, "", "  "); err != nil {
			return err
		}
	case "compact":
		buf.Write(data)
	default:
		return fmt.Errorf("unsupported output %q (expected json|compact)", format)
	}
	buf.WriteByte('\n')

	_, err = w.Write(buf.Bytes())
	return err
}

func applyQuery(data []byte, expr string) ([]byte, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode result: %w", err)
	}
	val, err := jsonpath.Get(expr, doc)
	if err != nil {
		return nil, fmt.Errorf("query %q: %w", expr, err)
	}
	return json.Marshal(val)
}
