package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
)

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

// printLine writes raw as a single JSON line.
func printLine(w io.Writer, raw json.RawMessage) error {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return fmt.Errorf("compact hit: %w", err)
	}
	buf.WriteByte('\n')
	_, err := w.Write(buf.Bytes())
	return err
}

func printCounts(w io.Writer, facets map[string]map[string]int) {
	for _, name := range slices.Sorted(maps.Keys(facets)) {
		counts := facets[name]
		parts := make([]string, 0, len(counts))
		for _, value := range slices.Sorted(maps.Keys(counts)) {
			parts = append(parts, fmt.Sprintf("%s=%d", value, counts[value]))
		}
		fmt.Fprintf(w, "facet %s: %s\n", name, strings.Join(parts, " "))
	}
}

func textArg(args []string) string {
	if len(args) > 1 {
		return args[1]
	}
	return ""
}
