package commands

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// renderRows writes rows to stdout in the globally selected --format,
// picking the named columns (by their JSON tag) for the tabular formats.
// Generalizes info.go's `switch outputFormat { case "json": ...; default:
// ... }` pattern to an arbitrary row shape, since every query-producing
// command in spec.md §6 shares the same {txt, json, csv, count, raw}
// contract instead of each hand-rolling its own table printer.
func renderRows[T any](rows []T, columns ...string) error {
	switch outputFormat {
	case "json":
		return renderJSON(rows)
	case "count":
		fmt.Println(len(rows))
		return nil
	case "csv":
		return renderCSV(rows, columns)
	case "raw":
		return renderDelimited(rows, columns, "|")
	default:
		return renderText(rows, columns)
	}
}

func renderJSON[T any](rows []T) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func renderCSV[T any](rows []T, columns []string) error {
	w := csv.NewWriter(os.Stdout)
	defer w.Flush()
	if err := w.Write(columns); err != nil {
		return fmt.Errorf("fpdf: writing csv header: %w", err)
	}
	for _, values := range rowsToStrings(rows, columns) {
		if err := w.Write(values); err != nil {
			return fmt.Errorf("fpdf: writing csv row: %w", err)
		}
	}
	return nil
}

func renderDelimited[T any](rows []T, columns []string, sep string) error {
	for _, values := range rowsToStrings(rows, columns) {
		fmt.Println(strings.Join(values, sep))
	}
	return nil
}

func renderText[T any](rows []T, columns []string) error {
	values := rowsToStrings(rows, columns)
	if len(values) == 0 {
		fmt.Println("(no matches)")
		return nil
	}
	widths := make([]int, len(columns))
	for i, c := range columns {
		widths[i] = len(c)
	}
	for _, row := range values {
		for i, v := range row {
			if len(v) > widths[i] {
				widths[i] = len(v)
			}
		}
	}
	printRow(columns, widths)
	for _, row := range values {
		printRow(row, widths)
	}
	return nil
}

func printRow(values []string, widths []int) {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("%-*s", widths[i], v)
	}
	fmt.Println(strings.Join(parts, "  "))
}

// rowsToStrings flattens rows through JSON so that any struct carrying
// `json:"..."` tags can be rendered without a bespoke per-command table
// builder; missing or non-scalar fields render as their JSON form.
func rowsToStrings[T any](rows []T, columns []string) [][]string {
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		data, err := json.Marshal(row)
		if err != nil {
			continue
		}
		var asMap map[string]json.RawMessage
		if err := json.Unmarshal(data, &asMap); err != nil {
			continue
		}
		values := make([]string, len(columns))
		for i, c := range columns {
			values[i] = scalarString(asMap[c])
		}
		out = append(out, values)
	}
	return out
}

func scalarString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	trimmed := strings.Trim(string(raw), `"`)
	return trimmed
}
