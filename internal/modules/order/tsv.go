package order

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/teletec/intercom-configurator/internal/domain"
	"github.com/teletec/intercom-configurator/internal/utils"
)

// TSVHeader is the first row of every export
const TSVHeader = "Product Number\tName\tQuantity"

// PlaceholderDisplay replaces the placeholder product number in exports
const PlaceholderDisplay = "To be determined by installer"

// WriteTSV writes lines as a tab-separated table with a header row.
// Nothing is written for an empty list.
func WriteTSV(w io.Writer, lines []Line) error {
	if len(lines) == 0 {
		return nil
	}

	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, TSVHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, line := range lines {
		if _, err := fmt.Fprintf(bw, "%s\t%s\t%d\n", displayProductNumber(line.ProductNumber), utils.SanitizeCell(line.Name), line.Quantity); err != nil {
			return fmt.Errorf("failed to write line %s: %w", line.ProductNumber, err)
		}
	}
	return bw.Flush()
}

// FormatTSV returns the tab-separated table of lines
func FormatTSV(lines []Line) string {
	var buf bytes.Buffer
	_ = WriteTSV(&buf, lines)
	return buf.String()
}

// ParseTSV reads a table written by WriteTSV.
// The header row and blank lines are skipped.
func ParseTSV(r io.Reader) ([]Line, error) {
	var lines []Line
	scanner := bufio.NewScanner(r)
	row := 0

	for scanner.Scan() {
		row++
		text := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" || (row == 1 && text == TSVHeader) {
			continue
		}

		fields := strings.Split(text, "\t")
		if len(fields) != 3 {
			return nil, fmt.Errorf("row %d: expected 3 columns, got %d", row, len(fields))
		}

		pn, err := parseDisplayedProductNumber(fields[0])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		quantity, err := strconv.Atoi(strings.TrimSpace(fields[2]))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid quantity %q: %w", row, fields[2], err)
		}

		lines = append(lines, Line{ProductNumber: pn, Name: fields[1], Quantity: quantity})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read table: %w", err)
	}
	return lines, nil
}

func displayProductNumber(pn domain.ProductNumber) string {
	if pn.IsPlaceholder() {
		return PlaceholderDisplay
	}
	return pn.String()
}

func parseDisplayedProductNumber(s string) (domain.ProductNumber, error) {
	s = strings.TrimSpace(s)
	if s == PlaceholderDisplay {
		return domain.PlaceholderProductNumber, nil
	}
	return domain.ParseProductNumber(s)
}
