// Package importer turns operator rota spreadsheets into schedule entries.
package importer

import (
	"math"
	"strconv"
	"strings"
)

// Kind classifies a spreadsheet cell.
type Kind int

const (
	Empty Kind = iota
	Number
	Text
)

// Cell is one spreadsheet cell as read from the file.
type Cell struct {
	Kind  Kind
	Value string
}

// Grid is a sheet's cells, rows first. Rows may have different lengths.
type Grid [][]Cell

// TextCell returns a Text cell, or an Empty one for blank strings.
func TextCell(s string) Cell {
	s = strings.TrimSpace(s)
	if s == "" {
		return Cell{Kind: Empty}
	}
	return Cell{Kind: Text, Value: s}
}

// NumberCell returns a Number cell holding the raw numeric value.
func NumberCell(raw string) Cell {
	return Cell{Kind: Number, Value: strings.TrimSpace(raw)}
}

// at returns the cell at column col of row, Empty when the row is short.
func at(row []Cell, col int) Cell {
	if col < len(row) {
		return row[col]
	}
	return Cell{Kind: Empty}
}

// isNumber reports whether s holds a finite number.
func isNumber(s string) bool {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return err == nil && !math.IsNaN(f) && !math.IsInf(f, 0)
}
