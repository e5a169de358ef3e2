package importer

import (
	"fmt"

	"go.uber.org/zap"
)

// NoEntriesMessage is reported when a sheet holds no importable pair.
const NoEntriesMessage = "No valid schedule entries found in the Excel file."

// ReadEntries reads a workbook and projects its first sheet. Skipped pairs are
// logged at debug level; an unreadable workbook is an error, an empty one is
// not.
func ReadEntries(filename string, data []byte, log *zap.Logger) (Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	grid, err := ReadWorkbook(filename, data)
	if err != nil {
		return Result{}, fmt.Errorf("read %s: %w", filename, err)
	}
	res := Project(grid)
	for _, s := range res.Skipped {
		log.Debug("skipped schedule pair",
			zap.String("file", filename),
			zap.Int("row", s.Row),
			zap.Int("column", s.Column),
			zap.String("reason", s.Reason))
	}
	log.Info("workbook read",
		zap.String("file", filename),
		zap.Int("entries", len(res.Entries)),
		zap.Int("skipped", len(res.Skipped)))
	return res, nil
}
