// Package importer loads the fixed-layout enrichment feed into the
// record table, one row per record, one INSERT per row. There is no
// validation, no duplicate detection, and no cross-row transaction: a
// crash after N rows leaves exactly N rows persisted.
package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/craigderington/m3data-api/internal/models"
	"github.com/uptrace/bun"
	"github.com/xuri/excelize/v2"
)

// The feed has 40 positional columns and no header row.
const columnCount = 40

type Importer struct {
	db bun.IDB
}

func New(db bun.IDB) *Importer {
	return &Importer{db: db}
}

// ImportCSV streams a comma-delimited file row by row. Row failures
// are logged and skipped; the returned count is rows persisted.
func (im *Importer) ImportCSV(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("error accessing the CSV file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	count := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Printf("Skipping unreadable row: %v", err)
			continue
		}
		if im.writeRow(ctx, row) {
			count++
		}
	}

	return count, nil
}

// ImportXLSX reads the first sheet of a workbook laid out like the CSV
// feed.
func (im *Importer) ImportXLSX(ctx context.Context, path string) (int, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return 0, fmt.Errorf("error accessing the XLSX file: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return 0, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return 0, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}

	count := 0
	for _, row := range rows {
		if im.writeRow(ctx, row) {
			count++
		}
	}

	return count, nil
}

// writeRow builds and inserts a single record. Each row is its own
// commit.
func (im *Importer) writeRow(ctx context.Context, row []string) bool {
	rec, err := RecordFromRow(row)
	if err != nil {
		log.Printf("Skipping row: %v", err)
		return false
	}

	if _, err := im.db.NewInsert().Model(rec).Exec(ctx); err != nil {
		log.Printf("Database error: %v", err)
		return false
	}

	log.Printf("Saved %s to database", rec.IP)
	return true
}

// RecordFromRow maps the 40 positional feed columns onto a record.
// Blank numeric columns become zero, never an error.
func RecordFromRow(row []string) (*models.Record, error) {
	if len(row) < columnCount {
		return nil, fmt.Errorf("row has %d columns, want %d", len(row), columnCount)
	}

	return &models.Record{
		IP:               row[2],
		UserAgent:        "",
		CountryName:      row[4],
		GeoCity:          row[5],
		TimeZone:         row[6],
		Latitude:         floatOrZero(row[7]),
		Longitude:        floatOrZero(row[8]),
		MetroCode:        row[9],
		CountryCode:      row[10],
		CountryCd3:       row[11],
		DMACode:          row[12],
		AreaCode:         row[13],
		PostalCode:       row[14],
		Region:           row[15],
		RegionName:       row[16],
		FirstName:        row[17],
		LastName:         row[18],
		Email:            row[19],
		HomePhone:        row[20],
		CellPhone:        row[21],
		Address1:         row[22],
		Address2:         row[23],
		City:             row[24],
		State:            row[25],
		ZipCode:          row[26],
		CreditRange:      row[27],
		CarYear:          intOrZero(row[28]),
		CarMake:          row[29],
		CarModel:         row[30],
		PPMType:          row[31],
		PPMIndicator:     row[32],
		PPMSegment:       row[33],
		AutoTransDate:    row[34],
		LastSeen:         row[35],
		BirthYear:        intOrZero(row[36]),
		IncomeRange:      row[37],
		HomeOwnerRenter:  row[38],
		AutoPurchaseType: row[39],
	}, nil
}

func intOrZero(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}

func floatOrZero(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}
