package corpus

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/poiesic/policymatch/core"
	"github.com/xuri/excelize/v2"
)

type column int

const (
	colUnknown column = iota
	colService
	colAgency
	colTarget
	colSupport
	colApplication
	colCategory
)

var headerAliases = map[string]column{
	"서비스명":               colService,
	"service_name":       colService,
	"service":            colService,
	"기관명":                colAgency,
	"agency_name":        colAgency,
	"agency":             colAgency,
	"지원대상":               colTarget,
	"target_description": colTarget,
	"target":             colTarget,
	"지원내용":               colSupport,
	"support_content":    colSupport,
	"support":            colSupport,
	"신청방법":               colApplication,
	"application_method": colApplication,
	"application":        colApplication,
	"구분":                 colCategory,
	"category":           colCategory,
}

// SheetSource reads policy records from one sheet of an .xlsx workbook.
//
// The first row that contains a known column name is the header. Column names
// may be Korean (서비스명, 기관명, 지원대상, 지원내용, 신청방법, 구분) or English
// (service_name, agency_name, target_description, support_content,
// application_method, category). Unknown columns are kept as metadata.
type SheetSource struct {
	Path string
	// Sheets lists candidate sheet names; the first one present is read.
	Sheets []string
	// Category is applied to rows without a recognizable category cell.
	Category core.Category
}

var _ Source = (*SheetSource)(nil)

// WorkbookSources returns one SheetSource per category sheet of the workbook
// at path: 중앙부처/central, 지자체/local and 민간/private.
func WorkbookSources(path string) []Source {
	return []Source{
		&SheetSource{Path: path, Sheets: []string{"중앙부처", "central"}, Category: core.CategoryCentral},
		&SheetSource{Path: path, Sheets: []string{"지자체", "local"}, Category: core.CategoryLocal},
		&SheetSource{Path: path, Sheets: []string{"민간", "private"}, Category: core.CategoryPrivate},
	}
}

func (s *SheetSource) Name() string {
	sheet := ""
	if len(s.Sheets) > 0 {
		sheet = s.Sheets[0]
	}
	return filepath.Base(s.Path) + "#" + sheet
}

func (s *SheetSource) Load(ctx context.Context) ([]*core.PolicyRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()

	sheet := ""
	for _, candidate := range s.Sheets {
		if idx, err := f.GetSheetIndex(candidate); err == nil && idx >= 0 {
			sheet = candidate
			break
		}
	}
	if sheet == "" {
		return nil, fmt.Errorf("%w: %s", ErrSheetNotFound, strings.Join(s.Sheets, "/"))
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheet, err)
	}
	return parseRows(rows, s.Category)
}

func parseRows(rows [][]string, category core.Category) ([]*core.PolicyRecord, error) {
	headerAt := -1
	var columns []column
	var names []string
	for i, row := range rows {
		cols, known := mapHeader(row)
		if known > 0 {
			headerAt, columns = i, cols
			names = make([]string, len(row))
			for j, cell := range row {
				names[j] = Normalize(cell)
			}
			break
		}
	}
	if headerAt < 0 {
		return nil, ErrMissingHeader
	}

	var records []*core.PolicyRecord
	for _, row := range rows[headerAt+1:] {
		if blankRow(row) {
			continue
		}
		record := &core.PolicyRecord{Category: category}
		for j, cell := range row {
			cell = Normalize(cell)
			if j >= len(columns) {
				break
			}
			switch columns[j] {
			case colService:
				record.ServiceName = cell
			case colAgency:
				record.AgencyName = cell
			case colTarget:
				record.TargetDescription = cell
			case colSupport:
				record.SupportContent = cell
			case colApplication:
				record.ApplicationMethod = cell
			case colCategory:
				if c, ok := core.ParseCategory(cell); ok {
					record.Category = c
				}
			default:
				if cell == "" || names[j] == "" {
					continue
				}
				if record.Metadata == nil {
					record.Metadata = make(map[string]string)
				}
				record.Metadata[names[j]] = cell
			}
		}
		records = append(records, record)
	}
	return records, nil
}

func mapHeader(row []string) ([]column, int) {
	cols := make([]column, len(row))
	known := 0
	for i, cell := range row {
		if c, ok := headerAliases[strings.ToLower(Normalize(cell))]; ok {
			cols[i] = c
			known++
		}
	}
	return cols, known
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
