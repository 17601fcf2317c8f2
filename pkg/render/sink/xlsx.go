package sink

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/matzehuels/dreamhouse/pkg/errors"
	"github.com/matzehuels/dreamhouse/pkg/placement/grid"
	"github.com/matzehuels/dreamhouse/pkg/placement/volume"
	"github.com/matzehuels/dreamhouse/pkg/plan"
)

// Workbook sheet names.
const (
	SheetLayout = "Layout"
	SheetRooms  = "Rooms"
	SheetExtras = "Extras"
)

var roomHeader = []any{
	"#", "Type", "ID", "Width", "Depth",
	"Plan Width", "Plan Depth", "Column", "Row",
	"Cell Width", "Cell Height", "Scene Area",
}

// Column positions in the Rooms sheet that ReadSchedule depends on.
const (
	colType  = 1
	colID    = 2
	colWidth = 3
	colDepth = 4
)

// RenderSchedule writes an XLSX workbook with the layout's name and style,
// one row per placed room and one row per placed extra. The Width and Depth
// columns hold explicit overrides only; Plan Width and Plan Depth hold the
// effective footprint.
func RenderSchedule(l plan.Layout, res grid.Result) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetLayout); err != nil {
		return nil, xlsxErr(err, "rename sheet")
	}
	for _, name := range []string{SheetRooms, SheetExtras} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, xlsxErr(err, "add sheet %s", name)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E6E6E6"}, Pattern: 1},
	})
	if err != nil {
		return nil, xlsxErr(err, "create header style")
	}

	meta := [][]any{
		{"Name", l.Name},
		{"Style", l.Style},
		{"Rooms", len(l.Rooms)},
		{"Extras", len(l.Extras)},
	}
	for i, row := range meta {
		if err := f.SetSheetRow(SheetLayout, cell(1, i+1), &row); err != nil {
			return nil, xlsxErr(err, "write layout sheet")
		}
	}
	if err := f.SetCellStyle(SheetLayout, "A1", cell(1, len(meta)), bold); err != nil {
		return nil, xlsxErr(err, "style layout sheet")
	}

	if err := f.SetSheetRow(SheetRooms, "A1", &roomHeader); err != nil {
		return nil, xlsxErr(err, "write room header")
	}
	if err := f.SetCellStyle(SheetRooms, "A1", cell(len(roomHeader), 1), bold); err != nil {
		return nil, xlsxErr(err, "style room header")
	}
	for i, pr := range res.Rooms {
		fp := pr.Room.Footprint()
		row := []any{
			i + 1,
			string(pr.Room.Type),
			pr.Room.ID,
			optional(pr.Room.Width),
			optional(pr.Room.Depth),
			fp.Width,
			fp.Depth,
			pr.Column + 1,
			pr.Row + 1,
			pr.Rect.Width,
			pr.Rect.Height,
			fp.Area() * volume.Unit * volume.Unit,
		}
		if err := f.SetSheetRow(SheetRooms, cell(1, i+2), &row); err != nil {
			return nil, xlsxErr(err, "write room row %d", i+1)
		}
	}
	if err := f.SetColWidth(SheetRooms, "B", "C", 14); err != nil {
		return nil, xlsxErr(err, "size columns")
	}

	extrasHeader := []any{"#", "Extra", "Slot"}
	if err := f.SetSheetRow(SheetExtras, "A1", &extrasHeader); err != nil {
		return nil, xlsxErr(err, "write extras header")
	}
	if err := f.SetCellStyle(SheetExtras, "A1", "C1", bold); err != nil {
		return nil, xlsxErr(err, "style extras header")
	}
	for i, ex := range res.Extras {
		row := []any{i + 1, string(ex.Extra.Type), ex.Slot + 1}
		if err := f.SetSheetRow(SheetExtras, cell(1, i+2), &row); err != nil {
			return nil, xlsxErr(err, "write extra row %d", i+1)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, xlsxErr(err, "write workbook")
	}
	return buf.Bytes(), nil
}

// ReadSchedule rebuilds a layout from a workbook written by [RenderSchedule].
// Only the Layout name and style, the Rooms type, id and override columns,
// and the Extras type column are read. The result is validated.
func ReadSchedule(r io.Reader) (plan.Layout, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return plan.Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "open workbook")
	}
	defer f.Close()

	l := plan.Layout{Rooms: []plan.Room{}, Extras: []plan.Extra{}}

	if rows, err := f.GetRows(SheetLayout); err == nil {
		for _, row := range rows {
			if len(row) < 2 {
				continue
			}
			switch strings.ToLower(strings.TrimSpace(row[0])) {
			case "name":
				l.Name = row[1]
			case "style":
				l.Style = row[1]
			}
		}
	}

	rows, err := f.GetRows(SheetRooms)
	if err != nil {
		return plan.Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "missing %s sheet", SheetRooms)
	}
	for i, row := range rows {
		if i == 0 || len(row) <= colID || strings.TrimSpace(row[colType]) == "" {
			continue
		}
		room := plan.Room{
			Type: plan.RoomType(strings.TrimSpace(row[colType])),
			ID:   strings.TrimSpace(row[colID]),
		}
		if room.Width, err = parseOptional(row, colWidth); err != nil {
			return plan.Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "room row %d width", i+1)
		}
		if room.Depth, err = parseOptional(row, colDepth); err != nil {
			return plan.Layout{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "room row %d depth", i+1)
		}
		l.Rooms = append(l.Rooms, room)
	}

	if rows, err := f.GetRows(SheetExtras); err == nil {
		for i, row := range rows {
			if i == 0 || len(row) < 2 || strings.TrimSpace(row[1]) == "" {
				continue
			}
			l.Extras = append(l.Extras, plan.Extra{Type: plan.ExtraType(strings.TrimSpace(row[1]))})
		}
	}

	if err := l.Validate(); err != nil {
		return plan.Layout{}, err
	}
	return l, nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

func optional(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}

func parseOptional(row []string, col int) (*float64, error) {
	if col >= len(row) || strings.TrimSpace(row[col]) == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
	if err != nil {
		return nil, err
	}
	return plan.Size(v), nil
}

func xlsxErr(err error, format string, args ...any) error {
	return errors.Wrap(errors.ErrCodeInternal, err, "xlsx: %s", fmt.Sprintf(format, args...))
}
