package export

import (
	"bytes"
	"encoding/base64"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	MIMEXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	MIMECSV  = "text/csv"
)

var ErrEmptyBook = errors.New("export has no sheets")

// Artifact is a rendered export held in memory.
type Artifact struct {
	FileName string
	MIMEType string
	Data     []byte
}

func (a *Artifact) DataURI() string {
	return "data:" + a.MIMEType + ";base64," + base64.StdEncoding.EncodeToString(a.Data)
}

// Download is what the client needs to offer the artifact as a file.
type Download struct {
	FileName string `json:"file_name"`
	MIMEType string `json:"mime_type"`
	Href     string `json:"href"`
}

func (a *Artifact) Download() Download {
	return Download{FileName: a.FileName, MIMEType: a.MIMEType, Href: a.DataURI()}
}

func withExt(name, ext string) string {
	if strings.HasSuffix(strings.ToLower(name), ext) {
		return name
	}
	return name + ext
}

// Render writes the book as an xlsx workbook, one worksheet per sheet.
func Render(b Book) (a *Artifact, err error) {
	if len(b.Sheets) == 0 {
		return nil, ErrEmptyBook
	}
	defer func() {
		if r := recover(); r != nil {
			a, err = nil, fmt.Errorf("render workbook: %v", r)
		}
	}()

	f := excelize.NewFile()
	defer f.Close()

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
		Alignment: &excelize.Alignment{Vertical: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	body, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "top", WrapText: true},
	})
	if err != nil {
		return nil, fmt.Errorf("body style: %w", err)
	}

	for i, s := range b.Sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), s.Name); err != nil {
				return nil, fmt.Errorf("sheet %q: %w", s.Name, err)
			}
		} else if _, err := f.NewSheet(s.Name); err != nil {
			return nil, fmt.Errorf("sheet %q: %w", s.Name, err)
		}
		if err := writeSheet(f, s, header, body); err != nil {
			return nil, fmt.Errorf("sheet %q: %w", s.Name, err)
		}
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return &Artifact{FileName: withExt(b.FileName, ".xlsx"), MIMEType: MIMEXLSX, Data: buf.Bytes()}, nil
}

func writeSheet(f *excelize.File, s Sheet, header, body int) error {
	hdr := make([]any, len(s.Columns))
	for i, c := range s.Columns {
		hdr[i] = c.Header
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(s.Name, col, col, c.Width); err != nil {
			return err
		}
	}
	if err := f.SetSheetRow(s.Name, "A1", &hdr); err != nil {
		return err
	}
	if len(s.Columns) == 0 {
		return nil
	}
	last, err := excelize.ColumnNumberToName(len(s.Columns))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(s.Name, "A1", last+"1", header); err != nil {
		return err
	}

	for r, row := range s.Rows {
		cellRef, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(s.Name, cellRef, &row); err != nil {
			return err
		}
	}
	if len(s.Rows) > 0 {
		end, err := excelize.CoordinatesToCellName(len(s.Columns), len(s.Rows)+1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(s.Name, "A2", end, body); err != nil {
			return err
		}
	}
	return f.SetPanes(s.Name, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

// RenderCSV writes one sheet as comma-separated UTF-8 with a byte order mark.
func RenderCSV(s Sheet, fileName string) (*Artifact, error) {
	var buf bytes.Buffer
	buf.WriteString("\uFEFF")
	w := csv.NewWriter(&buf)

	hdr := make([]string, len(s.Columns))
	for i, c := range s.Columns {
		hdr[i] = c.Header
	}
	if err := w.Write(hdr); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	for _, row := range s.Rows {
		rec := make([]string, len(row))
		for i, v := range row {
			rec[i] = fmt.Sprint(v)
		}
		if err := w.Write(rec); err != nil {
			return nil, fmt.Errorf("write csv: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return &Artifact{FileName: withExt(fileName, ".csv"), MIMEType: MIMECSV, Data: buf.Bytes()}, nil
}
