package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"nippo/entities"
)

var (
	ErrMissingColumn = errors.New("required column is missing")
	ErrNoSheet       = errors.New("workbook has no sheets")
)

const (
	colStoreCode = "得意先c"
	colStoreName = "得意先名"
)

// optionalColumns maps spreadsheet headers to StoreRecord JSON keys.
var optionalColumns = map[string]string{
	"郵便番号": "postal_code",
	"住所":   "address",
	"部署c":  "department_code",
	"担当者c": "staff_code",
	"担当者名": "staff_name",
}

// StoreRecord is one row of the store master spreadsheet.
type StoreRecord struct {
	Code           string `json:"code"`
	Name           string `json:"name"`
	PostalCode     string `json:"postal_code,omitempty"`
	Address        string `json:"address,omitempty"`
	DepartmentCode string `json:"department_code,omitempty"`
	StaffCode      string `json:"staff_code,omitempty"`
	StaffName      string `json:"staff_name,omitempty"`
}

func (r StoreRecord) Store() entities.Store {
	return entities.Store{
		Code:           r.Code,
		Name:           r.Name,
		PostalCode:     r.PostalCode,
		Address:        r.Address,
		DepartmentCode: r.DepartmentCode,
		StaffCode:      r.StaffCode,
		StaffName:      r.StaffName,
	}
}

func (r *StoreRecord) set(key, v string) {
	switch key {
	case "postal_code":
		r.PostalCode = v
	case "address":
		r.Address = v
	case "department_code":
		r.DepartmentCode = v
	case "staff_code":
		r.StaffCode = v
	case "staff_name":
		r.StaffName = v
	}
}

func normHeader(s string) string {
	s = strings.TrimPrefix(s, "\uFEFF")
	return strings.TrimSpace(s)
}

// ConvertExcelToJSON reads the first sheet of an xlsx store master. Rows
// without a store code or name are skipped. A missing required column fails
// the whole import and no records are returned.
func ConvertExcelToJSON(r io.Reader) (recs []StoreRecord, js []byte, err error) {
	defer func() {
		if p := recover(); p != nil {
			recs, js, err = nil, nil, fmt.Errorf("read spreadsheet: %v", p)
		}
	}()

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil, ErrNoSheet
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil, fmt.Errorf("%w: %s", ErrMissingColumn, colStoreCode)
	}

	hmap := map[string]int{}
	for i, h := range rows[0] {
		if _, dup := hmap[normHeader(h)]; !dup {
			hmap[normHeader(h)] = i
		}
	}
	for _, req := range []string{colStoreCode, colStoreName} {
		if _, ok := hmap[req]; !ok {
			return nil, nil, fmt.Errorf("%w: %s", ErrMissingColumn, req)
		}
	}

	recs = []StoreRecord{}
	for _, row := range rows[1:] {
		get := func(idx int) string {
			if idx < 0 || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}
		rec := StoreRecord{Code: get(hmap[colStoreCode]), Name: get(hmap[colStoreName])}
		if rec.Code == "" || rec.Name == "" {
			continue
		}
		for header, key := range optionalColumns {
			if idx, ok := hmap[header]; ok {
				rec.set(key, get(idx))
			}
		}
		recs = append(recs, rec)
	}

	js, err = json.Marshal(recs)
	if err != nil {
		return nil, nil, fmt.Errorf("encode records: %w", err)
	}
	return recs, js, nil
}
