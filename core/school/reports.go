package school

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

const reportSheet = "Report"

var (
	paymentsHeader   = []string{"student_id", "amount", "method", "timestamp"}
	attendanceHeader = []string{"student_id", "course_id", "timestamp"}
)

// ExportReport writes the payments or attendance log to outPath as CSV, one row per record
// under a fixed header. A path ending in ".xlsx" gets an Excel workbook with the same rows.
func (s *RecordStore) ExportReport(kind, outPath string) error {
	header, rows, err := s.reportRows(kind)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(outPath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "creating report directory")
		}
	}

	if strings.EqualFold(filepath.Ext(outPath), ".xlsx") {
		err = writeXLSX(outPath, header, rows)
	} else {
		err = writeCSV(outPath, header, rows)
	}
	if err != nil {
		s.log.Error("exporting report", err, map[string]interface{}{"kind": kind, "path": outPath})
		return err
	}
	s.log.Info("report exported", map[string]interface{}{"kind": kind, "path": outPath, "rows": len(rows)})
	return nil
}

func (s *RecordStore) reportRows(kind string) ([]string, [][]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch strings.ToLower(strings.TrimSpace(kind)) {
	case ReportPayments:
		rows := make([][]string, 0, len(s.doc.FinanceLog))
		for _, p := range s.doc.FinanceLog {
			rows = append(rows, []string{
				strconv.Itoa(p.StudentID),
				strconv.FormatFloat(p.Amount, 'f', -1, 64),
				p.Method,
				p.Timestamp.Format(time.RFC3339),
			})
		}
		return paymentsHeader, rows, nil
	case ReportAttendance:
		rows := make([][]string, 0, len(s.doc.Attendance))
		for _, r := range s.doc.Attendance {
			rows = append(rows, []string{
				strconv.Itoa(r.StudentID),
				strconv.Itoa(r.CourseID),
				r.Timestamp.Format(time.RFC3339),
			})
		}
		return attendanceHeader, rows, nil
	default:
		return nil, nil, ErrUnknownReport
	}
}

func writeCSV(path string, header []string, rows [][]string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating report file")
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrap(cerr, "closing report file")
		}
	}()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return errors.Wrap(err, "writing report header")
	}
	if err := w.WriteAll(rows); err != nil {
		return errors.Wrap(err, "writing report rows")
	}
	return nil
}

func writeXLSX(path string, header []string, rows [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		return errors.Wrap(err, "naming report sheet")
	}
	for i, row := range append([][]string{header}, rows...) {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return errors.WithStack(err)
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = v
		}
		if err := f.SetSheetRow(reportSheet, cell, &values); err != nil {
			return errors.Wrap(err, "writing report row")
		}
	}
	return errors.Wrap(f.SaveAs(path), "saving report workbook")
}
