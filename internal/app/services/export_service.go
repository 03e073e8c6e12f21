package services

import (
	"context"
	"fmt"
	"io"

	"github.com/hogwarts/school/internal/pkg/logger"
	"github.com/xuri/excelize/v2"
)

// ExportService renders the school roster as XLSX workbooks
type ExportService interface {
	ExportStudents(ctx context.Context, w io.Writer) error
	ExportFaculties(ctx context.Context, w io.Writer) error
}

// ExportSheets names the worksheet used by each export
type ExportSheets struct {
	Students  string
	Faculties string
}

type exportServiceImpl struct {
	students  StudentService
	faculties FacultyService
	sheets    ExportSheets
}

// NewExportService creates a new export service instance
func NewExportService(students StudentService, faculties FacultyService, sheets ExportSheets) ExportService {
	if sheets.Students == "" {
		sheets.Students = "Students"
	}
	if sheets.Faculties == "" {
		sheets.Faculties = "Faculties"
	}
	return &exportServiceImpl{students: students, faculties: faculties, sheets: sheets}
}

// ExportStudents writes one row per student: id, name, age, faculty id and faculty name
func (s *exportServiceImpl) ExportStudents(ctx context.Context, w io.Writer) error {
	students, err := s.students.GetAllStudents(ctx)
	if err != nil {
		return err
	}

	rows := make([][]interface{}, 0, len(students))
	for _, st := range students {
		var facultyID interface{}
		facultyName := ""
		if st.Faculty != nil {
			facultyID = st.Faculty.ID
			facultyName = st.Faculty.Name
		}
		rows = append(rows, []interface{}{st.ID, st.Name, st.Age, facultyID, facultyName})
	}

	return writeWorkbook(w, s.sheets.Students, []interface{}{"ID", "Name", "Age", "Faculty ID", "Faculty"}, rows)
}

// ExportFaculties writes one row per faculty with its student count
func (s *exportServiceImpl) ExportFaculties(ctx context.Context, w io.Writer) error {
	faculties, err := s.faculties.GetAllFaculties(ctx)
	if err != nil {
		return err
	}
	students, err := s.students.GetAllStudents(ctx)
	if err != nil {
		return err
	}

	counts := make(map[int64]int, len(faculties))
	for _, st := range students {
		if st.Faculty != nil {
			counts[st.Faculty.ID]++
		}
	}

	rows := make([][]interface{}, 0, len(faculties))
	for _, f := range faculties {
		rows = append(rows, []interface{}{f.ID, f.Name, f.Color, counts[f.ID]})
	}

	return writeWorkbook(w, s.sheets.Faculties, []interface{}{"ID", "Name", "Color", "Students"}, rows)
}

func writeWorkbook(w io.Writer, sheet string, header []interface{}, rows [][]interface{}) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			logger.Warn().Err(err).Msg("Error closing workbook")
		}
	}()

	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("failed to name sheet %q: %w", sheet, err)
	}

	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
