package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/pixalara/placement-service/internal/repositories"
)

type exportService struct {
	repo   repositories.Repository
	logger *slog.Logger
}

// NewExportService creates the spreadsheet export service.
func NewExportService(repo repositories.Repository, logger *slog.Logger) ExportService {
	return &exportService{
		repo:   repo,
		logger: logger,
	}
}

// ExportStudents renders the full student roster as an xlsx workbook.
func (s *exportService) ExportStudents(ctx context.Context) ([]byte, string, error) {
	s.logger.Info("exporting student roster")

	students, total, err := s.repo.Student().List(ctx, repositories.StudentFilters{
		SortBy:    "created_at",
		SortOrder: "asc",
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to load students for export: %w", err)
	}

	headers := []interface{}{"Name", "Email", "Phone", "Course", "Status", "Enrolled On"}
	rows := make([][]interface{}, 0, len(students))
	for _, st := range students {
		rows = append(rows, []interface{}{
			st.Name,
			st.Email,
			st.Phone,
			st.CourseName,
			string(st.Status),
			st.CreatedAt.Format("2006-01-02"),
		})
	}

	data, err := buildWorkbook("Students", headers, rows)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("student roster exported", "rows", total)
	return data, exportFilename("students"), nil
}

// ExportJobSeekers renders the placement pipeline as an xlsx workbook.
func (s *exportService) ExportJobSeekers(ctx context.Context) ([]byte, string, error) {
	s.logger.Info("exporting placement pipeline")

	seekers, total, err := s.repo.JobSeeker().List(ctx, repositories.JobSeekerFilters{
		SortBy:    "created_at",
		SortOrder: "asc",
	})
	if err != nil {
		return nil, "", fmt.Errorf("failed to load job seekers for export: %w", err)
	}

	headers := []interface{}{
		"Name", "Email", "Phone", "Target Field", "Stage", "Company",
		"Registration Fee", "Final Fee", "Registered On", "Remarks",
	}
	rows := make([][]interface{}, 0, len(seekers))
	for _, js := range seekers {
		rows = append(rows, []interface{}{
			js.Name,
			js.Email,
			js.Phone,
			js.TargetField,
			string(js.Stage),
			js.Company,
			string(js.RegistrationFee),
			string(js.FinalFee),
			js.CreatedAt.Format("2006-01-02"),
			js.Remarks,
		})
	}

	data, err := buildWorkbook("Job Seekers", headers, rows)
	if err != nil {
		return nil, "", err
	}

	s.logger.Info("placement pipeline exported", "rows", total)
	return data, exportFilename("job-seekers"), nil
}

// buildWorkbook writes a single-sheet workbook with a bold header row.
func buildWorkbook(sheet string, headers []interface{}, rows [][]interface{}) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := f.SetSheetRow(sheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("failed to write header row: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		endCell, _ := excelize.CoordinatesToCellName(len(headers), 1)
		_ = f.SetCellStyle(sheet, "A1", endCell, headerStyle)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}

	return buf.Bytes(), nil
}

func exportFilename(prefix string) string {
	return fmt.Sprintf("%s-%s.xlsx", prefix, time.Now().Format("2006-01-02"))
}
