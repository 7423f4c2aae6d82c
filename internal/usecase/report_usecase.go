package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"

	"recruitment-platform/internal/authz"
	"recruitment-platform/internal/domain"
	"recruitment-platform/pkg/apperror"
)

type reportUsecase struct {
	reportRepo  domain.ReportRepository
	profileRepo domain.RecruiterProfileRepository
}

func NewReportUsecase(
	reportRepo domain.ReportRepository,
	profileRepo domain.RecruiterProfileRepository,
) domain.ReportUsecase {
	return &reportUsecase{
		reportRepo:  reportRepo,
		profileRepo: profileRepo,
	}
}

func (uc *reportUsecase) RecruiterReport(ctx context.Context, caller *domain.User) ([]domain.RecruiterJobStats, error) {
	if !authz.IsRecruiter(caller) {
		return nil, apperror.Forbidden("Only recruiters can view hiring reports")
	}
	profile, err := uc.profileRepo.GetByUserID(ctx, caller.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return []domain.RecruiterJobStats{}, nil
		}
		return nil, apperror.Internal(err)
	}
	stats, err := uc.reportRepo.RecruiterJobStats(ctx, profile.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return stats, nil
}

func (uc *reportUsecase) JobSeekerReport(ctx context.Context, caller *domain.User) (*domain.JobSeekerStats, error) {
	if !authz.IsJobSeeker(caller) {
		return nil, apperror.Forbidden("Only job seekers can view application reports")
	}
	stats, err := uc.reportRepo.JobSeekerStats(ctx, caller.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return stats, nil
}

// ExportRecruiterReport renders the per-posting hiring stats as an xlsx
// workbook.
func (uc *reportUsecase) ExportRecruiterReport(ctx context.Context, caller *domain.User) ([]byte, error) {
	stats, err := uc.RecruiterReport(ctx, caller)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	sheetName := "Hiring Report"
	f.SetSheetName("Sheet1", sheetName)

	headers := []string{
		"JOB TITLE",
		"VIEWS",
		"APPLICATIONS",
		"INTERVIEWS COMPLETED",
		"HIRED",
		"HIRED RATIO",
		"AVG DAYS TO HIRE",
	}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, header)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(headers), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	for rowIdx, row := range stats {
		values := []interface{}{
			row.JobTitle,
			row.ViewsCount,
			row.TotalApplications,
			row.InterviewsCompleted,
			row.HiredCount,
			fmt.Sprintf("%.1f%%", row.HiredRatio*100),
		}
		if row.AvgDaysToHire != nil {
			values = append(values, fmt.Sprintf("%.1f", *row.AvgDaysToHire))
		} else {
			values = append(values, "-")
		}
		for colIdx, value := range values {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, value)
		}
	}

	for i := range headers {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 22)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, apperror.Internal(fmt.Errorf("failed to write report workbook: %w", err))
	}
	return buf.Bytes(), nil
}
