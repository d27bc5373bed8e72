package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/spec-kit/dreamhome-service/internal/domain"
	apperrors "github.com/spec-kit/dreamhome-service/pkg/util/errorutil"
)

const staffSheet = "Staff"

var staffExportHeader = []any{
	"Staff No", "First Name", "Last Name", "Position", "Sex", "Date of Birth",
	"Salary", "Branch No", "Telephone", "Mobile", "Email",
}

// ExportWorkbook renders every staff row into an xlsx workbook.
func (s *StaffService) ExportWorkbook(ctx context.Context) (*bytes.Buffer, error) {
	staff, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	buf, err := buildStaffWorkbook(staff)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	return buf, nil
}

func buildStaffWorkbook(staff []domain.Staff) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", staffSheet)

	if err := f.SetSheetRow(staffSheet, "A1", &staffExportHeader); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(staffExportHeader))
	if err := f.SetCellStyle(staffSheet, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, fmt.Errorf("apply header style: %w", err)
	}

	for i, m := range staff {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []any{
			m.StaffNo, m.FirstName, m.LastName, m.Position, m.Sex, m.DOB.Format(domain.DateLayout),
			m.Salary, m.BranchNo, m.Telephone, m.Mobile, m.Email,
		}
		if err := f.SetSheetRow(staffSheet, cell, &row); err != nil {
			return nil, fmt.Errorf("write staff %s: %w", m.StaffNo, err)
		}
	}

	if err := f.SetColWidth(staffSheet, "A", lastCol, 16); err != nil {
		return nil, fmt.Errorf("column width: %w", err)
	}
	if len(staff) > 0 {
		if err := f.AutoFilter(staffSheet, fmt.Sprintf("A1:%s%d", lastCol, len(staff)+1), nil); err != nil {
			return nil, fmt.Errorf("auto filter: %w", err)
		}
	}

	return f.WriteToBuffer()
}
