package wheelspec

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"

	contentTypeCSV  = "text/csv"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	exportSheet = "Wheel Specifications"
)

var ErrUnsupportedExportFormat = errors.New("format must be csv or xlsx")

type ExportResult struct {
	ContentType string
	FileName    string
	Data        []byte
}

var exportHeader = []string{
	"id",
	"formNumber",
	"submittedBy",
	"submittedDate",
	"treadDiameterNew",
	"lastShopIssueSize",
	"condemningDia",
	"wheelGauge",
	"variationSameAxle",
	"variationSameBogie",
	"variationSameCoach",
	"wheelProfile",
	"intermediateWWP",
	"bearingSeatDiameter",
	"rollerBearingOuterDia",
	"rollerBearingBoreDia",
	"rollerBearingWidth",
	"axleBoxHousingBoreDia",
	"wheelDiscWidth",
}

func exportRecord(f *WheelSpecification) []string {
	return []string{
		fmt.Sprintf("%d", f.ID),
		f.FormNumber,
		f.SubmittedBy,
		submittedDateString(f.SubmittedDate),
		f.Fields.TreadDiameterNew,
		f.Fields.LastShopIssueSize,
		f.Fields.CondemningDia,
		f.Fields.WheelGauge,
		f.Fields.VariationSameAxle,
		f.Fields.VariationSameBogie,
		f.Fields.VariationSameCoach,
		f.Fields.WheelProfile,
		f.Fields.IntermediateWWP,
		f.Fields.BearingSeatDiameter,
		f.Fields.RollerBearingOuterDia,
		f.Fields.RollerBearingBoreDia,
		f.Fields.RollerBearingWidth,
		f.Fields.AxleBoxHousingBoreDia,
		f.Fields.WheelDiscWidth,
	}
}

// NormalizeExportFormat defaults to xlsx.
func NormalizeExportFormat(format string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatXLSX:
		return FormatXLSX, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", ErrUnsupportedExportFormat
	}
}

// ExportWheelSpecifications renders every matching form with all of its fields.
// Unlike the list endpoint there is no limit.
func (s *WheelSpecService) ExportWheelSpecifications(ctx context.Context, filter WheelSpecificationFilter, format string) (*ExportResult, error) {
	format, err := NormalizeExportFormat(format)
	if err != nil {
		return nil, err
	}

	var forms []WheelSpecification
	if err := s.filtered(ctx, filter).Find(&forms).Error; err != nil {
		return nil, fmt.Errorf("export wheel specifications: %w", err)
	}

	stamp := time.Now().UTC().Format("20060102150405")
	res := &ExportResult{FileName: fmt.Sprintf("wheel_specifications_%s.%s", stamp, format)}

	switch format {
	case FormatCSV:
		res.ContentType = contentTypeCSV
		res.Data, err = buildCSV(forms)
	default:
		res.ContentType = contentTypeXLSX
		res.Data, err = buildXLSX(forms)
	}
	if err != nil {
		return nil, fmt.Errorf("export wheel specifications: %w", err)
	}
	return res, nil
}

func buildCSV(forms []WheelSpecification) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for i := range forms {
		if err := w.Write(exportRecord(&forms[i])); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

func buildXLSX(forms []WheelSpecification) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#E2E8F0"}},
	})

	defaultSheet := f.GetSheetName(0)
	if _, err := f.NewSheet(exportSheet); err != nil {
		return nil, err
	}

	sw, err := f.NewStreamWriter(exportSheet)
	if err != nil {
		return nil, err
	}

	header := make([]interface{}, 0, len(exportHeader))
	for _, h := range exportHeader {
		header = append(header, excelize.Cell{Value: h, StyleID: headerStyle})
	}
	if err := sw.SetRow("A1", header); err != nil {
		return nil, err
	}

	for i := range forms {
		rec := exportRecord(&forms[i])
		values := make([]interface{}, 0, len(rec))
		values = append(values, forms[i].ID)
		for _, v := range rec[1:] {
			values = append(values, v)
		}

		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := sw.SetRow(cell, values); err != nil {
			return nil, err
		}
	}

	if err := sw.Flush(); err != nil {
		return nil, err
	}

	if defaultSheet != "" && defaultSheet != exportSheet {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
