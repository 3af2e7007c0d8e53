package compare

import (
	"CompareAnalyses/pkg/annovar"

	"github.com/xuri/excelize/v2"
)

var (
	SummaryTitle = []string{"Section", "Count"}
	SampleTitle  = []string{"Sample", "File", "Variants"}
)

func SetRow(xlsx *excelize.File, sheet string, col, row int, value []interface{}) error {
	var cellName, err = excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return xlsx.SetSheetRow(sheet, cellName, &value)
}

func SetTitle(xlsx *excelize.File, sheet string, row int, title []string) error {
	var value = make([]interface{}, len(title))
	for i, s := range title {
		value[i] = s
	}
	return SetRow(xlsx, sheet, 1, row, value)
}

// WriteXlsx saves a Summary sheet plus one sheet of Gene/Chr/Start rows per section
func (report *Report) WriteXlsx(path string) (err error) {
	var xlsx = excelize.NewFile()
	defer func() {
		if closeErr := xlsx.Close(); err == nil {
			err = closeErr
		}
	}()

	if err = xlsx.SetSheetName("Sheet1", "Summary"); err != nil {
		return err
	}
	if err = report.writeSummarySheet(xlsx, "Summary"); err != nil {
		return err
	}

	for _, section := range report.Sections() {
		if _, err = xlsx.NewSheet(section.Sheet); err != nil {
			return err
		}
		if err = SetTitle(xlsx, section.Sheet, 1, annovar.KeyTitle); err != nil {
			return err
		}
		for i, v := range section.Set.Variants() {
			if err = SetRow(xlsx, section.Sheet, 1, i+2, []interface{}{v.Gene, v.Chr, v.Start}); err != nil {
				return err
			}
		}
	}

	return xlsx.SaveAs(path)
}

func (report *Report) writeSummarySheet(xlsx *excelize.File, sheet string) error {
	var rIdx = 1
	if err := SetTitle(xlsx, sheet, rIdx, SummaryTitle); err != nil {
		return err
	}
	for _, section := range report.Sections() {
		rIdx++
		if err := SetRow(xlsx, sheet, 1, rIdx, []interface{}{section.Title, section.Set.Len()}); err != nil {
			return err
		}
	}

	rIdx += 2
	if err := SetTitle(xlsx, sheet, rIdx, SampleTitle); err != nil {
		return err
	}
	for _, sample := range [][]interface{}{
		{report.Sample1, report.File1, report.Common.Len() + report.Only1.Len()},
		{report.Sample2, report.File2, report.Common.Len() + report.Only2.Len()},
	} {
		rIdx++
		if err := SetRow(xlsx, sheet, 1, rIdx, sample); err != nil {
			return err
		}
	}
	return nil
}
