package compare

import (
	"fmt"
	"io"
	"log/slog"

	"CompareAnalyses/pkg/annovar"

	"github.com/carbocation/pfx"
)

type Options struct {
	// FirstMatch accept the first of several matching annotation files
	FirstMatch bool
}

// Report shared and unique variants of two samples
type Report struct {
	Sample1 string
	Sample2 string
	File1   string
	File2   string

	Common VariantSet
	Only1  VariantSet
	Only2  VariantSet
}

type VariantSet = annovar.VariantSet

// NewReport partitions the variants of two samples
func NewReport(sample1, sample2 string, s1, s2 VariantSet) *Report {
	return &Report{
		Sample1: sample1,
		Sample2: sample2,
		Common:  s1.Intersect(s2),
		Only1:   s1.Difference(s2),
		Only2:   s2.Difference(s1),
	}
}

// Compare loads sample1 from batch dir1 and sample2 from batch dir2
func Compare(dir1, dir2, sample1, sample2 string, opts Options) (*Report, error) {
	file1, err := annovar.FindAnnotation(dir1, sample1, opts.FirstMatch)
	if err != nil {
		return nil, pfx.Err(err)
	}
	file2, err := annovar.FindAnnotation(dir2, sample2, opts.FirstMatch)
	if err != nil {
		return nil, pfx.Err(err)
	}

	s1, err := annovar.LoadVariants(file1)
	if err != nil {
		return nil, pfx.Err(err)
	}
	slog.Info("LoadVariants", "sample", sample1, "file", file1, "variants", s1.Len())
	s2, err := annovar.LoadVariants(file2)
	if err != nil {
		return nil, pfx.Err(err)
	}
	slog.Info("LoadVariants", "sample", sample2, "file", file2, "variants", s2.Len())

	var report = NewReport(sample1, sample2, s1, s2)
	report.File1 = file1
	report.File2 = file2
	return report, nil
}

// Run compares the two samples and writes the text report to out
func Run(dir1, dir2, sample1, sample2 string, out io.Writer, opts Options) (*Report, error) {
	report, err := Compare(dir1, dir2, sample1, sample2, opts)
	if err != nil {
		return nil, err
	}
	return report, report.WriteText(out)
}

// Sections report sections in output order
func (report *Report) Sections() []Section {
	return []Section{
		{Title: "variants in common", Sheet: "Common", Set: report.Common},
		{Title: "variants only in " + report.Sample1, Sheet: "Only1", Set: report.Only1},
		{Title: "variants only in " + report.Sample2, Sheet: "Only2", Set: report.Only2},
	}
}

type Section struct {
	Title string
	Sheet string
	Set   VariantSet
}

// Header line of section
func (section Section) Header() string {
	return fmt.Sprintf("----- %d %s -----", section.Set.Len(), section.Title)
}

// WriteText writes every section header followed by its sorted keys
func (report *Report) WriteText(out io.Writer) error {
	for _, section := range report.Sections() {
		if _, err := fmt.Fprintln(out, section.Header()); err != nil {
			return err
		}
		for _, key := range section.Set.Sorted() {
			if _, err := fmt.Fprintln(out, key); err != nil {
				return err
			}
		}
	}
	return nil
}
