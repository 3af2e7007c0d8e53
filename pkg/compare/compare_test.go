package compare

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"CompareAnalyses/pkg/annovar"

	"github.com/xuri/excelize/v2"
)

// newBatch creates dir/analysis/results/name with a Gene/Chr/Start table of rows
func newBatch(t *testing.T, name string, rows ...string) string {
	t.Helper()
	var dir = t.TempDir()
	var results = filepath.Join(dir, "analysis", "results")
	if err := os.MkdirAll(results, 0755); err != nil {
		t.Fatal(err)
	}
	var content = "Func,Gene,Chr,Start,End\n"
	for _, row := range rows {
		content += "exonic," + row + ",0\n"
	}
	if err := os.WriteFile(filepath.Join(results, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func scenario(t *testing.T) (dir1, dir2 string) {
	dir1 = newBatch(t, "x.sampleA.annovarx.csv", "BRCA1,17,100", "TP53,17,200")
	dir2 = newBatch(t, "y.sampleB.annovarx.csv", "BRCA1,17,100", "EGFR,7,300")
	return
}

func TestRun(t *testing.T) {
	var dir1, dir2 = scenario(t)
	var out bytes.Buffer

	report, err := Run(dir1, dir2, "sampleA", "sampleB", &out, Options{})
	if err != nil {
		t.Fatalf("Expected no error, but got: %v", err)
	}

	var expected = "----- 1 variants in common -----\n" +
		"BRCA1\t17\t100\n" +
		"----- 1 variants only in sampleA -----\n" +
		"TP53\t17\t200\n" +
		"----- 1 variants only in sampleB -----\n" +
		"EGFR\t7\t300\n"
	if out.String() != expected {
		t.Errorf("Unexpected report.\nExpected: %q\nActual: %q", expected, out.String())
	}
	if !strings.HasSuffix(report.File1, "x.sampleA.annovarx.csv") || !strings.HasSuffix(report.File2, "y.sampleB.annovarx.csv") {
		t.Errorf("unexpected files %s %s", report.File1, report.File2)
	}
}

func TestCompareSwapped(t *testing.T) {
	var dir1, dir2 = scenario(t)

	ab, err := Compare(dir1, dir2, "sampleA", "sampleB", Options{})
	if err != nil {
		t.Fatal(err)
	}
	ba, err := Compare(dir2, dir1, "sampleB", "sampleA", Options{})
	if err != nil {
		t.Fatal(err)
	}

	if !reflect.DeepEqual(ab.Common, ba.Common) {
		t.Errorf("common differs: %v vs %v", ab.Common.Sorted(), ba.Common.Sorted())
	}
	if !reflect.DeepEqual(ab.Only1, ba.Only2) || !reflect.DeepEqual(ab.Only2, ba.Only1) {
		t.Errorf("only sets are not mirrored")
	}
}

func TestCompareMissingFile(t *testing.T) {
	var dir1, dir2 = scenario(t)
	var out bytes.Buffer

	_, err := Run(dir1, dir2, "sampleC", "sampleB", &out, Options{})
	if err == nil {
		t.Fatal("Expected an error, but got nil")
	}
	if !strings.Contains(err.Error(), "no annotation file found") || !strings.Contains(err.Error(), "sampleC") {
		t.Errorf("unexpected error: %v", err)
	}
	if out.Len() != 0 {
		t.Errorf("nothing should be written on error, got %q", out.String())
	}
}

func TestCompareBadHeader(t *testing.T) {
	var dir1 = newBatch(t, "x.sampleA.annovarx.csv", "BRCA1,17,100")
	var dir2 = t.TempDir()
	var results = filepath.Join(dir2, "analysis", "results")
	if err := os.MkdirAll(results, 0755); err != nil {
		t.Fatal(err)
	}
	var path = filepath.Join(results, "y.sampleB.annovarx.csv")
	if err := os.WriteFile(path, []byte("Gene,Chrom,Start\nA,1,2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := Compare(dir1, dir2, "sampleA", "sampleB", Options{})
	if err == nil {
		t.Fatal("Expected an error, but got nil")
	}
	if !strings.Contains(err.Error(), path) || !strings.Contains(err.Error(), `"Chr"`) {
		t.Errorf("error %q should name file and column", err)
	}
}

func TestWriteTextEmpty(t *testing.T) {
	var report = NewReport("s1", "s2", annovar.NewVariantSet(), annovar.NewVariantSet())
	var out bytes.Buffer
	if err := report.WriteText(&out); err != nil {
		t.Fatal(err)
	}
	var expected = "----- 0 variants in common -----\n" +
		"----- 0 variants only in s1 -----\n" +
		"----- 0 variants only in s2 -----\n"
	if out.String() != expected {
		t.Errorf("Expected %q, but got %q", expected, out.String())
	}
}

func TestWriteTextSorted(t *testing.T) {
	var (
		s1     = annovar.NewVariantSet("b\t1\t1", "a\t1\t1", "c\t1\t1")
		s2     = annovar.NewVariantSet("c\t1\t1", "a\t1\t1")
		report = NewReport("s1", "s2", s1, s2)
		out    bytes.Buffer
	)
	if err := report.WriteText(&out); err != nil {
		t.Fatal(err)
	}
	var lines = strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	var expected = []string{
		"----- 2 variants in common -----",
		"a\t1\t1",
		"c\t1\t1",
		"----- 1 variants only in s1 -----",
		"b\t1\t1",
		"----- 0 variants only in s2 -----",
	}
	if !reflect.DeepEqual(lines, expected) {
		t.Errorf("Expected %q, but got %q", expected, lines)
	}
}

func TestWriteXlsx(t *testing.T) {
	var dir1, dir2 = scenario(t)
	report, err := Compare(dir1, dir2, "sampleA", "sampleB", Options{})
	if err != nil {
		t.Fatal(err)
	}

	var path = filepath.Join(t.TempDir(), "compare.xlsx")
	if err = report.WriteXlsx(path); err != nil {
		t.Fatalf("WriteXlsx error: %v", err)
	}

	xlsx, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer xlsx.Close()

	var expected = []string{"Summary", "Common", "Only1", "Only2"}
	if got := xlsx.GetSheetList(); !reflect.DeepEqual(got, expected) {
		t.Errorf("GetSheetList = %v; want %v", got, expected)
	}

	rows, err := xlsx.GetRows("Only2")
	if err != nil {
		t.Fatal(err)
	}
	var expectedRows = [][]string{{"Gene", "Chr", "Start"}, {"EGFR", "7", "300"}}
	if !reflect.DeepEqual(rows, expectedRows) {
		t.Errorf("Only2 rows = %v; want %v", rows, expectedRows)
	}

	rows, err = xlsx.GetRows("Summary")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) < 4 || !reflect.DeepEqual(rows[1], []string{"variants in common", "1"}) {
		t.Errorf("unexpected Summary rows %v", rows)
	}
}

func TestPlot(t *testing.T) {
	var report = NewReport(
		"sampleA", "sampleB",
		annovar.NewVariantSet("a", "b"),
		annovar.NewVariantSet("b", "c", "d"),
	)

	t.Run("html", func(t *testing.T) {
		var out bytes.Buffer
		if err := report.PlotHTML(&out); err != nil {
			t.Fatalf("PlotHTML error: %v", err)
		}
		if !strings.Contains(out.String(), "sampleA vs sampleB") {
			t.Errorf("chart title missing from html output")
		}
	})

	t.Run("png", func(t *testing.T) {
		var path = filepath.Join(t.TempDir(), "compare.png")
		if err := report.PlotPNG(path); err != nil {
			t.Fatalf("PlotPNG error: %v", err)
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if info.Size() == 0 {
			t.Errorf("empty png")
		}
	})
}

func TestWriteXlsxTabInGene(t *testing.T) {
	var s1 = annovar.NewVariantSet()
	s1.Add(annovar.Variant{Gene: "A\tB", Chr: "1", Start: "10"})
	var report = NewReport("s1", "s2", s1, annovar.NewVariantSet())

	var path = filepath.Join(t.TempDir(), "tab.xlsx")
	if err := report.WriteXlsx(path); err != nil {
		t.Fatalf("WriteXlsx error: %v", err)
	}
	xlsx, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatal(err)
	}
	defer xlsx.Close()

	rows, err := xlsx.GetRows("Only1")
	if err != nil {
		t.Fatal(err)
	}
	var expected = [][]string{{"Gene", "Chr", "Start"}, {"A\tB", "1", "10"}}
	if !reflect.DeepEqual(rows, expected) {
		t.Errorf("Only1 rows = %q; want %q", rows, expected)
	}
}
