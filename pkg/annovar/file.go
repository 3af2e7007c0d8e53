package annovar

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	gzip "github.com/klauspost/pgzip"
	"github.com/liserjrqlxue/goUtil/simpleUtil"
)

// ResultsDir sub directory of a batch holding per-sample results
var ResultsDir = filepath.Join("analysis", "results")

// Suffix of annotation files written by the annotation step
const Suffix = ".annovarx.csv"

var (
	ErrNoAnnotation        = errors.New("no annotation file found")
	ErrMultipleAnnotations = errors.New("multiple annotation files found")
)

var gz = regexp.MustCompile(`\.gz$`)

var globMeta = strings.NewReplacer(
	`\`, `\\`,
	`*`, `\*`,
	`?`, `\?`,
	`[`, `\[`,
)

// escapeGlob quotes glob metacharacters, filepath.Match has no escaping on windows
func escapeGlob(s string) string {
	if runtime.GOOS == "windows" {
		return s
	}
	return globMeta.Replace(s)
}

// Pattern returns the glob locating sample's annotation file under dir
func Pattern(dir, sample string) string {
	return filepath.Join(escapeGlob(dir), ResultsDir, "*"+escapeGlob(sample)+Suffix)
}

// FindAnnotation resolves the annotation file of sample inside batch dir.
// Compressed files are only considered when no plain file matches.
// Several matches are an error unless firstMatch is set, then the first one
// in lexicographic order is returned.
func FindAnnotation(dir, sample string, firstMatch bool) (string, error) {
	var pattern = Pattern(dir, sample)
	var matches, err = filepath.Glob(pattern)
	if err != nil {
		return "", fmt.Errorf("bad glob %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		matches, err = filepath.Glob(pattern + ".gz")
		if err != nil {
			return "", fmt.Errorf("bad glob %q: %w", pattern+".gz", err)
		}
	}

	switch {
	case len(matches) == 0:
		return "", fmt.Errorf("%w for sample %s in directory %s (pattern %s)", ErrNoAnnotation, sample, dir, pattern)
	case len(matches) > 1 && !firstMatch:
		return "", fmt.Errorf("%w for sample %s in directory %s: %s", ErrMultipleAnnotations, sample, dir, strings.Join(matches, ", "))
	}
	// filepath.Glob returns matches sorted
	return matches[0], nil
}

// Open opens path for reading, gunzip when path ends with .gz
func Open(path string) (io.ReadCloser, error) {
	var file, err = os.Open(path)
	if err != nil {
		return nil, err
	}
	if !gz.MatchString(path) {
		return file, nil
	}
	gr, err := gzip.NewReader(file)
	if err != nil {
		simpleUtil.DeferClose(file)
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &gzipFile{Reader: gr, file: file}, nil
}

type gzipFile struct {
	*gzip.Reader
	file *os.File
}

func (f *gzipFile) Close() error {
	return errors.Join(f.Reader.Close(), f.file.Close())
}

// LoadVariants reads the variant set of the annotation file at path
func LoadVariants(path string) (VariantSet, error) {
	var file, err = Open(path)
	if err != nil {
		return nil, err
	}
	defer simpleUtil.DeferClose(file)

	set, err := ReadVariants(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return set, nil
}
