package annovar

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
)

// KeyTitle columns that identify a variant, in key order
var KeyTitle = []string{"Gene", "Chr", "Start"}

// KeySep joins KeyTitle values into a variant key
const KeySep = "\t"

var (
	ErrEmptyFile     = errors.New("empty annotation file")
	ErrMissingColumn = errors.New("missing required column")
	ErrShortRow      = errors.New("row has too few fields")
)

// Variant Gene, Chr and Start of one annotation row
type Variant struct {
	Gene  string
	Chr   string
	Start string
}

// Key joins the fields with KeySep
func (v Variant) Key() string {
	return strings.Join([]string{v.Gene, v.Chr, v.Start}, KeySep)
}

// VariantSet unique variant keys of one annotation file, each with its fields
type VariantSet map[string]Variant

// NewVariantSet builds a set from raw keys, fields are split with ParseKey
func NewVariantSet(keys ...string) VariantSet {
	var set = make(VariantSet, len(keys))
	for _, key := range keys {
		var gene, chr, start = ParseKey(key)
		set[key] = Variant{Gene: gene, Chr: chr, Start: start}
	}
	return set
}

func (set VariantSet) Add(v Variant) {
	set[v.Key()] = v
}

func (set VariantSet) Has(key string) bool {
	_, ok := set[key]
	return ok
}

func (set VariantSet) Len() int {
	return len(set)
}

// Sorted returns keys in ascending lexicographic order
func (set VariantSet) Sorted() []string {
	var keys = make([]string, 0, len(set))
	for key := range set {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Variants returns the fields of every key, in Sorted order
func (set VariantSet) Variants() []Variant {
	var keys = set.Sorted()
	var variants = make([]Variant, len(keys))
	for i, key := range keys {
		variants[i] = set[key]
	}
	return variants
}

// Intersect returns keys present in both sets
func (set VariantSet) Intersect(other VariantSet) VariantSet {
	var small, large = set, other
	if len(small) > len(large) {
		small, large = large, small
	}
	var result = make(VariantSet)
	for key, v := range small {
		if large.Has(key) {
			result[key] = v
		}
	}
	return result
}

// Difference returns keys of set that are absent from other
func (set VariantSet) Difference(other VariantSet) VariantSet {
	var result = make(VariantSet)
	for key, v := range set {
		if !other.Has(key) {
			result[key] = v
		}
	}
	return result
}

func (set VariantSet) Union(other VariantSet) VariantSet {
	var result = make(VariantSet, len(set)+len(other))
	for key, v := range set {
		result[key] = v
	}
	for key, v := range other {
		result[key] = v
	}
	return result
}

// JoinKey builds a variant key from Gene, Chr and Start
func JoinKey(gene, chr, start string) string {
	return Variant{Gene: gene, Chr: chr, Start: start}.Key()
}

// ParseKey splits a variant key back into Gene, Chr and Start.
// Ambiguous when a field itself holds KeySep, use VariantSet values instead.
func ParseKey(key string) (gene, chr, start string) {
	var a = strings.SplitN(key, KeySep, 3)
	a = append(a, "", "", "")
	return a[0], a[1], a[2]
}

// HeaderIndex returns the zero-based column of every KeyTitle name in header
func HeaderIndex(header []string) ([]int, error) {
	var index = make([]int, len(KeyTitle))
	for i, name := range KeyTitle {
		index[i] = -1
		for j, title := range header {
			if title == name {
				index[i] = j
				break
			}
		}
		if index[i] < 0 {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, name)
		}
	}
	return index, nil
}

// ReadVariants reads a comma separated, double-quoted annotation table and
// returns the set of its variant keys. The first record is the header.
func ReadVariants(r io.Reader) (VariantSet, error) {
	var (
		reader = csv.NewReader(r)
		set    = make(VariantSet)
		index  []int
		need   int
	)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.ReuseRecord = true

	for {
		var record, err = reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		if index == nil {
			index, err = HeaderIndex(record)
			if err != nil {
				return nil, err
			}
			for _, i := range index {
				need = max(need, i+1)
			}
			continue
		}

		if len(record) < need {
			var line, _ = reader.FieldPos(0)
			return nil, fmt.Errorf("%w: line %d has %d fields, need %d", ErrShortRow, line, len(record), need)
		}
		set.Add(Variant{Gene: record[index[0]], Chr: record[index[1]], Start: record[index[2]]})
	}

	if index == nil {
		return nil, ErrEmptyFile
	}
	return set, nil
}
