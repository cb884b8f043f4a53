// Package regions maps the short region codes callers pass to the lottery
// lookup onto the path segment ketqua.net serves that region's results under.
package regions

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnknownRegion is returned for codes that are not in the table.
var ErrUnknownRegion = errors.New("unknown region code")

// table is built once and never mutated, so it is safe to share between
// concurrent invocations.
var table = map[string]string{
	"mb":        "mien-bac",
	"mn":        "mien-nam",
	"mt":        "mien-trung",
	"tp hcm":    "tp-hcm",
	"ha noi":    "mien-bac",
	"dong thap": "dong-thap",
	"ca mau":    "ca-mau",
	"vung tau":  "vung-tau",
	"da nang":   "da-nang",
	"da lat":    "da-lat",
	"dak lak":   "dak-lak",
	"mega":      "vietlott-mega-645",
	"power":     "vietlott-power-655",
}

// Normalize lower-cases code, trims it and collapses inner whitespace runs to
// a single space, giving the form used as table key.
func Normalize(code string) string {
	return strings.Join(strings.Fields(strings.ToLower(code)), " ")
}

// Lookup resolves code to its source path segment.
func Lookup(code string) (string, error) {
	key := Normalize(code)

	segment, ok := table[key]
	if !ok {
		return "", errors.Wrapf(ErrUnknownRegion, "'%s'", key)
	}

	return segment, nil
}

// Codes returns every supported code in sorted order.
func Codes() []string {
	codes := make([]string, 0, len(table))
	for code := range table {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}
