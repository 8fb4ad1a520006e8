package handlers

import (
	"strconv"
	"strings"
)

// numericField accepts either a JSON number or a numeric string. The raw
// text is kept so presence can be checked before parsing.
type numericField string

func (n *numericField) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	s = strings.Trim(s, `"`)
	if s == "null" {
		s = ""
	}
	*n = numericField(strings.TrimSpace(s))
	return nil
}

func (n numericField) String() string { return string(n) }

func (n numericField) Int() (int, error) { return strconv.Atoi(string(n)) }

func (n numericField) Float64() (float64, error) { return strconv.ParseFloat(string(n), 64) }
