package neighbors

import (
	"strconv"
)

// Label is a class label that is either a string or a number. It is
// comparable, so it can be used directly as the label type of
// KNeighborsClassifier when a dataset mixes both kinds.
type Label struct {
	str   string
	num   float64
	isNum bool
}

// StringLabel returns a string-valued Label.
func StringLabel(s string) Label {
	return Label{str: s}
}

// NumberLabel returns a number-valued Label.
func NumberLabel(f float64) Label {
	return Label{num: f, isNum: true}
}

// IsNumber reports whether the label holds a number.
func (l Label) IsNumber() bool { return l.isNum }

// Str returns the string value; empty for number labels.
func (l Label) Str() string { return l.str }

// Num returns the numeric value; zero for string labels.
func (l Label) Num() float64 { return l.num }

// String formats the label. Numbers use the shortest representation, so
// NumberLabel(1) prints as "1".
func (l Label) String() string {
	if l.isNum {
		return strconv.FormatFloat(l.num, 'g', -1, 64)
	}
	return l.str
}
