package size

import (
	"strings"
)

// ListSeparator separates specs in a single env value, commas belong to the spec itself
const ListSeparator = ";"

// List is an ordered list of Spec, order matters for chaining
type List []Spec

// String implements flag.Value
func (l *List) String() string {
	if l == nil {
		return ""
	}
	ss := make([]string, len(*l))
	for i, sp := range *l {
		ss[i] = sp.String()
	}
	return strings.Join(ss, ListSeparator)
}

// Set implements flag.Value, each occurrence appends one spec
func (l *List) Set(value string) error {
	*l = append(*l, Parse(value))
	return nil
}

// Decode implements envconfig.Decoder
func (l *List) Decode(value string) error {
	*l = ParseList(strings.Split(value, ListSeparator)...)
	return nil
}

// ParseList parses every non-blank text in order
func ParseList(texts ...string) List {
	var l List
	for _, s := range texts {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		l = append(l, Parse(s))
	}
	return l
}
