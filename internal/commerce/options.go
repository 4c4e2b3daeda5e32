package commerce

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// OptionValueID selects one value of a product option, e.g. size=M.
type OptionValueID struct {
	OptionEntityID int64 `json:"optionEntityId"`
	ValueEntityID  int64 `json:"valueEntityId"`
}

// OptionValueIDsFromQuery turns a query string like ?112=69&113=7 into option
// selections. The "slug" key, non-numeric keys and non-numeric or repeated
// values are dropped.
func OptionValueIDsFromQuery(q url.Values) []OptionValueID {
	out := make([]OptionValueID, 0, len(q))
	for k, vs := range q {
		if k == "slug" || len(vs) != 1 {
			continue
		}
		if sel, ok := parseSelection(k, vs[0]); ok {
			out = append(out, sel)
		}
	}
	sortSelections(out)
	return out
}

// OptionValueIDsFromMap is the form variant of OptionValueIDsFromQuery, used
// with gin's PostFormMap("option").
func OptionValueIDsFromMap(m map[string]string) []OptionValueID {
	out := make([]OptionValueID, 0, len(m))
	for k, v := range m {
		if sel, ok := parseSelection(k, v); ok {
			out = append(out, sel)
		}
	}
	sortSelections(out)
	return out
}

// SelectionsKey is a canonical string for a set of selections ("1:2,3:4").
func SelectionsKey(sels []OptionValueID) string {
	cp := append([]OptionValueID(nil), sels...)
	sortSelections(cp)
	parts := make([]string, 0, len(cp))
	for _, s := range cp {
		parts = append(parts, strconv.FormatInt(s.OptionEntityID, 10)+":"+strconv.FormatInt(s.ValueEntityID, 10))
	}
	return strings.Join(parts, ",")
}

// SelectedValue returns the value chosen for optionID, if any.
func SelectedValue(sels []OptionValueID, optionID int64) (int64, bool) {
	for _, s := range sels {
		if s.OptionEntityID == optionID {
			return s.ValueEntityID, true
		}
	}
	return 0, false
}

func parseSelection(key, value string) (OptionValueID, bool) {
	optionID, ok := parseEntityID(key)
	if !ok {
		return OptionValueID{}, false
	}
	valueID, ok := parseEntityID(value)
	if !ok {
		return OptionValueID{}, false
	}
	return OptionValueID{OptionEntityID: optionID, ValueEntityID: valueID}, true
}

func parseEntityID(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func sortSelections(sels []OptionValueID) {
	sort.Slice(sels, func(i, j int) bool {
		if sels[i].OptionEntityID != sels[j].OptionEntityID {
			return sels[i].OptionEntityID < sels[j].OptionEntityID
		}
		return sels[i].ValueEntityID < sels[j].ValueEntityID
	})
}
