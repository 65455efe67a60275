package normalize

import (
	"github.com/vvka-141/dsanno/pkg/dsanno"
)

// KeyState is the three-way status of one key in one record.
type KeyState string

const (
	StateMissing KeyState = "missing"
	StateAbsent  KeyState = "absent"
	StateSet     KeyState = "set"
)

// StateOf classifies v.
func StateOf(v dsanno.Value) KeyState {
	switch {
	case v.IsSet():
		return StateSet
	case v.IsAbsent():
		return StateAbsent
	default:
		return StateMissing
	}
}

// Row is the audit of a single record.
type Row struct {
	Index   int
	Record  dsanno.Record
	States  []KeyState // parallel to Summary.Keys
	Missing []string   // keys not present at all
}

// IsComplete reports whether the record carries every audited key.
func (r Row) IsComplete() bool {
	return len(r.Missing) == 0
}

// Summary is a read-only audit of records against a key list.
type Summary struct {
	Keys []string
	Rows []Row
}

// Summarize audits each record against keys, distinguishing keys that are not
// present (missing) from keys present with an explicit absent value.
func Summarize(records []dsanno.Record, keys []string) Summary {
	s := Summary{
		Keys: append([]string(nil), keys...),
		Rows: make([]Row, 0, len(records)),
	}

	for i, r := range records {
		row := Row{
			Index:  i,
			Record: r,
			States: make([]KeyState, len(keys)),
		}
		for j, key := range keys {
			state := StateOf(r.Get(key))
			row.States[j] = state
			if state == StateMissing {
				row.Missing = append(row.Missing, key)
			}
		}
		s.Rows = append(s.Rows, row)
	}

	return s
}

// Incomplete returns the rows missing at least one key.
func (s Summary) Incomplete() []Row {
	var rows []Row
	for _, row := range s.Rows {
		if !row.IsComplete() {
			rows = append(rows, row)
		}
	}
	return rows
}

// Counts returns, per key, how many records are in each state.
func (s Summary) Counts() map[string]map[KeyState]int {
	counts := make(map[string]map[KeyState]int, len(s.Keys))
	for _, key := range s.Keys {
		counts[key] = map[KeyState]int{}
	}
	for _, row := range s.Rows {
		for j, key := range s.Keys {
			counts[key][row.States[j]]++
		}
	}
	return counts
}
