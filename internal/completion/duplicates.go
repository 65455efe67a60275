package completion

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/vvka-141/dsanno/pkg/dsanno"
)

// Duplicates reports records that describe the same derivative file as an
// earlier record. Records that cannot be classified are skipped; Complete
// reports those.
//
// Each returned error is a *RecordError wrapping dsanno.ErrDuplicate and
// naming the index of the first record with that identity.
func (e *Engine) Duplicates(records []dsanno.Record) []error {
	first := make(map[uuid.UUID]int, len(records))
	var errs []error

	for i, r := range records {
		format, err := e.Classify(r)
		if err != nil {
			continue
		}
		id := e.codec.RecordID(r, format)
		if prev, seen := first[id]; seen {
			errs = append(errs, e.recordError(r, i,
				fmt.Sprintf("same file as record[%d]", prev),
				"Merge the two annotations or correct the identity keys of one of them.",
				dsanno.ErrDuplicate))
			continue
		}
		first[id] = i
	}

	if len(errs) > 0 {
		e.logger.Verbose("found %d duplicate record(s)", len(errs))
	}
	return errs
}
