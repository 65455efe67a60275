package filename

import (
	"github.com/google/uuid"

	"github.com/vvka-141/dsanno/pkg/dsanno"
)

// NamespaceAnnotation is the UUID namespace for annotation identities.
// It is derived from the URL namespace and a fixed canonical string, so the
// same filename yields the same identity on every machine.
var NamespaceAnnotation = uuid.NewSHA1(uuid.NameSpaceURL, []byte("dsanno/annotation-identity/v1"))

// RecordID returns a deterministic UUID v5 for the file r describes in format f.
// Two records with identical identity keys and format share an ID; this is how
// duplicate annotations are detected.
//
// Returns uuid.Nil for an unknown format.
func (c *Codec) RecordID(r dsanno.Record, f dsanno.Format) uuid.UUID {
	name := c.Encode(r, f)
	if name == "" {
		return uuid.Nil
	}
	return uuid.NewSHA1(NamespaceAnnotation, []byte(name))
}
