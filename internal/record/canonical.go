package record

import "golang.org/x/text/unicode/norm"

// CanonicalSlotID normalizes a caller-supplied slot identifier to NFC.
//
// Slot IDs arrive as free-form strings; two visually identical IDs that
// differ only in Unicode composition must address the same slot. All
// store implementations canonicalize through this function before any
// lookup or write.
func CanonicalSlotID(id string) string {
	return norm.NFC.String(id)
}
