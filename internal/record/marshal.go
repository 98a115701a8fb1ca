package record

import (
	"encoding/binary"
	"fmt"
)

// EncodedSize is the exact byte length of an encoded record (CP-3):
// 32-byte authority + 1-byte protocol + 2-byte little-endian APY.
const EncodedSize = AuthoritySize + 1 + 2

// EncodeBinary serializes the record into the fixed 35-byte layout.
// The field order and widths never change; stores persist this form.
func (r *YieldRecord) EncodeBinary() []byte {
	buf := make([]byte, EncodedSize)
	copy(buf[:AuthoritySize], r.Authority[:])
	buf[AuthoritySize] = r.CurrentProtocol
	binary.LittleEndian.PutUint16(buf[AuthoritySize+1:], r.CurrentAPYBps)
	return buf
}

// DecodeBinary parses a record from its fixed 35-byte layout.
// Rejects any other length - a torn or truncated record is a storage
// layer fault, never something to repair here.
func DecodeBinary(data []byte) (*YieldRecord, error) {
	if len(data) != EncodedSize {
		return nil, fmt.Errorf("encoded record must be %d bytes, got %d", EncodedSize, len(data))
	}

	var r YieldRecord
	copy(r.Authority[:], data[:AuthoritySize])
	r.CurrentProtocol = data[AuthoritySize]
	r.CurrentAPYBps = binary.LittleEndian.Uint16(data[AuthoritySize+1:])

	return &r, nil
}
