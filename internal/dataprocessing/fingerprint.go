package dataprocessing

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/cespare/xxhash/v2"
)

// type tags keep values of different kinds from hashing alike ("1" vs 1)
const (
	tagNil byte = iota
	tagInt
	tagFloat
	tagString
	tagTime
	tagOther
)

// fingerprint hashes a record. Records that are equal under valuesEqual
// always share a fingerprint; the converse is checked by the caller.
func fingerprint(row []any) uint64 {
	h := xxhash.New()
	var buf [9]byte

	for _, v := range row {
		switch tv := v.(type) {
		case nil:
			buf[0] = tagNil
			h.Write(buf[:1])
		case int64:
			buf[0] = tagInt
			binary.LittleEndian.PutUint64(buf[1:], uint64(tv))
			h.Write(buf[:])
		case float64:
			buf[0] = tagFloat
			binary.LittleEndian.PutUint64(buf[1:], floatBits(tv))
			h.Write(buf[:])
		case string:
			buf[0] = tagString
			binary.LittleEndian.PutUint64(buf[1:], uint64(len(tv)))
			h.Write(buf[:])
			h.WriteString(tv)
		case time.Time:
			buf[0] = tagTime
			binary.LittleEndian.PutUint64(buf[1:], uint64(tv.UnixNano()))
			h.Write(buf[:])
		default:
			s := fmt.Sprintf("%T:%v", tv, tv)
			buf[0] = tagOther
			binary.LittleEndian.PutUint64(buf[1:], uint64(len(s)))
			h.Write(buf[:])
			h.WriteString(s)
		}
	}

	return h.Sum64()
}

// floatBits canonicalizes -0 and NaN payloads
func floatBits(f float64) uint64 {
	switch {
	case math.IsNaN(f):
		return 0x7FF8000000000001
	case f == 0:
		return 0
	default:
		return math.Float64bits(f)
	}
}
