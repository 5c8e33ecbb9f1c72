package derive

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"sort"
	"strconv"
)

// Fingerprint hashes an input snapshot by value. Two snapshots with equal
// contents produce the same key regardless of slice identity, which is what
// makes the memoization structural rather than referential.
func Fingerprint(in Inputs) string {
	h := fnv.New64a()

	writeInt := func(v int64) {
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], uint64(v))
		h.Write(buf[:])
	}
	writeFloat := func(v float64) {
		writeInt(int64(math.Float64bits(v)))
	}
	writeString := func(s string) {
		writeInt(int64(len(s)))
		h.Write([]byte(s))
	}

	writeInt(int64(len(in.Transactions)))
	for _, t := range in.Transactions {
		writeInt(t.ID)
		writeString(string(t.Type))
		writeFloat(t.Amount)
		writeInt(t.CategoryID)
		writeInt(t.Date.Unix())
		writeString(t.Comment)
		writeInt(t.UserID)
	}

	writeInt(int64(len(in.Categories)))
	for _, c := range in.Categories {
		writeInt(c.ID)
		writeString(c.Name)
		writeString(string(c.Type))
		writeString(c.Color)
		writeString(c.Icon)
		writeInt(c.UserID)
	}

	writeString(string(in.Criteria.ActiveTab))
	writeInt(in.Criteria.StartDate.Unix())
	writeInt(in.Criteria.EndDate.Unix())
	writeInt(in.Criteria.CategoryID)
	if in.Criteria.MinAmount != nil {
		writeFloat(*in.Criteria.MinAmount)
	} else {
		writeString("nil")
	}
	if in.Criteria.MaxAmount != nil {
		writeFloat(*in.Criteria.MaxAmount)
	} else {
		writeString("nil")
	}

	writeString(in.Currency)

	codes := make([]string, 0, len(in.Rates))
	for code := range in.Rates {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		writeString(code)
		writeFloat(in.Rates[code])
	}

	return strconv.FormatUint(h.Sum64(), 16)
}
