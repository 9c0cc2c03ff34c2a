package model

import (
	"strconv"
	"strings"
)

// Key builds the namespaced key of an entry-group field.
func Key(base string, index int) string {
	return strings.TrimSpace(base) + "_" + strconv.Itoa(index)
}

// ParseKey splits an entry-group key into its base and index. Keys without a
// canonical positive suffix, the one Key writes, report ok=false: static
// fields as well as spellings like "nombre_02" or "nombre_+2".
func ParseKey(key string) (base string, index int, ok bool) {
	pos := strings.LastIndexByte(key, '_')
	if pos <= 0 || pos == len(key)-1 {
		return "", 0, false
	}
	suffix := key[pos+1:]
	idx, err := strconv.Atoi(suffix)
	if err != nil || idx < 1 || strconv.Itoa(idx) != suffix {
		return "", 0, false
	}
	return key[:pos], idx, true
}

// OptionID returns the DOM identifier of a radio option. Explicit IDs are
// suffixed with the entry index for group fields so every entry keeps a
// unique namespace.
func OptionID(key string, option Option, position int, index int) string {
	id := strings.TrimSpace(option.ID)
	if id == "" {
		return key + "-" + strconv.Itoa(position+1)
	}
	if index > 0 {
		return Key(id, index)
	}
	return id
}
