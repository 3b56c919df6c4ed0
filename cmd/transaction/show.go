package transaction

import (
	"strconv"

	"github.com/hance08/hb/internal/apperr"
)

// ParseKey reads a record key argument.
func ParseKey(arg string) (int64, error) {
	key, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || key <= 0 {
		return 0, apperr.Validation("key", "invalid key: %s", arg)
	}
	return key, nil
}
