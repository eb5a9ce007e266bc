// internal/domain/recipient/recipient.go
package recipient

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// ID is a platform chat identifier of a message destination.
type ID int64

// ErrNoRecipients is returned when resolution produced nothing to send to.
var ErrNoRecipients = errors.New("no recipient identifiers resolved")

// ErrInvalidID marks a value that cannot be used as a recipient identifier.
var ErrInvalidID = errors.New("invalid recipient identifier")

// Coerce converts a raw value read from a file or a database document into an ID.
// Integers, integral floats, json.Number and numeric strings are accepted; anything
// else, including zero and negative numbers, is rejected with ErrInvalidID.
func Coerce(v any) (ID, error) {
	var n int64
	switch x := v.(type) {
	case nil:
		return 0, fmt.Errorf("%w: <nil>", ErrInvalidID)
	case int:
		n = int64(x)
	case int32:
		n = int64(x)
	case int64:
		n = x
	case uint32:
		n = int64(x)
	case float64:
		if x != math.Trunc(x) || x > math.MaxInt64 || x < math.MinInt64 {
			return 0, fmt.Errorf("%w: %v", ErrInvalidID, x)
		}
		n = int64(x)
	case json.Number:
		if parsed, err := x.Int64(); err == nil {
			n = parsed
			break
		}
		f, err := x.Float64()
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidID, x.String())
		}
		return Coerce(f)
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidID, x)
		}
		n = parsed
	default:
		return 0, fmt.Errorf("%w: unsupported type %T", ErrInvalidID, v)
	}
	if n <= 0 {
		return 0, fmt.Errorf("%w: %d is not positive", ErrInvalidID, n)
	}
	return ID(n), nil
}

// CoerceAll keeps every value that Coerce accepts, in input order.
// Rejected values are logged and skipped.
func CoerceAll(values []any, log *logrus.Entry) []ID {
	ids := make([]ID, 0, len(values))
	for i, v := range values {
		id, err := Coerce(v)
		if err != nil {
			log.WithFields(logrus.Fields{"position": i, "value": v}).WithError(err).Warn("Invalid recipient ID found and skipped")
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
