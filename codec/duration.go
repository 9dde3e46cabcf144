package codec

import (
	"time"

	"github.com/reoring/objenc"
)

// DurationUnit selects how Duration writes its value.
type DurationUnit int

const (
	DurationString  DurationUnit = iota // "1h30m0s"
	DurationSeconds                     // float seconds
	DurationNanos                       // integer nanoseconds
)

// Duration returns an Encodable writing d in the given unit.
func Duration(d time.Duration, unit DurationUnit) objenc.Encodable {
	return duration{d: d, unit: unit}
}

type duration struct {
	d    time.Duration
	unit DurationUnit
}

func (v duration) EncodeObject(s *objenc.Scope) error {
	switch v.unit {
	case DurationSeconds:
		return s.Scalar().SetFloat(v.d.Seconds())
	case DurationNanos:
		s.Scalar().SetInt(int64(v.d))
	default:
		s.Scalar().SetString(v.d.String())
	}
	return nil
}
