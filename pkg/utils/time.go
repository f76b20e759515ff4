// Package utils contains various common utils separate by utility types
package utils // import "github.com/joincivil/token-registry/pkg/utils"

import (
	"time"
)

// SecsToTime converts an int64 of seconds from epoch to Time struct
func SecsToTime(ts int64) time.Time {
	return time.Unix(ts, 0)
}
