package discord

import (
	"strconv"
	"time"
)

// Epoch is the Discord snowflake epoch (2015-01-01T00:00:00Z) in
// milliseconds.
const Epoch = 1420070400000

// SnowflakeTime decodes the creation time embedded in a snowflake id. The
// top 42 bits of the id are milliseconds since Epoch. Returns false when id
// is not a numeric snowflake.
func SnowflakeTime(id string) (time.Time, bool) {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		return time.Time{}, false
	}
	ms := int64(n>>22) + Epoch
	return time.UnixMilli(ms).UTC(), true
}
