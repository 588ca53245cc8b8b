// Package pagination implements opaque cursor tokens for keyset-paginated
// listings. A token encodes the sort-key pair of the last row on a page;
// the next page is everything strictly after that pair in sort order.
package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"
)

const timeFormat = time.RFC3339Nano

// EncodeToken builds a cursor token from a reset date and creation time,
// the stable sort key of period listings.
func EncodeToken(resetDate time.Time, createdAt time.Time) string {
	raw := resetDate.Format(timeFormat) + "|" + createdAt.Format(timeFormat)
	return base64.StdEncoding.EncodeToString([]byte(raw))
}

// DecodeToken parses a cursor token back into its reset date and creation
// time components.
func DecodeToken(token string) (time.Time, time.Time, error) {
	decoded, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token (base64 decode): %w", err)
	}

	first, second, found := strings.Cut(string(decoded), "|")
	if !found {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token (missing separator)")
	}

	resetDate, err := time.Parse(timeFormat, first)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token (reset date parse): %w", err)
	}
	createdAt, err := time.Parse(timeFormat, second)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid pagination token (created_at parse): %w", err)
	}

	return resetDate, createdAt, nil
}
