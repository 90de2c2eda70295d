package hibp

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"net/http"
	"strconv"
	"strings"

	"pwncheck/pkg/domain"
	"pwncheck/svc/util"

	"github.com/pkg/errors"
)

const (
	opRange    = "range"
	prefixSize = 5
)

// HashPassword returns the uppercase SHA-1 of the UTF-8 password split into
// the 5 character prefix sent upstream and the 35 character suffix kept local.
func HashPassword(password string) (prefix, suffix string) {
	sum := sha1.Sum([]byte(password))
	h := strings.ToUpper(hex.EncodeToString(sum[:]))
	return h[:prefixSize], h[prefixSize:]
}

// PasswordCount returns how often the password appears in Pwned Passwords.
// Zero means it was never seen. Only the hash prefix leaves the process.
func (c *Client) PasswordCount(ctx context.Context, apiKey, userAgent, password string) (int64, error) {
	prefix, suffix := HashPassword(password)
	resp, err := c.get(ctx, opRange, apiKey, userAgent, c.passwordsURL+"/range/"+prefix)
	if err != nil {
		observe(opRange, err, false)
		return 0, err
	}
	if resp.status == http.StatusNotFound {
		observe(opRange, nil, false)
		return 0, nil
	}
	count, err := parseRange(resp.body, suffix)
	observe(opRange, err, count > 0)
	if err != nil {
		util.Warn().Err(err).Str("prefix", prefix).Msg("range response unreadable")
		return 0, err
	}
	util.Debug().Str("prefix", prefix).Int64("count", count).Msg("range lookup done")
	return count, nil
}

// parseRange finds suffix in a "SUFFIX:COUNT" per line body. A missing
// suffix is 0; a matched line whose count is not a non-negative integer
// is ErrMalformedRange.
func parseRange(body []byte, suffix string) (int64, error) {
	sc := bufio.NewScanner(bytes.NewReader(body))
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		s, count, ok := strings.Cut(line, ":")
		if !ok || s != suffix {
			continue
		}
		n, err := strconv.ParseInt(strings.TrimSpace(count), 10, 64)
		if err != nil {
			return 0, errors.Wrapf(domain.ErrMalformedRange, "count %q", count)
		}
		if n < 0 {
			return 0, errors.Wrapf(domain.ErrMalformedRange, "negative count %d", n)
		}
		return n, nil
	}
	if err := sc.Err(); err != nil {
		return 0, errors.Wrap(err, "scan range")
	}
	return 0, nil
}
