package scanner

import "strings"

// ScanAhead advances the cursor to the nearest occurrence of any stop
// token and returns the text skipped and the token found. The token
// itself is not consumed. When no stop occurs in the rest of the
// buffer, nothing is consumed and ok is false.
//
// String bodies and open strings can be arbitrarily long; a plain
// substring search keeps them linear where an anchored regex probe per
// byte would not be.
func (c *Cursor) ScanAhead(stops ...string) (text, tok string, ok bool) {
	best := -1
	for _, stop := range stops {
		if stop == "" {
			continue
		}
		idx := strings.Index(c.buf[c.pos:], stop)
		if idx < 0 {
			continue
		}
		if best < 0 || idx < best || (idx == best && len(stop) > len(tok)) {
			best = idx
			tok = stop
		}
	}
	if best < 0 {
		return "", "", false
	}
	text = c.buf[c.pos : c.pos+best]
	c.pos += best
	return text, tok, true
}
