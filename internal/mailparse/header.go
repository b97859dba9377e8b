// Package mailparse decodes message headers, classifies MIME parts into
// body vs. attachment, and derives display snippets from message bodies.
package mailparse

import (
	"fmt"
	"io"
	"mime"
	"strings"

	"github.com/emersion/go-message/charset"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

func init() {
	// Charset labels seen in the wild that go-message does not map.
	charset.RegisterEncoding("ascii", unicode.UTF8)
	charset.RegisterEncoding("us-ascii", unicode.UTF8)
	charset.RegisterEncoding("cp1252", charmap.Windows1252)
	charset.RegisterEncoding("windows-1252", charmap.Windows1252)
	charset.RegisterEncoding("latin1", charmap.ISO8859_1)
}

// CharsetError reports a header whose declared charset could not be decoded
// even after falling back to a raw byte interpretation.
type CharsetError struct {
	Charset string
}

func (e *CharsetError) Error() string {
	return fmt.Sprintf("unknown header charset %q", e.Charset)
}

// DecodeHeader decodes MIME encoded-word segments in a raw header value.
// Values without encoded words are returned unchanged; a missing header
// (empty string) decodes to an empty string. Segments whose declared charset
// is unknown fall back to a raw UTF-8 interpretation of their bytes.
func DecodeHeader(raw string) (string, error) {
	if raw == "" {
		return "", nil
	}
	if !strings.Contains(raw, "=?") {
		return raw, nil
	}

	dec := mime.WordDecoder{CharsetReader: charset.Reader}
	if s, err := dec.DecodeHeader(raw); err == nil {
		return s, nil
	}

	// Retry, passing segments with an undecodable charset through as raw
	// bytes. Go strings tolerate invalid UTF-8, so this cannot lose data.
	var unknown string
	fallback := mime.WordDecoder{
		CharsetReader: func(cs string, input io.Reader) (io.Reader, error) {
			r, err := charset.Reader(cs, input)
			if err != nil {
				if unknown == "" {
					unknown = cs
				}
				return input, nil
			}
			return r, nil
		},
	}
	if s, err := fallback.DecodeHeader(raw); err == nil {
		return s, nil
	}

	if unknown != "" {
		return "", &CharsetError{Charset: unknown}
	}
	// Malformed encoded-word payload: keep the raw value.
	return raw, nil
}
