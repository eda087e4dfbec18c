package model

import "strings"

// ComposeRequest is the draft handed to the mail client. It is built fresh
// for every export and never stored.
type ComposeRequest struct {
	Recipient string
	Subject   string
	Body      string
}

// URI returns the mailto link for the request. The recipient is inserted
// verbatim; subject and body are component-encoded.
func (c ComposeRequest) URI() string {
	var b strings.Builder
	b.Grow(len("mailto:?subject=&body=") + len(c.Recipient) +
		len(c.Subject)*3 + len(c.Body)*3)

	b.WriteString("mailto:")
	b.WriteString(c.Recipient)
	b.WriteString("?subject=")
	b.WriteString(EncodeURIComponent(c.Subject))
	b.WriteString("&body=")
	b.WriteString(EncodeURIComponent(c.Body))
	return b.String()
}

const upperHex = "0123456789ABCDEF"

// EncodeURIComponent percent-encodes s the way ECMAScript's
// encodeURIComponent does: every UTF-8 byte outside the unreserved set
// A-Z a-z 0-9 - _ . ! ~ * ' ( ) becomes %XX.
func EncodeURIComponent(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if !unreservedComponent(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	out := make([]byte, 0, len(s)+2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if unreservedComponent(c) {
			out = append(out, c)
			continue
		}
		out = append(out, '%', upperHex[c>>4], upperHex[c&0x0f])
	}
	return string(out)
}

func unreservedComponent(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
