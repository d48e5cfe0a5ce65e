package gmail

import (
	"encoding/base64"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"google.golang.org/api/gmail/v1"
)

var tagRegex = regexp.MustCompile(`<[^>]+>`)

// Header returns the value of a payload header by case-insensitive name, or
// "" when absent.
func Header(payload *gmail.MessagePart, name string) string {
	if payload == nil {
		return ""
	}
	for _, h := range payload.Headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value
		}
	}
	return ""
}

// ExtractBodies walks the multipart payload tree depth-first, concatenating
// every text/plain part into the plain body and every text/html part into
// the HTML body. When no plain part exists, the plain body is derived from
// the HTML body by stripping tags and collapsing whitespace.
func ExtractBodies(payload *gmail.MessagePart) (bodyText, bodyHTML string) {
	var walk func(part *gmail.MessagePart)
	walk = func(part *gmail.MessagePart) {
		if part == nil {
			return
		}
		if part.Body != nil && part.Body.Data != "" {
			decoded := decodeBase64URL(part.Body.Data)
			switch part.MimeType {
			case "text/plain":
				bodyText += decoded
			case "text/html":
				bodyHTML += decoded
			}
		}
		for _, child := range part.Parts {
			walk(child)
		}
	}
	walk(payload)

	if bodyText == "" && bodyHTML != "" {
		bodyText = StripTags(bodyHTML)
	}
	return bodyText, bodyHTML
}

// StripTags removes HTML tags and collapses runs of whitespace.
func StripTags(html string) string {
	plain := tagRegex.ReplaceAllString(html, " ")
	return strings.Join(strings.Fields(plain), " ")
}

// MessageDate derives the message time: the Date header when present and
// parseable, else the internal timestamp, else the current time.
func MessageDate(msg *gmail.Message) time.Time {
	if header := Header(msg.Payload, "Date"); header != "" {
		if t, err := mail.ParseDate(header); err == nil {
			return t
		}
	}
	if msg.InternalDate > 0 {
		return time.UnixMilli(msg.InternalDate)
	}
	return time.Now()
}

// SplitAddresses splits a comma-separated recipient header into trimmed
// entries.
func SplitAddresses(header string) []string {
	if header == "" {
		return []string{}
	}
	parts := strings.Split(header, ",")
	addrs := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			addrs = append(addrs, trimmed)
		}
	}
	return addrs
}

// decodeBase64URL decodes Gmail's base64url payload data, tolerating both
// padded and unpadded input. Undecodable data yields "".
func decodeBase64URL(data string) string {
	if b, err := base64.URLEncoding.DecodeString(data); err == nil {
		return string(b)
	}
	if b, err := base64.RawURLEncoding.DecodeString(data); err == nil {
		return string(b)
	}
	return ""
}
