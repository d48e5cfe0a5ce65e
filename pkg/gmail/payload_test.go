package gmail

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/gmail/v1"
)

func b64(s string) string {
	return base64.URLEncoding.EncodeToString([]byte(s))
}

func TestHeaderCaseInsensitive(t *testing.T) {
	payload := &gmail.MessagePart{
		Headers: []*gmail.MessagePartHeader{
			{Name: "SUBJECT", Value: "hello"},
			{Name: "From", Value: "a@example.com"},
		},
	}

	assert.Equal(t, "hello", Header(payload, "Subject"))
	assert.Equal(t, "a@example.com", Header(payload, "from"))
	assert.Empty(t, Header(payload, "To"))
	assert.Empty(t, Header(nil, "Subject"))
}

func TestExtractBodiesNestedMultipart(t *testing.T) {
	payload := &gmail.MessagePart{
		MimeType: "multipart/mixed",
		Parts: []*gmail.MessagePart{
			{
				MimeType: "multipart/alternative",
				Parts: []*gmail.MessagePart{
					{MimeType: "text/plain", Body: &gmail.MessagePartBody{Data: b64("part one. ")}},
					{MimeType: "text/html", Body: &gmail.MessagePartBody{Data: b64("<p>part one</p>")}},
				},
			},
			{MimeType: "text/plain", Body: &gmail.MessagePartBody{Data: b64("part two.")}},
			{MimeType: "image/png", Body: &gmail.MessagePartBody{Data: b64("binary")}},
		},
	}

	text, html := ExtractBodies(payload)
	assert.Equal(t, "part one. part two.", text)
	assert.Equal(t, "<p>part one</p>", html)
}

func TestExtractBodiesHTMLOnlyFallsBack(t *testing.T) {
	payload := &gmail.MessagePart{
		MimeType: "text/html",
		Body:     &gmail.MessagePartBody{Data: b64("<div>Hello   <b>world</b></div>\n<p>bye</p>")},
	}

	text, html := ExtractBodies(payload)
	assert.Equal(t, "<div>Hello   <b>world</b></div>\n<p>bye</p>", html)
	assert.Equal(t, "Hello world bye", text)
}

func TestExtractBodiesUnpaddedData(t *testing.T) {
	raw := base64.RawURLEncoding.EncodeToString([]byte("no padding"))
	payload := &gmail.MessagePart{
		MimeType: "text/plain",
		Body:     &gmail.MessagePartBody{Data: raw},
	}

	text, _ := ExtractBodies(payload)
	assert.Equal(t, "no padding", text)
}

func TestExtractBodiesEmptyPayload(t *testing.T) {
	text, html := ExtractBodies(nil)
	assert.Empty(t, text)
	assert.Empty(t, html)
}

func TestMessageDatePriority(t *testing.T) {
	withHeader := &gmail.Message{
		InternalDate: 1700000000000,
		Payload: &gmail.MessagePart{
			Headers: []*gmail.MessagePartHeader{
				{Name: "Date", Value: "Mon, 04 Mar 2024 10:30:00 +0000"},
			},
		},
	}
	got := MessageDate(withHeader)
	assert.Equal(t, time.Date(2024, 3, 4, 10, 30, 0, 0, time.UTC), got.UTC())

	internalOnly := &gmail.Message{InternalDate: 1700000000000, Payload: &gmail.MessagePart{}}
	assert.Equal(t, time.UnixMilli(1700000000000), MessageDate(internalOnly))

	// Unparseable header falls through to internal date.
	badHeader := &gmail.Message{
		InternalDate: 1700000000000,
		Payload: &gmail.MessagePart{
			Headers: []*gmail.MessagePartHeader{{Name: "Date", Value: "not a date"}},
		},
	}
	assert.Equal(t, time.UnixMilli(1700000000000), MessageDate(badHeader))

	before := time.Now()
	empty := MessageDate(&gmail.Message{Payload: &gmail.MessagePart{}})
	require.False(t, empty.Before(before))
}

func TestSplitAddresses(t *testing.T) {
	assert.Equal(t, []string{}, SplitAddresses(""))
	assert.Equal(t,
		[]string{"a@example.com", "Bob <b@example.com>"},
		SplitAddresses("a@example.com, Bob <b@example.com>"))
	assert.Equal(t, []string{"a@example.com"}, SplitAddresses("a@example.com,"))
}
