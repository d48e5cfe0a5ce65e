package usecase

import (
	"time"

	gmailapi "google.golang.org/api/gmail/v1"

	emaildomain "lifelog-backend/internal/email/domain"
	"lifelog-backend/pkg/gmail"
)

// normalizeEmail maps a raw Gmail message onto the stored shape. The
// surrogate id is left for the repository to assign.
func normalizeEmail(msg *gmailapi.Message, userID string, fetchedAt time.Time) *emaildomain.Email {
	bodyText, bodyHTML := gmail.ExtractBodies(msg.Payload)

	labels := msg.LabelIds
	if labels == nil {
		labels = []string{}
	}

	return &emaildomain.Email{
		UserID:    userID,
		GmailID:   msg.Id,
		ThreadID:  msg.ThreadId,
		Subject:   gmail.Header(msg.Payload, "Subject"),
		From:      gmail.Header(msg.Payload, "From"),
		To:        gmail.SplitAddresses(gmail.Header(msg.Payload, "To")),
		Cc:        gmail.SplitAddresses(gmail.Header(msg.Payload, "Cc")),
		Snippet:   msg.Snippet,
		BodyText:  bodyText,
		BodyHTML:  bodyHTML,
		Labels:    labels,
		Date:      gmail.MessageDate(msg),
		FetchedAt: fetchedAt,
	}
}
