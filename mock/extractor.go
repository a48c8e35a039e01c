package mock

import "github.com/fwojciec/emailscout"

var _ emailscout.EmailExtractor = (*EmailExtractor)(nil)

// EmailExtractor is a mock implementation of emailscout.EmailExtractor.
type EmailExtractor struct {
	ExtractEmailsFn func(html string) emailscout.EmailSet
}

func (e *EmailExtractor) ExtractEmails(html string) emailscout.EmailSet {
	return e.ExtractEmailsFn(html)
}

var _ emailscout.ContactLocator = (*ContactLocator)(nil)

// ContactLocator is a mock implementation of emailscout.ContactLocator.
type ContactLocator struct {
	FindContactPagesFn func(html string, baseURL string) []string
}

func (l *ContactLocator) FindContactPages(html string, baseURL string) []string {
	return l.FindContactPagesFn(html, baseURL)
}
