package emailscout

import (
	"regexp"
	"slices"
	"strings"
)

// EmailPattern matches email addresses embedded in arbitrary text.
var EmailPattern = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)

var emailExact = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)

// NoEmailsFound is written in place of the address list for sites without emails.
const NoEmailsFound = "No emails found"

// IsEmail reports whether s is exactly one email address.
func IsEmail(s string) bool {
	return emailExact.MatchString(s)
}

// EmailSet is a set of email addresses found for a single site.
// Addresses are compared as exact strings; case is preserved.
type EmailSet map[string]struct{}

// NewEmailSet returns a set holding the valid addresses among emails.
func NewEmailSet(emails ...string) EmailSet {
	s := make(EmailSet, len(emails))
	for _, e := range emails {
		s.Add(e)
	}
	return s
}

// Add inserts email if it is a valid address.
// It returns false if email was rejected or already present.
func (s EmailSet) Add(email string) bool {
	if !IsEmail(email) {
		return false
	}
	if _, ok := s[email]; ok {
		return false
	}
	s[email] = struct{}{}
	return true
}

// Merge adds every address of other to s and returns the number added.
func (s EmailSet) Merge(other EmailSet) int {
	var n int
	for e := range other {
		if s.Add(e) {
			n++
		}
	}
	return n
}

// Contains reports whether email is in the set.
func (s EmailSet) Contains(email string) bool {
	_, ok := s[email]
	return ok
}

// Len returns the number of addresses.
func (s EmailSet) Len() int {
	return len(s)
}

// Sorted returns the addresses in lexical order.
func (s EmailSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for e := range s {
		out = append(out, e)
	}
	slices.Sort(out)
	return out
}

// FormatEmails renders a set for output: a comma-and-space separated list,
// or NoEmailsFound when the set is empty.
func FormatEmails(s EmailSet) string {
	if s.Len() == 0 {
		return NoEmailsFound
	}
	return strings.Join(s.Sorted(), ", ")
}
