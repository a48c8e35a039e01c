// Package emailscout collects contact email addresses from websites.
// It fetches each site over plain HTTP, follows links to contact pages,
// and escalates to a real browser when plain retrieval finds nothing or
// the site is known to need rendering.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, rod/, sqlite/).
package emailscout
