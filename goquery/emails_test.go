package goquery_test

import (
	"testing"

	"github.com/fwojciec/emailscout"
	"github.com/fwojciec/emailscout/goquery"
	"github.com/stretchr/testify/assert"
)

func TestEmailExtractor_ExtractEmails(t *testing.T) {
	t.Parallel()

	t.Run("finds addresses in page text", func(t *testing.T) {
		t.Parallel()

		html := `<!DOCTYPE html>
<html>
<body>
<p>Write to info@example.com or sales@example.co.uk.</p>
<footer>Support: support@example.com</footer>
</body>
</html>`

		emails := goquery.NewEmailExtractor().ExtractEmails(html)

		assert.Equal(t, []string{"info@example.com", "sales@example.co.uk", "support@example.com"}, emails.Sorted())
	})

	t.Run("does not fuse text of adjacent block elements", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><div>info@example.com</div><div>Next</div><p>sales@example.com</p>Contact<br>us</body></html>`

		emails := goquery.NewEmailExtractor().ExtractEmails(html)

		assert.Equal(t, []string{"info@example.com", "sales@example.com"}, emails.Sorted())
	})

	t.Run("joins an address split by inline markup", func(t *testing.T) {
		t.Parallel()

		tests := map[string]string{
			"span around the at sign": `<p>info<span>@</span>example.com</p>`,
			"bold domain":             `<p>Write to info@<b>example.com</b></p>`,
			"linked local part":       `<p><a href="/c">sales</a>@example.com</p>`,
		}
		want := map[string]string{
			"span around the at sign": "info@example.com",
			"bold domain":             "info@example.com",
			"linked local part":       "sales@example.com",
		}

		for name, html := range tests {
			t.Run(name, func(t *testing.T) {
				t.Parallel()

				emails := goquery.NewEmailExtractor().ExtractEmails(html)

				assert.Equal(t, []string{want[name]}, emails.Sorted())
			})
		}
	})

	t.Run("ignores style content", func(t *testing.T) {
		t.Parallel()

		html := `<html><head><style>/* icon@media.screen */</style></head><body>Hello</body></html>`

		emails := goquery.NewEmailExtractor().ExtractEmails(html)

		assert.Equal(t, 0, emails.Len())
	})

	t.Run("strips mailto prefix and query parameters", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<a href="mailto:info@site.com?subject=hi">Email</a>
<a href="MAILTO:press@site.com">Press</a>
<a href="mailto:%20jobs%40site.com">Jobs</a>
</body></html>`

		emails := goquery.NewEmailExtractor().ExtractEmails(html)

		assert.Equal(t, []string{"info@site.com", "jobs@site.com", "press@site.com"}, emails.Sorted())
	})

	t.Run("skips invalid mailto targets", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<a href="mailto:">Empty</a>
<a href="mailto:nobody">Local only</a>
<a href="mailto:a@example.com,b@example.com">Two</a>
</body></html>`

		emails := goquery.NewEmailExtractor().ExtractEmails(html)

		assert.Equal(t, 0, emails.Len())
	})

	t.Run("deduplicates mailto links", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<a href="mailto:info@site.com">One</a>
<a href="mailto:info@site.com?subject=again">Two</a>
<a href="mailto:hello@site.com">Three</a>
</body></html>`

		emails := goquery.NewEmailExtractor().ExtractEmails(html)

		assert.LessOrEqual(t, emails.Len(), 3)
		assert.Equal(t, []string{"hello@site.com", "info@site.com"}, emails.Sorted())
	})

	t.Run("reassembles address split around the at sign", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><script>
var a = 'info' + '@' + 'example.com';
var b = "sales" + "@example.org";
document.write('<a href="mailto:' + a + '">' + a + '</a>');
</script></body></html>`

		emails := goquery.NewEmailExtractor().ExtractEmails(html)

		assert.Equal(t, []string{"info@example.com", "sales@example.org"}, emails.Sorted())
	})

	t.Run("picks longest valid domain from split literals", func(t *testing.T) {
		t.Parallel()

		html := `<script>var e = 'team' + '@example' + '.com' + '?subject=x';</script>`

		emails := goquery.NewEmailExtractor().ExtractEmails(html)

		assert.Equal(t, []string{"team@example.com"}, emails.Sorted())
	})

	t.Run("ignores plain addresses inside scripts", func(t *testing.T) {
		t.Parallel()

		html := `<html><body><script>var x = "hidden@example.com";</script></body></html>`

		emails := goquery.NewEmailExtractor().ExtractEmails(html)

		assert.Equal(t, 0, emails.Len())
	})

	t.Run("returns empty set for empty and malformed input", func(t *testing.T) {
		t.Parallel()

		e := goquery.NewEmailExtractor()

		assert.Equal(t, 0, e.ExtractEmails("").Len())
		assert.Equal(t, 0, e.ExtractEmails("   ").Len())
		assert.Equal(t, 0, e.ExtractEmails("<html><body><p>unterminated <a href=").Len())
	})

	t.Run("every result matches the address pattern", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<p>odd@@example.com x@y.z real.one@example.com logo@2x.png</p>
<a href="mailto:bad@">bad</a>
<script>var q = 'a' + '@b';</script>
</body></html>`

		emails := goquery.NewEmailExtractor().ExtractEmails(html)

		for e := range emails {
			assert.True(t, emailscout.IsEmail(e), e)
		}
		assert.True(t, emails.Contains("real.one@example.com"))
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		html := `<p>info@example.com</p><a href="mailto:x@example.com">x</a><script>'a'+'@example.net'</script>`
		e := goquery.NewEmailExtractor()

		assert.Equal(t, e.ExtractEmails(html), e.ExtractEmails(html))
	})
}
