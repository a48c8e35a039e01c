package crawl_test

import (
	"testing"
	"time"

	"github.com/fwojciec/emailscout/crawl"
	"github.com/stretchr/testify/assert"
)

func TestHostOf(t *testing.T) {
	t.Parallel()

	t.Run("returns lower-cased host without port", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "www.example.com", crawl.HostOf("https://WWW.Example.com:8443/contact"))
	})

	t.Run("returns empty string for unparsable URL", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, crawl.HostOf("http://[::1"))
	})
}

func TestTruncateURL(t *testing.T) {
	t.Parallel()

	t.Run("returns URL unchanged when shorter than max", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "https://x.com", crawl.TruncateURL("https://x.com", 50))
	})

	t.Run("truncates with ellipsis when longer than max", func(t *testing.T) {
		t.Parallel()
		url := "https://example.com/company/about/contact-us"
		result := crawl.TruncateURL(url, 20)
		assert.Equal(t, ".../about/contact-us", result)
		assert.Len(t, result, 20)
	})

	t.Run("returns empty string when maxLen is not positive", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, crawl.TruncateURL("https://example.com", 0))
		assert.Empty(t, crawl.TruncateURL("https://example.com", -1))
	})

	t.Run("returns prefix of URL when maxLen is very small", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "htt", crawl.TruncateURL("https://example.com", 3))
	})
}

func TestFormatElapsed(t *testing.T) {
	t.Parallel()

	t.Run("formats seconds", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "42s", crawl.FormatElapsed(42*time.Second+300*time.Millisecond))
	})

	t.Run("formats minutes with padded seconds", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "3m07s", crawl.FormatElapsed(3*time.Minute+7*time.Second))
	})

	t.Run("formats hours", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "1h02m09s", crawl.FormatElapsed(time.Hour+2*time.Minute+9*time.Second))
	})
}
