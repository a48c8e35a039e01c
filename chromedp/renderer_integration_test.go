//go:build integration

package chromedp_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/emailscout"
	"github.com/fwojciec/emailscout/chromedp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_Render_ReturnsScriptGeneratedContent(t *testing.T) {
	t.Parallel()

	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			gotUA = r.UserAgent()
		}
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(`<html><body>
<div id="contact">Loading...</div>
<p id="wd"></p>
<script>
document.getElementById('contact').textContent = 'sales' + '@' + 'example.com';
document.getElementById('wd').textContent = 'webdriver=' + navigator.webdriver;
</script>
</body></html>`))
	}))
	defer srv.Close()

	renderer := chromedp.NewRenderer(chromedp.WithSettleDelay(100 * time.Millisecond))
	session, err := renderer.Open(context.Background(), "Mozilla/5.0 (emailscout test)")
	require.NoError(t, err)
	defer session.Close()

	html, err := session.Render(context.Background(), srv.URL)

	require.NoError(t, err)
	assert.Contains(t, html, "sales@example.com")
	assert.Contains(t, html, "webdriver=undefined")
	assert.Equal(t, "Mozilla/5.0 (emailscout test)", gotUA)
}

func TestSession_Render_AfterClose_ReturnsError(t *testing.T) {
	t.Parallel()

	renderer := chromedp.NewRenderer()
	session, err := renderer.Open(context.Background(), "")
	require.NoError(t, err)

	require.NoError(t, session.Close())
	require.NoError(t, session.Close())

	_, err = session.Render(context.Background(), "http://example.com")

	require.Error(t, err)
	assert.Equal(t, emailscout.EINVALID, emailscout.ErrorCode(err))
}
