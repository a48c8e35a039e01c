package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fwojciec/emailscout"
	"github.com/fwojciec/emailscout/crawl"
	"github.com/mattn/go-isatty"
)

// progress shows a spinner with the last finished site. It is inert
// unless enabled and w is a terminal.
type progress struct {
	spinner *spinner.Spinner
}

func newProgress(w io.Writer, enabled bool) *progress {
	if !enabled || !isTerminal(w) {
		return &progress{}
	}
	s := spinner.New(spinner.CharSets[9], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " starting"
	return &progress{spinner: s}
}

func (p *progress) Start() {
	if p.spinner != nil {
		p.spinner.Start()
	}
}

func (p *progress) Stop() {
	if p.spinner != nil {
		p.spinner.Stop()
	}
}

// Update is an emailscout.CrawlProgressFunc.
func (p *progress) Update(e emailscout.CrawlProgress) {
	if p.spinner == nil {
		return
	}
	p.spinner.Lock()
	p.spinner.Suffix = fmt.Sprintf(" [%d/%d] %s %s", e.Completed, e.Total, crawl.TruncateURL(e.Site, 40), e.Result.Status)
	p.spinner.Unlock()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
