// Package console shows compression progress on the terminal.
package console

import (
	"io"
	"os"

	"github.com/cheggaaa/pb"
	"github.com/fumin/ppm/utils"
)

// Progress is an io.Writer that advances a progress bar by the number of bytes written to it.
// Nothing is displayed unless stderr is a terminal.
type Progress struct {
	out     io.Writer
	enabled bool
	bar     *pb.ProgressBar
}

// NewProgress creates new progress instance, showing it only if enabled and on a terminal.
func NewProgress(enabled bool) *Progress {
	return &Progress{
		out:     os.Stderr,
		enabled: enabled && utils.RunningOnTerminal(),
	}
}

// Enabled reports whether a bar will be shown.
func (p *Progress) Enabled() bool {
	return p.enabled
}

// InitBar starts progressbar for count bytes or count items
func (p *Progress) InitBar(count int64, isBytes bool) {
	if p.bar != nil {
		panic("bar already initialized")
	}
	if !p.enabled {
		return
	}

	p.bar = pb.New(0)
	p.bar.Total = count
	p.bar.Output = p.out
	if isBytes {
		p.bar.SetUnits(pb.U_BYTES)
		p.bar.ShowSpeed = true
	}
	p.bar.Start()
}

// ShutdownBar stops progress bar and hides it
func (p *Progress) ShutdownBar() {
	if p.bar == nil {
		return
	}
	p.bar.Finish()
	p.bar = nil
}

// Write is implementation of io.Writer to support updating of progress bar
func (p *Progress) Write(s []byte) (int, error) {
	p.AddBar(len(s))
	return len(s), nil
}

// AddBar increments progress for progress bar
func (p *Progress) AddBar(count int) {
	if p.bar != nil {
		p.bar.Add(count)
	}
}

// Current returns the position of the bar, or 0 when no bar is shown.
func (p *Progress) Current() int64 {
	if p.bar == nil {
		return 0
	}
	return p.bar.Get()
}
