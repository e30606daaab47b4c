package generator

import (
	"os"

	"github.com/iafilius/WeightCalendarGrid/src/logging"
)

// LazyFile is an io.Writer that creates its file on the first write, so a render
// failing before it produces output leaves no file behind.
type LazyFile struct {
	Path string
	f    *os.File
}

func (l *LazyFile) Write(p []byte) (int, error) {
	if l.f == nil {
		f, err := os.Create(l.Path)
		if err != nil {
			return 0, err
		}
		logging.Debugf("opened output %s", l.Path)
		l.f = f
	}
	return l.f.Write(p)
}

// Created reports whether the file was opened.
func (l *LazyFile) Created() bool { return l.f != nil }

// Close closes the file if it was created.
func (l *LazyFile) Close() error {
	if l.f == nil {
		return nil
	}
	return l.f.Close()
}

// Abort closes and removes a partially written file.
func (l *LazyFile) Abort() {
	if l.f == nil {
		return
	}
	l.f.Close()
	if err := os.Remove(l.Path); err != nil {
		logging.Warnf("remove partial output %s: %v", l.Path, err)
	}
	l.f = nil
}
