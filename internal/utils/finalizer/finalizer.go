package finalizer

import (
	"io"
)

type (
	// Finalizer runs a cleanup function exactly once.
	// Typical usage:
	//
	//	finalizer := finalizer.WithCloser(response.Body)
	//	defer finalizer.Finalize()
	//	...
	//	return finalizer.Close()
	//
	// Close reports the cleanup error on the happy path,
	// while Finalize swallows it on early returns.
	Finalizer interface {
		Finalize()
		Close() error
	}

	finalizerImpl struct {
		fn     func() error
		closed bool
	}
)

func WithCloser(closer io.Closer) Finalizer {
	return &finalizerImpl{fn: closer.Close}
}

func (f *finalizerImpl) Finalize() {
	_ = f.Close()
}

func (f *finalizerImpl) Close() error {
	if f.closed {
		return nil
	}

	f.closed = true
	return f.fn()
}
