package store

import "time"

type options struct {
	events *Notifier
	now    func() time.Time
}

type Option func(*options)

// WithNotifier shares one change bus between stores.
func WithNotifier(n *Notifier) Option {
	return func(o *options) { o.events = n }
}

// WithClock replaces time.Now for timestamps.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{now: func() time.Time { return time.Now().UTC() }}
	for _, opt := range opts {
		opt(&o)
	}
	if o.events == nil {
		o.events = NewNotifier()
	}
	return o
}
