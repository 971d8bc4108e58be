package state

import "sync/atomic"

// Stats counts what the cache did since acquisition.
type Stats struct {
	BindsIssued   uint64
	BindsElided   uint64
	TogglesIssued uint64
	TogglesElided uint64
	Uploads       uint64
	Scrubs        uint64
	Creates       uint64
	Deletes       uint64
}

// counters are atomic so a metrics scraper may read them from another
// goroutine, they are only ever written from the owning thread.
type counters struct {
	bindsIssued   atomic.Uint64
	bindsElided   atomic.Uint64
	togglesIssued atomic.Uint64
	togglesElided atomic.Uint64
	uploads       atomic.Uint64
	scrubs        atomic.Uint64
	creates       atomic.Uint64
	deletes       atomic.Uint64
}

func (c *counters) snapshot() Stats {
	return Stats{
		BindsIssued:   c.bindsIssued.Load(),
		BindsElided:   c.bindsElided.Load(),
		TogglesIssued: c.togglesIssued.Load(),
		TogglesElided: c.togglesElided.Load(),
		Uploads:       c.uploads.Load(),
		Scrubs:        c.scrubs.Load(),
		Creates:       c.creates.Load(),
		Deletes:       c.deletes.Load(),
	}
}
