package domain

// ProgressSample is one observation of a transfer in flight. Total may
// be zero when the server did not advertise a content length; consumers
// must not compute a ratio in that case.
type ProgressSample struct {
	Downloaded int64
	Total      int64
}

// Fraction returns the completed fraction of the transfer, or 0 when
// the total is unknown.
func (s ProgressSample) Fraction() float64 {
	if s.Total <= 0 {
		return 0
	}
	return float64(s.Downloaded) / float64(s.Total)
}

// ProgressFunc receives progress samples during a transfer. A nil
// ProgressFunc is always a safe no-op for the emitting side.
type ProgressFunc func(ProgressSample)

// Report invokes the callback if one is set.
func (f ProgressFunc) Report(s ProgressSample) {
	if f != nil {
		f(s)
	}
}
