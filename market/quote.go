package market

// Source tags where a data point came from. Fallback values are documented
// substitutes, never errors; the tag flows through to reporting so callers
// can surface degraded data to the user.
type Source string

const (
	SourceLive     Source = "live"
	SourceFallback Source = "fallback"
)

// Quote is a single value with its provenance.
type Quote struct {
	Value  float64
	Source Source
	Reason string // set only on fallback
}

// Live wraps a value fetched from a live source.
func Live(v float64) Quote {
	return Quote{Value: v, Source: SourceLive}
}

// Fallback wraps a documented substitute value with the reason the live
// source was not used.
func Fallback(v float64, reason string) Quote {
	return Quote{Value: v, Source: SourceFallback, Reason: reason}
}

// String renders the tag for reports, e.g. "live" or "fallback (timeout)".
func (q Quote) String() string {
	if q.Source == SourceFallback && q.Reason != "" {
		return string(q.Source) + " (" + q.Reason + ")"
	}
	return string(q.Source)
}
