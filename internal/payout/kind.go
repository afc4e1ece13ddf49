package payout

// Kind selects which page variant is rendered.
type Kind string

const (
	// KindWaiting renders the "pending payout" list.
	KindWaiting Kind = "waiting"
	// KindError renders the failed-payout variant.
	KindError Kind = "error"
)

// KindByKey resolves a screenshot kind by its callback key.
func KindByKey(key string) (Kind, bool) {
	switch Kind(key) {
	case KindWaiting:
		return KindWaiting, true
	case KindError:
		return KindError, true
	}
	return "", false
}

// IsError reports whether the kind selects the error page variant.
func (k Kind) IsError() bool {
	return k == KindError
}
