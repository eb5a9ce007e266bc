package recipient

import "context"

// Source resolves the recipients of one run.
// Malformed individual entries are skipped by the implementation; an error means the
// source as a whole could not be read.
type Source interface {
	Resolve(ctx context.Context) ([]ID, error)
}

// Static always resolves to the same fixed list. Used for test mode.
type Static []ID

func (s Static) Resolve(_ context.Context) ([]ID, error) {
	out := make([]ID, len(s))
	copy(out, s)
	return out, nil
}
