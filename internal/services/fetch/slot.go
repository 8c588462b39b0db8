// Package fetch provides the generation-tagged request state machine shared
// by every panel that loads data from the analytics API.
package fetch

import "github.com/jalikoi/analytics-tui/internal/models"

// Status is the lifecycle state of a Slot.
type Status int

const (
	// Idle means no request has been issued yet.
	Idle Status = iota
	// Loading means a request is in flight.
	Loading
	// Ready means the last request succeeded.
	Ready
	// Failed means the last request failed.
	Failed
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Loading:
		return "loading"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Token identifies one issued request. Results carrying an older token than
// the slot's current one are stale and must be dropped.
type Token uint64

// Slot tracks one independently failable fetch site. Data from the last
// successful response is retained across reloads and failures until a newer
// response replaces it.
//
// Slot is not safe for concurrent use; it is owned by a single UI model.
type Slot[T any] struct {
	data    T
	err     error
	query   models.Query
	shownQ  models.Query
	token   Token
	status  Status
	hasData bool
	shown   bool
}

// Begin starts a new request for q and returns its token. Existing data is
// kept so the view can keep rendering it while the request is in flight.
func (s *Slot[T]) Begin(q models.Query) Token {
	s.token++
	s.query = q
	s.status = Loading
	s.err = nil
	s.shown = false
	return s.token
}

// Current reports whether tok belongs to the most recent request.
func (s *Slot[T]) Current(tok Token) bool {
	return tok == s.token && s.status == Loading
}

// Resolve commits data for tok. It returns false and leaves the slot
// untouched when tok is stale.
func (s *Slot[T]) Resolve(tok Token, data T) bool {
	if !s.Current(tok) {
		return false
	}
	s.data = data
	s.shownQ = s.query
	s.hasData = true
	s.status = Ready
	return true
}

// Fail records err for tok. It returns false when tok is stale. Previously
// loaded data survives the failure.
func (s *Slot[T]) Fail(tok Token, err error) bool {
	if !s.Current(tok) {
		return false
	}
	s.err = err
	s.status = Failed
	s.shown = true
	return true
}

// Dismiss hides the surfaced error. The failure status and any data remain.
func (s *Slot[T]) Dismiss() {
	s.shown = false
}

// ErrorVisible reports whether a failure should currently be shown.
func (s *Slot[T]) ErrorVisible() bool {
	return s.status == Failed && s.shown
}

// Blocking reports whether the slot is loading with nothing to show yet.
func (s *Slot[T]) Blocking() bool {
	return s.status == Loading && !s.hasData
}

// Refreshing reports whether a reload is in flight behind existing data.
func (s *Slot[T]) Refreshing() bool {
	return s.status == Loading && s.hasData
}

// Status returns the lifecycle state.
func (s *Slot[T]) Status() Status { return s.status }

// Data returns the last successfully loaded value and whether one exists.
func (s *Slot[T]) Data() (T, bool) { return s.data, s.hasData }

// Err returns the last failure, or nil.
func (s *Slot[T]) Err() error { return s.err }

// Query returns the query of the most recent request. Retrying re-issues it.
func (s *Slot[T]) Query() models.Query { return s.query }

// DataQuery returns the query the retained data was loaded for. During a
// reload it differs from Query.
func (s *Slot[T]) DataQuery() models.Query { return s.shownQ }

// Issued reports whether any request has been started.
func (s *Slot[T]) Issued() bool { return s.token > 0 }
