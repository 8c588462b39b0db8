// Package drilldown holds the customer roster of the segment currently open
// in the drill-down overlay.
package drilldown

import "github.com/jalikoi/analytics-tui/internal/models"

// State is the lifecycle of the open drill-down.
type State int

const (
	// Closed means no segment is open and nothing is cached.
	Closed State = iota
	// Opening means a roster request for the selected segment is in flight.
	Opening
	// Loaded means the selected segment's roster is cached.
	Loaded
	// Failed means the roster request for the selected segment failed.
	Failed
)

// Token identifies one roster request.
type Token uint64

// Cache holds at most one roster. Responses are committed only when both
// their segment and token match the current selection, so a late response
// for a segment the user has moved away from is dropped.
//
// Cache is not safe for concurrent use; it is owned by the segments view.
type Cache struct {
	roster   *models.SegmentRoster
	err      error
	selected string
	query    models.Query
	token    Token
	state    State
}

// Open selects segment and returns the token for its roster request. Any
// roster cached for a previous segment is discarded.
func (c *Cache) Open(segment string, q models.Query) Token {
	c.token++
	c.selected = segment
	c.query = q
	c.roster = nil
	c.err = nil
	c.state = Opening
	return c.token
}

func (c *Cache) current(segment string, tok Token) bool {
	return c.state == Opening && segment == c.selected && tok == c.token
}

// Apply commits a roster. It returns false when the response is stale.
func (c *Cache) Apply(segment string, tok Token, roster *models.SegmentRoster) bool {
	if !c.current(segment, tok) {
		return false
	}
	c.roster = roster
	c.state = Loaded
	return true
}

// Fail records a roster failure. It returns false when the response is
// stale.
func (c *Cache) Fail(segment string, tok Token, err error) bool {
	if !c.current(segment, tok) {
		return false
	}
	c.err = err
	c.state = Failed
	return true
}

// Close discards the selection and cached roster. Pending responses become
// stale.
func (c *Cache) Close() {
	c.token++
	c.selected = ""
	c.roster = nil
	c.err = nil
	c.state = Closed
}

// IsOpen reports whether a segment is selected.
func (c *Cache) IsOpen() bool { return c.state != Closed }

// Loading reports whether the selected segment's roster is in flight.
func (c *Cache) Loading() bool { return c.state == Opening }

// State returns the lifecycle state.
func (c *Cache) State() State { return c.state }

// Selected returns the open segment name, or "".
func (c *Cache) Selected() string { return c.selected }

// Roster returns the cached roster, or nil.
func (c *Cache) Roster() *models.SegmentRoster { return c.roster }

// Err returns the failure for the selected segment, or nil.
func (c *Cache) Err() error { return c.err }

// Query returns the window the selected roster was requested for.
func (c *Cache) Query() models.Query { return c.query }
