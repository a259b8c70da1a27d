package router

import "maps"

// State returns a copy of the screen's state.
func (r *Router) State(id ScreenID) (*ScreenState, bool) {
	st, ok := r.states[id]
	return st.clone(), ok
}

// CurrentState returns a copy of the active screen's state.
func (r *Router) CurrentState() *ScreenState {
	return r.states[r.current].clone()
}

// UpdateData stores data on a visited screen's state and marks it dirty.
// With merge the keys are added to the existing data; otherwise it is replaced.
func (r *Router) UpdateData(id ScreenID, data map[string]any, merge bool) bool {
	st, ok := r.states[id]
	if !ok {
		return false
	}
	if merge && st.Data != nil {
		maps.Copy(st.Data, data)
	} else {
		st.Data = maps.Clone(data)
	}
	st.Dirty = true
	return true
}

// MarkDirty flags a screen for redraw.
func (r *Router) MarkDirty(id ScreenID) {
	if st, ok := r.states[id]; ok {
		st.Dirty = true
	}
}

// IsDirty reports whether a screen needs a redraw.
func (r *Router) IsDirty(id ScreenID) bool {
	st, ok := r.states[id]
	return ok && st.Dirty
}

// ResetState forgets the state of the given screens, or of every screen
// other than the current one when called without arguments.
func (r *Router) ResetState(ids ...ScreenID) {
	if len(ids) == 0 {
		for id := range r.states {
			if id != r.current {
				delete(r.states, id)
			}
		}
		return
	}
	for _, id := range ids {
		if id != r.current {
			delete(r.states, id)
		}
	}
}

// DebugInfo is a snapshot of the router's internals.
type DebugInfo struct {
	Current       ScreenID      `json:"current"`
	Stack         []ScreenID    `json:"stack"`
	History       []Transition  `json:"history"`
	States        []ScreenID    `json:"states"`
	CacheEntries  int           `json:"cache_entries"`
	Pending       *Confirmation `json:"pending,omitempty"`
	Transitioning bool          `json:"transitioning"`
}

// DebugInfo returns the router's internals for diagnostics.
func (r *Router) DebugInfo() DebugInfo {
	info := DebugInfo{
		Current:       r.current,
		Stack:         r.Stack(),
		History:       r.History(),
		CacheEntries:  len(r.cache),
		Transitioning: r.transitioning,
	}
	for _, id := range AllScreens {
		if _, ok := r.states[id]; ok {
			info.States = append(info.States, id)
		}
	}
	if r.pending != nil {
		p := *r.pending
		info.Pending = &p
	}
	return info
}
