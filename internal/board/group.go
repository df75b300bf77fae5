package board

// MinGroupSize is the smallest membership a group may have.
const MinGroupSize = 2

// GroupPins puts the listed pins into a new group. Requests naming fewer than
// two pins, or matching fewer than two existing pins, are ignored. Unknown ids
// are skipped. A previous group left with a single member is dissolved.
func (e *Engine) GroupPins(ids []string) State {
	if len(ids) < MinGroupSize {
		return e.State()
	}
	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if e.indexOf(id) >= 0 {
			wanted[id] = struct{}{}
		}
	}
	if len(wanted) < MinGroupSize {
		return e.State()
	}

	groupID := e.newID()
	out := make([]Pin, len(e.pins))
	for i, p := range e.pins {
		p = p.clone()
		if _, ok := wanted[p.ID]; ok {
			p.GroupID = groupID
		}
		out[i] = p
	}
	return e.setPins(dissolveSingletons(out))
}

// UngroupPins clears groupID from every pin carrying it.
func (e *Engine) UngroupPins(groupID string) State {
	if groupID == "" || len(e.MembersOf(groupID)) == 0 {
		return e.State()
	}
	out := make([]Pin, len(e.pins))
	for i, p := range e.pins {
		p = p.clone()
		if p.GroupID == groupID {
			p.GroupID = ""
		}
		out[i] = p
	}
	return e.setPins(out)
}

// MembersOf returns the ids of pins in the group, in board order.
func (e *Engine) MembersOf(groupID string) []string {
	return membersOf(e.pins, groupID)
}

// Groups returns every group id currently in use, in order of first member.
func (e *Engine) Groups() []string {
	var out []string
	seen := make(map[string]struct{})
	for _, p := range e.pins {
		if !p.Grouped() {
			continue
		}
		if _, ok := seen[p.GroupID]; ok {
			continue
		}
		seen[p.GroupID] = struct{}{}
		out = append(out, p.GroupID)
	}
	return out
}

func membersOf(pins []Pin, groupID string) []string {
	if groupID == "" {
		return nil
	}
	var out []string
	for _, p := range pins {
		if p.GroupID == groupID {
			out = append(out, p.ID)
		}
	}
	return out
}

// dissolveSingletons clears the group of any pin that is its group's only
// member. pins must already be a private copy.
func dissolveSingletons(pins []Pin) []Pin {
	counts := make(map[string]int)
	for _, p := range pins {
		if p.Grouped() {
			counts[p.GroupID]++
		}
	}
	for i := range pins {
		if pins[i].Grouped() && counts[pins[i].GroupID] < MinGroupSize {
			pins[i].GroupID = ""
		}
	}
	return pins
}
