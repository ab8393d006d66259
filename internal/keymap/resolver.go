package keymap

// Resolver maps key strings to actions. The scrub context takes precedence
// while a drag is in progress.
type Resolver struct {
	bindings map[string]Action // key -> action, scrub context excluded
	scrub    map[string]Action
	byAction map[Action][]string // action -> keys (for help)
}

// NewResolver creates a resolver from bindings.
func NewResolver(bindings []Binding) *Resolver {
	r := &Resolver{
		bindings: make(map[string]Action),
		scrub:    make(map[string]Action),
		byAction: make(map[Action][]string),
	}
	for _, b := range bindings {
		target := r.bindings
		if b.Context == "scrub" {
			target = r.scrub
		}
		for _, key := range b.Keys {
			target[key] = b.Action
		}
		r.byAction[b.Action] = append(r.byAction[b.Action], b.Keys...)
	}
	for action, keys := range r.byAction {
		r.byAction[action] = dedupe(keys)
	}
	return r
}

// Resolve returns the action for a key, or empty string if not bound.
func (r *Resolver) Resolve(key string) Action {
	return r.bindings[key]
}

// ResolveScrubbing resolves a key while a scrub drag is active.
func (r *Resolver) ResolveScrubbing(key string) Action {
	if a, ok := r.scrub[key]; ok {
		return a
	}
	return r.bindings[key]
}

// KeysFor returns the keys bound to an action.
func (r *Resolver) KeysFor(action Action) []string {
	return r.byAction[action]
}

func dedupe(s []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(s))
	for _, v := range s {
		if !seen[v] {
			seen[v] = true
			result = append(result, v)
		}
	}
	return result
}
