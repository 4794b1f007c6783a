package tui

import "sort"

// State tracks collected values and server-provided errors keyed by field
// name.
type State struct {
	values map[string]string
	errors map[string][]string
}

// NewState seeds the state with prefilled values and errors. Both maps are
// copied.
func NewState(prefill map[string]string, errs map[string][]string) *State {
	state := &State{
		values: make(map[string]string, len(prefill)),
		errors: make(map[string][]string, len(errs)),
	}
	for key, value := range prefill {
		state.values[key] = value
	}
	for key, messages := range errs {
		state.errors[key] = append([]string(nil), messages...)
	}
	return state
}

// Value returns the value collected for name.
func (s *State) Value(name string) (string, bool) {
	if s == nil {
		return "", false
	}
	value, ok := s.values[name]
	return value, ok
}

// SetValue records value for name and clears the field's server errors.
func (s *State) SetValue(name, value string) {
	if s == nil {
		return
	}
	s.values[name] = value
	delete(s.errors, name)
}

// Values returns a copy of the collected values.
func (s *State) Values() map[string]string {
	if s == nil {
		return nil
	}
	out := make(map[string]string, len(s.values))
	for key, value := range s.values {
		out[key] = value
	}
	return out
}

// ErrorsFor returns the errors attached to a field.
func (s *State) ErrorsFor(name string) []string {
	if s == nil {
		return nil
	}
	return s.errors[name]
}

// Names lists the fields holding a value, sorted.
func (s *State) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.values))
	for name := range s.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
