package assessment

// Responses maps a question key to the raw answer: a category code, a list
// of codes, free text, or a number. Lookups report absence explicitly so a
// missing answer is never confused with an empty one.
type Responses map[string]any

// Choice returns the answer for key when it is a single string.
func (r Responses) Choice(key string) (string, bool) {
	v, ok := r[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Choices returns the answer for key as a list of codes. A lone string is a
// one-element list and non-string elements are skipped. The bool is false
// when the key is absent or the value is not list-shaped.
func (r Responses) Choices(key string) ([]string, bool) {
	v, ok := r[key]
	if !ok {
		return nil, false
	}
	switch vv := v.(type) {
	case []string:
		return append([]string(nil), vv...), true
	case []any:
		out := make([]string, 0, len(vv))
		for _, item := range vv {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out, true
	case string:
		// A lone string is one entry, matched exactly like list entries.
		// "wash-hands-daily" does not list "wash-hands".
		return []string{vv}, true
	}
	return nil, false
}

// Clone returns a shallow copy with list values copied, so the caller can
// persist it without sharing slices with the submitter.
func (r Responses) Clone() Responses {
	out := make(Responses, len(r))
	for k, v := range r {
		switch vv := v.(type) {
		case []string:
			out[k] = append([]string(nil), vv...)
		case []any:
			out[k] = append([]any(nil), vv...)
		default:
			out[k] = v
		}
	}
	return out
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
