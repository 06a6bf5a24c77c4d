package inventory

// Template is a reference sample of a tray part with a known state.
type Template struct {
	Tray  string
	Part  string
	ID    string
	State State
}

func (t Template) Key() Key {
	return Key{Tray: t.Tray, Part: t.Part}
}

func (t Template) String() string {
	return t.Tray + "/" + t.Part + "/" + t.ID
}

// Key identifies a part within a tray.
type Key struct {
	Tray string
	Part string
}

// Pair couples a present and a missing template of the same part for duplex
// evaluation.
type Pair struct {
	Tray    string
	Part    string
	Present Template
	Missing Template
}

// ID is the directory name of the pair's duplex evaluation.
func (p Pair) ID() string {
	return p.Present.ID + "-" + p.Missing.ID
}

// Dedupe keeps the first template per (tray, part) that has ground truth.
// Uncertain templates never claim a key.
func Dedupe(templates []Template) []Template {
	seen := make(map[Key]bool)
	var out []Template
	for _, t := range templates {
		if seen[t.Key()] || t.State == Uncertain {
			continue
		}
		seen[t.Key()] = true
		out = append(out, t)
	}
	return out
}

// BuildPairs pairs the first present and first missing template of each
// (tray, part), in order of first appearance. Keys lacking either side are
// left out.
func BuildPairs(templates []Template) []Pair {
	var order []Key
	present := make(map[Key]Template)
	missing := make(map[Key]Template)
	for _, t := range templates {
		k := t.Key()
		_, hasP := present[k]
		_, hasM := missing[k]
		if !hasP && !hasM && t.State.Evaluable() {
			order = append(order, k)
		}
		switch t.State {
		case Present:
			if !hasP {
				present[k] = t
			}
		case Missing:
			if !hasM {
				missing[k] = t
			}
		}
	}
	var pairs []Pair
	for _, k := range order {
		p, okP := present[k]
		m, okM := missing[k]
		if okP && okM {
			pairs = append(pairs, Pair{Tray: k.Tray, Part: k.Part, Present: p, Missing: m})
		}
	}
	return pairs
}

func FilterTray(templates []Template, tray string) []Template {
	var out []Template
	for _, t := range templates {
		if t.Tray == tray {
			out = append(out, t)
		}
	}
	return out
}

func FilterPairs(pairs []Pair, tray string) []Pair {
	var out []Pair
	for _, p := range pairs {
		if p.Tray == tray {
			out = append(out, p)
		}
	}
	return out
}
