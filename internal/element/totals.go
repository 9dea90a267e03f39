package element

// Totals holds per-element enhancement and resistance point sums for one
// combatant. Derived on demand from equipment, never persisted.
type Totals struct {
	Enhancement [count]int
	Resistance  [count]int
}

// Enhance returns the enhancement points for e (0 for None).
func (t Totals) Enhance(e Element) int {
	if !e.Valid() {
		return 0
	}
	return t.Enhancement[e]
}

// Resist returns the resistance points for e (0 for None).
func (t Totals) Resist(e Element) int {
	if !e.Valid() {
		return 0
	}
	return t.Resistance[e]
}

// Power is the combined affinity of a combatant towards e: enhancement plus
// resistance. Cloud fuel drawn from the target is measured in power; the
// attacker's trigger thresholds compare enhancement alone.
func (t Totals) Power(e Element) int {
	return t.Enhance(e) + t.Resist(e)
}

// WithEnhance returns a copy of t with enhancement for e set to points.
func (t Totals) WithEnhance(e Element, points int) Totals {
	if e.Valid() {
		t.Enhancement[e] = points
	}
	return t
}

// WithResist returns a copy of t with resistance for e set to points.
func (t Totals) WithResist(e Element, points int) Totals {
	if e.Valid() {
		t.Resistance[e] = points
	}
	return t
}

// Plus returns the element-wise sum of t and o.
func (t Totals) Plus(o Totals) Totals {
	for i := range t.Enhancement {
		t.Enhancement[i] += o.Enhancement[i]
		t.Resistance[i] += o.Resistance[i]
	}
	return t
}

// Capped returns a copy of t with every total clamped to [0, limit].
// A non-positive limit disables the cap.
func (t Totals) Capped(limit int) Totals {
	if limit <= 0 {
		return t
	}
	for i := range t.Enhancement {
		t.Enhancement[i] = clampPoints(t.Enhancement[i], limit)
		t.Resistance[i] = clampPoints(t.Resistance[i], limit)
	}
	return t
}

func clampPoints(v, limit int) int {
	if v < 0 {
		return 0
	}
	if v > limit {
		return limit
	}
	return v
}

// Enchant kinds carried by an equipped item.
type Kind uint8

const (
	KindAttack Kind = iota
	KindEnhance
	KindResist
)

// ItemEnchant is one elemental enchantment found on an equipped item.
type ItemEnchant struct {
	Kind    Kind
	Element Element
	Level   int
}

// Aggregate sums enhancement and resistance points across equipped items.
// Each enchant contributes level*perLevel with no single-item cap; an
// aggregate cap, if any, is the caller's business (see Totals.Capped).
func Aggregate(items [][]ItemEnchant, perLevel int) Totals {
	if perLevel < 1 {
		perLevel = 1
	}
	var t Totals
	for _, enchants := range items {
		for _, en := range enchants {
			if !en.Element.Valid() || en.Level <= 0 {
				continue
			}
			switch en.Kind {
			case KindEnhance:
				t.Enhancement[en.Element] += en.Level * perLevel
			case KindResist:
				t.Resistance[en.Element] += en.Level * perLevel
			}
		}
	}
	return t
}

// Dominant picks the dominant element of a combatant by priority
// attack > enhancement > resistance, scanning items in order.
// Returns None when no element is present anywhere.
func Dominant(items [][]ItemEnchant) Element {
	for _, kind := range [...]Kind{KindAttack, KindEnhance, KindResist} {
		for _, enchants := range items {
			for _, en := range enchants {
				if en.Kind == kind && en.Element.Valid() && en.Level > 0 {
					return en.Element
				}
			}
		}
	}
	return None
}

// AttackElement returns the first attack element found on the items.
func AttackElement(items [][]ItemEnchant) Element {
	for _, enchants := range items {
		for _, en := range enchants {
			if en.Kind == KindAttack && en.Element.Valid() && en.Level > 0 {
				return en.Element
			}
		}
	}
	return None
}
