package element

// Relation describes how an attacking element fares against a defender's
// dominant element.
type Relation uint8

const (
	Neutral Relation = iota
	Strong
	Weak
)

func (r Relation) String() string {
	switch r {
	case Strong:
		return "strong"
	case Weak:
		return "weak"
	default:
		return "neutral"
	}
}

// Pair is an ordered (attacker, defender) element pair.
type Pair struct {
	Attacker Element
	Defender Element
}

// RestraintTable maps ordered element pairs to a Relation together with the
// multipliers applied for Strong and Weak. Immutable once built.
type RestraintTable struct {
	relations        map[Pair]Relation
	strongMultiplier float64
	weakMultiplier   float64
}

// NewRestraintTable builds a table from the strong pairs. Every strong pair
// (a, d) implies the weak pair (d, a) unless that pair is itself listed as
// strong.
func NewRestraintTable(strong []Pair, strongMult, weakMult float64) RestraintTable {
	if strongMult < 1 {
		strongMult = 1
	}
	if weakMult <= 0 || weakMult > 1 {
		weakMult = 1
	}
	rel := make(map[Pair]Relation, len(strong)*2)
	for _, p := range strong {
		if !p.Attacker.Valid() || !p.Defender.Valid() || p.Attacker == p.Defender {
			continue
		}
		rel[p] = Strong
	}
	for _, p := range strong {
		rev := Pair{Attacker: p.Defender, Defender: p.Attacker}
		if _, ok := rel[rev]; !ok && rev.Attacker.Valid() && rev.Defender.Valid() && rev.Attacker != rev.Defender {
			rel[rev] = Weak
		}
	}
	return RestraintTable{
		relations:        rel,
		strongMultiplier: strongMult,
		weakMultiplier:   weakMult,
	}
}

// DefaultStrongPairs is the built-in restraint cycle:
// fire > nature > thunder > frost > fire.
func DefaultStrongPairs() []Pair {
	return []Pair{
		{Attacker: Fire, Defender: Nature},
		{Attacker: Nature, Defender: Thunder},
		{Attacker: Thunder, Defender: Frost},
		{Attacker: Frost, Defender: Fire},
	}
}

// Relation looks up the relation for an attacker/defender pair.
func (t RestraintTable) Relation(attacker, defender Element) Relation {
	if t.relations == nil {
		return Neutral
	}
	return t.relations[Pair{Attacker: attacker, Defender: defender}]
}

// Multiplier returns the damage multiplier for an attacker/defender pair.
func (t RestraintTable) Multiplier(attacker, defender Element) float64 {
	switch t.Relation(attacker, defender) {
	case Strong:
		return t.strongMultiplier
	case Weak:
		return t.weakMultiplier
	default:
		return 1.0
	}
}

// StrongMultiplier returns the configured multiplier for Strong pairs.
func (t RestraintTable) StrongMultiplier() float64 { return t.strongMultiplier }

// WeakMultiplier returns the configured multiplier for Weak pairs.
func (t RestraintTable) WeakMultiplier() float64 { return t.weakMultiplier }
