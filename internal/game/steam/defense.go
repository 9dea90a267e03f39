package steam

import (
	"github.com/udisondev/elemental/internal/game/damage"
	"github.com/udisondev/elemental/internal/model"
)

// maxHostReduction bounds the reconstruction of raw damage so it never
// divides by zero.
const maxHostReduction = 0.95

// DefenseParams tune how scald damage is reduced.
type DefenseParams struct {
	// Host linear protection formula: EPFPerLevel per point, EPFCap points max.
	EPFPerLevel float64
	EPFCap      int

	FireProtPerLevel    float64
	FireProtMax         float64
	GeneralProtPerLevel float64
	GeneralProtMax      float64

	// FloorRatio of raw damage always reaches cold or nature victims.
	FloorRatio float64

	// ImmunityThreshold fire-resistance points cancel scald. <= 0 disables.
	ImmunityThreshold int
}

// DefenseView is the victim as seen by the scald defense.
type DefenseView struct {
	FireImmune       bool
	FireResistActive bool
	Blacklisted      bool
	FireResistPoints int
	ColdOrNature     bool
	Protection       model.Protection
}

// Defense carries the intermediate values of a scald defense calculation.
type Defense struct {
	Raw       float64
	Reduction float64
	Final     float64
	Immune    bool
	Floored   bool
}

// Defend reduces incoming scald damage, which the host has already run
// through its own enchantment protection.
//
// The host reduction is undone first (raw = incoming / (1 - epf*perLevel)),
// then fire and general protection ratios are summed and capped at 100%.
// Cold or nature victims always take at least raw*floorRatio.
func Defend(incoming float64, v DefenseView, p DefenseParams) Defense {
	if Immune(v, p) {
		return Defense{Immune: true}
	}
	if incoming <= 0 {
		return Defense{}
	}

	epf := min(max(v.Protection.EPF, 0), max(p.EPFCap, 0))
	hostRatio := min(max(float64(epf)*p.EPFPerLevel, 0), maxHostReduction)

	d := Defense{Raw: incoming / (1 - hostRatio)}

	fireRatio := damage.ProtectionRatio(v.Protection.Fire, p.FireProtPerLevel, p.FireProtMax)
	generalRatio := damage.ProtectionRatio(v.Protection.General, p.GeneralProtPerLevel, p.GeneralProtMax)
	d.Reduction = min(fireRatio+generalRatio, 1)
	d.Final = d.Raw * (1 - d.Reduction)

	if v.ColdOrNature && p.FloorRatio > 0 {
		floor := d.Raw * p.FloorRatio
		if d.Final < floor {
			d.Final = floor
			d.Floored = true
		}
	}
	return d
}

// Immune reports whether the victim takes no scald at all.
func Immune(v DefenseView, p DefenseParams) bool {
	return v.FireImmune ||
		v.FireResistActive ||
		v.Blacklisted ||
		(p.ImmunityThreshold > 0 && v.FireResistPoints >= p.ImmunityThreshold)
}
