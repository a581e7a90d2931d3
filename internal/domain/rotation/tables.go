package rotation

import "github.com/raidsight/raidsight/internal/domain/types"

// Static fallback thresholds, used when no benchmark document covers the
// player's spec. Values are conservative floor expectations, not parses.
const (
	defaultCDEfficiency     = 80.0
	defaultLongCDEfficiency = 60.0
	defaultOverhealTarget   = 30.0
)

// specRoles maps types.SpecKey to raid role. Specs absent here fall back to
// RoleCaster.
var specRoles = map[string]types.Role{
	"Arcane Mage":          types.RoleCaster,
	"Fire Mage":            types.RoleCaster,
	"Frost Mage":           types.RoleCaster,
	"Shadow Priest":        types.RoleCaster,
	"Holy Priest":          types.RoleHealer,
	"Discipline Priest":    types.RoleHealer,
	"Affliction Warlock":   types.RoleCaster,
	"Destruction Warlock":  types.RoleCaster,
	"Balance Druid":        types.RoleCaster,
	"Restoration Druid":    types.RoleHealer,
	"Feral Druid":          types.RoleMelee,
	"Guardian Druid":       types.RoleTank,
	"Elemental Shaman":     types.RoleCaster,
	"Enhancement Shaman":   types.RoleMelee,
	"Restoration Shaman":   types.RoleHealer,
	"Holy Paladin":         types.RoleHealer,
	"Retribution Paladin":  types.RoleMelee,
	"Protection Paladin":   types.RoleTank,
	"Arms Warrior":         types.RoleMelee,
	"Fury Warrior":         types.RoleMelee,
	"Protection Warrior":   types.RoleTank,
	"Combat Rogue":         types.RoleMelee,
	"Assassination Rogue":  types.RoleMelee,
	"Subtlety Rogue":       types.RoleMelee,
	"Beast Mastery Hunter": types.RoleRanged,
	"Marksmanship Hunter":  types.RoleRanged,
	"Survival Hunter":      types.RoleRanged,
}

// RoleFor derives the raid role for a (class, spec) pair.
func RoleFor(class, spec string) types.Role {
	if role, ok := specRoles[types.SpecKey(class, spec)]; ok {
		return role
	}
	return types.RoleCaster
}

// specRules holds hand-tuned thresholds for specs we know well, keyed by
// types.SpecKey.
var specRules = map[string]Rules{
	"Shadow Priest": {
		GCDTarget:              85,
		CPMTarget:              35,
		CDEfficiencyTarget:     defaultCDEfficiency,
		LongCDEfficiencyTarget: defaultLongCDEfficiency,
		KeyAbilities:           []string{"Mind Blast", "Shadow Word: Pain", "Vampiric Touch"},
		Role:                   types.RoleCaster,
	},
	"Affliction Warlock": {
		GCDTarget:              85,
		CPMTarget:              32,
		CDEfficiencyTarget:     defaultCDEfficiency,
		LongCDEfficiencyTarget: defaultLongCDEfficiency,
		KeyAbilities:           []string{"Corruption", "Unstable Affliction", "Shadow Bolt"},
		Role:                   types.RoleCaster,
	},
	"Fire Mage": {
		GCDTarget:              88,
		CPMTarget:              36,
		CDEfficiencyTarget:     defaultCDEfficiency,
		LongCDEfficiencyTarget: defaultLongCDEfficiency,
		KeyAbilities:           []string{"Fireball", "Scorch"},
		Role:                   types.RoleCaster,
	},
	"Fury Warrior": {
		GCDTarget:              90,
		CPMTarget:              40,
		CDEfficiencyTarget:     defaultCDEfficiency,
		LongCDEfficiencyTarget: defaultLongCDEfficiency,
		KeyAbilities:           []string{"Bloodthirst", "Whirlwind", "Heroic Strike"},
		Role:                   types.RoleMelee,
	},
	"Holy Priest": {
		GCDTarget:              70,
		CPMTarget:              25,
		CDEfficiencyTarget:     defaultCDEfficiency,
		LongCDEfficiencyTarget: defaultLongCDEfficiency,
		KeyAbilities:           []string{"Prayer of Healing", "Circle of Healing", "Renew"},
		Role:                   types.RoleHealer,
		HealerOverhealTarget:   defaultOverhealTarget,
	},
}

// roleRules is the last-resort fallback when neither the benchmark nor the
// per-spec table knows the player's spec.
var roleRules = map[types.Role]Rules{
	types.RoleMelee: {
		GCDTarget:              88,
		CPMTarget:              38,
		CDEfficiencyTarget:     defaultCDEfficiency,
		LongCDEfficiencyTarget: defaultLongCDEfficiency,
		Role:                   types.RoleMelee,
	},
	types.RoleRanged: {
		GCDTarget:              85,
		CPMTarget:              34,
		CDEfficiencyTarget:     defaultCDEfficiency,
		LongCDEfficiencyTarget: defaultLongCDEfficiency,
		Role:                   types.RoleRanged,
	},
	types.RoleCaster: {
		GCDTarget:              84,
		CPMTarget:              32,
		CDEfficiencyTarget:     defaultCDEfficiency,
		LongCDEfficiencyTarget: defaultLongCDEfficiency,
		Role:                   types.RoleCaster,
	},
	types.RoleHealer: {
		GCDTarget:              65,
		CPMTarget:              22,
		CDEfficiencyTarget:     defaultCDEfficiency,
		LongCDEfficiencyTarget: defaultLongCDEfficiency,
		Role:                   types.RoleHealer,
		HealerOverhealTarget:   defaultOverhealTarget,
	},
	types.RoleTank: {
		Role: types.RoleTank,
	},
}

// encounterContexts carries per-encounter movement/downtime modifiers.
// Encounters absent here use DefaultEncounterContext.
var encounterContexts = map[int]EncounterContext{
	// High-movement encounters where full uptime is not achievable.
	709: {GCDModifier: 0.85},
	711: {GCDModifier: 0.90, MeleeModifier: f64(0.80)},
	714: {GCDModifier: 0.95},
}

// ContextFor returns the modifier for an encounter.
func ContextFor(encounterID int) EncounterContext {
	if c, ok := encounterContexts[encounterID]; ok {
		return c
	}
	return DefaultEncounterContext()
}

func f64(v float64) *float64 { return &v }
