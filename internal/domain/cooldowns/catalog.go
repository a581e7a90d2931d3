package cooldowns

// Cooldown lengths in milliseconds.
const (
	threeMinutes = 180_000
	twoMinutes   = 120_000
	tenMinutes   = 600_000
)

// DefaultCatalog is the built-in per-class cooldown table. Deployments with
// different tracked abilities override it through configuration.
func DefaultCatalog() Catalog {
	return Catalog{
		"Mage": {
			{SpellID: 12042, Name: "Arcane Power", CooldownMS: threeMinutes},
			{SpellID: 12472, Name: "Icy Veins", CooldownMS: threeMinutes},
			{SpellID: 11129, Name: "Combustion", CooldownMS: threeMinutes},
		},
		"Priest": {
			{SpellID: 10060, Name: "Power Infusion", CooldownMS: threeMinutes},
			{SpellID: 34433, Name: "Shadowfiend", CooldownMS: threeMinutes},
			{SpellID: 14751, Name: "Inner Focus", CooldownMS: threeMinutes},
		},
		"Warlock": {
			{SpellID: 18540, Name: "Ritual of Doom", CooldownMS: tenMinutes},
			{SpellID: 18288, Name: "Amplify Curse", CooldownMS: threeMinutes},
		},
		"Warrior": {
			{SpellID: 1719, Name: "Recklessness", CooldownMS: tenMinutes},
			{SpellID: 12292, Name: "Death Wish", CooldownMS: threeMinutes},
			{SpellID: 2687, Name: "Bloodrage", CooldownMS: 60_000},
		},
		"Rogue": {
			{SpellID: 13750, Name: "Adrenaline Rush", CooldownMS: threeMinutes},
			{SpellID: 13877, Name: "Blade Flurry", CooldownMS: twoMinutes},
		},
		"Hunter": {
			{SpellID: 3045, Name: "Rapid Fire", CooldownMS: threeMinutes},
			{SpellID: 19574, Name: "Bestial Wrath", CooldownMS: twoMinutes},
		},
		"Druid": {
			{SpellID: 29166, Name: "Innervate", CooldownMS: threeMinutes},
			{SpellID: 17116, Name: "Nature's Swiftness", CooldownMS: threeMinutes},
		},
		"Shaman": {
			{SpellID: 16166, Name: "Elemental Mastery", CooldownMS: threeMinutes},
			{SpellID: 16188, Name: "Nature's Swiftness", CooldownMS: threeMinutes},
		},
		"Paladin": {
			{SpellID: 31884, Name: "Avenging Wrath", CooldownMS: threeMinutes},
			{SpellID: 642, Name: "Divine Shield", CooldownMS: 300_000},
		},
	}
}
