// Package catalog fetches paginated reference catalogs (items, weapons,
// armor) from an Open5e-compatible API.
package catalog

// CategoryRef is the nested category object on v2 item records.
type CategoryRef struct {
	Name string `json:"name"`
}

// ItemRecord is a raw v2 item catalog entry.
type ItemRecord struct {
	Name     string       `json:"name"`
	Cost     *string      `json:"cost"`
	Weight   *string      `json:"weight"`
	Desc     *string      `json:"desc"`
	Category *CategoryRef `json:"category"`
}

// WeaponRecord is a raw v1 weapon catalog entry.
type WeaponRecord struct {
	Name       string   `json:"name"`
	DamageDice *string  `json:"damage_dice"`
	DamageType *string  `json:"damage_type"`
	Properties []string `json:"properties"`
}

// ArmorRecord is a raw v2 armor catalog entry. Category is the armor weight
// class: light, medium or heavy.
type ArmorRecord struct {
	Name                string  `json:"name"`
	ACDisplay           *string `json:"ac_display"`
	StealthDisadvantage *bool   `json:"grants_stealth_disadvantage"`
	StrengthRequired    *int    `json:"strength_score_required"`
	Category            *string `json:"category"`
}

// page is the paginated envelope every catalog endpoint returns.
type page[T any] struct {
	Results []T     `json:"results"`
	Next    *string `json:"next"`
}
