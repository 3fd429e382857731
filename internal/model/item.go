package model

// Item is an inventory item owned by the local store. The id is stable for
// the life of the item and is never regenerated; enrichment only touches
// Stats (and, for one legacy record, Name/Image).
type Item struct {
	ID                 string     `json:"id"`
	Name               string     `json:"name"`
	Category           string     `json:"category"`
	Image              string     `json:"image"`
	MagicCategory      *string    `json:"magic_category,omitempty"`
	Rarity             *string    `json:"rarity,omitempty"`
	RequiresAttunement *bool      `json:"requires_attunement,omitempty"`
	Stats              *ItemStats `json:"stats"`
}

// ItemStats holds the game statistics attached to an item by the enrichment
// pipeline. A nil *ItemStats means no catalog produced a match; a present
// ItemStats always carries a non-nil Properties slice.
type ItemStats struct {
	Cost                *string  `json:"cost"`
	Weight              *string  `json:"weight"`
	DamageDice          *string  `json:"damage_dice"`
	DamageType          *string  `json:"damage_type"`
	Properties          []string `json:"properties"`
	CategoryDetail      *string  `json:"category_detail"`
	Description         *string  `json:"description"`
	ACDisplay           *string  `json:"ac_display"`
	StealthDisadvantage *bool    `json:"stealth_disadvantage"`
	StrengthRequired    *int     `json:"strength_required"`
}

// ItemPatch is a partial update applied to an item through the CRUD API.
// Nil fields are left untouched.
type ItemPatch struct {
	Name               *string    `json:"name,omitempty"`
	Category           *string    `json:"category,omitempty"`
	Image              *string    `json:"image,omitempty"`
	MagicCategory      *string    `json:"magic_category,omitempty"`
	Rarity             *string    `json:"rarity,omitempty"`
	RequiresAttunement *bool      `json:"requires_attunement,omitempty"`
	Stats              *ItemStats `json:"stats,omitempty"`
}

// Apply copies the patch's non-nil fields onto the item.
func (p ItemPatch) Apply(item *Item) {
	if p.Name != nil {
		item.Name = *p.Name
	}
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.Image != nil {
		item.Image = *p.Image
	}
	if p.MagicCategory != nil {
		item.MagicCategory = p.MagicCategory
	}
	if p.Rarity != nil {
		item.Rarity = p.Rarity
	}
	if p.RequiresAttunement != nil {
		item.RequiresAttunement = p.RequiresAttunement
	}
	if p.Stats != nil {
		item.Stats = p.Stats
	}
}
