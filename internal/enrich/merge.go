package enrich

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tavernworks/shopkeep/internal/catalog"
	"github.com/tavernworks/shopkeep/internal/model"
)

var armorTitle = cases.Title(language.English)

// Enrich matches an item name against all three catalog maps independently
// and merges the hits into one stats object. When every catalog misses it
// returns nil, which is distinct from a stats object with all-null fields.
func Enrich(
	aliases Aliases,
	name string,
	items *Map[catalog.ItemRecord],
	weapons *Map[catalog.WeaponRecord],
	armors *Map[catalog.ArmorRecord],
) *model.ItemStats {
	var base *catalog.ItemRecord
	if rec, ok := items.Find(aliases, name); ok {
		base = &rec
	}
	var weapon *catalog.WeaponRecord
	if rec, ok := weapons.Find(aliases, name); ok {
		weapon = &rec
	}
	var armor *catalog.ArmorRecord
	if rec, ok := armors.Find(aliases, name); ok {
		armor = &rec
	}

	return merge(base, weapon, armor)
}

// merge applies the field precedence rules: cost, weight, description and
// the base category detail come from the item catalog; damage fields from
// the weapon catalog; AC fields from the armor catalog. An armor match
// overrides the category detail outright with "<Type> Armor" — the armor
// weight class is the more specific classification when both sources hit.
func merge(base *catalog.ItemRecord, weapon *catalog.WeaponRecord, armor *catalog.ArmorRecord) *model.ItemStats {
	if base == nil && weapon == nil && armor == nil {
		return nil
	}

	stats := &model.ItemStats{Properties: []string{}}

	if base != nil {
		stats.Cost = formatCost(base.Cost)
		stats.Weight = formatWeight(base.Weight)
		stats.Description = base.Desc
		if base.Category != nil {
			detail := base.Category.Name
			stats.CategoryDetail = &detail
		}
	}

	if weapon != nil {
		stats.DamageDice = weapon.DamageDice
		stats.DamageType = weapon.DamageType
		if weapon.Properties != nil {
			stats.Properties = weapon.Properties
		}
	}

	if armor != nil {
		stats.ACDisplay = armor.ACDisplay
		stats.StealthDisadvantage = armor.StealthDisadvantage
		stats.StrengthRequired = armor.StrengthRequired
		if armor.Category != nil && *armor.Category != "" {
			detail := armorTitle.String(*armor.Category) + " Armor"
			stats.CategoryDetail = &detail
		}
	}

	return stats
}

// formatCost renders "<value> gp" when the source cost parses as a finite
// number, otherwise nil.
func formatCost(cost *string) *string {
	if cost == nil {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(*cost), 64)
	if err != nil {
		return nil
	}
	s := strconv.FormatFloat(f, 'f', -1, 64) + " gp"
	return &s
}

// formatWeight renders "<value> lb." when a parseable nonzero weight is
// present, otherwise nil.
func formatWeight(weight *string) *string {
	if weight == nil || *weight == "" {
		return nil
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(*weight), 64)
	if err != nil || f == 0 {
		return nil
	}
	s := strconv.FormatFloat(f, 'f', -1, 64) + " lb."
	return &s
}
