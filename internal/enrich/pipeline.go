package enrich

import (
	"context"

	"go.uber.org/zap"

	"github.com/tavernworks/shopkeep/internal/catalog"
	"github.com/tavernworks/shopkeep/internal/config"
	"github.com/tavernworks/shopkeep/internal/store"
)

// legacy rename for one record that shipped with a placeholder name; the id
// stays untouched.
const (
	legacyBreastplateName  = "breastplate armor copy"
	renamedBreastplateName = "Breastplate Armor"
	renamedBreastplateIcon = "/cards/Armor/Breastplate Armor.png"
)

// Pipeline runs the full enrichment pass: fetch the three catalogs, build
// lookup maps, match and merge stats onto every local item, then commit the
// whole list back to the store in one replace. Catalog maps live only for
// the duration of a run.
type Pipeline struct {
	client  *catalog.Client
	store   store.Store
	aliases Aliases
	cfg     config.CatalogConfig
}

// Summary reports the outcome of an enrichment run. Unmatched holds the
// literal item names with no catalog hit, for alias-table curation.
type Summary struct {
	ItemRecords   int
	WeaponRecords int
	ArmorRecords  int
	Total         int
	Matched       int
	Unmatched     []string
	Categories    []string
}

// New creates a pipeline.
func New(client *catalog.Client, st store.Store, aliases Aliases, cfg config.CatalogConfig) *Pipeline {
	return &Pipeline{client: client, store: st, aliases: aliases, cfg: cfg}
}

// Run executes one enrichment pass. The store is read once at the start and
// written once at the end; a failure anywhere in between leaves it
// untouched.
func (p *Pipeline) Run(ctx context.Context) (*Summary, error) {
	log := zap.L().With(zap.String("component", "enrich"))

	// Item sources are concatenated in configured order; the map keeps the
	// first record per key, so the preferred generation must come first.
	var itemRecords []catalog.ItemRecord
	for _, src := range p.cfg.ItemSources {
		log.Info("fetching item catalog", zap.String("url", src))
		records, err := catalog.FetchAll[catalog.ItemRecord](ctx, p.client, src)
		if err != nil {
			return nil, err
		}
		itemRecords = append(itemRecords, records...)
	}

	log.Info("fetching weapon catalog", zap.String("url", p.cfg.WeaponsSource))
	weaponRecords, err := catalog.FetchAll[catalog.WeaponRecord](ctx, p.client, p.cfg.WeaponsSource)
	if err != nil {
		return nil, err
	}

	log.Info("fetching armor catalog", zap.String("url", p.cfg.ArmorSource))
	armorRecords, err := catalog.FetchAll[catalog.ArmorRecord](ctx, p.client, p.cfg.ArmorSource)
	if err != nil {
		return nil, err
	}

	itemMap := NewMap[catalog.ItemRecord]()
	for _, r := range itemRecords {
		itemMap.Put(r.Name, r)
	}
	weaponMap := NewMap[catalog.WeaponRecord]()
	for _, r := range weaponRecords {
		weaponMap.Put(r.Name, r)
	}
	armorMap := NewMap[catalog.ArmorRecord]()
	for _, r := range armorRecords {
		armorMap.Put(r.Name, r)
	}
	log.Info("catalog maps built",
		zap.Int("items", itemMap.Len()),
		zap.Int("weapons", weaponMap.Len()),
		zap.Int("armor", armorMap.Len()),
	)

	items, err := p.store.List(ctx)
	if err != nil {
		return nil, err
	}

	summary := &Summary{
		ItemRecords:   itemMap.Len(),
		WeaponRecords: weaponMap.Len(),
		ArmorRecords:  armorMap.Len(),
		Total:         len(items),
	}

	for i := range items {
		if items[i].Name == legacyBreastplateName {
			items[i].Name = renamedBreastplateName
			items[i].Image = renamedBreastplateIcon
		}

		stats := Enrich(p.aliases, items[i].Name, itemMap, weaponMap, armorMap)
		items[i].Stats = stats
		if stats != nil {
			summary.Matched++
		} else {
			summary.Unmatched = append(summary.Unmatched, items[i].Name)
		}
	}

	if err := p.store.ReplaceAll(ctx, items); err != nil {
		return nil, err
	}

	categories, err := p.store.Categories(ctx)
	if err != nil {
		return nil, err
	}
	summary.Categories = categories

	log.Info("enrichment complete",
		zap.Int("total", summary.Total),
		zap.Int("matched", summary.Matched),
		zap.Strings("unmatched", summary.Unmatched),
	)
	return summary, nil
}
