package enrich

import (
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

// Aliases maps a normalized local item key to the normalized catalog key it
// should match instead. It compensates for naming drift between the local
// item list and the catalog source ("plate" vs "platearmor"). The table is
// data, not logic: new divergences are added here or via a YAML file, never
// as branches in the matcher.
type Aliases map[string]string

// DefaultAliases returns the built-in alias table. Keys and values are
// fully normalized (lowercase, alphanumeric only).
func DefaultAliases() Aliases {
	return Aliases{
		"sheild":  "shield",
		"halbred": "halberd",

		"breastplatearmor": "breastplate",
		"chainmailarmor":   "chainmail",
		"halfplatearmor":   "halfplate",
		"plate":            "platearmor",

		// The catalog uses an apostrophe: "Alchemist's Fire".
		"alchemistfire":     "alchemistsfire",
		"alchemistsupplies": "alchemistssupplies",

		// Catalog format: "Clothes, Common".
		"commonclothes":    "clothescommon",
		"fineclothes":      "clothesfine",
		"travelersclothes": "clothestravelers",
		"costumeclothes":   "clothescostume",

		// Catalog format: "Lantern, Bullseye".
		"bullseyelantern": "lanternbullseye",
		"hoodedlantern":   "lanternhooded",

		// Catalog format: "Saddle (Exotic)".
		"exoticsaddle":   "saddleexotic",
		"militarysaddle": "saddlemilitary",
		"ridingsaddle":   "saddleriding",
		"packsaddle":     "saddlepack",

		// Catalog format: "Pick, miner's".
		"minerspick": "pickminers",

		"potionofextremehealing": "potionofsuperiorhealing",
	}
}

// Resolve returns the aliased key if the table has one, otherwise the key
// unchanged.
func (a Aliases) Resolve(key string) string {
	if mapped, ok := a[key]; ok {
		return mapped
	}
	return key
}

// Validate rejects entries whose key or value is not already normalized, so
// a hand-edited alias file cannot silently never match.
func (a Aliases) Validate() error {
	for k, v := range a {
		if k == "" || k != Normalize(k) {
			return eris.Errorf("aliases: key %q is not a normalized name", k)
		}
		if v == "" || v != Normalize(v) {
			return eris.Errorf("aliases: value %q for key %q is not a normalized name", v, k)
		}
	}
	return nil
}

// LoadAliases returns the built-in table merged with entries from an
// optional YAML file. File entries win on duplicate keys.
func LoadAliases(path string) (Aliases, error) {
	aliases := DefaultAliases()
	if path == "" {
		return aliases, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "aliases: read %s", path)
	}

	var extra Aliases
	if err := yaml.Unmarshal(data, &extra); err != nil {
		return nil, eris.Wrapf(err, "aliases: parse %s", path)
	}
	if err := extra.Validate(); err != nil {
		return nil, err
	}

	for k, v := range extra {
		aliases[k] = v
	}
	return aliases, nil
}
