package pokeapi

// Localized is implemented by multi-locale text entries.
type Localized interface {
	Lang() string
}

// EffectEntry is a localized effect description.
type EffectEntry struct {
	Effect      string        `json:"effect"`
	ShortEffect string        `json:"short_effect"`
	Language    NamedResource `json:"language"`
}

// Lang returns the language code of the entry.
func (e EffectEntry) Lang() string { return e.Language.Name }

// FlavorTextEntry is a localized flavor text. Moves put the text into
// "flavor_text", items into "text".
type FlavorTextEntry struct {
	FlavorText   string         `json:"flavor_text"`
	Text         string         `json:"text"`
	Language     NamedResource  `json:"language"`
	VersionGroup *NamedResource `json:"version_group,omitempty"`
}

// Lang returns the language code of the entry.
func (e FlavorTextEntry) Lang() string { return e.Language.Name }

// Value returns whichever text field is filled.
func (e FlavorTextEntry) Value() string {
	if e.FlavorText != "" {
		return e.FlavorText
	}
	return e.Text
}

// SelectLocale returns the first entry whose language matches code,
// or nil when there is none.
func SelectLocale[T Localized](entries []T, code string) *T {
	for i := range entries {
		if entries[i].Lang() == code {
			return &entries[i]
		}
	}
	return nil
}
