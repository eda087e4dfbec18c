package model

// DefaultRecipient is the recipient used until the user configures one.
const DefaultRecipient = "example@example.com"

// Settings is the persisted configuration record. A single instance is
// shared by pointer between the settings form and the exporter.
type Settings struct {
	// DefaultRecipient is the address placed in every compose link.
	// It is not validated.
	DefaultRecipient string `mapstructure:"default_recipient" json:"default_recipient"`
}

// PartialSettings is a settings record as read from storage. A nil field
// was absent from the stored record.
type PartialSettings struct {
	DefaultRecipient *string
}

// DefaultSettings returns the record used when nothing has been persisted.
func DefaultSettings() Settings {
	return Settings{
		DefaultRecipient: DefaultRecipient,
	}
}

// MergeSettings overlays the fields present in p on top of the defaults.
func MergeSettings(p *PartialSettings) Settings {
	s := DefaultSettings()
	if p == nil {
		return s
	}
	if p.DefaultRecipient != nil {
		s.DefaultRecipient = *p.DefaultRecipient
	}
	return s
}
