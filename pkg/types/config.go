package types

import "errors"

// Config holds the parameters for attaching a record store.
type Config struct {
	DataFile string `json:"data_file" yaml:"data_file"`
	Locale   string `json:"locale" yaml:"locale"`
}

// Supported locales for field labels and validation messages.
const (
	LocaleEnglish    = "en"
	LocalePortuguese = "pt"
)

// Config validation errors.
var (
	ErrDataFileEmpty = errors.New("data file must not be empty")
	ErrLocaleUnknown = errors.New("unknown locale")
)

var knownLocales = map[string]bool{
	LocaleEnglish:    true,
	LocalePortuguese: true,
}

// Validate checks that the Config is well-formed. An empty Locale is accepted
// and means English.
func (c Config) Validate() error {
	if c.DataFile == "" {
		return ErrDataFileEmpty
	}
	if c.Locale != "" && !knownLocales[c.Locale] {
		return ErrLocaleUnknown
	}
	return nil
}
