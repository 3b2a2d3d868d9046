package validation

import (
	"fmt"

	"github.com/mesh-intelligence/frontdesk/pkg/types"
)

// Catalog maps column names to display labels and rules to message
// templates. Each template takes the label as its single %s argument.
type Catalog struct {
	Locale    string
	Labels    map[string]string
	Templates map[Rule]string
}

// Label returns the display label for a column, or the column name itself
// when the catalog has none.
func (c *Catalog) Label(field string) string {
	if l, ok := c.Labels[field]; ok {
		return l
	}
	return field
}

// Message renders the failure message of rule for field.
func (c *Catalog) Message(rule Rule, field string) string {
	tmpl, ok := c.Templates[rule]
	if !ok {
		return fmt.Sprintf("%s: %s", field, rule)
	}
	return fmt.Sprintf(tmpl, c.Label(field))
}

// English is the default catalog.
var English = &Catalog{
	Locale: types.LocaleEnglish,
	Labels: map[string]string{
		types.ColumnName:            "Name",
		types.ColumnEmail:           "E-mail",
		types.ColumnPhone:           "Phone",
		types.ColumnNumber:          "Number",
		types.ColumnMaximumCapacity: "Maximum Capacity",
		types.ColumnDiaryPrice:      "Daily Price",
		types.ColumnCheckInDate:     "Check-In Date",
		types.ColumnCheckOutDate:    "Check-Out Date",
		types.ColumnRoomID:          "Room ID",
		types.ColumnClientID:        "Client ID",
	},
	Templates: map[Rule]string{
		RuleRequired: "The field %s is required",
		RuleStr:      "The field %s is not text",
		RuleInteger:  "The field %s is not a whole number",
		RuleFloat:    "The field %s is not a decimal number",
		RulePositive: "The field %s is not a positive number",
		RulePhone:    "The field %s is not a valid phone number",
		RuleEmail:    "The field %s is not a valid e-mail",
		RuleDate:     "The field %s is not a valid date",
		RuleExistsIn: "The identifier for %s was not found in the database",
	},
}

// Portuguese is the catalog for locale "pt".
var Portuguese = &Catalog{
	Locale: types.LocalePortuguese,
	Labels: map[string]string{
		types.ColumnName:            "Nome",
		types.ColumnEmail:           "E-mail",
		types.ColumnPhone:           "Telefone",
		types.ColumnNumber:          "Número",
		types.ColumnMaximumCapacity: "Capacidade Máxima",
		types.ColumnDiaryPrice:      "Preço Diário",
		types.ColumnCheckInDate:     "Data de Check-In",
		types.ColumnCheckOutDate:    "Data de Check-Out",
		types.ColumnRoomID:          "Identificação do Quarto",
		types.ColumnClientID:        "Identificação do Cliente",
	},
	Templates: map[Rule]string{
		RuleRequired: "O campo %s é obrigatório",
		RuleStr:      "O campo %s não é um texto",
		RuleInteger:  "O campo %s não é um número inteiro",
		RuleFloat:    "O campo %s não é um número decimal",
		RulePositive: "O campo %s não é um número positivo",
		RulePhone:    "O campo %s não é um número de telefone válido",
		RuleEmail:    "O campo %s não é um e-mail válido",
		RuleDate:     "O campo %s não é uma data válida",
		RuleExistsIn: "O identificador para %s não foi encontrado na base de dados",
	},
}

// CatalogFor returns the catalog for locale, defaulting to English.
func CatalogFor(locale string) *Catalog {
	if locale == types.LocalePortuguese {
		return Portuguese
	}
	return English
}
