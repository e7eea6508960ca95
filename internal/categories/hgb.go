package categories

// Category keys of the HGB Bilanz structure (§266 HGB, simplified).
const (
	Anlagevermoegen     Key = "anlagevermoegen"
	Umlaufvermoegen     Key = "umlaufvermoegen"
	ImmaterielleAnlagen Key = "immaterielle_anlagen"
	Sachanlagen         Key = "sachanlagen"
	Finanzanlagen       Key = "finanzanlagen"
	Vorraete            Key = "vorraete"
	Forderungen         Key = "forderungen"
	LiquideMittel       Key = "liquide_mittel"

	Eigenkapital        Key = "eigenkapital"
	Fremdkapital        Key = "fremdkapital"
	GezeichnetesKapital Key = "gezeichnetes_kapital"
	Kapitalruecklagen   Key = "kapitalruecklagen"
	Gewinnruecklagen    Key = "gewinnruecklagen"
	Verbindlichkeiten   Key = "verbindlichkeiten"
	Rueckstellungen     Key = "rueckstellungen"
)

var hgbTree = []Category{
	{Key: Anlagevermoegen, Name: "Anlagevermögen", Children: []Key{ImmaterielleAnlagen, Sachanlagen, Finanzanlagen}, Section: Aktiva, SortOrder: 1},
	{Key: Umlaufvermoegen, Name: "Umlaufvermögen", Children: []Key{Vorraete, Forderungen, LiquideMittel}, Section: Aktiva, SortOrder: 2},
	{Key: ImmaterielleAnlagen, Name: "Immaterielle Anlagen", Parent: Anlagevermoegen, Section: Aktiva, SortOrder: 1},
	{Key: Sachanlagen, Name: "Sachanlagen", Parent: Anlagevermoegen, Section: Aktiva, SortOrder: 2},
	{Key: Finanzanlagen, Name: "Finanzanlagen", Parent: Anlagevermoegen, Section: Aktiva, SortOrder: 3},
	{Key: Vorraete, Name: "Vorräte", Parent: Umlaufvermoegen, Section: Aktiva, SortOrder: 1},
	{Key: Forderungen, Name: "Forderungen", Parent: Umlaufvermoegen, Section: Aktiva, SortOrder: 2},
	{Key: LiquideMittel, Name: "Liquide Mittel", Parent: Umlaufvermoegen, Section: Aktiva, SortOrder: 3},

	{Key: Eigenkapital, Name: "Eigenkapital", Children: []Key{GezeichnetesKapital, Kapitalruecklagen, Gewinnruecklagen}, Section: Passiva, SortOrder: 1},
	{Key: Fremdkapital, Name: "Fremdkapital", Children: []Key{Verbindlichkeiten, Rueckstellungen}, Section: Passiva, SortOrder: 2},
	{Key: GezeichnetesKapital, Name: "Gezeichnetes Kapital", Parent: Eigenkapital, Section: Passiva, SortOrder: 1},
	{Key: Kapitalruecklagen, Name: "Kapitalrücklagen", Parent: Eigenkapital, Section: Passiva, SortOrder: 2},
	{Key: Gewinnruecklagen, Name: "Gewinnrücklagen", Parent: Eigenkapital, Section: Passiva, SortOrder: 3},
	{Key: Verbindlichkeiten, Name: "Verbindlichkeiten", Parent: Fremdkapital, Section: Passiva, SortOrder: 1},
	{Key: Rueckstellungen, Name: "Rückstellungen", Parent: Fremdkapital, Section: Passiva, SortOrder: 2},
}

var hgbRanges = []Range{
	{Start: "0100", End: "0199", Category: ImmaterielleAnlagen},
	{Start: "0200", End: "0499", Category: Sachanlagen},
	{Start: "0500", End: "0999", Category: Finanzanlagen},
	{Start: "1000", End: "1299", Category: LiquideMittel},
	{Start: "1400", End: "1599", Category: Forderungen},
	{Start: "1600", End: "1999", Category: Vorraete},
	{Start: "3000", End: "3099", Category: GezeichnetesKapital},
	{Start: "3100", End: "3199", Category: Kapitalruecklagen},
	{Start: "3200", End: "3399", Category: Gewinnruecklagen},
	{Start: "3400", End: "3699", Category: Verbindlichkeiten},
	{Start: "3700", End: "3999", Category: Rueckstellungen},
}

// Gaps in hgbRanges (0000-0099, 1300-1399, 2000-2999) land here.
var hgbFallbacks = []Range{
	{Start: "0000", End: "0999", Category: Sachanlagen},
	{Start: "1000", End: "2999", Category: LiquideMittel},
	{Start: "3000", End: "3399", Category: GezeichnetesKapital},
	{Start: "3400", End: "3999", Category: Verbindlichkeiten},
}

var hgb = MustNew(hgbTree, hgbRanges, hgbFallbacks)

// HGB returns the standard Bilanz category map. It is validated at package
// initialisation.
func HGB() *Map {
	return hgb
}
