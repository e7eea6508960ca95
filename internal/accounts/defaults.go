package accounts

import "github.com/cleared-dev/bilanz/internal/model"

// Accounting standards a project can be set up with. Only the HGB standard
// chart ships with a catalog; the others fall back to it.
const (
	HGBStandard = "hgb_standard"
	DatevSKR03  = "datev_skr03"
	DatevSKR04  = "datev_skr04"
	Custom      = "custom"
)

// DefaultChart returns the standard chart of accounts for an accounting
// standard. Every standard gets the HGB catalog until SKR03 and SKR04
// catalogs exist.
func DefaultChart(standard string) []StandardAccount {
	return hgbChart()
}

// starterNumbers is the recommended minimal chart for a new business.
var starterNumbers = []string{"1000", "1200", "1400", "1580", "3000", "3700", "3900", "5000", "6300", "6500", "8000"}

func hgbChart() []StandardAccount {
	return []StandardAccount{
		// Anlagevermögen
		{Number: "0100", Name: "Geschäfts- oder Firmenwert", Type: model.Aktivkonto, Category: "Immaterielle Vermögensgegenstände"},
		{Number: "0120", Name: "Gewerbliche Schutzrechte und ähnliche Rechte", Type: model.Aktivkonto, Category: "Immaterielle Vermögensgegenstände"},
		{Number: "0140", Name: "Software", Type: model.Aktivkonto, Category: "Immaterielle Vermögensgegenstände"},
		{Number: "0200", Name: "Grundstücke und Bauten", Type: model.Aktivkonto, Category: "Sachanlagen"},
		{Number: "0300", Name: "Technische Anlagen und Maschinen", Type: model.Aktivkonto, Category: "Sachanlagen"},
		{Number: "0400", Name: "Andere Anlagen, Betriebs- und Geschäftsausstattung", Type: model.Aktivkonto, Category: "Sachanlagen"},
		{Number: "0410", Name: "Büroausstattung", Type: model.Aktivkonto, Category: "Sachanlagen"},
		{Number: "0420", Name: "EDV-Anlagen", Type: model.Aktivkonto, Category: "Sachanlagen"},
		{Number: "0500", Name: "Anlagen im Bau", Type: model.Aktivkonto, Category: "Sachanlagen"},
		{Number: "0600", Name: "Anteile an verbundenen Unternehmen", Type: model.Aktivkonto, Category: "Finanzanlagen"},
		{Number: "0700", Name: "Beteiligungen", Type: model.Aktivkonto, Category: "Finanzanlagen"},
		{Number: "0800", Name: "Wertpapiere des Anlagevermögens", Type: model.Aktivkonto, Category: "Finanzanlagen"},

		// Umlaufvermögen
		{Number: "1000", Name: "Kasse", Type: model.Aktivkonto, Category: "Liquide Mittel"},
		{Number: "1200", Name: "Bank", Type: model.Aktivkonto, Category: "Liquide Mittel"},
		{Number: "1210", Name: "Postbank", Type: model.Aktivkonto, Category: "Liquide Mittel"},
		{Number: "1220", Name: "Sparkasse", Type: model.Aktivkonto, Category: "Liquide Mittel"},
		{Number: "1230", Name: "Fremdwährungskonten", Type: model.Aktivkonto, Category: "Liquide Mittel"},
		{Number: "1400", Name: "Forderungen aus Lieferungen und Leistungen", Type: model.Aktivkonto, Category: "Forderungen"},
		{Number: "1410", Name: "Forderungen gegen verbundene Unternehmen", Type: model.Aktivkonto, Category: "Forderungen"},
		{Number: "1420", Name: "Zweifelhafte Forderungen", Type: model.Aktivkonto, Category: "Forderungen"},
		{Number: "1500", Name: "Sonstige Vermögensgegenstände", Type: model.Aktivkonto, Category: "Sonstige Forderungen"},
		{Number: "1570", Name: "Geleistete Anzahlungen", Type: model.Aktivkonto, Category: "Sonstige Forderungen"},
		{Number: "1580", Name: "Vorsteuer", Type: model.Aktivkonto, Category: "Steuerliche Forderungen"},
		{Number: "1600", Name: "Roh-, Hilfs- und Betriebsstoffe", Type: model.Aktivkonto, Category: "Vorräte"},
		{Number: "1700", Name: "Unfertige Erzeugnisse", Type: model.Aktivkonto, Category: "Vorräte"},
		{Number: "1800", Name: "Fertige Erzeugnisse", Type: model.Aktivkonto, Category: "Vorräte"},
		{Number: "1900", Name: "Waren", Type: model.Aktivkonto, Category: "Vorräte"},
		{Number: "2000", Name: "Wertpapiere des Umlaufvermögens", Type: model.Aktivkonto, Category: "Wertpapiere"},
		{Number: "2100", Name: "Aktive Rechnungsabgrenzungsposten", Type: model.Aktivkonto, Category: "Rechnungsabgrenzung"},

		// Eigenkapital
		{Number: "3000", Name: "Gezeichnetes Kapital", Type: model.Passivkonto, Category: "Eigenkapital"},
		{Number: "3100", Name: "Kapitalrücklagen", Type: model.Passivkonto, Category: "Eigenkapital"},
		{Number: "3200", Name: "Gewinnrücklagen", Type: model.Passivkonto, Category: "Eigenkapital"},
		{Number: "3210", Name: "Gesetzliche Rücklage", Type: model.Passivkonto, Category: "Eigenkapital"},
		{Number: "3220", Name: "Freie Rücklagen", Type: model.Passivkonto, Category: "Eigenkapital"},
		{Number: "3300", Name: "Gewinnvortrag", Type: model.Passivkonto, Category: "Eigenkapital"},
		{Number: "3310", Name: "Verlustvortrag", Type: model.Passivkonto, Category: "Eigenkapital"},
		{Number: "3320", Name: "Jahresüberschuss", Type: model.Passivkonto, Category: "Eigenkapital"},
		{Number: "3330", Name: "Jahresfehlbetrag", Type: model.Passivkonto, Category: "Eigenkapital"},

		// Rückstellungen
		{Number: "3400", Name: "Rückstellungen für Pensionen", Type: model.Passivkonto, Category: "Rückstellungen"},
		{Number: "3410", Name: "Steuerrückstellungen", Type: model.Passivkonto, Category: "Rückstellungen"},
		{Number: "3420", Name: "Sonstige Rückstellungen", Type: model.Passivkonto, Category: "Rückstellungen"},

		// Verbindlichkeiten
		{Number: "3700", Name: "Verbindlichkeiten aus Lieferungen und Leistungen", Type: model.Passivkonto, Category: "Verbindlichkeiten"},
		{Number: "3710", Name: "Verbindlichkeiten gegen verbundene Unternehmen", Type: model.Passivkonto, Category: "Verbindlichkeiten"},
		{Number: "3720", Name: "Wechselverbindlichkeiten", Type: model.Passivkonto, Category: "Verbindlichkeiten"},
		{Number: "3750", Name: "Erhaltene Anzahlungen", Type: model.Passivkonto, Category: "Verbindlichkeiten"},
		{Number: "3760", Name: "Sonstige Verbindlichkeiten", Type: model.Passivkonto, Category: "Verbindlichkeiten"},
		{Number: "3800", Name: "Verbindlichkeiten gegenüber Kreditinstituten", Type: model.Passivkonto, Category: "Verbindlichkeiten"},
		{Number: "3850", Name: "Darlehen", Type: model.Passivkonto, Category: "Verbindlichkeiten"},
		{Number: "3900", Name: "Umsatzsteuer", Type: model.Passivkonto, Category: "Steuerverbindlichkeiten"},
		{Number: "3910", Name: "Lohnsteuer", Type: model.Passivkonto, Category: "Steuerverbindlichkeiten"},
		{Number: "3920", Name: "Sozialversicherung", Type: model.Passivkonto, Category: "Steuerverbindlichkeiten"},
		{Number: "3950", Name: "Passive Rechnungsabgrenzungsposten", Type: model.Passivkonto, Category: "Rechnungsabgrenzung"},

		// Materialaufwand
		{Number: "4000", Name: "Aufwendungen für Roh-, Hilfs- und Betriebsstoffe", Type: model.Aufwandskonto, Category: "Materialaufwand"},
		{Number: "4100", Name: "Aufwendungen für bezogene Waren", Type: model.Aufwandskonto, Category: "Materialaufwand"},
		{Number: "4200", Name: "Aufwendungen für bezogene Leistungen", Type: model.Aufwandskonto, Category: "Materialaufwand"},
		{Number: "4300", Name: "Nachlässe auf Materialaufwand", Type: model.Aufwandskonto, Category: "Materialaufwand"},

		// Personalaufwand
		{Number: "5000", Name: "Löhne und Gehälter", Type: model.Aufwandskonto, Category: "Personalaufwand"},
		{Number: "5100", Name: "Soziale Abgaben", Type: model.Aufwandskonto, Category: "Personalaufwand"},
		{Number: "5200", Name: "Aufwendungen für Altersversorgung", Type: model.Aufwandskonto, Category: "Personalaufwand"},
		{Number: "5300", Name: "Sonstige Personalaufwendungen", Type: model.Aufwandskonto, Category: "Personalaufwand"},
		{Number: "5400", Name: "Freiwillige soziale Aufwendungen", Type: model.Aufwandskonto, Category: "Personalaufwand"},

		// Betriebsaufwand
		{Number: "6000", Name: "Abschreibungen auf Sachanlagen", Type: model.Aufwandskonto, Category: "Abschreibungen"},
		{Number: "6100", Name: "Abschreibungen auf immaterielle Vermögensgegenstände", Type: model.Aufwandskonto, Category: "Abschreibungen"},
		{Number: "6200", Name: "Raumkosten", Type: model.Aufwandskonto, Category: "Raumkosten"},
		{Number: "6210", Name: "Mieten", Type: model.Aufwandskonto, Category: "Raumkosten"},
		{Number: "6220", Name: "Nebenkosten", Type: model.Aufwandskonto, Category: "Raumkosten"},
		{Number: "6230", Name: "Heizung", Type: model.Aufwandskonto, Category: "Raumkosten"},
		{Number: "6240", Name: "Strom", Type: model.Aufwandskonto, Category: "Raumkosten"},
		{Number: "6300", Name: "Bürokosten", Type: model.Aufwandskonto, Category: "Bürokosten"},
		{Number: "6310", Name: "Porto", Type: model.Aufwandskonto, Category: "Bürokosten"},
		{Number: "6320", Name: "Telefon", Type: model.Aufwandskonto, Category: "Bürokosten"},
		{Number: "6330", Name: "Büromaterial", Type: model.Aufwandskonto, Category: "Bürokosten"},
		{Number: "6400", Name: "Versicherungen", Type: model.Aufwandskonto, Category: "Versicherungen"},
		{Number: "6410", Name: "Betriebshaftpflicht", Type: model.Aufwandskonto, Category: "Versicherungen"},
		{Number: "6420", Name: "Sachversicherungen", Type: model.Aufwandskonto, Category: "Versicherungen"},
		{Number: "6500", Name: "Reisekosten", Type: model.Aufwandskonto, Category: "Reisekosten"},
		{Number: "6510", Name: "Fahrtkosten", Type: model.Aufwandskonto, Category: "Reisekosten"},
		{Number: "6520", Name: "Übernachtungskosten", Type: model.Aufwandskonto, Category: "Reisekosten"},
		{Number: "6530", Name: "Bewirtungskosten", Type: model.Aufwandskonto, Category: "Reisekosten"},
		{Number: "6600", Name: "Werbung", Type: model.Aufwandskonto, Category: "Werbekosten"},
		{Number: "6610", Name: "Anzeigen", Type: model.Aufwandskonto, Category: "Werbekosten"},
		{Number: "6620", Name: "Messen und Ausstellungen", Type: model.Aufwandskonto, Category: "Werbekosten"},
		{Number: "6700", Name: "Rechts- und Beratungskosten", Type: model.Aufwandskonto, Category: "Beratungskosten"},
		{Number: "6710", Name: "Steuerberatungskosten", Type: model.Aufwandskonto, Category: "Beratungskosten"},
		{Number: "6720", Name: "Wirtschaftsprüfungskosten", Type: model.Aufwandskonto, Category: "Beratungskosten"},
		{Number: "6800", Name: "Verschiedene Aufwendungen", Type: model.Aufwandskonto, Category: "Sonstiges"},
		{Number: "6810", Name: "Bücher und Zeitschriften", Type: model.Aufwandskonto, Category: "Sonstiges"},
		{Number: "6820", Name: "Fortbildung", Type: model.Aufwandskonto, Category: "Sonstiges"},
		{Number: "6900", Name: "Instandhaltung", Type: model.Aufwandskonto, Category: "Instandhaltung"},
		{Number: "6910", Name: "Reparaturen", Type: model.Aufwandskonto, Category: "Instandhaltung"},

		// Finanzaufwand
		{Number: "7000", Name: "Zinsen und ähnliche Aufwendungen", Type: model.Aufwandskonto, Category: "Finanzaufwand"},
		{Number: "7100", Name: "Abschreibungen auf Finanzanlagen", Type: model.Aufwandskonto, Category: "Finanzaufwand"},
		{Number: "7200", Name: "Außerordentliche Aufwendungen", Type: model.Aufwandskonto, Category: "Außerordentliches"},

		// Umsatzerlöse
		{Number: "8000", Name: "Umsatzerlöse", Type: model.Ertragskonto, Category: "Umsatzerlöse"},
		{Number: "8100", Name: "Erlösschmälerungen", Type: model.Ertragskonto, Category: "Umsatzerlöse"},
		{Number: "8110", Name: "Skonti", Type: model.Ertragskonto, Category: "Umsatzerlöse"},
		{Number: "8120", Name: "Rabatte", Type: model.Ertragskonto, Category: "Umsatzerlöse"},
		{Number: "8200", Name: "Bestandsveränderungen fertige Erzeugnisse", Type: model.Ertragskonto, Category: "Bestandsveränderungen"},
		{Number: "8300", Name: "Andere aktivierte Eigenleistungen", Type: model.Ertragskonto, Category: "Eigenleistungen"},

		// Sonstige Erträge
		{Number: "9000", Name: "Zinserträge", Type: model.Ertragskonto, Category: "Finanzerträge"},
		{Number: "9100", Name: "Erträge aus Beteiligungen", Type: model.Ertragskonto, Category: "Finanzerträge"},
		{Number: "9200", Name: "Sonstige betriebliche Erträge", Type: model.Ertragskonto, Category: "Sonstige Erträge"},
		{Number: "9210", Name: "Provisionserlöse", Type: model.Ertragskonto, Category: "Sonstige Erträge"},
		{Number: "9220", Name: "Mieterlöse", Type: model.Ertragskonto, Category: "Sonstige Erträge"},
		{Number: "9300", Name: "Außerordentliche Erträge", Type: model.Ertragskonto, Category: "Außerordentliches"},
		{Number: "9400", Name: "Erträge aus Auflösung von Rückstellungen", Type: model.Ertragskonto, Category: "Sonstige Erträge"},
		{Number: "9900", Name: "Periodenfremde Erträge", Type: model.Ertragskonto, Category: "Sonstige Erträge"},
	}
}
