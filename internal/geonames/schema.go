// Package geonames defines the GeoNames city dump schema and maps raw
// tab-separated rows onto typed records.
package geonames

// Kind tags how a column's cell is coerced when a row is mapped.
type Kind int

const (
	// KindText cells are kept verbatim; empty or missing cells are null.
	KindText Kind = iota
	// KindCoordinate cells are parsed as decimal numbers.
	KindCoordinate
)

// Column is one entry in the positional schema. Name is the JSON key;
// SQLName is the snake_case column used by the database sinks.
type Column struct {
	Name    string
	SQLName string
	Kind    Kind
}

// Positional indexes into a raw row.
const (
	ColGeoNameID = iota
	ColName
	ColASCIIName
	ColAlternateNames
	ColLatitude
	ColLongitude
	ColFeatureClass
	ColFeatureCode
	ColCountryCode
	ColCC2
	ColAdmin1Code
	ColAdmin2Code
	ColAdmin3Code
	ColAdmin4Code
	ColPopulation
	ColElevation
	ColDEM
	ColTimezone
	ColModificationDate

	// NumColumns is the width of a complete row.
	NumColumns
)

// Columns is the fixed, ordered schema of the cities dump. Names match the
// JSON keys written to the full record artifact.
var Columns = [NumColumns]Column{
	ColGeoNameID:        {Name: "geoNameId", SQLName: "geoname_id", Kind: KindText},
	ColName:             {Name: "name", SQLName: "name", Kind: KindText},
	ColASCIIName:        {Name: "asciiName", SQLName: "ascii_name", Kind: KindText},
	ColAlternateNames:   {Name: "alternateNames", SQLName: "alternate_names", Kind: KindText},
	ColLatitude:         {Name: "latitude", SQLName: "latitude", Kind: KindCoordinate},
	ColLongitude:        {Name: "longitude", SQLName: "longitude", Kind: KindCoordinate},
	ColFeatureClass:     {Name: "featureClass", SQLName: "feature_class", Kind: KindText},
	ColFeatureCode:      {Name: "featureCode", SQLName: "feature_code", Kind: KindText},
	ColCountryCode:      {Name: "countryCode", SQLName: "country_code", Kind: KindText},
	ColCC2:              {Name: "cc2", SQLName: "cc2", Kind: KindText},
	ColAdmin1Code:       {Name: "admin1Code", SQLName: "admin1_code", Kind: KindText},
	ColAdmin2Code:       {Name: "admin2Code", SQLName: "admin2_code", Kind: KindText},
	ColAdmin3Code:       {Name: "admin3Code", SQLName: "admin3_code", Kind: KindText},
	ColAdmin4Code:       {Name: "admin4Code", SQLName: "admin4_code", Kind: KindText},
	ColPopulation:       {Name: "population", SQLName: "population", Kind: KindText},
	ColElevation:        {Name: "elevation", SQLName: "elevation", Kind: KindText},
	ColDEM:              {Name: "dem", SQLName: "dem", Kind: KindText},
	ColTimezone:         {Name: "timezone", SQLName: "timezone", Kind: KindText},
	ColModificationDate: {Name: "modificationDate", SQLName: "modification_date", Kind: KindText},
}

// ColumnNames returns the schema names in positional order.
func ColumnNames() []string {
	names := make([]string, NumColumns)
	for i, c := range Columns {
		names[i] = c.Name
	}
	return names
}

// SQLColumnNames returns the database column names in positional order.
func SQLColumnNames() []string {
	names := make([]string, NumColumns)
	for i, c := range Columns {
		names[i] = c.SQLName
	}
	return names
}
