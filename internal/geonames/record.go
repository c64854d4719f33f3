package geonames

// Record is one row of the cities dump bound to the schema. Text fields are
// nil when the source cell was missing or empty.
type Record struct {
	GeoNameID        *string    `json:"geoNameId"`
	Name             *string    `json:"name"`
	ASCIIName        *string    `json:"asciiName"`
	AlternateNames   *string    `json:"alternateNames"`
	Latitude         Coordinate `json:"latitude"`
	Longitude        Coordinate `json:"longitude"`
	FeatureClass     *string    `json:"featureClass"`
	FeatureCode      *string    `json:"featureCode"`
	CountryCode      *string    `json:"countryCode"`
	CC2              *string    `json:"cc2"`
	Admin1Code       *string    `json:"admin1Code"`
	Admin2Code       *string    `json:"admin2Code"`
	Admin3Code       *string    `json:"admin3Code"`
	Admin4Code       *string    `json:"admin4Code"`
	Population       *string    `json:"population"`
	Elevation        *string    `json:"elevation"`
	DEM              *string    `json:"dem"`
	Timezone         *string    `json:"timezone"`
	ModificationDate *string    `json:"modificationDate"`
}

// City is the reduced projection of a Record.
type City struct {
	Name *string    `json:"name"`
	Lat  Coordinate `json:"lat"`
	Lon  Coordinate `json:"lon"`
}

// MapRow binds a raw row to the schema by position. Cells beyond the row's
// length and empty cells become nil; extra cells are ignored.
func MapRow(row []string) Record {
	cell := func(i int) *string {
		if i >= len(row) || row[i] == "" {
			return nil
		}
		s := row[i]
		return &s
	}

	return Record{
		GeoNameID:        cell(ColGeoNameID),
		Name:             cell(ColName),
		ASCIIName:        cell(ColASCIIName),
		AlternateNames:   cell(ColAlternateNames),
		Latitude:         ParseCoordinate(cell(ColLatitude)),
		Longitude:        ParseCoordinate(cell(ColLongitude)),
		FeatureClass:     cell(ColFeatureClass),
		FeatureCode:      cell(ColFeatureCode),
		CountryCode:      cell(ColCountryCode),
		CC2:              cell(ColCC2),
		Admin1Code:       cell(ColAdmin1Code),
		Admin2Code:       cell(ColAdmin2Code),
		Admin3Code:       cell(ColAdmin3Code),
		Admin4Code:       cell(ColAdmin4Code),
		Population:       cell(ColPopulation),
		Elevation:        cell(ColElevation),
		DEM:              cell(ColDEM),
		Timezone:         cell(ColTimezone),
		ModificationDate: cell(ColModificationDate),
	}
}

// MapRows maps every row, preserving order.
func MapRows(rows [][]string) []Record {
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, MapRow(row))
	}
	return records
}

// City projects the record onto name and coordinates.
func (r Record) City() City {
	return City{Name: r.Name, Lat: r.Latitude, Lon: r.Longitude}
}

// Project returns the City view of each record, in order.
func Project(records []Record) []City {
	cities := make([]City, 0, len(records))
	for _, r := range records {
		cities = append(cities, r.City())
	}
	return cities
}

// Values returns the record's cells in schema order, suitable for SQL
// parameters. Nil text fields and invalid coordinates are untyped nil;
// valid coordinates are float64.
func (r Record) Values() []any {
	vals := make([]any, NumColumns)
	for i, p := range r.texts() {
		if Columns[i].Kind != KindText {
			continue
		}
		if p != nil {
			vals[i] = *p
		}
	}
	vals[ColLatitude] = r.Latitude.value()
	vals[ColLongitude] = r.Longitude.value()
	return vals
}

// texts lists the text fields by column index; coordinate slots are nil.
func (r Record) texts() [NumColumns]*string {
	return [NumColumns]*string{
		ColGeoNameID:        r.GeoNameID,
		ColName:             r.Name,
		ColASCIIName:        r.ASCIIName,
		ColAlternateNames:   r.AlternateNames,
		ColFeatureClass:     r.FeatureClass,
		ColFeatureCode:      r.FeatureCode,
		ColCountryCode:      r.CountryCode,
		ColCC2:              r.CC2,
		ColAdmin1Code:       r.Admin1Code,
		ColAdmin2Code:       r.Admin2Code,
		ColAdmin3Code:       r.Admin3Code,
		ColAdmin4Code:       r.Admin4Code,
		ColPopulation:       r.Population,
		ColElevation:        r.Elevation,
		ColDEM:              r.DEM,
		ColTimezone:         r.Timezone,
		ColModificationDate: r.ModificationDate,
	}
}
