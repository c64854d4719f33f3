// Package cities downloads the GeoNames cities archive and turns it into the
// gazetteer JSON artifacts consumed downstream.
package cities

import "path/filepath"

// SourceURL is the GeoNames dump of all cities with a population of 500 or more.
const SourceURL = "https://download.geonames.org/export/dump/cities500.zip"

// OutputRoot is the directory every artifact is written under.
const OutputRoot = "./data"

// File and directory names inside OutputRoot.
const (
	extractDirName  = "cities"
	sourceFileName  = "cities500.txt"
	recordsFileName = "cities-data.json"
	citiesFileName  = "cities.json"
)

// Layout resolves the on-disk contract shared by the download and build stages.
type Layout struct {
	Root string
}

// DefaultLayout returns the layout rooted at OutputRoot.
func DefaultLayout() Layout {
	return Layout{Root: OutputRoot}
}

// ExtractDir is where the archive is unpacked.
func (l Layout) ExtractDir() string {
	return filepath.Join(l.Root, extractDirName)
}

// SourceFile is the tab-separated dump inside ExtractDir.
func (l Layout) SourceFile() string {
	return filepath.Join(l.ExtractDir(), sourceFileName)
}

// RecordsFile holds the full mapped records.
func (l Layout) RecordsFile() string {
	return filepath.Join(l.Root, recordsFileName)
}

// CitiesFile holds the name/lat/lon projection.
func (l Layout) CitiesFile() string {
	return filepath.Join(l.Root, citiesFileName)
}
