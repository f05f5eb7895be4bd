package poi

import (
	"strconv"
	"strings"
)

// Record is one parsed point of interest row.
type Record struct {
	Latitude      float64
	Longitude     float64
	Name          string
	Finder        string
	HeightToWater string
	Note          string
	ImageLinks    []string
}

// ParseResult reports what a CSV import produced. Skipped rows are counted
// rather than errored; a malformed row never aborts the import.
type ParseResult struct {
	Records []Record
	Skipped int
}

// ParseCSV parses the semicolon-delimited spot list. The first line is a
// header and is discarded. Rows need at least 7 fields
// (lat;lon;name;finder;height;freetext;imageLinks); shorter rows and rows
// with unparsable coordinates are silently dropped.
func ParseCSV(text string) ParseResult {
	var res ParseResult

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	if len(lines) > 0 {
		lines = lines[1:] // header
	}

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, ";")
		if len(fields) < 7 {
			res.Skipped++
			continue
		}

		lat, errLat := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
		lon, errLon := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if errLat != nil || errLon != nil {
			res.Skipped++
			continue
		}

		res.Records = append(res.Records, Record{
			Latitude:      lat,
			Longitude:     lon,
			Name:          strings.TrimSpace(fields[2]),
			Finder:        strings.TrimSpace(fields[3]),
			HeightToWater: strings.TrimSpace(fields[4]),
			Note:          strings.TrimSpace(fields[5]),
			ImageLinks:    splitLinks(fields[6]),
		})
	}

	return res
}

// splitLinks splits the comma-separated link list and trims each entry.
func splitLinks(field string) []string {
	var links []string
	for _, l := range strings.Split(field, ",") {
		l = strings.TrimSpace(l)
		if l != "" {
			links = append(links, l)
		}
	}
	return links
}

// imageExtensions are the suffixes rendered as inline images; anything else
// becomes a plain hyperlink.
var imageExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// IsImageLink classifies a link as a direct image by file-extension suffix,
// case-insensitive.
func IsImageLink(link string) bool {
	l := strings.ToLower(link)
	for _, ext := range imageExtensions {
		if strings.HasSuffix(l, ext) {
			return true
		}
	}
	return false
}
