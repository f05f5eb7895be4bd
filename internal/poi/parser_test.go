package poi

import (
	"strings"
	"testing"
)

func TestParseCSVFieldCount(t *testing.T) {
	tests := []struct {
		name        string
		csv         string
		wantRecords int
		wantSkipped int
	}{
		{
			name:        "valid row",
			csv:         "h1;h2;h3;h4;h5;h6;h7\n47.1;8.2;Spot A;Alice;1.5m;Nice view;https://x/a.jpg",
			wantRecords: 1,
		},
		{
			name:        "six fields skipped",
			csv:         "header\n47.1;8.2;Spot A;Alice;1.5m;Nice view",
			wantSkipped: 1,
		},
		{
			name:        "mixed rows",
			csv:         "header\n47.1;8.2;A;f;h;n;l\nbroken\n46.9;7.4;B;f;h;n;l",
			wantRecords: 2,
			wantSkipped: 1,
		},
		{
			name:        "unparsable coordinates skipped",
			csv:         "header\nnorth;east;A;f;h;n;l",
			wantSkipped: 1,
		},
		{
			name: "header only",
			csv:  "lat;lon;name;finder;height;text;links",
		},
		{
			name: "empty input",
			csv:  "",
		},
		{
			name:        "blank lines ignored",
			csv:         "header\n\n47.1;8.2;A;f;h;n;l\n\n",
			wantRecords: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ParseCSV(tt.csv)
			if len(res.Records) != tt.wantRecords {
				t.Errorf("records = %d, expected %d", len(res.Records), tt.wantRecords)
			}
			if res.Skipped != tt.wantSkipped {
				t.Errorf("skipped = %d, expected %d", res.Skipped, tt.wantSkipped)
			}
		})
	}
}

func TestParseCSVFields(t *testing.T) {
	res := ParseCSV("h\n47.1;8.2;Spot A;Alice;1.5m;Nice view;https://x/a.jpg, https://x/b")
	if len(res.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(res.Records))
	}
	r := res.Records[0]

	if r.Latitude != 47.1 || r.Longitude != 8.2 {
		t.Errorf("coordinates = (%g, %g), expected (47.1, 8.2)", r.Latitude, r.Longitude)
	}
	if r.Name != "Spot A" || r.Finder != "Alice" {
		t.Errorf("name/finder = %q/%q", r.Name, r.Finder)
	}
	if r.HeightToWater != "1.5m" || r.Note != "Nice view" {
		t.Errorf("height/note = %q/%q", r.HeightToWater, r.Note)
	}
	if len(r.ImageLinks) != 2 || r.ImageLinks[0] != "https://x/a.jpg" || r.ImageLinks[1] != "https://x/b" {
		t.Errorf("links = %v", r.ImageLinks)
	}
}

func TestParseCSVWindowsLineEndings(t *testing.T) {
	res := ParseCSV("h\r\n47.1;8.2;A;f;h;n;l\r\n")
	if len(res.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(res.Records))
	}
}

func TestIsImageLink(t *testing.T) {
	tests := []struct {
		link string
		want bool
	}{
		{"https://x/a.jpg", true},
		{"https://x/a.JPG", true},
		{"https://x/a.jpeg", true},
		{"https://x/a.png", true},
		{"https://x/a.gif", true},
		{"https://x/a.webp", true},
		{"https://x/a.WebP", true},
		{"https://x/a.bmp", false},
		{"https://x/page", false},
		{"https://x/a.jpg.html", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.link, func(t *testing.T) {
			if got := IsImageLink(tt.link); got != tt.want {
				t.Errorf("IsImageLink(%q) = %v, expected %v", tt.link, got, tt.want)
			}
		})
	}
}

func TestPopupHTML(t *testing.T) {
	res := ParseCSV("h1;h2;h3;h4;h5;h6;h7\n47.1;8.2;Spot A;Alice;1.5m;Nice view;https://x/a.jpg")
	if len(res.Records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(res.Records))
	}

	popup := PopupHTML(res.Records[0])

	for _, want := range []string{"Spot A", "Alice", `<img src="https://x/a.jpg"`} {
		if !strings.Contains(popup, want) {
			t.Errorf("popup missing %q:\n%s", want, popup)
		}
	}
}

func TestPopupHTMLHyperlink(t *testing.T) {
	r := Record{Name: "Spot B", ImageLinks: []string{"https://example.com/info"}}
	popup := PopupHTML(r)

	if strings.Contains(popup, "<img") {
		t.Errorf("non-image link rendered as <img>:\n%s", popup)
	}
	if !strings.Contains(popup, `<a href="https://example.com/info"`) {
		t.Errorf("popup missing hyperlink:\n%s", popup)
	}
}

func TestPopupHTMLEscapes(t *testing.T) {
	r := Record{Name: `<script>alert("x")</script>`}
	popup := PopupHTML(r)
	if strings.Contains(popup, "<script>") {
		t.Errorf("popup did not escape markup:\n%s", popup)
	}
}

func TestNewFeature(t *testing.T) {
	r := Record{Latitude: 47.1, Longitude: 8.2, Name: "Spot A"}
	f := NewFeature(r, 7)

	if f.Geometry.Coordinates != [2]float64{8.2, 47.1} {
		t.Errorf("coordinates = %v, expected lon/lat order", f.Geometry.Coordinates)
	}
	if f.Properties["name"] != "Spot A" {
		t.Errorf("name property = %v", f.Properties["name"])
	}
}
