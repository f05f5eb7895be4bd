package poi

import (
	"fmt"
	"html"
	"strings"
)

// PopupHTML renders the marker popup fragment: name, finder, height to
// water, free-text note and the image/link block. Direct images render as
// <img> tags that hide themselves when the URL is broken; other links render
// as plain hyperlinks.
func PopupHTML(r Record) string {
	var b strings.Builder

	fmt.Fprintf(&b, "<b>%s</b><br>", html.EscapeString(r.Name))
	if r.Finder != "" {
		fmt.Fprintf(&b, "Gefunden von: %s<br>", html.EscapeString(r.Finder))
	}
	if r.HeightToWater != "" {
		fmt.Fprintf(&b, "H&ouml;he &uuml;ber Wasser: %s<br>", html.EscapeString(r.HeightToWater))
	}
	if r.Note != "" {
		fmt.Fprintf(&b, "%s<br>", html.EscapeString(r.Note))
	}

	for _, link := range r.ImageLinks {
		escaped := html.EscapeString(link)
		if IsImageLink(link) {
			fmt.Fprintf(&b, `<img src="%s" style="max-width:200px" onerror="this.style.display='none'"><br>`, escaped)
		} else {
			fmt.Fprintf(&b, `<a href="%s" target="_blank">%s</a><br>`, escaped, escaped)
		}
	}

	return b.String()
}
