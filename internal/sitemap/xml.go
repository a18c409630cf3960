package sitemap

import (
	"encoding/xml"
	"fmt"

	"github.com/amaan-bhati/sitemap-generator/internal/crawler"
)

const (
	sitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"
	xsiNamespace     = "http://www.w3.org/2001/XMLSchema-instance"
	schemaLocation   = sitemapNamespace + " " + sitemapNamespace + "/sitemap.xsd"

	lastModLayout = "2006-01-02"
)

type xmlURL struct {
	Loc      string `xml:"loc"`
	LastMod  string `xml:"lastmod"`
	Priority string `xml:"priority"`
}

type xmlURLSet struct {
	XMLName        xml.Name `xml:"urlset"`
	Xmlns          string   `xml:"xmlns,attr"`
	XmlnsXSI       string   `xml:"xmlns:xsi,attr"`
	SchemaLocation string   `xml:"xsi:schemaLocation,attr"`
	URLs           []xmlURL `xml:"url"`
}

// MarshalXML renders records as a standards-compliant urlset document,
// preceded by the XML declaration. Records must already be sorted; the
// store's Records method guarantees lexicographic URL order.
func MarshalXML(records []crawler.PageRecord) ([]byte, error) {
	set := xmlURLSet{
		Xmlns:          sitemapNamespace,
		XmlnsXSI:       xsiNamespace,
		SchemaLocation: schemaLocation,
		URLs:           make([]xmlURL, 0, len(records)),
	}
	for _, rec := range records {
		set.URLs = append(set.URLs, xmlURL{
			Loc:      rec.URL,
			LastMod:  rec.LastMod.Format(lastModLayout),
			Priority: fmt.Sprintf("%.2f", rec.Priority),
		})
	}

	payload, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal urlset: %w", err)
	}
	return append([]byte(xml.Header), payload...), nil
}
