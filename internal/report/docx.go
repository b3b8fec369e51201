package report

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DOCXContentType is the MIME type of word-processing documents.
const DOCXContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

const wordNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

const contentTypesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
<Override PartName="/word/styles.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"/>
</Types>`

const packageRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`

const documentRelsXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles" Target="styles.xml"/>
</Relationships>`

const stylesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="` + wordNamespace + `">
<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>
<w:style w:type="paragraph" w:styleId="Title"><w:name w:val="Title"/><w:basedOn w:val="Normal"/><w:pPr><w:jc w:val="center"/></w:pPr><w:rPr><w:b/><w:sz w:val="48"/></w:rPr></w:style>
<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/><w:basedOn w:val="Normal"/><w:rPr><w:b/><w:sz w:val="32"/></w:rPr></w:style>
<w:style w:type="table" w:styleId="TableGrid"><w:name w:val="Table Grid"/><w:tblPr><w:tblBorders>` +
	`<w:top w:val="single" w:sz="4" w:space="0" w:color="auto"/><w:left w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
	`<w:bottom w:val="single" w:sz="4" w:space="0" w:color="auto"/><w:right w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
	`<w:insideH w:val="single" w:sz="4" w:space="0" w:color="auto"/><w:insideV w:val="single" w:sz="4" w:space="0" w:color="auto"/>` +
	`</w:tblBorders></w:tblPr></w:style>
</w:styles>`

// WriteDOCX writes the report as a word-processing document: a title, the
// generation time and match total, a heading, and a table with the header
// row followed by one row per entry.
func (d *Document) WriteDOCX(w io.Writer) error {
	zw := zip.NewWriter(w)

	parts := []struct {
		name    string
		content string
	}{
		{"[Content_Types].xml", contentTypesXML},
		{"_rels/.rels", packageRelsXML},
		{"word/_rels/document.xml.rels", documentRelsXML},
		{"word/styles.xml", stylesXML},
		{"word/document.xml", d.documentXML()},
	}
	for _, part := range parts {
		f, err := zw.Create(part.name)
		if err != nil {
			return fmt.Errorf("failed to add %s: %w", part.name, err)
		}
		if _, err := io.WriteString(f, part.content); err != nil {
			return fmt.Errorf("failed to write %s: %w", part.name, err)
		}
	}
	return zw.Close()
}

func (d *Document) documentXML() string {
	rtl := d.Labels.RTL
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	sb.WriteString(`<w:document xmlns:w="` + wordNamespace + `"><w:body>`)

	writeParagraph(&sb, d.Labels.documentTitle(), paragraphStyle{style: "Title", center: true, rtl: rtl})
	writeParagraph(&sb, d.Labels.Generated+": "+d.GeneratedAt.Format(TimestampLayout), paragraphStyle{rtl: rtl})
	writeParagraph(&sb, d.Labels.TotalMatches+": "+strconv.Itoa(d.TotalMatches), paragraphStyle{rtl: rtl})
	writeParagraph(&sb, d.Labels.TableHeading, paragraphStyle{style: "Heading1", rtl: rtl})

	sb.WriteString(`<w:tbl><w:tblPr><w:tblStyle w:val="TableGrid"/><w:tblW w:w="0" w:type="auto"/>`)
	if rtl {
		sb.WriteString(`<w:bidiVisual/>`)
	}
	sb.WriteString(`</w:tblPr><w:tblGrid>`)
	for range d.Header() {
		sb.WriteString(`<w:gridCol/>`)
	}
	sb.WriteString(`</w:tblGrid>`)
	for i, record := range d.Table() {
		sb.WriteString(`<w:tr>`)
		for _, cell := range record {
			sb.WriteString(`<w:tc><w:tcPr><w:tcW w:w="0" w:type="auto"/></w:tcPr>`)
			writeParagraph(&sb, cell, paragraphStyle{bold: i == 0, center: i == 0, rtl: rtl})
			sb.WriteString(`</w:tc>`)
		}
		sb.WriteString(`</w:tr>`)
	}
	sb.WriteString(`</w:tbl>`)

	sb.WriteString(`<w:p/><w:sectPr/></w:body></w:document>`)
	return sb.String()
}

type paragraphStyle struct {
	style  string
	center bool
	bold   bool
	rtl    bool
}

// writeParagraph writes text as one paragraph; tabs and newlines become
// <w:tab/> and <w:br/>.
func writeParagraph(sb *strings.Builder, text string, ps paragraphStyle) {
	sb.WriteString(`<w:p>`)
	if ps.style != "" || ps.center || ps.rtl {
		sb.WriteString(`<w:pPr>`)
		if ps.style != "" {
			sb.WriteString(`<w:pStyle w:val="` + ps.style + `"/>`)
		}
		if ps.rtl {
			sb.WriteString(`<w:bidi/>`)
		}
		if ps.center {
			sb.WriteString(`<w:jc w:val="center"/>`)
		}
		sb.WriteString(`</w:pPr>`)
	}

	sb.WriteString(`<w:r>`)
	if ps.bold || ps.rtl {
		sb.WriteString(`<w:rPr>`)
		if ps.bold {
			sb.WriteString(`<w:b/>`)
		}
		if ps.rtl {
			sb.WriteString(`<w:rtl/>`)
		}
		sb.WriteString(`</w:rPr>`)
	}
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			sb.WriteString(`<w:br/>`)
		}
		for j, chunk := range strings.Split(line, "\t") {
			if j > 0 {
				sb.WriteString(`<w:tab/>`)
			}
			if chunk == "" {
				continue
			}
			sb.WriteString(`<w:t xml:space="preserve">`)
			_ = xml.EscapeText(sb, []byte(chunk))
			sb.WriteString(`</w:t>`)
		}
	}
	sb.WriteString(`</w:r></w:p>`)
}
