// Package extract recovers structured metadata and voter fields from
// recognized roll-page text.
package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// FieldKind enumerates the document-level fields recovered from page 1.
type FieldKind string

const (
	FieldConstituencyName  FieldKind = "assembly_constituency_name"
	FieldConstituencyNo    FieldKind = "assembly_constituency_no"
	FieldParliamentaryName FieldKind = "lok_sabha_constituency_name"
	FieldPartNo            FieldKind = "part_no"
	FieldPublicationDate   FieldKind = "publication_date"
	FieldQualificationDate FieldKind = "qualification_date"
	FieldDistrictName      FieldKind = "district_name"
	FieldStationName       FieldKind = "polling_station_name"
	FieldStationAddress    FieldKind = "polling_station_address"
	FieldPincode           FieldKind = "pincode"
)

// contextFieldOrder fixes the scan order for deterministic logging.
var contextFieldOrder = []FieldKind{
	FieldConstituencyName,
	FieldConstituencyNo,
	FieldParliamentaryName,
	FieldPartNo,
	FieldPublicationDate,
	FieldQualificationDate,
	FieldDistrictName,
	FieldStationName,
	FieldStationAddress,
	FieldPincode,
}

// contextLabels binds each field kind to its ordered label synonyms as they
// appear on page 1 of Kerala electoral rolls. Section name/number is a known
// gap: it sits in a table on page 1 that a label scan cannot anchor.
var contextLabels = map[FieldKind][]string{
	FieldConstituencyName:  {"നിയമസഭാ മണ്ഡലം"},
	FieldConstituencyNo:    {"നിയമസഭാ മണ്ഡലം നമ്പർ"},
	FieldParliamentaryName: {"ലോക്സഭാ മണ്ഡലം"},
	FieldPartNo:            {"ഭാഗം നമ്പർ"},
	FieldPublicationDate:   {"പ്രസിദ്ധീകരിച്ച തീയതി"},
	FieldQualificationDate: {"യോഗ്യതാ നിർണ്ണയ തീയതി"},
	FieldDistrictName:      {"ജില്ല"},
	FieldStationName:       {"വോട്ടെടുപ്പ് കേന്ദ്രം പേര്"},
	FieldStationAddress:    {"വോട്ടെടുപ്പ് കേന്ദ്രം വിലാസം"},
	FieldPincode:           {"പിൻകോഡ്"},
}

// numericContextFields are reduced to digits after capture.
var numericContextFields = map[FieldKind]bool{
	FieldConstituencyNo: true,
	FieldPartNo:         true,
	FieldPincode:        true,
}

// labelPatterns holds one compiled pattern per label variant, built once.
var labelPatterns = func() map[FieldKind][]*regexp.Regexp {
	m := make(map[FieldKind][]*regexp.Regexp, len(contextLabels))
	for kind, labels := range contextLabels {
		for _, label := range labels {
			// Label, optional colon/period separator, rest of the line.
			re := regexp.MustCompile(regexp.QuoteMeta(label) + `\s*[:.]?\s*(.+)`)
			m[kind] = append(m[kind], re)
		}
	}
	return m
}()

var digitsRe = regexp.MustCompile(`[0-9]+`)

// findLabeledValue scans text for any of the field's label variants and
// returns the captured value. A run of two spaces is treated as the boundary
// against an adjoining label on the same printed line.
func findLabeledValue(text string, kind FieldKind) (string, bool) {
	for _, re := range labelPatterns[kind] {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		value := strings.TrimSpace(m[1])
		if i := strings.Index(value, "  "); i >= 0 {
			value = strings.TrimSpace(value[:i])
		}
		if value != "" {
			return value, true
		}
	}
	return "", false
}

// reduceToInt strips non-digit characters and parses the remainder. OCR often
// garbles digits with stray punctuation or script characters.
func reduceToInt(value string) (int, bool) {
	digits := strings.Join(digitsRe.FindAllString(value, -1), "")
	if digits == "" {
		return 0, false
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return n, true
}
