package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/AzadNikarthil/rollscan/internal/domain"
)

var dateSepRe = regexp.MustCompile(`[-/.]`)

const addressDelim = ", "

// Assemble merges a card candidate with its document context into one
// normalized voter record. Section name/number extraction is a known gap: the
// fields exist on the record and in the schema but are never populated.
func Assemble(cand *domain.VoterCardCandidate, ctx domain.ContextRecord, sourceFile string) domain.VoterRecord {
	return domain.VoterRecord{
		EpicID:             cand.EpicID,
		Name:               cand.Name,
		GuardianName:       cand.GuardianName,
		GuardianRelation:   cand.GuardianRelation,
		Age:                cand.Age,
		Gender:             cand.Gender,
		HouseDetail:        cand.HouseDetail,
		FullAddress:        ComposeAddress(cand.HouseDetail, "", ctx.PollingStationAddress, ctx.DistrictName, ctx.Pincode),
		Pincode:            ctx.Pincode,
		PartNumber:         ctx.PartNumber,
		PollingStationName: ctx.PollingStationName,
		ConstituencyNumber: ctx.ConstituencyNumber,
		ConstituencyName:   ctx.ConstituencyName,
		DistrictName:       ctx.DistrictName,
		PublicationDate:    NormalizeDate(ctx.PublicationDate),
		SourceFile:         sourceFile,
	}
}

// ComposeAddress joins the non-empty address parts in order, then appends the
// pincode as a trailing token if present.
func ComposeAddress(houseDetail, sectionName, stationAddress, district string, pincode *int) string {
	var parts []string
	for _, p := range []string{houseDetail, sectionName, stationAddress, district} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	addr := strings.Join(parts, addressDelim)
	if pincode != nil {
		addr = strings.TrimSpace(fmt.Sprintf("%s %d", addr, *pincode))
	}
	return addr
}

// NormalizeDate reformats a free-text day-month-year string using "-", "/" or
// "." separators into year-month-day. Anything that does not split into
// exactly three components is recorded absent rather than guessed.
func NormalizeDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	parts := dateSepRe.Split(raw, -1)
	if len(parts) != 3 {
		return ""
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
		if parts[i] == "" {
			return ""
		}
	}
	return parts[2] + "-" + parts[1] + "-" + parts[0]
}
