package extract

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/AzadNikarthil/rollscan/internal/domain"
)

// Card field patterns, anchored on the Malayalam labels printed on every card.
var (
	epicRe     = regexp.MustCompile(`[A-Z]{3}[0-9]{7}`)
	nameRe     = regexp.MustCompile(`പേര്\s*[:.]?\s*([^\n]+)`)
	guardianRe = regexp.MustCompile(`(അച്ഛന്റെ|ഭർത്താവിന്റെ)\s*പേര്\s*[:.]?\s*([^\n]+)`)
	houseRe    = regexp.MustCompile(`വീട്ടു\s*നമ്പർ\s*[:.]?\s*([^\n]+)`)
	ageRe      = regexp.MustCompile(`വയസ്സ്\s*[:.]?\s*([0-9]+)`)
	genderRe   = regexp.MustCompile(`ലിംഗം\s*[:.]?\s*(\S+)`)
)

const husbandLabel = "ഭർത്താവിന്റെ"

// CardParser turns one card's recognized text into a candidate voter.
type CardParser struct {
	minRunes int
}

// NewCardParser creates a parser with the given empty-slot threshold: text
// shorter than minRunes (after trimming) is judged to be a blank grid slot.
func NewCardParser(minRunes int) *CardParser {
	return &CardParser{minRunes: minRunes}
}

// Parse recovers voter fields from recognized card text. It returns
// (nil, nil) for an empty slot, and (nil, ParseRejection) when the card has
// recoverable text but lacks an identifier or a name. Partial cards are
// dropped rather than stored with a synthetic key.
func (p *CardParser) Parse(text string, serial int) (*domain.VoterCardCandidate, error) {
	trimmed := strings.TrimSpace(text)
	if utf8.RuneCountInString(trimmed) < p.minRunes {
		return nil, nil
	}

	cand := &domain.VoterCardCandidate{Serial: serial}

	if m := epicRe.FindString(trimmed); m != "" {
		cand.EpicID = m
	}
	if m := nameRe.FindStringSubmatch(trimmed); m != nil {
		cand.Name = strings.TrimSpace(m[1])
	}
	if m := guardianRe.FindStringSubmatch(trimmed); m != nil {
		cand.GuardianName = strings.TrimSpace(m[2])
		if m[1] == husbandLabel {
			cand.GuardianRelation = domain.RelationHusband
		} else {
			cand.GuardianRelation = domain.RelationFather
		}
	}
	if m := houseRe.FindStringSubmatch(trimmed); m != nil {
		cand.HouseDetail = strings.TrimSpace(m[1])
	}
	if m := ageRe.FindStringSubmatch(trimmed); m != nil {
		if age, err := strconv.Atoi(m[1]); err == nil {
			cand.Age = domain.IntPtr(age)
		}
	}
	if m := genderRe.FindStringSubmatch(trimmed); m != nil {
		cand.Gender = strings.TrimSpace(m[1])
	}

	if cand.EpicID == "" || cand.Name == "" {
		return nil, domain.ParseRejection("card lacks identifier or name", nil)
	}
	return cand, nil
}
