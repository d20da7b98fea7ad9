package extract

import (
	"github.com/AzadNikarthil/rollscan/internal/domain"
	"github.com/AzadNikarthil/rollscan/internal/observability"
)

// ContextExtractor recovers document-level metadata from page 1 text.
type ContextExtractor struct {
	log *observability.Logger
}

// NewContextExtractor creates a context extractor.
func NewContextExtractor(log *observability.Logger) *ContextExtractor {
	return &ContextExtractor{log: log}
}

// Extract runs the label-anchored scan over recognized page-1 text. Missing
// fields are recorded absent and logged as soft warnings; extraction never
// fails, even on empty or garbage text.
func (e *ContextExtractor) Extract(text string) domain.ContextRecord {
	var rec domain.ContextRecord

	for _, kind := range contextFieldOrder {
		value, ok := findLabeledValue(text, kind)
		if !ok {
			e.log.Warn().Str("field", string(kind)).Msg("context field not found on page 1")
			continue
		}

		if numericContextFields[kind] {
			n, ok := reduceToInt(value)
			if !ok {
				e.log.Warn().Str("field", string(kind)).Str("raw", value).
					Msg("context field captured but contains no digits")
				continue
			}
			switch kind {
			case FieldConstituencyNo:
				rec.ConstituencyNumber = domain.IntPtr(n)
			case FieldPartNo:
				rec.PartNumber = domain.IntPtr(n)
			case FieldPincode:
				rec.Pincode = domain.IntPtr(n)
			}
			e.log.Debug().Str("field", string(kind)).Int("value", n).Msg("context field found")
			continue
		}

		switch kind {
		case FieldConstituencyName:
			rec.ConstituencyName = value
		case FieldParliamentaryName:
			rec.ParliamentaryName = value
		case FieldPublicationDate:
			rec.PublicationDate = value
		case FieldQualificationDate:
			rec.QualificationDate = value
		case FieldDistrictName:
			rec.DistrictName = value
		case FieldStationName:
			rec.PollingStationName = value
		case FieldStationAddress:
			rec.PollingStationAddress = value
		}
		e.log.Debug().Str("field", string(kind)).Str("value", value).Msg("context field found")
	}

	return rec
}
