package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AzadNikarthil/rollscan/internal/domain"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"dash separated", "05-01-2024", "2024-01-05"},
		{"slash separated", "05/01/2024", "2024-01-05"},
		{"dot separated", "05.01.2024", "2024-01-05"},
		{"mixed separators", "05-01/2024", "2024-01-05"},
		{"padded", "  05-01-2024  ", "2024-01-05"},
		{"empty", "", ""},
		{"not a date", "notadate", ""},
		{"too many parts", "05-01-20-24", ""},
		{"too few parts", "05-2024", ""},
		{"empty component", "05--2024", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeDate(tt.raw))
		})
	}
}

func TestComposeAddress(t *testing.T) {
	pin := 695527

	tests := []struct {
		name     string
		house    string
		section  string
		station  string
		district string
		pincode  *int
		want     string
	}{
		{
			"all parts",
			"12എ", "", "മെയിൻ റോഡ്, കോവളം", "തിരുവനന്തപുരം", &pin,
			"12എ, മെയിൻ റോഡ്, കോവളം, തിരുവനന്തപുരം 695527",
		},
		{
			"missing middle part",
			"12എ", "", "", "തിരുവനന്തപുരം", nil,
			"12എ, തിരുവനന്തപുരം",
		},
		{
			"pincode only",
			"", "", "", "", &pin,
			"695527",
		},
		{
			"nothing",
			"", "", "", "", nil,
			"",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComposeAddress(tt.house, tt.section, tt.station, tt.district, tt.pincode)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAssemble(t *testing.T) {
	cand := &domain.VoterCardCandidate{
		Serial:           7,
		EpicID:           "ABC1234567",
		Name:             "രാജേഷ് കുമാർ",
		GuardianName:     "മോഹനൻ നായർ",
		GuardianRelation: domain.RelationFather,
		Age:              domain.IntPtr(34),
		Gender:           "പുരുഷൻ",
		HouseDetail:      "12എ",
	}
	ctxRec := domain.ContextRecord{
		ConstituencyName:      "കോവളം",
		ConstituencyNumber:    domain.IntPtr(133),
		ParliamentaryName:     "തിരുവനന്തപുരം",
		PartNumber:            domain.IntPtr(42),
		PublicationDate:       "05-01-2024",
		DistrictName:          "തിരുവനന്തപുരം",
		PollingStationName:    "ഗവ. എൽ. പി. സ്കൂൾ",
		PollingStationAddress: "മെയിൻ റോഡ്, കോവളം",
		Pincode:               domain.IntPtr(695527),
	}

	rec := Assemble(cand, ctxRec, "part_042.pdf")

	assert.Equal(t, "ABC1234567", rec.EpicID)
	assert.Equal(t, "രാജേഷ് കുമാർ", rec.Name)
	assert.Equal(t, "മോഹനൻ നായർ", rec.GuardianName)
	assert.Equal(t, domain.RelationFather, rec.GuardianRelation)
	require.NotNil(t, rec.Age)
	assert.Equal(t, 34, *rec.Age)
	assert.Equal(t, "12എ, മെയിൻ റോഡ്, കോവളം, തിരുവനന്തപുരം 695527", rec.FullAddress)
	require.NotNil(t, rec.Pincode)
	assert.Equal(t, 695527, *rec.Pincode)
	require.NotNil(t, rec.PartNumber)
	assert.Equal(t, 42, *rec.PartNumber)
	assert.Equal(t, "ഗവ. എൽ. പി. സ്കൂൾ", rec.PollingStationName)
	assert.Equal(t, "കോവളം", rec.ConstituencyName)
	assert.Equal(t, "2024-01-05", rec.PublicationDate)
	assert.Equal(t, "part_042.pdf", rec.SourceFile)

	// Section extraction is not implemented: the columns stay absent.
	assert.Empty(t, rec.SectionName)
	assert.Nil(t, rec.SectionNumber)
}

func TestAssemble_EmptyContext(t *testing.T) {
	cand := &domain.VoterCardCandidate{
		Serial: 1,
		EpicID: "XYZ7654321",
		Name:   "ലക്ഷ്മി",
	}

	rec := Assemble(cand, domain.ContextRecord{}, "roll.pdf")

	assert.Equal(t, "XYZ7654321", rec.EpicID)
	assert.Empty(t, rec.FullAddress)
	assert.Nil(t, rec.Pincode)
	assert.Empty(t, rec.PublicationDate)
}
