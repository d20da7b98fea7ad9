package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AzadNikarthil/rollscan/internal/domain"
)

const sampleCard = `ABC1234567
പേര് : രാജേഷ് കുമാർ
അച്ഛന്റെ പേര് : മോഹനൻ നായർ
വീട്ടു നമ്പർ : 12എ
വയസ്സ് : 34
ലിംഗം : പുരുഷൻ`

func TestCardParser_FullCard(t *testing.T) {
	p := NewCardParser(15)

	cand, err := p.Parse(sampleCard, 7)
	require.NoError(t, err)
	require.NotNil(t, cand)

	assert.Equal(t, 7, cand.Serial)
	assert.Equal(t, "ABC1234567", cand.EpicID)
	assert.Equal(t, "രാജേഷ് കുമാർ", cand.Name)
	assert.Equal(t, "മോഹനൻ നായർ", cand.GuardianName)
	assert.Equal(t, domain.RelationFather, cand.GuardianRelation)
	assert.Equal(t, "12എ", cand.HouseDetail)
	require.NotNil(t, cand.Age)
	assert.Equal(t, 34, *cand.Age)
	assert.Equal(t, "പുരുഷൻ", cand.Gender)
}

func TestCardParser_HusbandRelation(t *testing.T) {
	p := NewCardParser(15)

	text := "XYZ7654321\nപേര് : ലക്ഷ്മി\nഭർത്താവിന്റെ പേര് : സുരേഷ്"
	cand, err := p.Parse(text, 1)
	require.NoError(t, err)
	require.NotNil(t, cand)

	assert.Equal(t, "സുരേഷ്", cand.GuardianName)
	assert.Equal(t, domain.RelationHusband, cand.GuardianRelation)
}

func TestCardParser_EmptySlot(t *testing.T) {
	p := NewCardParser(15)

	tests := []struct {
		name string
		text string
	}{
		{"blank", ""},
		{"whitespace", "   \n\t  "},
		{"short noise", "|...|"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cand, err := p.Parse(tt.text, 1)
			assert.NoError(t, err)
			assert.Nil(t, cand)
		})
	}
}

func TestCardParser_RejectsWithoutIdentifierOrName(t *testing.T) {
	p := NewCardParser(15)

	tests := []struct {
		name string
		text string
	}{
		{
			"identifier but no name",
			"ABC1234567\nവീട്ടു നമ്പർ : 12\nവയസ്സ് : 30\nലിംഗം : സ്ത്രീ",
		},
		{
			"name but no identifier",
			"പേര് : രാജേഷ് കുമാർ\nവയസ്സ് : 30\nലിംഗം : പുരുഷൻ",
		},
		{
			"identifier pattern too short",
			"AB1234567 nothing else recognizable here പേര് :  ",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cand, err := p.Parse(tt.text, 1)
			assert.Nil(t, cand)
			require.Error(t, err)
			assert.Equal(t, domain.ErrorKindParse, domain.KindOf(err))
		})
	}
}

func TestCardParser_RejectionIsStable(t *testing.T) {
	// The drop rule must hold across repeated parses of the same input.
	p := NewCardParser(15)
	text := "ABC1234567\nവീട്ടു നമ്പർ : 12, വയസ്സ് : 30"

	for i := 0; i < 3; i++ {
		cand, err := p.Parse(text, 1)
		assert.Nil(t, cand)
		assert.Error(t, err)
	}
}
