package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPersona() Persona {
	return Persona{
		Name:              "Rebecca",
		Desc:              "A visionary entrepreneur and trendspotter.",
		ShortBio:          "A visionary entrepreneur pushing bold, AI-driven consumer products.",
		DomainExpertise:   []string{"Entrepreneurship", "Brand Strategy"},
		PersonalityTraits: []string{"Visionary", "Bold"},
		RoleFunction:      "Founder & Trendspotter",
		ExperienceLevel:   "Expert",
		StyleKeywords:     []string{"Disruptive", "Creative"},
	}
}

func TestPersonaValidate(t *testing.T) {
	p := validPersona()
	require.NoError(t, p.Validate())
}

func TestPersonaValidate_MissingFields(t *testing.T) {
	p := validPersona()
	p.Desc = ""
	p.StyleKeywords = nil

	err := p.Validate()
	require.Error(t, err)
	assert.Equal(t, ErrPersonaInvalid, GetErrorCode(err))
	assert.Contains(t, err.Error(), "desc")
	assert.Contains(t, err.Error(), "style_keywords")
}

func TestNormalizeName(t *testing.T) {
	assert.Equal(t, "steve-jobs", NormalizeName("Steve Jobs"))
	assert.Equal(t, "rebecca", NormalizeName("  Rebecca "))
}

func TestNormalizeDomain(t *testing.T) {
	assert.Equal(t, "ai ethics", NormalizeDomain(" AI Ethics "))
}
