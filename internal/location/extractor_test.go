package location

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtract_KnownDistrict(t *testing.T) {
	e := New(nil, "")
	require.Equal(t, "Coimbatore", e.Extract("Groundwater status in Coimbatore is critical"))
}

func TestExtract_Fallback(t *testing.T) {
	e := New(nil, "")
	require.Equal(t, DefaultFallback, e.Extract("General overview"))
	require.Equal(t, DefaultFallback, e.Extract(""))
}

func TestExtract_ConfiguredFallback(t *testing.T) {
	e := New(nil, "Generic Region")
	require.Equal(t, "Generic Region", e.Extract("no district here"))
}

func TestExtract_FirstOccurrenceWins(t *testing.T) {
	e := New(nil, "")
	require.Equal(t, "Salem", e.Extract("Compare Salem with Erode and Madurai"))
	require.Equal(t, "Erode", e.Extract("Erode vs Salem water levels"))
}

func TestExtract_CaseInsensitive(t *testing.T) {
	e := New(nil, "")
	require.Equal(t, "Madurai", e.Extract("what about MADURAI?"))
	require.Equal(t, "Chennai", e.Extract("chennai borewell rules"))
}

func TestExtract_WholeTokenOnly(t *testing.T) {
	e := New(nil, "")
	// Substrings embedded in longer tokens must not match.
	require.Equal(t, DefaultFallback, e.Extract("The Salemville aquifer report"))
	require.Equal(t, DefaultFallback, e.Extract("Karurian geology"))
}

func TestExtract_CustomDistricts(t *testing.T) {
	e := New([]string{"Northland", "Southland"}, "Nowhere")
	require.Equal(t, "Southland", e.Extract("rain in southland today"))
	require.Equal(t, "Nowhere", e.Extract("rain in Chennai today"))
}
