package fonts

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolveLink_EmptyWebFontsYieldsNothing(t *testing.T) {
	for _, provider := range []string{ProviderGoogle, ProviderCoollabs, "custom", ""} {
		require.Nil(t, ResolveLink(Options{Provider: provider}), provider)
	}
}

func TestResolveLink_Google(t *testing.T) {
	link := ResolveLink(Options{Provider: ProviderGoogle, WebFonts: []string{"Fira Code"}})
	require.NotNil(t, link)
	require.Equal(t, "stylesheet", link.Rel)
	require.Equal(t, "text/css", link.Type)
	require.Equal(t, "https://fonts.googleapis.com/css2?family=Fira+Code:wght@200;400;600&display=swap", link.Href)
}

func TestResolveLink_Coollabs(t *testing.T) {
	link := ResolveLink(Options{Provider: ProviderCoollabs, WebFonts: []string{"Inter"}, Weights: []string{"400"}})
	require.NotNil(t, link)
	require.Equal(t, "https://api.fonts.coollabs.io/css2?family=Inter:wght@400&display=swap", link.Href)
}

func TestResolveLink_UnknownProviderIsSilent(t *testing.T) {
	require.Nil(t, ResolveLink(Options{Provider: "bunny", WebFonts: []string{"Inter"}}))
	require.Nil(t, ResolveLink(Options{Provider: ProviderNone, WebFonts: []string{"Inter"}}))
}

func TestGoogleURL_ItalicAndMultipleFamilies(t *testing.T) {
	url := GoogleURL(Options{
		WebFonts: []string{"'Nunito Sans'", "\"Roboto Mono\""},
		Weights:  []string{"600", "400"},
		Italic:   true,
	})
	require.Equal(t,
		"https://fonts.googleapis.com/css2?family=Nunito+Sans:ital,wght@0,400;0,600;1,400;1,600"+
			"&family=Roboto+Mono:ital,wght@0,400;0,600;1,400;1,600&display=swap",
		url)
}

func TestFamilyParam(t *testing.T) {
	require.Equal(t, "Open+Sans", familyParam("  Open   Sans "))
	require.Equal(t, "Lato", familyParam("'Lato'"))
	require.Equal(t, "'Lato\"", familyParam("'Lato\""))
}
