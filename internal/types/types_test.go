package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywords_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want Keywords
	}{
		{name: "list", in: `["a","b"]`, want: Keywords{"a", "b"}},
		{name: "single string", in: `"bread"`, want: Keywords{"bread"}},
		{name: "blank string", in: `"  "`, want: nil},
		{name: "null", in: `null`, want: nil},
		{name: "empty list", in: `[]`, want: Keywords{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Keywords
			require.NoError(t, json.Unmarshal([]byte(tt.in), &got))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKeywords_RejectsNumbers(t *testing.T) {
	var got Keywords
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &got))
}

func TestBlueprint_OptionalFieldsStayNil(t *testing.T) {
	var bp Blueprint
	require.NoError(t, json.Unmarshal([]byte(`{"sections":{"home":{"title":"Hi"}}}`), &bp))

	assert.Nil(t, bp.Palette)
	assert.Nil(t, bp.Typography)
	assert.Equal(t, "Hi", bp.Sections["home"].Title)
	assert.Empty(t, bp.Sections["home"].Keywords)
}

func TestSections_MarshalKeepsOrder(t *testing.T) {
	sections := Sections{
		{Key: "home", Section: SectionResult{Title: "Home"}},
		{Key: "about", Section: SectionResult{Title: "About"}},
		{Key: "Contact", Section: SectionResult{Title: "Contact", SocialIcons: []SocialIcon{{Icon: "x", Link: "#"}}}},
	}

	data, err := json.Marshal(Payload{SiteTitle: "S", Sections: sections})
	require.NoError(t, err)

	var decoded Payload
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, []string{"home", "about", "Contact"}, decoded.Sections.Keys())

	contact, ok := decoded.Sections.Get("Contact")
	require.True(t, ok)
	assert.Len(t, contact.SocialIcons, 1)

	home, ok := decoded.Sections.Get("home")
	require.True(t, ok)
	assert.Nil(t, home.SocialIcons)
	assert.NotContains(t, string(data), `"socialIcons":null`)
}

func TestSections_MarshalEmpty(t *testing.T) {
	data, err := json.Marshal(Sections(nil))
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}
