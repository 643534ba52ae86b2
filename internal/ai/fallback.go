package ai

import (
	"fmt"
	"strings"

	"site_prototype_server/internal/types"
	"site_prototype_server/internal/utils"
)

// Default theme values, shared with the section assembler.
var (
	DefaultPalette    = types.Palette{Primary: "#2563eb", Accent: "#0f172a", Bg: "#ffffff"}
	DefaultTypography = types.Typography{Heading: "Poppins", Body: "Inter"}
)

// FallbackBlueprint builds a complete three-section blueprint from the prompt
// alone. It performs no I/O.
func FallbackBlueprint(prompt string) types.Blueprint {
	prompt = strings.TrimSpace(prompt)
	name := utils.TitleCase(prompt)
	if name == "" {
		name = "Your Website"
	}

	palette := DefaultPalette
	typography := DefaultTypography

	return types.Blueprint{
		SiteTitle:  name,
		Palette:    &palette,
		Typography: &typography,
		Sections: map[string]types.SectionSpec{
			"home": {
				Title: fmt.Sprintf("Welcome to %s", name),
				Description: fmt.Sprintf("%s is your ultimate hub for everything about %s. "+
					"Discover engaging content, beautiful layouts, and modern designs "+
					"that make your vision a reality. We blend creativity with technology "+
					"to deliver exceptional user experiences. Our goal is to bring innovation "+
					"and functionality together for seamless navigation and visual appeal.", name, name),
				Keywords: types.Keywords{prompt, "modern", "ideas"},
			},
			"about": {
				Title: "About Us",
				Description: fmt.Sprintf("At %s, we combine innovation with simplicity to create websites "+
					"that not only look stunning but also perform flawlessly. "+
					"Our team thrives on creativity, ensuring each design is responsive, "+
					"intuitive, and visually appealing. We believe in building digital experiences "+
					"that leave a lasting impact.", name),
				Keywords: types.Keywords{prompt, "team", "story"},
			},
			"contact": {
				Title: "Contact",
				Description: fmt.Sprintf("Need help with %s? Or have ideas to share? "+
					"Our doors are always open. We prioritize communication and "+
					"are passionate about building lasting connections through design. "+
					"Reach out to us anytime!", name),
				Keywords: types.Keywords{prompt, "support", "contact"},
			},
		},
	}
}
