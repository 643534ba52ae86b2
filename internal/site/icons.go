package site

import (
	"strings"

	"site_prototype_server/internal/types"
)

// DefaultIcon is used for section keys without a dedicated icon.
const DefaultIcon = "fa-solid fa-star"

var iconMap = map[string]string{
	"home":     "fa-solid fa-house",
	"about":    "fa-solid fa-circle-info",
	"contact":  "fa-solid fa-envelope",
	"services": "fa-solid fa-briefcase",
	"gallery":  "fa-solid fa-images",
	"blog":     "fa-solid fa-blog",
	"faq":      "fa-solid fa-question-circle",
}

// ResolveIcon maps a section key to a Font Awesome class, ignoring case.
func ResolveIcon(key string) string {
	if icon, ok := iconMap[strings.ToLower(key)]; ok {
		return icon
	}
	return DefaultIcon
}

// ContactSocialIcons returns the social links attached to the contact section.
func ContactSocialIcons() []types.SocialIcon {
	return []types.SocialIcon{
		{Icon: "fa-brands fa-instagram", Link: "#"},
		{Icon: "fa-brands fa-linkedin", Link: "#"},
		{Icon: "fa-brands fa-facebook", Link: "#"},
		{Icon: "fa-brands fa-google", Link: "#"},
	}
}
