package prompts

import "fmt"

// blueprintInstruction pins the JSON schema the model must answer with.
const blueprintInstruction = `Return ONLY JSON describing a detailed website structure for the given prompt.
Schema:
{"siteTitle":"string","palette":{"primary":"#RRGGBB","accent":"#RRGGBB","bg":"#RRGGBB"},"typography":{"heading":"Font","body":"Font"},"sections":{"uniqueKey":{"title":"string","description":"4-5 sentence long","keywords":["k1","k2","k3"]},...}}
Include Home, About, Services, Contact, and more if relevant.`

// GetBlueprintPrompt returns the full generation prompt for a website idea.
func GetBlueprintPrompt(userPrompt string) string {
	return fmt.Sprintf("%s\n\nPrompt: %s", blueprintInstruction, userPrompt)
}
