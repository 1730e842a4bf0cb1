package module

import (
	"fmt"
	"sort"
)

// see https://civitai.com/articles/260/can-we-identify-most-stable-diffusion-model-issues-with-just-a-few-circles
const CommonNegativePrompt = "ugly, old, mutation, low quality, doll, long neck, text, signature, artist " +
	"name, bad anatomy, poorly drawn, malformed, deformed, blurry, out of focus, noise, dust"

type TestDefinition struct {
	Prompt         string
	NegativePrompt string
}

// Registry test definitions by name
type Registry map[string]TestDefinition

func DefaultTests() Registry {
	return Registry{
		"jenifer_lawrence": {
			Prompt:         "photo of (Jennifer Lawrence:0.9) beautiful young professional photo high quality highres makeup",
			NegativePrompt: CommonNegativePrompt,
		},
		"woman_photo": {
			Prompt:         "photo of woman standing full body beautiful young professional photo high quality highres makeup",
			NegativePrompt: CommonNegativePrompt,
		},
		"naked_woman": {
			Prompt:         "photo of naked woman sexy beautiful young professional photo high quality highres makeup",
			NegativePrompt: CommonNegativePrompt,
		},
		"streets": {
			Prompt:         "photo of city detailed streets roads buildings professional photo high quality highres",
			NegativePrompt: CommonNegativePrompt,
		},
		"circle": {
			Prompt: "minimalism simple illustration vector art style clean single black circle inside " +
				"white rectangle symmetric shape sharp professional print quality highres high contrast black and white",
			NegativePrompt: CommonNegativePrompt,
		},
		"man_photo": {
			Prompt:         "photo of man standing full body beautiful young professional photo high quality highres",
			NegativePrompt: CommonNegativePrompt,
		},
		"woman": {Prompt: "woman"},
		"man":   {Prompt: "man"},
	}
}

func (r Registry) Lookup(name string) (TestDefinition, error) {
	test, ok := r[name]
	if !ok {
		return TestDefinition{}, fmt.Errorf("%w: %s", ErrUnknownTest, name)
	}
	return test, nil
}

// Names sorted test names
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
