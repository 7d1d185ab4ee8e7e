package code

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnsupportedLanguage is returned when a language name has no engine id.
// It is raised before any request reaches the engine.
var ErrUnsupportedLanguage = errors.New("unsupported language")

// Language describes a language the editor can run.
type Language struct {
	Name       string `json:"name"`
	LanguageID int    `json:"language_id"`
	Starter    string `json:"starter"`
}

// languages maps editor language names to Judge0 CE language ids.
var languages = map[string]Language{
	"javascript": {
		Name:       "javascript",
		LanguageID: 63, // Node.js
		Starter:    "// This is a simple JavaScript program\nconsole.log(\"Hello World\")",
	},
	"cpp": {
		Name:       "cpp",
		LanguageID: 54, // C++ (GCC 9.2.0)
		Starter:    "// This is a simple C++ program\n#include <iostream>\n\nint main() {\n    std::cout << \"Hello World\" << std::endl;\n    return 0;\n}",
	},
	"python": {
		Name:       "python",
		LanguageID: 71, // Python (3.8.1)
		Starter:    "# This is a simple Python program\nprint(\"Hello World\")",
	},
}

// LookupLanguage resolves a language name. Unknown names never fall back to
// a default language.
func LookupLanguage(name string) (Language, error) {
	lang, ok := languages[name]
	if !ok {
		return Language{}, fmt.Errorf("%w: %q", ErrUnsupportedLanguage, name)
	}
	return lang, nil
}

// LanguageID returns the engine id for name.
func LanguageID(name string) (int, error) {
	lang, err := LookupLanguage(name)
	if err != nil {
		return 0, err
	}
	return lang.LanguageID, nil
}

// Languages returns every supported language ordered by name.
func Languages() []Language {
	out := make([]Language, 0, len(languages))
	for _, l := range languages {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
