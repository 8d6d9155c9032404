package render

import (
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2/lexers"
)

// LanguageNone is the Prism class for files without a known language.
const LanguageNone = "none"

// languages maps file extensions to Prism language classes. These mappings
// are fixed; chroma only answers for extensions missing here.
var languages = map[string]string{
	".c":     "clike",
	".cpp":   "clike",
	".cc":    "clike",
	".h":     "clike",
	".hpp":   "clike",
	".cxx":   "clike",
	".java":  "java",
	".xml":   "markup",
	".html":  "markup",
	".jelly": "markup",
	".js":    "javascript",
	".py":    "python",
	".txt":   LanguageNone,
}

// Language returns the Prism language class for fileName, derived from its
// extension. Returns LanguageNone when nothing matches.
func Language(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if ext == "" {
		return LanguageNone
	}
	if lang, ok := languages[ext]; ok {
		return lang
	}

	lexer := lexers.Match(filepath.Base(fileName))
	if lexer == nil {
		return LanguageNone
	}
	cfg := lexer.Config()
	if cfg == nil || cfg.Name == "plaintext" || len(cfg.Aliases) == 0 {
		return LanguageNone
	}
	return strings.ToLower(cfg.Aliases[0])
}
