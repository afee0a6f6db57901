package download

import "strings"

var replacer = strings.NewReplacer(
	":", "_",
	"/", "_",
	"<", "_",
	">", "_",
	"\"", "_",
	"\\", "_",
	"|", "_",
	"?", "_",
	"*", "_",
	" ", "_",
)

// MakeValid turns a result title into a filesystem-safe file stem.
func MakeValid(name string) string {
	name = strings.Trim(replacer.Replace(strings.TrimSpace(name)), "._")
	if name == "" {
		return "untitled"
	}
	return name
}
