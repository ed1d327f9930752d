package commands

import "strings"

var htmlTags = strings.NewReplacer("<b>", "", "</b>", "")

// stripHTML drops the Telegram formatting tags for terminal output.
func stripHTML(s string) string {
	return htmlTags.Replace(s)
}
