package parser

var keywords = []string{"list", "add", "read", "find", "edit", "close", "open", "delete", "setting", "help", "bye"}

var usages = map[string]string{
	"list":    "list [--status <open|closed|all>] [--mode <summary|verbose>]",
	"add":     "add --category <CATEGORY> --title <TITLE> --date <DATE> --info <INFO> [--victim <VICTIM>] [--officer <OFFICER>] [--<field> <value> ...]",
	"read":    "read <CASE_ID>",
	"find":    "find --keyword <KEYWORD>",
	"edit":    "edit <CASE_ID> [--<field> <value> ...]",
	"close":   "close <CASE_ID>",
	"open":    "open <CASE_ID>",
	"delete":  "delete <CASE_ID>",
	"setting": "setting --type <dateinput|dateoutput|timestampoutput> --value <PATTERN>",
	"help":    "help",
	"bye":     "bye",
}

// Keywords lists the recognised command keywords in help order.
func Keywords() []string {
	return append([]string(nil), keywords...)
}

// Usage returns the usage line of a command keyword, or "" if unknown.
func Usage(keyword string) string {
	return usages[keyword]
}
