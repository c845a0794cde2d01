package catalog

// unitSchema validates a unit document before it enters the catalog.
// Content files are hand-authored (or spreadsheet-exported), so bad
// documents are expected and must be rejected loudly at load time.
const unitSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["id", "name", "subject", "grade", "order"],
	"properties": {
		"id":          {"type": "string", "minLength": 1},
		"slug":        {"type": "string"},
		"name":        {"type": "string", "minLength": 1},
		"subject":     {"type": "string", "minLength": 1},
		"grade":       {"type": "integer", "minimum": 1, "maximum": 12},
		"order":       {"type": "integer", "minimum": 0},
		"description": {"type": "string"}
	},
	"additionalProperties": false
}`
