package content

import "github.com/abhisek/studyiz/internal/llm"

// Structured-output providers require an object at the root, so list
// artifacts are wrapped in a single-field object.

// SyllabusSchema defines the JSON schema for a chapter's topic list.
var SyllabusSchema = &llm.Schema{
	Name:        "syllabus",
	Description: "Ordered list of topic titles covering a textbook chapter",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"topics": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"minItems":    1,
				"description": "Topic titles in teaching order (4-8 items)",
			},
		},
		"required":             []any{"topics"},
		"additionalProperties": false,
	},
}

// ExplanationSchema defines the JSON schema for one topic explanation.
var ExplanationSchema = &llm.Schema{
	Name:        "explanation",
	Description: "Markdown explanation of a single topic with cited sources",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"content": map[string]any{
				"type":        "string",
				"description": "Markdown body. Use headings, lists and $...$ for formulas",
			},
			"sources": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title": map[string]any{"type": "string"},
						"uri":   map[string]any{"type": "string"},
					},
					"required":             []any{"title", "uri"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"content", "sources"},
		"additionalProperties": false,
	},
}

// QuizSchema defines the JSON schema for chapter quiz questions.
var QuizSchema = &llm.Schema{
	Name:        "quiz",
	Description: "Multiple-choice questions testing a chapter",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"questions": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"question": map[string]any{"type": "string"},
						"options": map[string]any{
							"type":     "array",
							"items":    map[string]any{"type": "string"},
							"minItems": OptionCount,
							"maxItems": OptionCount,
						},
						"correctAnswer": map[string]any{
							"type":    "integer",
							"minimum": 0,
							"maximum": OptionCount - 1,
						},
						"explanation": map[string]any{"type": "string"},
					},
					"required":             []any{"question", "options", "correctAnswer", "explanation"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"questions"},
		"additionalProperties": false,
	},
}

// GlossarySchema defines the JSON schema for chapter glossary terms.
var GlossarySchema = &llm.Schema{
	Name:        "glossary",
	Description: "Key terms of a chapter with short definitions",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"terms": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"term":       map[string]any{"type": "string"},
						"definition": map[string]any{"type": "string"},
					},
					"required":             []any{"term", "definition"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"terms"},
		"additionalProperties": false,
	},
}
