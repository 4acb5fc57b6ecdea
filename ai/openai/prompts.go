package openai

import (
	"fmt"

	"github.com/poiesic/knograph/ai"
)

const extractionResponseSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "entities": {
      "type": "object",
      "properties": {
        "persons": {"type": "array", "items": {"$ref": "#/definitions/entity"}},
        "works": {"type": "array", "items": {"$ref": "#/definitions/entity"}},
        "events": {"type": "array", "items": {"$ref": "#/definitions/entity"}}
      },
      "required": ["persons", "works", "events"],
      "additionalProperties": false
    },
    "relations": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "source": {"type": "string"},
          "target": {"type": "string"},
          "type": {"type": "string"},
          "confidence": {"type": "number", "minimum": 0, "maximum": 1}
        },
        "required": ["source", "target", "type"],
        "additionalProperties": false
      }
    }
  },
  "required": ["entities", "relations"],
  "additionalProperties": false,
  "definitions": {
    "entity": {
      "type": "object",
      "properties": {
        "name": {"type": "string"},
        "confidence": {"type": "number", "minimum": 0, "maximum": 1},
        "attributes": {"type": "object", "additionalProperties": {"type": "string"}}
      },
      "required": ["name"],
      "additionalProperties": false
    }
  }
}`

const extractionPromptTemplate = `Extract the people, creative works, and events mentioned in the given text,
together with the relations between them, and return them as JSON.

Output ONLY valid JSON which complies with the schema given below. Do not include any preamble, explanation,
greeting, or acknowledgment. Start your response directly with the opening brace { and end with the closing
brace }. Your output must exactly follow this schema:

%s

Rules:
- Put each entity in exactly one of the containers: persons, works, events.
- Use the surface name exactly as it appears in the text for "name".
- Attributes are optional string key/value pairs: nationality, profession, birth_date for persons;
  work_type, release_date for works; event_type, event_date for events.
- Relation "source" and "target" must reference entity names from this extraction.
- Relation "type" is the verb or role connecting the entities, in the language of the text
  (e.g. "主演", "directed", "married to").
- Confidence is a number from 0 to 1 expressing how certain the fact is. Omit it when unsure.
- Include only entities and relations that are explicitly mentioned or clearly implied. Do not hallucinate.
- If nothing can be identified, return empty arrays.
- The JSON must parse without errors; no trailing commas, no extra keys, and no extraneous text outside the object.

Example:
Input: "张三主演电影《A》"
Output:
{
  "entities": {
    "persons": [{"name":"张三","confidence":0.95,"attributes":{"profession":"演员"}}],
    "works": [{"name":"A","confidence":0.9,"attributes":{"work_type":"movie"}}],
    "events": []
  },
  "relations": [{"source":"张三","target":"A","type":"主演","confidence":0.9}]
}

Example:
Input: "Nolan directed the film Inception, released in 2010."
Output:
{
  "entities": {
    "persons": [{"name":"Nolan","confidence":0.9,"attributes":{"profession":"director"}}],
    "works": [{"name":"Inception","confidence":0.95,"attributes":{"work_type":"film","release_date":"2010"}}],
    "events": []
  },
  "relations": [{"source":"Nolan","target":"Inception","type":"directed","confidence":0.9}]
}`

const socialPromptAddendum = `

Focus: this request is about SOCIAL relations. Extract persons and the interpersonal
relations between them (family, marriage, friendship, collaboration, mentorship).
Works and events should only be extracted when they anchor a relation between persons.`

// buildSystemPrompt creates the system prompt for the requested extraction mode.
func buildSystemPrompt(mode ai.ExtractMode) string {
	prompt := fmt.Sprintf(extractionPromptTemplate, extractionResponseSchema)
	if mode == ai.ModeSocial {
		prompt += socialPromptAddendum
	}
	return prompt
}
