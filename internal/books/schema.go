package books

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// volumesSchema pins the shape the renderer relies on. Unknown keys are allowed
// and optional fields may be null; an item without volumeInfo or a non-string
// title is rejected.
const volumesSchema = `{
  "type": "object",
  "properties": {
    "totalItems": {"type": "integer"},
    "items": {
      "type": ["array", "null"],
      "items": {
        "type": "object",
        "required": ["volumeInfo"],
        "properties": {
          "volumeInfo": {
            "type": "object",
            "properties": {
              "title": {"type": ["string", "null"]},
              "authors": {"type": ["array", "null"], "items": {"type": "string"}},
              "imageLinks": {
                "type": ["object", "null"],
                "properties": {
                  "smallThumbnail": {"type": ["string", "null"]},
                  "thumbnail": {"type": ["string", "null"]}
                }
              }
            }
          }
        }
      }
    }
  }
}`

var schema = mustSchema(volumesSchema)

func mustSchema(src string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("volumes schema: %v", err))
	}
	return s
}

// validate checks body against the volumes schema. Malformed JSON also fails here.
func validate(body []byte) error {
	res, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return &DecodeError{Err: err}
	}
	if res.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return &DecodeError{Err: errors.New(strings.Join(msgs, "; "))}
}
