package sharepoint

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/custodia-labs/sharepoint-mcp/internal/connectors/microsoft"
)

const schemaBaseURL = "https://schemas.sharepoint-mcp.local/graph/"

// Response schemas per Graph endpoint. Only the fields the connector reads
// are constrained; everything else may vary freely.
var schemaSources = map[string]string{
	"driveItem.json": `{
		"type": "object",
		"required": ["id", "name"],
		"properties": {
			"id": {"type": "string", "minLength": 1},
			"name": {"type": "string"},
			"size": {"type": "integer"},
			"webUrl": {"type": "string"},
			"createdDateTime": {"type": "string"},
			"lastModifiedDateTime": {"type": "string"},
			"createdBy": {
				"type": "object",
				"properties": {
					"user": {
						"type": "object",
						"properties": {"displayName": {"type": "string"}}
					}
				}
			},
			"file": {"type": "object"},
			"folder": {
				"type": "object",
				"properties": {"childCount": {"type": "integer"}}
			}
		}
	}`,
	"site.json": `{
		"type": "object",
		"required": ["id"],
		"properties": {
			"id": {"type": "string", "minLength": 1},
			"name": {"type": "string"},
			"displayName": {"type": "string"},
			"webUrl": {"type": "string"}
		}
	}`,
	"drive.json": `{
		"type": "object",
		"required": ["id"],
		"properties": {
			"id": {"type": "string", "minLength": 1},
			"name": {"type": "string"},
			"driveType": {"type": "string"},
			"webUrl": {"type": "string"}
		}
	}`,
	"driveItemCollection.json": `{
		"type": "object",
		"required": ["value"],
		"properties": {
			"value": {"type": "array", "items": {"$ref": "driveItem.json"}}
		}
	}`,
	"siteCollection.json": `{
		"type": "object",
		"required": ["value"],
		"properties": {
			"value": {"type": "array", "items": {"$ref": "site.json"}}
		}
	}`,
	"driveCollection.json": `{
		"type": "object",
		"required": ["value"],
		"properties": {
			"value": {"type": "array", "items": {"$ref": "drive.json"}}
		}
	}`,
	"searchResponse.json": `{
		"type": "object",
		"required": ["value"],
		"properties": {
			"value": {
				"type": "array",
				"minItems": 1,
				"items": {
					"type": "object",
					"required": ["hitsContainers"],
					"properties": {
						"hitsContainers": {
							"type": "array",
							"minItems": 1,
							"items": {
								"type": "object",
								"properties": {
									"hits": {
										"type": "array",
										"items": {
											"type": "object",
											"required": ["resource"],
											"properties": {"resource": {"$ref": "driveItem.json"}}
										}
									}
								}
							}
						}
					}
				}
			}
		}
	}`,
}

// responseSchemas holds the compiled schema for each endpoint shape.
type responseSchemas struct {
	driveItem           *jsonschema.Schema
	driveItemCollection *jsonschema.Schema
	siteCollection      *jsonschema.Schema
	driveCollection     *jsonschema.Schema
	searchResponse      *jsonschema.Schema
}

var schemas = mustCompileSchemas()

func compileSchemas() (*responseSchemas, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020

	for name, src := range schemaSources {
		if err := compiler.AddResource(schemaBaseURL+name, strings.NewReader(src)); err != nil {
			return nil, fmt.Errorf("add schema %s: %w", name, err)
		}
	}

	compile := func(name string) (*jsonschema.Schema, error) {
		s, err := compiler.Compile(schemaBaseURL + name)
		if err != nil {
			return nil, fmt.Errorf("compile schema %s: %w", name, err)
		}
		return s, nil
	}

	var (
		rs  responseSchemas
		err error
	)
	if rs.driveItem, err = compile("driveItem.json"); err != nil {
		return nil, err
	}
	if rs.driveItemCollection, err = compile("driveItemCollection.json"); err != nil {
		return nil, err
	}
	if rs.siteCollection, err = compile("siteCollection.json"); err != nil {
		return nil, err
	}
	if rs.driveCollection, err = compile("driveCollection.json"); err != nil {
		return nil, err
	}
	if rs.searchResponse, err = compile("searchResponse.json"); err != nil {
		return nil, err
	}
	return &rs, nil
}

func mustCompileSchemas() *responseSchemas {
	rs, err := compileSchemas()
	if err != nil {
		panic(err)
	}
	return rs
}

// decodeValidated validates body against schema and then decodes it into out.
// Any failure is reported as ErrMalformedResponse.
func decodeValidated(body []byte, schema *jsonschema.Schema, out any) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var instance any
	if err := dec.Decode(&instance); err != nil {
		return fmt.Errorf("%w: invalid JSON: %w", microsoft.ErrMalformedResponse, err)
	}

	if err := schema.Validate(instance); err != nil {
		return fmt.Errorf("%w: %w", microsoft.ErrMalformedResponse, err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("%w: decode: %w", microsoft.ErrMalformedResponse, err)
	}

	return nil
}
