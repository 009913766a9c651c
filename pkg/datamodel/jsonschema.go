package datamodel

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

const detectionRequestSchemaURL = "https://github.com/instill-ai/detection-backend/blob/main/pkg/datamodel/schema/detection_request.json"

//go:embed schema/detection_request.json
var detectionRequestSchema []byte

// DetectionRequestJSONSchema represents the JSON Schema for validating the invocation payload
var DetectionRequestJSONSchema = mustCompile(detectionRequestSchemaURL, detectionRequestSchema)

func mustCompile(url string, schema []byte) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(url, bytes.NewReader(schema)); err != nil {
		panic(fmt.Sprintf("add schema resource %s: %v", url, err))
	}
	return compiler.MustCompile(url)
}

// ValidateJSONSchema validates a decoded JSON document and flattens the
// validation causes into a single readable message.
func ValidateJSONSchema(schema *jsonschema.Schema, v any) error {
	err := schema.Validate(v)
	if err == nil {
		return nil
	}

	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err
	}

	var msgs []string
	for _, leaf := range leafCauses(ve) {
		loc := leaf.InstanceLocation
		if loc == "" {
			loc = "/"
		}
		msgs = append(msgs, fmt.Sprintf("%s: %s", loc, leaf.Message))
	}
	return fmt.Errorf("%s", strings.Join(msgs, "; "))
}

func leafCauses(ve *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(ve.Causes) == 0 {
		return []*jsonschema.ValidationError{ve}
	}
	var leaves []*jsonschema.ValidationError
	for _, c := range ve.Causes {
		leaves = append(leaves, leafCauses(c)...)
	}
	return leaves
}
