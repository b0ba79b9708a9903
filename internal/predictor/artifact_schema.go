package predictor

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// xgboostDocumentSchema is the subset of XGBoost's JSON model layout the
// evaluator reads.
const xgboostDocumentSchema = `{
  "type": "object",
  "required": ["learner"],
  "properties": {
    "learner": {
      "type": "object",
      "required": ["gradient_booster", "learner_model_param"],
      "properties": {
        "feature_names": {"type": "array", "items": {"type": "string"}},
        "learner_model_param": {
          "type": "object",
          "required": ["base_score", "num_feature"],
          "properties": {
            "base_score": {"type": "string"},
            "num_feature": {"type": "string"}
          }
        },
        "objective": {
          "type": "object",
          "properties": {"name": {"type": "string"}}
        },
        "gradient_booster": {
          "type": "object",
          "required": ["name", "model"],
          "properties": {
            "name": {"enum": ["gbtree"]},
            "model": {
              "type": "object",
              "required": ["trees"],
              "properties": {
                "trees": {
                  "type": "array",
                  "minItems": 1,
                  "items": {
                    "type": "object",
                    "required": ["left_children", "right_children", "split_indices", "split_conditions", "default_left"],
                    "properties": {
                      "left_children": {"type": "array", "minItems": 1, "items": {"type": "integer"}},
                      "right_children": {"type": "array", "minItems": 1, "items": {"type": "integer"}},
                      "split_indices": {"type": "array", "items": {"type": "integer", "minimum": 0}},
                      "split_conditions": {"type": "array", "items": {"type": "number"}},
                      "default_left": {"type": "array", "items": {"type": ["integer", "boolean"]}},
                      "split_type": {"type": "array", "items": {"enum": [0]}}
                    }
                  }
                }
              }
            }
          }
        }
      }
    }
  }
}`

var xgboostSchemaLoader = gojsonschema.NewStringLoader(xgboostDocumentSchema)

// validateDocument checks data against the XGBoost layout and joins every
// violation into one diagnostic.
func validateDocument(data []byte) error {
	result, err := gojsonschema.Validate(xgboostSchemaLoader, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrArtifact, err)
	}
	if result.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrArtifact, strings.Join(msgs, "; "))
}
