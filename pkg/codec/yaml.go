package codec

import (
	"encoding/json"
	"fmt"

	"github.com/dukex/nfgrapher/pkg/score"
	"gopkg.in/yaml.v3"
)

// DecodeYAML reads a score authored in YAML. The document is converted to its
// JSON form and then validated exactly like Decode.
func DecodeYAML(data []byte) (*score.Score, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &SchemaValidationError{Issues: []FieldError{{Field: "(root)", Msg: err.Error()}}}
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, &SchemaValidationError{Issues: []FieldError{{Field: "(root)", Msg: err.Error()}}}
	}

	return Decode(raw)
}

// EncodeYAML returns s as a block-style YAML document with the same key order
// as the JSON encoding.
func EncodeYAML(s *score.Score) ([]byte, error) {
	data, err := Encode(s)
	if err != nil {
		return nil, err
	}

	// JSON is a subset of YAML, so the node tree keeps the canonical key order.
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("encoding score as yaml: %w", err)
	}

	blockStyle(&doc)

	out, err := yaml.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("encoding score as yaml: %w", err)
	}

	return out, nil
}

func blockStyle(n *yaml.Node) {
	n.Style &^= yaml.FlowStyle | yaml.DoubleQuotedStyle

	for _, c := range n.Content {
		blockStyle(c)
	}
}
