package format

import (
	"encoding/json"
	"io"

	"github.com/dhamidi/descent/ebnf"
)

type JSONEncoder struct {
	w io.Writer
}

func NewJSONEncoder(w io.Writer) *JSONEncoder {
	return &JSONEncoder{w: w}
}

func (e *JSONEncoder) Encode(node *ebnf.Node) error {
	text, err := e.MarshalText(node)
	if err != nil {
		return err
	}
	text = append(text, '\n')
	_, err = e.w.Write(text)
	return err
}

func (e *JSONEncoder) MarshalText(node *ebnf.Node) ([]byte, error) {
	return json.MarshalIndent(nodeToTree(node), "", "  ")
}
