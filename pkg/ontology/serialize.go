package ontology

import "encoding/json"

// MarshalRun renders a run as a JSON document.
func MarshalRun(run *Run) ([]byte, error) {
	return json.Marshal(run)
}

// UnmarshalRun parses a JSON document into a run, applying defaults and
// validating every entity on the way in.
func UnmarshalRun(data []byte) (*Run, error) {
	var run Run
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

// ToDocument converts a run into a generic JSON-shaped map, the form the
// store and API layers pass around.
func ToDocument(run *Run) (map[string]any, error) {
	data, err := json.Marshal(run)
	if err != nil {
		return nil, err
	}
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// FromDocument is the inverse of ToDocument.
func FromDocument(doc map[string]any) (*Run, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return UnmarshalRun(data)
}
