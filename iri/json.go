/*
Copyright 2026 Koilabs Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package iri

import (
	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// MarshalJSON encodes the reference as its recomposed string form.
func (r *Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

// UnmarshalJSON decodes a JSON string and parses it as an IRI reference,
// so invalid references are rejected at decode time. An empty string yields
// the empty reference.
func (r *Ref) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	if s == "" {
		*r = Ref{}
		return nil
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*r = *parsed
	return nil
}

// MarshalYAML encodes the reference as its recomposed string form.
func (r *Ref) MarshalYAML() (interface{}, error) {
	return r.String(), nil
}

// UnmarshalYAML decodes a YAML scalar and parses it as an IRI reference.
func (r *Ref) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return err
	}
	if s == "" {
		*r = Ref{}
		return nil
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*r = *parsed
	return nil
}
