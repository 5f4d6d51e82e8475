package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fiscalite/taxsim/internal/domain"
	"gopkg.in/yaml.v3"
)

// InputParser handles parsing of simulation request files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a simulation request from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.SimulationRequest, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes a single request document. Unknown fields are rejected so a
// misspelled input is not silently ignored.
func (ip *InputParser) Parse(data []byte) (*domain.SimulationRequest, error) {
	var req domain.SimulationRequest
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&req); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("failed to parse YAML: empty document")
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateRequest(&req); err != nil {
		return nil, fmt.Errorf("request validation failed: %w", err)
	}
	return &req, nil
}

// ValidateRequest validates a decoded request and normalizes its simulator name
func (ip *InputParser) ValidateRequest(req *domain.SimulationRequest) error {
	kind, err := domain.ParseKind(string(req.Simulator))
	if err != nil {
		return err
	}
	req.Simulator = kind
	return req.Validate()
}
