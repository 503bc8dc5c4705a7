// Package config defines the replay configuration read by the xrspace command: the reference
// spaces and inputs of a session, and the recorded tracking frames to run through it.
package config

import (
	"strconv"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"

	"go.viam.com/xrspace/inputsource"
	"go.viam.com/xrspace/referencespace"
	"go.viam.com/xrspace/space"
)

// Config is a replay configuration.
type Config struct {
	ConfigFilePath  string           `json:"-"`
	ReferenceSpaces []ReferenceSpace `json:"reference_spaces"`
	Inputs          []Input          `json:"inputs"`
	Frames          []Frame          `json:"frames"`
}

// ReferenceSpace configures one reference space of the session.
type ReferenceSpace struct {
	Name       string                 `json:"name"`
	Type       string                 `json:"type"`
	Attributes map[string]interface{} `json:"attributes,omitempty"`

	// ConvertedAttributes is filled in by Validate.
	ConvertedAttributes *referencespace.Config `json:"-"`
}

// Input configures a tracked input that is connected when the session starts.
type Input struct {
	Name          string `json:"name"`
	Handedness    string `json:"handedness,omitempty"`
	TargetRayMode string `json:"target_ray_mode,omitempty"`
}

// RawPose is a recorded device pose; either part may be omitted.
type RawPose struct {
	Position    *[3]float32 `json:"position,omitempty"`
	Orientation *[4]float32 `json:"orientation,omitempty"`
}

// Frame is one recorded tracking update. Disconnects and connects are applied after input
// poses are updated and before the frame is resolved.
type Frame struct {
	Device     RawPose            `json:"device"`
	Inputs     map[string]RawPose `json:"inputs,omitempty"`
	Connect    []string           `json:"connect,omitempty"`
	Disconnect []string           `json:"disconnect,omitempty"`
	// Timestamp is optional and only informative.
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// ToRawPose converts the recorded pose to the form resolution consumes.
func (p RawPose) ToRawPose() space.RawPose {
	return space.RawPose{Position: p.Position, Orientation: p.Orientation}
}

// Sample converts the frame's device pose to a sample.
func (f *Frame) Sample() space.RawPoseSample {
	return space.RawPoseSample{DevicePose: f.Device.ToRawPose(), Timestamp: f.Timestamp}
}

// Validate ensures all parts of the config are valid.
func (c *Config) Validate() error {
	names := map[string]bool{"viewer": true}
	for idx := range c.ReferenceSpaces {
		rs := &c.ReferenceSpaces[idx]
		if err := rs.Validate(fieldPath("reference_spaces", idx)); err != nil {
			return err
		}
		if names[rs.Name] {
			return errors.Errorf("%s: space name %q is not unique", fieldPath("reference_spaces", idx), rs.Name)
		}
		names[rs.Name] = true
	}

	inputs := map[string]bool{}
	for idx := range c.Inputs {
		in := &c.Inputs[idx]
		if err := in.Validate(fieldPath("inputs", idx)); err != nil {
			return err
		}
		if names[in.Name] {
			return errors.Errorf("%s: space name %q is not unique", fieldPath("inputs", idx), in.Name)
		}
		names[in.Name] = true
		inputs[in.Name] = true
	}

	for idx := range c.Frames {
		if err := c.Frames[idx].Validate(fieldPath("frames", idx), inputs); err != nil {
			return err
		}
	}
	return nil
}

// Validate ensures the reference space is valid and converts its attributes.
func (rs *ReferenceSpace) Validate(path string) error {
	if rs.Name == "" {
		return errors.Errorf("%s: name is required", path)
	}
	if _, err := referencespace.ParseType(rs.Type); err != nil {
		return errors.Wrapf(err, "%s.type", path)
	}
	converted, err := convertAttributes(rs.Attributes)
	if err != nil {
		return errors.Wrapf(err, "%s.attributes", path)
	}
	if err := converted.Validate(path + ".attributes"); err != nil {
		return err
	}
	rs.ConvertedAttributes = converted
	return nil
}

// Validate ensures the input is valid.
func (in *Input) Validate(path string) error {
	if in.Name == "" {
		return errors.Errorf("%s: name is required", path)
	}
	if _, err := inputsource.ParseHandedness(in.Handedness); err != nil {
		return errors.Wrapf(err, "%s.handedness", path)
	}
	if _, err := inputsource.ParseTargetRayMode(in.TargetRayMode); err != nil {
		return errors.Wrapf(err, "%s.target_ray_mode", path)
	}
	return nil
}

// Validate ensures the frame only refers to configured inputs.
func (f *Frame) Validate(path string, inputs map[string]bool) error {
	for name := range f.Inputs {
		if !inputs[name] {
			return errors.Errorf("%s.inputs: unknown input %q", path, name)
		}
	}
	for _, name := range f.Connect {
		if !inputs[name] {
			return errors.Errorf("%s.connect: unknown input %q", path, name)
		}
	}
	for _, name := range f.Disconnect {
		if !inputs[name] {
			return errors.Errorf("%s.disconnect: unknown input %q", path, name)
		}
	}
	return nil
}

// NewSource builds the input source described by in. in must be valid.
func (in *Input) NewSource() *inputsource.Source {
	//nolint:errcheck
	handedness, _ := inputsource.ParseHandedness(in.Handedness)
	//nolint:errcheck
	mode, _ := inputsource.ParseTargetRayMode(in.TargetRayMode)
	return inputsource.New(in.Name, handedness, mode)
}

func convertAttributes(attributes map[string]interface{}) (*referencespace.Config, error) {
	converted := &referencespace.Config{}
	if len(attributes) == 0 {
		return converted, nil
	}
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "mapstructure",
		Result:           converted,
		ErrorUnused:      true,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(attributes); err != nil {
		return nil, err
	}
	return converted, nil
}

func fieldPath(section string, idx int) string {
	return section + "." + strconv.Itoa(idx)
}
