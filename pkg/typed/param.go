package typed

import (
	"fmt"
	"math"
	"slices"

	"github.com/dukex/nfgrapher/pkg/score"
	"github.com/dukex/nfgrapher/pkg/typecheck"
)

// Automation command names, in the vocabulary of the Web Audio API.
const (
	CommandSetValueAtTime               = "setValueAtTime"
	CommandLinearRampToValueAtTime      = "linearRampToValueAtTime"
	CommandExponentialRampToValueAtTime = "exponentialRampToValueAtTime"
	CommandSetTargetAtTime              = "setTargetAtTime"
	CommandSetValueCurveAtTime          = "setValueCurveAtTime"
)

var commandArgs = map[string][]FieldSpec{
	CommandSetValueAtTime: {
		{Name: "value", Type: typecheck.KindFloat, Required: true},
		{Name: "startTime", Type: typecheck.KindTime, Required: true},
	},
	CommandLinearRampToValueAtTime: {
		{Name: "value", Type: typecheck.KindFloat, Required: true},
		{Name: "endTime", Type: typecheck.KindTime, Required: true},
	},
	CommandExponentialRampToValueAtTime: {
		{Name: "value", Type: typecheck.KindFloat, Required: true},
		{Name: "endTime", Type: typecheck.KindTime, Required: true},
	},
	CommandSetTargetAtTime: {
		{Name: "target", Type: typecheck.KindFloat, Required: true},
		{Name: "startTime", Type: typecheck.KindTime, Required: true},
		{Name: "timeConstant", Type: typecheck.KindFloat, Required: true},
	},
	CommandSetValueCurveAtTime: {
		{Name: "values", Type: typecheck.KindFloatList, Required: true},
		{Name: "startTime", Type: typecheck.KindTime, Required: true},
		{Name: "duration", Type: typecheck.KindTime, Required: true},
	},
}

// CommandNames lists the recognised automation commands.
func CommandNames() []string {
	return []string{
		CommandSetValueAtTime,
		CommandLinearRampToValueAtTime,
		CommandExponentialRampToValueAtTime,
		CommandSetTargetAtTime,
		CommandSetValueCurveAtTime,
	}
}

// CommandArgs returns the argument table of a recognised command.
func CommandArgs(name string) ([]FieldSpec, bool) {
	args, ok := commandArgs[name]

	return slices.Clone(args), ok
}

// CheckCommand checks the arguments of c against its command's table: every
// argument must have its declared type, be finite, and times must not be
// negative. Unrecognised command names are accepted unchanged.
func CheckCommand(c score.Command) error {
	for _, f := range commandArgs[c.Name] {
		if err := typecheck.Check(f.Type, c.Args[f.Name], f.Name); err != nil {
			return err
		}
	}

	return checkArgs(c)
}

// AudioParam is a time-varying parameter: an initial value and an ordered
// list of automation commands.
//
// The initial value is not part of the wire form; only the commands are.
type AudioParam struct {
	InitialValue float64

	commands []score.Command
}

// NewAudioParam returns a param with no automation.
func NewAudioParam(initial float64) *AudioParam {
	return &AudioParam{InitialValue: initial, commands: []score.Command{}}
}

// Commands returns the scheduled commands in the order they were added.
func (p *AudioParam) Commands() []score.Command {
	out := make([]score.Command, len(p.commands))
	copy(out, p.commands)

	return out
}

// SetValueAtTime schedules an instant change to value at startTime.
func (p *AudioParam) SetValueAtTime(value float64, startTime score.Time) error {
	return p.add(CommandSetValueAtTime, map[string]any{
		"value":     value,
		"startTime": float64(startTime),
	})
}

// LinearRampToValueAtTime schedules a linear ramp from the previous event to value at endTime.
func (p *AudioParam) LinearRampToValueAtTime(value float64, endTime score.Time) error {
	return p.add(CommandLinearRampToValueAtTime, map[string]any{
		"value":   value,
		"endTime": float64(endTime),
	})
}

// ExponentialRampToValueAtTime schedules an exponential ramp from the previous event to value at endTime.
func (p *AudioParam) ExponentialRampToValueAtTime(value float64, endTime score.Time) error {
	return p.add(CommandExponentialRampToValueAtTime, map[string]any{
		"value":   value,
		"endTime": float64(endTime),
	})
}

// SetTargetAtTime starts an exponential approach to target at startTime.
func (p *AudioParam) SetTargetAtTime(target float64, startTime score.Time, timeConstant float64) error {
	return p.add(CommandSetTargetAtTime, map[string]any{
		"target":       target,
		"startTime":    float64(startTime),
		"timeConstant": timeConstant,
	})
}

// SetValueCurveAtTime schedules values spread evenly over duration from startTime.
func (p *AudioParam) SetValueCurveAtTime(values []float64, startTime, duration score.Time) error {
	return p.add(CommandSetValueCurveAtTime, map[string]any{
		"values":    slices.Clone(values),
		"startTime": float64(startTime),
		"duration":  float64(duration),
	})
}

func (p *AudioParam) add(name string, args map[string]any) error {
	c := score.NewCommand(name, args)

	if err := CheckCommand(c); err != nil {
		return err
	}

	p.commands = append(p.commands, c)

	return nil
}

// checkArgs rejects non-finite values and invalid times.
func checkArgs(c score.Command) error {
	for _, f := range commandArgs[c.Name] {
		switch v := c.Args[f.Name].(type) {
		case float64:
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return &DomainError{Kind: c.Name, Property: f.Name, Msg: "must be finite"}
			}

			if f.Type == typecheck.KindTime && v < 0 {
				return &DomainError{Kind: c.Name, Property: f.Name, Msg: "must not be negative"}
			}
		case []float64:
			for i, x := range v {
				if math.IsNaN(x) || math.IsInf(x, 0) {
					return &DomainError{Kind: c.Name, Property: fmt.Sprintf("%s[%d]", f.Name, i), Msg: "must be finite"}
				}
			}
		case []any:
			for i, x := range v {
				if x, ok := x.(float64); ok && (math.IsNaN(x) || math.IsInf(x, 0)) {
					return &DomainError{Kind: c.Name, Property: fmt.Sprintf("%s[%d]", f.Name, i), Msg: "must be finite"}
				}
			}
		}
	}

	return nil
}
