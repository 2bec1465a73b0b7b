package main

import (
	"fmt"
	"slices"

	"github.com/dukex/nfgrapher/pkg/score"
	"github.com/dukex/nfgrapher/pkg/typed"
)

const (
	drumTrack   = "spotify:track:4RDKrwyA9YouzL1LxvMaxH"
	natureTrack = "spotify:track:3458IPEk4hUgltmvecrYsJ"
)

type exampleBuilder func(gen score.IDGenerator) (*score.Score, error)

var examples = map[string]exampleBuilder{
	"fade-in":     fadeInExample,
	"drum-loop":   drumLoopExample,
	"multi-track": multiTrackExample,
}

func exampleNames() []string {
	names := make([]string, 0, len(examples))
	for name := range examples {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

func buildExample(name string, gen score.IDGenerator) (*score.Score, error) {
	build, ok := examples[name]
	if !ok {
		return nil, fmt.Errorf("unknown example %q (available: %v)", name, exampleNames())
	}

	if gen == nil {
		gen = score.NewID
	}

	return build(gen)
}

// fadeInExample raises the gain of a track from silence to 1.0 over ten seconds.
func fadeInExample(gen score.IDGenerator) (*score.Score, error) {
	source := typed.NewFileNode(drumTrack, score.WithIDGenerator(gen))
	gain := typed.NewGainNode(score.WithIDGenerator(gen))

	if err := gain.Gain.LinearRampToValueAtTime(1, score.Seconds(10)); err != nil {
		return nil, err
	}

	g := score.NewGraph(score.WithIDGenerator(gen)).AddNode(source, gain)
	if _, err := g.Connect(source, gain, score.WithIDGenerator(gen)); err != nil {
		return nil, err
	}

	return score.New(g), nil
}

// drumLoopExample loops the first 5.6 seconds of a track forever.
func drumLoopExample(gen score.IDGenerator) (*score.Score, error) {
	source := typed.NewFileNode(drumTrack, score.WithIDGenerator(gen))
	loop := typed.NewLoopNode(score.TimeZero, score.Seconds(5.6), score.WithIDGenerator(gen))

	g := score.NewGraph(score.WithIDGenerator(gen)).AddNode(source, loop)
	if _, err := g.Connect(source, loop, score.WithIDGenerator(gen)); err != nil {
		return nil, err
	}

	return score.New(g), nil
}

// multiTrackExample plays the drum loop alongside a quieter second track
// starting after ten seconds.
func multiTrackExample(gen score.IDGenerator) (*score.Score, error) {
	drum := typed.NewFileNode(drumTrack, score.WithIDGenerator(gen))
	loop := typed.NewLoopNode(score.TimeZero, score.Seconds(5.6), score.WithIDGenerator(gen))

	nature := typed.NewFileNode(natureTrack, score.WithIDGenerator(gen))
	nature.When = score.Seconds(10)

	gain := typed.NewGainNode(score.WithIDGenerator(gen))
	if err := gain.Gain.SetValueAtTime(0.4, score.TimeZero); err != nil {
		return nil, err
	}

	g := score.NewGraph(score.WithIDGenerator(gen)).AddNode(drum, loop, nature, gain)

	if _, err := g.Connect(drum, loop, score.WithIDGenerator(gen)); err != nil {
		return nil, err
	}

	if _, err := g.Connect(nature, gain, score.WithIDGenerator(gen)); err != nil {
		return nil, err
	}

	return score.New(g), nil
}
