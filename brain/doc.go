// Copyright 2025 Protobrain Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package brain is the public API of protobrain: sensors feeding layers of
// sparse spiking neurons connected by weighted synapses.
//
// # Building a brain
//
//	enc, _ := brain.NewCyclic(0, 1000, 1024, brain.DefaultSparsity)
//	s, _ := brain.NewSensor[float64](enc)
//
//	layers := make([]brain.Unit, 3)
//	for i := range layers {
//	    layers[i], _ = brain.NewNeurons(brain.Shape{10})
//	}
//	cortex, _ := brain.FeedForward(layers, brain.MainInput, nil)
//
//	b, _ := brain.New(cortex, s,
//	    brain.WithComputation(brain.NewSparseFraction(0.02)),
//	    brain.WithLearning(brain.DefaultHebbian()))
//
// # Running it
//
// Each step feeds the sensor, computes every layer in order and optionally
// adapts the synapses:
//
//	for v := range 1000 {
//	    _ = b.Feed(float64(v))
//	    out, _ := b.Compute()
//	    _ = b.Learn()
//	    _ = out
//	}
package brain
