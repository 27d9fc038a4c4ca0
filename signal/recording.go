// Package signal defines the continuous multichannel recording model consumed
// by the estimation pipeline: a channel-by-sample data block with sampling
// rate and per-channel metadata, discrete events aligned to it, and sample
// spans. It also provides a deterministic generator for synthetic
// event-locked recordings used by tests and the demo command.
package signal

import (
	"errors"
	"fmt"
)

// Errors returned by recording constructors.
var (
	ErrNoChannels        = errors.New("signal: recording has no channels")
	ErrNoSamples         = errors.New("signal: recording has no samples")
	ErrRaggedData        = errors.New("signal: channels differ in length")
	ErrInvalidSampleRate = errors.New("signal: sample rate must be positive")
	ErrChannelMetadata   = errors.New("signal: channel metadata length mismatch")
)

// ChannelType classifies a channel for threshold-based screening.
type ChannelType string

// Channel types understood by the artifact rejector.
const (
	TypeGrad ChannelType = "grad" // gradiometer, T/m
	TypeMag  ChannelType = "mag"  // magnetometer, T
	TypeEEG  ChannelType = "eeg"  // EEG, V
	TypeEOG  ChannelType = "eog"  // EOG, V
	TypeECG  ChannelType = "ecg"  // ECG, V
	TypeMisc ChannelType = "misc" // anything without a screening threshold
)

// Channel holds identity metadata for a single channel.
type Channel struct {
	Name string
	Type ChannelType
}

// Recording is an immutable channel-by-sample view of a continuous signal.
// The pipeline only reads from it; the data is owned by the caller.
type Recording struct {
	// Data holds one slice per channel; all slices share the same length.
	Data [][]float64

	// SampleRate is the sampling rate in Hz.
	SampleRate float64

	// Channels optionally carries per-channel metadata. When nil, every
	// channel is treated as TypeMisc.
	Channels []Channel
}

// NewRecording validates and wraps caller-owned data. The data is not copied.
func NewRecording(data [][]float64, sampleRate float64, channels []Channel) (*Recording, error) {
	if len(data) == 0 {
		return nil, ErrNoChannels
	}

	if sampleRate <= 0 {
		return nil, fmt.Errorf("%w: %g", ErrInvalidSampleRate, sampleRate)
	}

	n := len(data[0])
	if n == 0 {
		return nil, ErrNoSamples
	}

	for ch, row := range data {
		if len(row) != n {
			return nil, fmt.Errorf("%w: channel %d has %d samples, want %d",
				ErrRaggedData, ch, len(row), n)
		}
	}

	if channels != nil && len(channels) != len(data) {
		return nil, fmt.Errorf("%w: %d entries for %d channels",
			ErrChannelMetadata, len(channels), len(data))
	}

	return &Recording{Data: data, SampleRate: sampleRate, Channels: channels}, nil
}

// NumChannels returns the channel count.
func (r *Recording) NumChannels() int {
	return len(r.Data)
}

// NumSamples returns the per-channel sample count.
func (r *Recording) NumSamples() int {
	if len(r.Data) == 0 {
		return 0
	}

	return len(r.Data[0])
}

// ChannelType returns the type of channel ch, or TypeMisc when no metadata
// was supplied.
func (r *Recording) ChannelType(ch int) ChannelType {
	if r.Channels == nil || ch < 0 || ch >= len(r.Channels) {
		return TypeMisc
	}

	if r.Channels[ch].Type == "" {
		return TypeMisc
	}

	return r.Channels[ch].Type
}
