//go:build cgo

package vad

import "github.com/visvasity/webrtcvad"

type processor struct {
	vad *webrtcvad.VAD
}

const vadModeBalanced = 2

func newProcessor() (*processor, error) {
	vad, err := webrtcvad.New()
	if err != nil {
		return nil, err
	}
	// WebRTC VAD modes: 0 (quality) .. 3 (aggressive).
	if err := vad.SetMode(vadModeBalanced); err != nil {
		return nil, err
	}
	return &processor{vad: vad}, nil
}

func (p *processor) Process(sampleRate int, frame []byte) (bool, error) {
	return p.vad.Process(sampleRate, frame)
}
