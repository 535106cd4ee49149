//go:build !cgo

package vad

import "errors"

type processor struct{}

func newProcessor() (*processor, error) {
	return nil, errors.New("webrtcvad unavailable (cgo disabled)")
}

func (p *processor) Process(sampleRate int, frame []byte) (bool, error) {
	return false, errors.New("webrtcvad unavailable (cgo disabled)")
}
