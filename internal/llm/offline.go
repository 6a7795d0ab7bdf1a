package llm

import (
	"context"
	"errors"
)

// ErrOffline is returned by the Offline backend for every request.
var ErrOffline = errors.New("uplink offline")

// Offline is a backend with no connection. Every Generate call fails, which
// lets callers exercise their fallback paths without credentials.
type Offline struct{}

func (Offline) Name() string                 { return "offline" }
func (Offline) Model() string                { return "none" }
func (Offline) SetModel(string)              {}
func (Offline) Temperature() float64         { return 0 }
func (Offline) SetTemperature(float64) error { return nil }

func (Offline) Generate(ctx context.Context, req Request) (Response, error) {
	if err := ctx.Err(); err != nil {
		return Response{}, err
	}
	return Response{}, ErrOffline
}
