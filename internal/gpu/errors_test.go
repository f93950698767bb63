package gpu

import (
	"errors"
	"testing"
)

func TestFenceResult(t *testing.T) {
	lost := errors.New("device lost")

	tests := []struct {
		name     string
		signaled bool
		err      error
		want     error
	}{
		{"signaled", true, nil, nil},
		{"timed out", false, nil, ErrGPUTimeout},
		{"wait failed", false, lost, lost},
		{"wait failed after signal", true, lost, lost},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fenceResult(tt.signaled, tt.err)
			if tt.want == nil {
				if got != nil {
					t.Errorf("fenceResult() = %v, want nil", got)
				}
				return
			}
			if !errors.Is(got, tt.want) {
				t.Errorf("fenceResult() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFenceResultTimeoutMessage(t *testing.T) {
	err := fenceResult(false, nil)
	if got, want := err.Error(), "gpu: timed out waiting for GPU"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}
