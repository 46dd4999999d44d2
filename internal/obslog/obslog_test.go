package obslog

import (
	"fmt"
	"testing"
)

func TestSetLoggerRedirects(t *testing.T) {
	var captured string
	SetLogger(func(format string, v ...interface{}) {
		captured = fmt.Sprintf(format, v...)
	})
	defer SetLogger(nil)

	Logf("warm-up: %d frames remaining", 3)
	if captured != "warm-up: 3 frames remaining" {
		t.Errorf("captured = %q", captured)
	}
}

func TestSetLoggerNilIsNoOp(t *testing.T) {
	SetLogger(nil)
	defer SetLogger(nil)
	Logf("this should not panic: %d", 1)
}
