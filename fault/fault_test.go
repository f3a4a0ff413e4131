package fault

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKinds(t *testing.T) {
	table := []struct {
		err   error
		kind  error
		fatal bool
	}{
		{Configuration("unknown background %d", 7), ErrConfiguration, true},
		{DataFile("could not open %s", "x.txt"), ErrDataFile, true},
		{DataValidation("row %d", 3), ErrDataValidation, true},
		{Exhausted("after %d tries", 100000), ErrExhausted, false},
	}

	for i, test := range table {
		assert.True(t, errors.Is(test.err, test.kind), "%d) kind", i)
		assert.Equal(t, test.fatal, IsFatal(test.err), "%d) fatal", i)
	}

	assert.False(t, IsFatal(nil))
	assert.Contains(t, Configuration("unknown background %d", 7).Error(),
		"unknown background 7")
}

func TestInternalPanics(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		assert.True(t, ok)
		assert.True(t, errors.Is(err, ErrInternal))
	}()
	Internal("ramp evaluated at %g", 1.0)
	t.Fatal("Internal returned")
}
