package guard_test

import (
	"errors"
	"sync"
	"testing"

	"restaurant/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	t.Run("creates_properly_constructed_guard", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("test object not constructed")))
		require.NoError(t, g.Validate(nil))
	})
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expectedError := errors.New("entity not constructed")

		err := g.Validate(expectedError)

		require.Error(t, err)
		assert.Equal(t, expectedError, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

type menuLine struct {
	name  string
	guard guard.ConstructorGuard
}

var errMenuLineNotConstructed = errors.New("menuLine must be created via newMenuLine")

func newMenuLine(name string) menuLine {
	return menuLine{name: name, guard: guard.NewConstructorGuard()}
}

func (l menuLine) Validate() error {
	return l.guard.Validate(errMenuLineNotConstructed)
}

func TestConstructorGuard_Embedded(t *testing.T) {
	t.Run("constructed_value_is_valid", func(t *testing.T) {
		l := newMenuLine("Beef noodle soup")
		require.NoError(t, l.Validate())
	})

	t.Run("struct_literal_is_rejected", func(t *testing.T) {
		l := menuLine{name: "Beef noodle soup"}
		require.ErrorIs(t, l.Validate(), errMenuLineNotConstructed)
	})

	t.Run("copies_keep_guard_state", func(t *testing.T) {
		l := newMenuLine("Dumplings")
		c := l
		require.NoError(t, c.Validate())
	})
}

func TestConstructorGuardConcurrency(t *testing.T) {
	g := guard.NewConstructorGuard()
	validationError := errors.New("not constructed")

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, g.Validate(validationError))
		}()
	}
	wg.Wait()
}
