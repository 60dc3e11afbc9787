package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "signup/pkg/domain-errors"
	"signup/pkg/testutil"
)

func TestSlot(t *testing.T) {
	testutil.Given(t, "an empty slot", func(t *testing.T) {
		var s Slot

		testutil.Then(t, "nothing is shown", func(t *testing.T) {
			_, ok := s.Current()
			assert.False(t, ok)
		})

		testutil.Then(t, "dismiss is a no-op", func(t *testing.T) {
			assert.False(t, s.Dismiss())
			_, ok := s.Current()
			assert.False(t, ok)
		})
	})

	testutil.Given(t, "a shown notification", func(t *testing.T) {
		var s Slot
		s.Show(KindError, "Complete all fields correctly.")

		got, ok := s.Current()
		require.True(t, ok)
		assert.Equal(t, Notification{Kind: KindError, Text: "Complete all fields correctly."}, got)

		testutil.When(t, "another is shown", func(t *testing.T) {
			s.Show(KindSuccess, "Welcome, joe!")

			testutil.Then(t, "it replaces the previous one", func(t *testing.T) {
				got, ok := s.Current()
				require.True(t, ok)
				assert.Equal(t, KindSuccess, got.Kind)
				assert.Equal(t, "Welcome, joe!", got.Text)
			})
		})

		testutil.When(t, "it is dismissed twice", func(t *testing.T) {
			assert.True(t, s.Dismiss())
			assert.False(t, s.Dismiss())

			testutil.Then(t, "the slot is empty", func(t *testing.T) {
				_, ok := s.Current()
				assert.False(t, ok)
			})
		})
	})
}

func TestCurrentReturnsCopy(t *testing.T) {
	var s Slot
	s.Show(KindSuccess, "original")

	got, _ := s.Current()
	got.Text = "mutated"

	again, _ := s.Current()
	assert.Equal(t, "original", again.Text)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("success")
	require.NoError(t, err)
	assert.Equal(t, KindSuccess, k)

	k, err = ParseKind("error")
	require.NoError(t, err)
	assert.Equal(t, KindError, k)

	_, err = ParseKind("warning")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}
