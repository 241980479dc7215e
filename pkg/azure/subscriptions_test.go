package azure

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	subs := []SubscriptionInfo{
		{ID: "1111", Name: "Dev"},
		{ID: "2222", Name: "Prod"},
	}

	t.Run("empty name picks the first entry", func(t *testing.T) {
		got, err := resolve(subs, "")
		require.NoError(t, err)
		assert.Equal(t, "Dev", got.Name)
	})

	t.Run("matches by display name", func(t *testing.T) {
		got, err := resolve(subs, "Prod")
		require.NoError(t, err)
		assert.Equal(t, "2222", got.ID)
	})

	t.Run("falls back to subscription id", func(t *testing.T) {
		got, err := resolve(subs, "1111")
		require.NoError(t, err)
		assert.Equal(t, "Dev", got.Name)
	})

	t.Run("unknown name errors", func(t *testing.T) {
		_, err := resolve(subs, "Staging")
		assert.Error(t, err)
	})

	t.Run("empty listing errors", func(t *testing.T) {
		_, err := resolve(nil, "")
		assert.Error(t, err)
	})
}

func TestCredentialIsZero(t *testing.T) {
	var nilCred *Credential
	assert.True(t, nilCred.IsZero())
	assert.True(t, (&Credential{}).IsZero())
	assert.False(t, (&Credential{TenantID: "t"}).IsZero())
}
