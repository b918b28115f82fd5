package keysetpager

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Orderings_Fingerprint(t *testing.T) {
	base := Orderings{Desc("created_at"), Asc("id")}

	assert.Len(t, base.Fingerprint(), 2*_fingerprintBytes)
	assert.NotContains(t, base.Fingerprint(), _fingerprintSeparator)
	assert.Equal(t, base.Fingerprint(), Orderings{Desc("created_at"), Asc("id")}.Fingerprint())

	others := []Orderings{
		{Asc("created_at"), Asc("id")},
		{Asc("id"), Desc("created_at")},
		{Desc("created_at"), Asc("uuid")},
		{Desc("created_at")},
	}
	for _, other := range others {
		assert.NotEqual(t, base.Fingerprint(), other.Fingerprint(), other.ToSQL())
	}
}
