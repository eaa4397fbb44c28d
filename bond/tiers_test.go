package bond

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterestRateTiers(t *testing.T) {
	assert.Equal(t, uint64(15), InterestRate(365))
	assert.Equal(t, uint64(15), InterestRate(360))
	assert.Equal(t, uint64(14), InterestRate(359))
	assert.Equal(t, uint64(7), InterestRate(40))
	assert.Equal(t, uint64(6), InterestRate(39))
	assert.Equal(t, uint64(6), InterestRate(7))
}

func TestRefractionIndexTiers(t *testing.T) {
	assert.Equal(t, RefractionIndex(460), RefractionIndexFor(360))
	assert.Equal(t, RefractionIndex(280), RefractionIndexFor(180))
	assert.Equal(t, RefractionIndex(190), RefractionIndexFor(90))
	assert.Equal(t, RefractionIndex(115), RefractionIndexFor(15))
	assert.Equal(t, RefractionIndex(110), RefractionIndexFor(10))
	assert.Equal(t, RefractionIndex(105), RefractionIndexFor(5))
	assert.Equal(t, RefractionIndex(100), RefractionIndexFor(4))
}

// The 15-day tier is a half-integer and must not truncate.
func TestRefractionIndexHalfValues(t *testing.T) {
	assert.Equal(t, "11.5", RefractionIndexFor(15).String())
	assert.Equal(t, "10.5", RefractionIndexFor(5).String())
	assert.Equal(t, "46", RefractionIndexFor(360).String())
	assert.Equal(t, uint64(115), RefractionIndexFor(15).Tenths())
}
