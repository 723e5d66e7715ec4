package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParam_ZeroValueIsUnavailable(t *testing.T) {
	var p Param
	assert.False(t, p.IsAvailable())
	assert.Equal(t, Unavailable, p)
	assert.Equal(t, 7, p.Or(7))
	assert.Equal(t, -1, p.Legacy())
	assert.Nil(t, p.Ptr())
	assert.Equal(t, "n/a", p.String())
}

func TestParam_Value(t *testing.T) {
	p := Value(0)
	v, ok := p.Get()
	assert.True(t, ok)
	assert.Equal(t, 0, v)
	assert.Equal(t, 0, p.Or(7))
	assert.Equal(t, 0, p.Legacy())
	assert.Equal(t, "0", p.String())
	if assert.NotNil(t, p.Ptr()) {
		assert.Equal(t, 0, *p.Ptr())
	}
}

func TestParamFromLegacy(t *testing.T) {
	assert.Equal(t, Unavailable, ParamFromLegacy(-1))
	assert.Equal(t, Value(-2), ParamFromLegacy(-2))
	assert.Equal(t, Value(2048), ParamFromLegacy(2048))
}

func TestParamFromPtr(t *testing.T) {
	v := 3
	assert.Equal(t, Value(3), ParamFromPtr(&v))
	assert.Equal(t, Unavailable, ParamFromPtr(nil))

	sentinel := -1
	assert.Equal(t, Unavailable, ParamFromPtr(&sentinel))
	assert.Nil(t, ParamFromPtr(&sentinel).Ptr())
}

func TestValue_SentinelIsUnavailable(t *testing.T) {
	assert.Equal(t, Unavailable, Value(-1))
	assert.False(t, Value(-1).IsAvailable())
	assert.True(t, Value(-2).IsAvailable())
	assert.Equal(t, -1, Value(-1).Legacy())
}

func TestParam_Positive(t *testing.T) {
	assert.True(t, Value(1).positive())
	assert.False(t, Value(0).positive())
	assert.False(t, Value(-5).positive())
	assert.False(t, Unavailable.positive())
}

//Personal.AI order the ending
