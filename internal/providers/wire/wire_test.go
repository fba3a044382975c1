package wire

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntAcceptsDriftingShapes(t *testing.T) {
	cases := []struct {
		raw   string
		value int
		valid bool
	}{
		{`7`, 7, true},
		{`"7"`, 7, true},
		{`" 12 "`, 12, true},
		{`7.0`, 7, true},
		{`"5th"`, 5, true},
		{`"+3"`, 3, true},
		{`""`, 0, false},
		{`"-"`, 0, false},
		{`"TBD"`, 0, false},
		{`null`, 0, false},
		{`true`, 0, false},
		{`{}`, 0, false},
		{`1e300`, 0, false},
	}
	for _, tc := range cases {
		var v struct {
			N Int `json:"n"`
		}
		require.NoError(t, json.Unmarshal([]byte(`{"n":`+tc.raw+`}`), &v), tc.raw)
		assert.Equal(t, tc.value, v.N.Value, tc.raw)
		assert.Equal(t, tc.valid, v.N.Valid, tc.raw)
	}
}

func TestIntOrAndPtr(t *testing.T) {
	assert.Equal(t, 9, Int{}.Or(9))
	assert.Equal(t, 4, Int{Value: 4, Valid: true}.Or(9))
	assert.Nil(t, Int{}.Ptr())
	p := Int{Value: 2, Valid: true}.Ptr()
	require.NotNil(t, p)
	assert.Equal(t, 2, *p)
}

func TestFloatParsesPercentForms(t *testing.T) {
	var v struct {
		A Float `json:"a"`
		B Float `json:"b"`
		C Float `json:"c"`
		D Float `json:"d"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"a":".625","b":0.5,"c":"-","d":"abc"}`), &v))
	assert.Equal(t, 0.625, v.A.Value)
	assert.True(t, v.B.Valid)
	assert.False(t, v.C.Valid)
	assert.False(t, v.D.Valid)
	assert.Nil(t, v.D.Ptr())
}

func TestStringAcceptsNumbers(t *testing.T) {
	var v struct {
		ID   String `json:"id"`
		Name String `json:"name"`
		Obj  String `json:"obj"`
		Nil  String `json:"nil"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"id":401,"name":"  LSU ","obj":{"x":1},"nil":null}`), &v))
	assert.Equal(t, "401", v.ID.String())
	assert.Equal(t, "LSU", v.Name.String())
	assert.Empty(t, v.Obj)
	assert.Empty(t, v.Nil)
}

func TestBoolAcceptsStrings(t *testing.T) {
	for raw, want := range map[string]bool{`true`: true, `"true"`: true, `"1"`: true, `"Yes"`: true, `false`: false, `"false"`: false, `null`: false, `"maybe"`: false} {
		var v struct {
			B Bool `json:"b"`
		}
		require.NoError(t, json.Unmarshal([]byte(`{"b":`+raw+`}`), &v))
		assert.Equal(t, want, bool(v.B), raw)
	}
}

type item struct {
	ID   String `json:"id"`
	Team struct {
		Name String `json:"name"`
	} `json:"team"`
}

func TestListSkipsMalformedElements(t *testing.T) {
	var v struct {
		Items List[item] `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"items":[{"id":"1"},"oops",{"id":2,"team":"bad"},{"id":"3","team":{"name":"TCU"}}]}`), &v))
	require.Len(t, v.Items.Items, 2)
	assert.Equal(t, 2, v.Items.Skipped)
	assert.Equal(t, "TCU", v.Items.Items[1].Team.Name.String())
}

func TestListToleratesNonArray(t *testing.T) {
	var v struct {
		Items List[item] `json:"items"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"items":{"not":"a list"}}`), &v))
	assert.Empty(t, v.Items.Items)
}

func TestDecodeToleratesFieldTypeDrift(t *testing.T) {
	var v struct {
		Name  string `json:"name"`
		Count int    `json:"count"`
	}
	require.NoError(t, Decode([]byte(`{"name":"ok","count":"many"}`), &v))
	assert.Equal(t, "ok", v.Name)
	assert.Zero(t, v.Count)

	assert.Error(t, Decode([]byte(`{bad json`), &v))
	assert.Error(t, Decode([]byte(``), &v))
}
