package req

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

type sample struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func TestDecode(t *testing.T) {
	got, err := Decode[sample](strings.NewReader(`{"row": 3, "col": 1}`))
	require.NoError(t, err)
	require.Equal(t, sample{Row: 3, Col: 1}, got)

	got, err = Decode[sample](strings.NewReader(""))
	require.NoError(t, err)
	require.Equal(t, sample{}, got)

	_, err = Decode[sample](strings.NewReader(`{"row": "x"}`))
	require.Error(t, err)

	_, err = Decode[sample](strings.NewReader(`{"lane": 1}`))
	require.Error(t, err)
}
