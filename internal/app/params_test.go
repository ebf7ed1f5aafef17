package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/samvad-hq/pdd-open-client/pkg/pdd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadParamsYAML(t *testing.T) {
	file := filepath.Join(t.TempDir(), "params.yaml")
	content := `
page: 1
page_size: 50
keyword: phone
with_coupon: true
goods_sign_list:
  - c9r2omogKFFAc7WBwvbZU1ikIb16_J3CTa8HNN
`
	require.NoError(t, os.WriteFile(file, []byte(content), 0o644))

	params, err := LoadParams(file)
	require.NoError(t, err)

	assert.Equal(t, pdd.KindInt, params["page"].Kind())
	assert.Equal(t, pdd.KindString, params["keyword"].Kind())
	assert.Equal(t, pdd.KindBool, params["with_coupon"].Kind())
	require.True(t, params["goods_sign_list"].IsObject())

	s, err := params["goods_sign_list"].Canonical()
	require.NoError(t, err)
	assert.Equal(t, `["c9r2omogKFFAc7WBwvbZU1ikIb16_J3CTa8HNN"]`, s)
}

func TestParseParamsJSONKeepsBigIntegers(t *testing.T) {
	params, err := ParseParams([]byte(`{"goods_id": 9007199254740993}`), ".json")
	require.NoError(t, err)

	s, err := params["goods_id"].Canonical()
	require.NoError(t, err)
	assert.Equal(t, "9007199254740993", s)
}

func TestParseParamsWithoutExtension(t *testing.T) {
	params, err := ParseParams([]byte("page: 2\n"), "")
	require.NoError(t, err)
	s, _ := params["page"].Canonical()
	assert.Equal(t, "2", s)
}

func TestParseParamsRejectsUnknownExtension(t *testing.T) {
	_, err := ParseParams([]byte(`{}`), ".toml")
	assert.Error(t, err)
}

func TestLoadParamsEmptyPath(t *testing.T) {
	params, err := LoadParams("")
	require.NoError(t, err)
	assert.Empty(t, params)
}
