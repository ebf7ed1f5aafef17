package envelope

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeKeepsLargeIntegers(t *testing.T) {
	resp, err := Decode([]byte(`{"goods_id": 9007199254740993}`))
	require.NoError(t, err)
	assert.Equal(t, json.Number("9007199254740993"), resp["goods_id"])
}

func TestDecodeMalformedJSON(t *testing.T) {
	_, err := Decode([]byte(`{"order_list_response": }`))
	require.Error(t, err)

	var syntaxErr *json.SyntaxError
	assert.True(t, errors.As(err, &syntaxErr), "unexpected error %v", err)
}

func TestCheckError(t *testing.T) {
	resp := Response{ErrorKey: map[string]any{
		"error_code": json.Number("10019"),
		"error_msg":  "invalid signature",
	}}

	err := CheckError(resp)
	require.Error(t, err)
	assert.Equal(t, "invalid signature", err.Error())

	var apiErr *RemoteAPIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "invalid signature", apiErr.Message)

	assert.NoError(t, CheckError(Response{"order_list_response": map[string]any{}}))
}

func TestCheckErrorWithoutMessage(t *testing.T) {
	err := CheckError(Response{ErrorKey: nil})
	require.Error(t, err)
	assert.Equal(t, "", err.Error())
}

func TestUnwrap(t *testing.T) {
	payload := map[string]any{"total": json.Number("0")}
	resp := Response{"order_list_response": payload}

	assert.Equal(t, payload, Unwrap(resp, "order_list_response"))
	assert.Equal(t, resp, Unwrap(resp, "goods_search_response"))
}
