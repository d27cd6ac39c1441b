package wire

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriteReadMessage_RoundTrip(t *testing.T) {
	cases := []int{1, 2, 100, 4096, MaxBodySize}
	for _, size := range cases {
		body := bytes.Repeat([]byte("a"), size)

		var buf bytes.Buffer
		require.NoError(t, WriteMessage(&buf, body))

		got, err := ReadMessage(&buf)
		require.NoError(t, err)
		require.Equal(t, body, got)
	}
}

func TestWriteMessage_RejectsOversizeBody(t *testing.T) {
	var buf bytes.Buffer
	err := WriteMessage(&buf, bytes.Repeat([]byte("a"), MaxBodySize+1))
	require.Error(t, err)
}

func TestWriteMessage_RejectsEmptyBody(t *testing.T) {
	var buf bytes.Buffer
	err := WriteMessage(&buf, nil)
	require.Error(t, err)
}

func TestReadMessage_RejectsZeroLength(t *testing.T) {
	buf := bytes.NewBuffer([]byte{0, 0, 0, 0})
	_, err := ReadMessage(buf)
	require.Error(t, err)
}

func TestReadMessage_RejectsOversizeLength(t *testing.T) {
	buf := bytes.NewBuffer([]byte{0xFF, 0xFF, 0xFF, 0xFF})
	_, err := ReadMessage(buf)
	require.Error(t, err)
}

func TestReadMessage_RejectsTruncatedBody(t *testing.T) {
	buf := bytes.NewBuffer([]byte{0, 0, 0, 10})
	buf.WriteString("short")
	_, err := ReadMessage(buf)
	require.Error(t, err)
}

func TestSendReadJSON_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	req := Request{Action: "login", Data: map[string]any{"user": "alice"}}
	require.NoError(t, SendJSON(&buf, req))

	var got Request
	require.NoError(t, ReadJSON(&buf, &got))
	require.Equal(t, req.Action, got.Action)
	require.Equal(t, req.Data["user"], got.Data["user"])
}

func TestResponse_MarshalUnmarshalRoundTrip(t *testing.T) {
	resp := OKWith(map[string]any{"rooms": []string{"a", "b"}})
	b, err := resp.MarshalJSON()
	require.NoError(t, err)
	require.True(t, strings.Contains(string(b), `"status":"ok"`))

	var got Response
	require.NoError(t, got.UnmarshalJSON(b))
	require.True(t, got.IsOK())
	require.NotNil(t, got.Extra["rooms"])
}
