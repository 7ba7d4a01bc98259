package remote

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/fpgabridge/pkg/comm"
)

func TestRequestEncoding(t *testing.T) {
	req := Request{Op: OpWrite, Data: []byte{0x80, 0, 0, 0, 0}}
	require.Equal(t, []byte{0x08, 0x01, 0x12, 0x05, 0x80, 0, 0, 0, 0}, req.Marshal())

	req = Request{Op: OpRead, Length: 300}
	b := req.Marshal()
	require.Equal(t, []byte{0x08, 0x02, 0x18, 0xac, 0x02}, b)

	var decoded Request
	require.NoError(t, decoded.Unmarshal(b))
	require.Equal(t, req, decoded)
}

func TestReplyEncoding(t *testing.T) {
	testCases := []struct {
		name  string
		reply Reply
	}{
		{"empty", Reply{}},
		{"count", Reply{Count: 5, Open: true}},
		{"data", Reply{Count: 2, Data: []byte{0xff, 0xfe}, Open: true}},
		{"error", Reply{Count: 1, Error: "short transfer"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var decoded Reply
			require.NoError(t, decoded.Unmarshal(tc.reply.Marshal()))
			require.Equal(t, tc.reply, decoded)
		})
	}
}

func TestDecodeSkipsUnknownFields(t *testing.T) {
	b := appendVarint(nil, 9, 7)
	b = appendBytes(b, 10, []byte("x"))
	b = append(b, (&Reply{Count: 3}).Marshal()...)
	var rep Reply
	require.NoError(t, rep.Unmarshal(b))
	require.Equal(t, 3, rep.Count)
}

func TestDecodeMalformed(t *testing.T) {
	var rep Reply
	for _, b := range [][]byte{
		{0x08},
		{0x12, 0x05, 1, 2},
		{0x0d, 0, 0, 0, 0},
		{0x80},
	} {
		require.Equal(t, ErrMalformed, rep.Unmarshal(b))
	}
}

func TestDecodeLengthOutOfRange(t *testing.T) {
	b := appendVarint(nil, 1, uint64(OpRead))
	b = appendVarint(b, 3, ^uint64(0))
	var req Request
	require.Equal(t, ErrMalformed, req.Unmarshal(b))

	b = appendVarint(nil, 1, comm.MaxPacketSize+1)
	var rep Reply
	require.Equal(t, ErrMalformed, rep.Unmarshal(b))
}
