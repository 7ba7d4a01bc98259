package remote

import (
	"errors"
	"fmt"

	"github.com/golang/protobuf/proto"

	"github.com/robotalks/fpgabridge/pkg/comm"
)

// Op is the kind of a remote transfer request.
type Op uint64

// Request ops.
const (
	OpWrite  Op = 1
	OpRead   Op = 2
	OpStatus Op = 3
)

// String implements fmt.Stringer.
func (o Op) String() string {
	switch o {
	case OpWrite:
		return "write"
	case OpRead:
		return "read"
	case OpStatus:
		return "status"
	default:
		return fmt.Sprintf("op-%d", uint64(o))
	}
}

// Request asks the server for one transfer on its channel.
//
//	message Request {
//	  uint64 op = 1;
//	  bytes data = 2;   // write payload
//	  uint64 length = 3; // bytes to read
//	}
type Request struct {
	Op     Op
	Data   []byte
	Length int
}

// Reply is the result of one Request.
//
//	message Reply {
//	  uint64 count = 1;
//	  bytes data = 2;
//	  string error = 3;
//	  bool open = 4;
//	}
type Reply struct {
	Count int
	Data  []byte
	Error string
	Open  bool
}

// ErrMalformed indicates a packet can't be decoded.
var ErrMalformed = errors.New("malformed packet")

const (
	wireVarint = 0
	wireBytes  = 2
)

func appendVarint(b []byte, field int, v uint64) []byte {
	b = append(b, proto.EncodeVarint(uint64(field<<3|wireVarint))...)
	return append(b, proto.EncodeVarint(v)...)
}

func appendBytes(b []byte, field int, v []byte) []byte {
	b = append(b, proto.EncodeVarint(uint64(field<<3|wireBytes))...)
	b = append(b, proto.EncodeVarint(uint64(len(v)))...)
	return append(b, v...)
}

// Marshal encodes the request.
func (r *Request) Marshal() []byte {
	b := appendVarint(nil, 1, uint64(r.Op))
	if len(r.Data) > 0 {
		b = appendBytes(b, 2, r.Data)
	}
	if r.Length > 0 {
		b = appendVarint(b, 3, uint64(r.Length))
	}
	return b
}

// Unmarshal decodes the request.
func (r *Request) Unmarshal(b []byte) error {
	*r = Request{}
	return decodeFields(b, func(field int, v uint64, data []byte) error {
		switch field {
		case 1:
			r.Op = Op(v)
		case 2:
			r.Data = data
		case 3:
			if v > comm.MaxPacketSize {
				return ErrMalformed
			}
			r.Length = int(v)
		}
		return nil
	})
}

// Marshal encodes the reply.
func (r *Reply) Marshal() []byte {
	b := appendVarint(nil, 1, uint64(r.Count))
	if len(r.Data) > 0 {
		b = appendBytes(b, 2, r.Data)
	}
	if r.Error != "" {
		b = appendBytes(b, 3, []byte(r.Error))
	}
	if r.Open {
		b = appendVarint(b, 4, 1)
	}
	return b
}

// Unmarshal decodes the reply.
func (r *Reply) Unmarshal(b []byte) error {
	*r = Reply{}
	return decodeFields(b, func(field int, v uint64, data []byte) error {
		switch field {
		case 1:
			if v > comm.MaxPacketSize {
				return ErrMalformed
			}
			r.Count = int(v)
		case 2:
			r.Data = data
		case 3:
			r.Error = string(data)
		case 4:
			r.Open = v != 0
		}
		return nil
	})
}

// decodeFields walks varint and length-delimited fields, unknown fields
// are skipped. An error from fn stops decoding.
func decodeFields(b []byte, fn func(field int, v uint64, data []byte) error) error {
	for len(b) > 0 {
		key, n := proto.DecodeVarint(b)
		if n == 0 {
			return ErrMalformed
		}
		b = b[n:]
		field := int(key >> 3)
		switch key & 7 {
		case wireVarint:
			v, n := proto.DecodeVarint(b)
			if n == 0 {
				return ErrMalformed
			}
			b = b[n:]
			if err := fn(field, v, nil); err != nil {
				return err
			}
		case wireBytes:
			l, n := proto.DecodeVarint(b)
			if n == 0 || uint64(len(b)-n) < l {
				return ErrMalformed
			}
			data := b[n : n+int(l)]
			b = b[n+int(l):]
			if err := fn(field, 0, data); err != nil {
				return err
			}
		default:
			return ErrMalformed
		}
	}
	return nil
}
