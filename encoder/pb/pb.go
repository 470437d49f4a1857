// Package pb encodes solved mazes in the protobuf wire format.
//
// The message layout is
//
//	message Snapshot {
//	  uint32 size         = 1;
//	  sint64 seed         = 2;
//	  bool   connect_exit = 3;
//	  Point  start        = 4;
//	  Point  exit         = 5;
//	  bytes  cells        = 6; // one marker byte per cell, row-major
//	  repeated sint32 distances = 7 [packed = true];
//	}
//
//	message Point {
//	  uint32 x = 1;
//	  uint32 y = 2;
//	}
package pb

import (
	"errors"
	"fmt"
	"math"

	"github.com/beka-birhanu/mazesolver/domain"
	"github.com/beka-birhanu/mazesolver/maze"
	"github.com/beka-birhanu/mazesolver/service/i"
	"google.golang.org/protobuf/encoding/protowire"
)

const (
	sizeField        protowire.Number = 1
	seedField        protowire.Number = 2
	connectExitField protowire.Number = 3
	startField       protowire.Number = 4
	exitField        protowire.Number = 5
	cellsField       protowire.Number = 6
	distancesField   protowire.Number = 7

	pointXField protowire.Number = 1
	pointYField protowire.Number = 2

	// ContentType is the media type of an encoded snapshot.
	ContentType = "application/x-protobuf"
)

var (
	ErrNilSnapshot = errors.New("pb: nil snapshot")
	ErrWireType    = errors.New("pb: unexpected wire type")
	ErrFieldRange  = errors.New("pb: field value out of range")
)

var _ i.SnapshotEncoder = &Protobuf{}

// Protobuf implements i.SnapshotEncoder.
type Protobuf struct{}

// MarshalSnapshot implements i.SnapshotEncoder.
func (p *Protobuf) MarshalSnapshot(s *domain.Snapshot) ([]byte, error) {
	if s == nil {
		return nil, ErrNilSnapshot
	}

	b := make([]byte, 0, 32+len(s.Cells)+2*len(s.Distances))
	b = protowire.AppendTag(b, sizeField, protowire.VarintType)
	b = protowire.AppendVarint(b, uint64(s.Size))
	b = protowire.AppendTag(b, seedField, protowire.VarintType)
	b = protowire.AppendVarint(b, protowire.EncodeZigZag(s.Seed))
	if s.ConnectExit {
		b = protowire.AppendTag(b, connectExitField, protowire.VarintType)
		b = protowire.AppendVarint(b, protowire.EncodeBool(true))
	}
	b = appendPoint(b, startField, s.Start)
	b = appendPoint(b, exitField, s.Exit)

	cells := make([]byte, len(s.Cells))
	for idx, c := range s.Cells {
		cells[idx] = byte(c)
	}
	b = protowire.AppendTag(b, cellsField, protowire.BytesType)
	b = protowire.AppendBytes(b, cells)

	var packed []byte
	for _, d := range s.Distances {
		packed = protowire.AppendVarint(packed, protowire.EncodeZigZag(int64(d)))
	}
	b = protowire.AppendTag(b, distancesField, protowire.BytesType)
	b = protowire.AppendBytes(b, packed)

	return b, nil
}

func appendPoint(b []byte, num protowire.Number, p maze.Point) []byte {
	var msg []byte
	msg = protowire.AppendTag(msg, pointXField, protowire.VarintType)
	msg = protowire.AppendVarint(msg, uint64(p.X))
	msg = protowire.AppendTag(msg, pointYField, protowire.VarintType)
	msg = protowire.AppendVarint(msg, uint64(p.Y))

	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, msg)
}

// UnmarshalSnapshot implements i.SnapshotEncoder. Unknown fields are skipped.
func (p *Protobuf) UnmarshalSnapshot(b []byte) (*domain.Snapshot, error) {
	s := &domain.Snapshot{}
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]

		switch num {
		case sizeField, seedField, connectExitField:
			v, err := consumeVarint(&b, num, typ)
			if err != nil {
				return nil, err
			}
			switch num {
			case sizeField:
				if s.Size, err = toInt(num, v); err != nil {
					return nil, err
				}
			case seedField:
				s.Seed = protowire.DecodeZigZag(v)
			default:
				s.ConnectExit = protowire.DecodeBool(v)
			}
		case startField, exitField, cellsField, distancesField:
			v, err := consumeBytes(&b, num, typ)
			if err != nil {
				return nil, err
			}
			switch num {
			case startField:
				s.Start, err = parsePoint(v)
			case exitField:
				s.Exit, err = parsePoint(v)
			case cellsField:
				s.Cells = make([]maze.Marker, len(v))
				for idx, c := range v {
					s.Cells[idx] = maze.Marker(c)
				}
			default:
				s.Distances, err = parseDistances(v)
			}
			if err != nil {
				return nil, err
			}
		default:
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return nil, protowire.ParseError(n)
			}
			b = b[n:]
		}
	}
	return s, nil
}

func consumeVarint(b *[]byte, num protowire.Number, typ protowire.Type) (uint64, error) {
	if typ != protowire.VarintType {
		return 0, fmt.Errorf("%w: field %d", ErrWireType, num)
	}
	v, n := protowire.ConsumeVarint(*b)
	if n < 0 {
		return 0, protowire.ParseError(n)
	}
	*b = (*b)[n:]
	return v, nil
}

func consumeBytes(b *[]byte, num protowire.Number, typ protowire.Type) ([]byte, error) {
	if typ != protowire.BytesType {
		return nil, fmt.Errorf("%w: field %d", ErrWireType, num)
	}
	v, n := protowire.ConsumeBytes(*b)
	if n < 0 {
		return nil, protowire.ParseError(n)
	}
	*b = (*b)[n:]
	return v, nil
}

func parsePoint(b []byte) (maze.Point, error) {
	var p maze.Point
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return p, protowire.ParseError(n)
		}
		b = b[n:]

		if num != pointXField && num != pointYField {
			n = protowire.ConsumeFieldValue(num, typ, b)
			if n < 0 {
				return p, protowire.ParseError(n)
			}
			b = b[n:]
			continue
		}

		v, err := consumeVarint(&b, num, typ)
		if err != nil {
			return p, err
		}
		c, err := toInt(num, v)
		if err != nil {
			return p, err
		}
		if num == pointXField {
			p.X = c
		} else {
			p.Y = c
		}
	}
	return p, nil
}

// toInt narrows a uint32 field, rejecting anything wider.
func toInt(num protowire.Number, v uint64) (int, error) {
	if v > math.MaxInt32 {
		return 0, fmt.Errorf("%w: field %d = %d", ErrFieldRange, num, v)
	}
	return int(v), nil
}

func parseDistances(b []byte) ([]int, error) {
	var distances []int
	for len(b) > 0 {
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		b = b[n:]
		distances = append(distances, int(protowire.DecodeZigZag(v)))
	}
	return distances, nil
}
