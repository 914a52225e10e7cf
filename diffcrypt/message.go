package diffcrypt

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// MessageSize is the only input length the lane-round reversal handles.
const MessageSize = 8

// Message is an 8-byte input: chunk A is bytes 0-3, chunk B is bytes 4-7, both
// little-endian.
type Message [MessageSize]byte

// Rand is the random source consumed by the Verifier and by RandomMessage.
// *math/rand.Rand and *math/rand/v2.Rand both satisfy it.
type Rand interface {
	Uint32() uint32
}

func NewMessage(chunkA uint32, chunkB uint32) Message {
	var msg Message
	binary.LittleEndian.PutUint32(msg[0:4], chunkA)
	binary.LittleEndian.PutUint32(msg[4:8], chunkB)
	return msg
}

func MessageFromBytes(data []byte) (Message, error) {
	var msg Message
	if len(data) != MessageSize {
		return msg, errors.Wrapf(ErrInvalidMessage, "MessageFromBytes: got %d bytes, want %d", len(data), MessageSize)
	}
	copy(msg[:], data)
	return msg, nil
}

// ParseMessage accepts 16 hex digits, optionally separated by spaces or colons and
// optionally prefixed with 0x.
func ParseMessage(str string) (Message, error) {
	cleaned := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(str)), "0x")
	cleaned = strings.NewReplacer(" ", "", ":", "").Replace(cleaned)
	data, err := hex.DecodeString(cleaned)
	if err != nil {
		return Message{}, errors.Wrapf(ErrInvalidMessage, "ParseMessage: %q: %v", str, err)
	}
	return MessageFromBytes(data)
}

func RandomMessage(rng Rand) Message {
	return NewMessage(rng.Uint32(), rng.Uint32())
}

func (msg Message) ChunkA() uint32 {
	return binary.LittleEndian.Uint32(msg[0:4])
}

func (msg Message) ChunkB() uint32 {
	return binary.LittleEndian.Uint32(msg[4:8])
}

// Apply adds pair.D1 to chunk A and pair.D2 to chunk B, wrapping mod 2^32.
func (msg Message) Apply(pair Pair) Message {
	return NewMessage(msg.ChunkA()+pair.D1, msg.ChunkB()+pair.D2)
}

// String prints the bytes in hex, space separated.
func (msg Message) String() string {
	parts := make([]string, MessageSize)
	for ii, b := range msg {
		parts[ii] = fmt.Sprintf("%02x", b)
	}
	return strings.Join(parts, " ")
}
