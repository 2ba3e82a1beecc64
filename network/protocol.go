package network

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/gorilla/websocket"
	"github.com/vmihailenco/msgpack/v5"
)

// RPC method names understood by the gateway
const (
	MethodMovePlayer = "move_player"
	MethodGetWorld   = "get_world"
)

// Request is the call envelope
type Request struct {
	ID     string `json:"id"`
	Method string `json:"method"`
	Params any    `json:"params,omitempty"`
}

// Response is the reply envelope; exactly one of Result and Error is set
type Response struct {
	ID     string    `json:"id"`
	Result any       `json:"result,omitempty"`
	Error  *RPCError `json:"error,omitempty"`
}

// RPCError is an application error returned by the gateway
type RPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("rpc error %d: %s", e.Code, e.Message)
}

// RPC error codes
const (
	CodeBadRequest    = 400
	CodeUnauthorized  = 401
	CodeUnknownMethod = 404
	CodeRejected      = 409
	CodeInternal      = 500
)

// MoveParams is the move_player argument, contract-encoded directions
type MoveParams struct {
	DX uint8 `json:"dx"`
	DZ uint8 `json:"dz"`
}

// envelopeHeader is decoded first to route a frame before its body type is known
type envelopeHeader struct {
	ID     string    `json:"id"`
	Method string    `json:"method,omitempty"`
	Error  *RPCError `json:"error,omitempty"`
}

// Codec encodes envelopes for one websocket frame type
// Both codecs key fields by their json tags
type Codec interface {
	Name() CodecName
	MessageType() int
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
}

// NewCodec returns the codec registered under name
func NewCodec(name CodecName) (Codec, error) {
	switch name {
	case CodecMsgpack, "":
		return msgpackCodec{}, nil
	case CodecJSON:
		return jsonCodec{}, nil
	default:
		return nil, fmt.Errorf("network: unknown codec %q", name)
	}
}

// CodecForFrame picks the codec matching a received frame type
func CodecForFrame(messageType int) (Codec, bool) {
	switch messageType {
	case websocket.BinaryMessage:
		return msgpackCodec{}, true
	case websocket.TextMessage:
		return jsonCodec{}, true
	default:
		return nil, false
	}
}

type jsonCodec struct{}

func (jsonCodec) Name() CodecName                    { return CodecJSON }
func (jsonCodec) MessageType() int                   { return websocket.TextMessage }
func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

type msgpackCodec struct{}

func (msgpackCodec) Name() CodecName  { return CodecMsgpack }
func (msgpackCodec) MessageType() int { return websocket.BinaryMessage }

func (msgpackCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (msgpackCodec) Unmarshal(data []byte, v any) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	return dec.Decode(v)
}

// DecodeHeader reads the routing fields of an envelope
func DecodeHeader(c Codec, data []byte) (id, method string, rpcErr *RPCError, err error) {
	var h envelopeHeader
	if err := c.Unmarshal(data, &h); err != nil {
		return "", "", nil, fmt.Errorf("decode header: %w", err)
	}
	return h.ID, h.Method, h.Error, nil
}

// DecodeResult reads the typed result of a response envelope
func DecodeResult[T any](c Codec, data []byte) (T, error) {
	var body struct {
		Result T `json:"result"`
	}
	if err := c.Unmarshal(data, &body); err != nil {
		return body.Result, fmt.Errorf("decode result: %w", err)
	}
	return body.Result, nil
}

// DecodeParams reads the typed params of a request envelope
func DecodeParams[T any](c Codec, data []byte) (T, error) {
	var body struct {
		Params T `json:"params"`
	}
	if err := c.Unmarshal(data, &body); err != nil {
		return body.Params, fmt.Errorf("decode params: %w", err)
	}
	return body.Params, nil
}
