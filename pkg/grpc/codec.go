package grpc

import (
	"encoding/json"

	"google.golang.org/grpc"
	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
)

// CodecName gRPC content-subtype，請求的 content-type 為 application/grpc+json
const CodecName = "json"

// JSONCodec 以 JSON 編碼 gRPC 訊息
// proto.Message (如 emptypb.Empty) 使用 protojson，其他型別使用 encoding/json。
type JSONCodec struct{}

func init() {
	encoding.RegisterCodec(JSONCodec{})
}

// Marshal implements encoding.Codec.
func (JSONCodec) Marshal(v any) ([]byte, error) {
	if m, ok := v.(proto.Message); ok {
		return protojson.Marshal(m)
	}
	return json.Marshal(v)
}

// Unmarshal implements encoding.Codec.
func (JSONCodec) Unmarshal(data []byte, v any) error {
	if m, ok := v.(proto.Message); ok {
		return protojson.Unmarshal(data, m)
	}
	return json.Unmarshal(data, v)
}

// Name implements encoding.Codec.
func (JSONCodec) Name() string {
	return CodecName
}

// JSONCallOption 讓單次呼叫使用 JSONCodec
func JSONCallOption() grpc.CallOption {
	return grpc.CallContentSubtype(CodecName)
}

var _ encoding.Codec = JSONCodec{}
