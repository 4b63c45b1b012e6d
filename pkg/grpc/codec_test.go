package grpc

import (
	"testing"

	"google.golang.org/grpc/encoding"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

type payload struct {
	ID     string `json:"id"`
	Amount int64  `json:"amount"`
}

func TestJSONCodecRegistered(t *testing.T) {
	c := encoding.GetCodec(CodecName)
	if c == nil {
		t.Fatal("codec not registered")
	}
	if c.Name() != CodecName {
		t.Fatalf("Name=%s", c.Name())
	}
}

func TestJSONCodecPlainStruct(t *testing.T) {
	c := JSONCodec{}
	data, err := c.Marshal(&payload{ID: "acc_1", Amount: 3})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"id":"acc_1","amount":3}` {
		t.Fatalf("data=%s", data)
	}
	var out payload
	if err := c.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if out.ID != "acc_1" || out.Amount != 3 {
		t.Fatalf("out=%+v", out)
	}
}

func TestJSONCodecProtoMessage(t *testing.T) {
	c := JSONCodec{}
	data, err := c.Marshal(&emptypb.Empty{})
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Unmarshal(data, &emptypb.Empty{}); err != nil {
		t.Fatal(err)
	}

	data, err = c.Marshal(wrapperspb.String("acc_1"))
	if err != nil {
		t.Fatal(err)
	}
	got := &wrapperspb.StringValue{}
	if err := c.Unmarshal(data, got); err != nil {
		t.Fatal(err)
	}
	if got.GetValue() != "acc_1" {
		t.Fatalf("value=%q", got.GetValue())
	}
}
