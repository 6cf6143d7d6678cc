package handler

import "encoding/json"

// jsonCodec はprotobufを使わずに素の構造体をConnectでやり取りするためのコーデックです
// 名前を "json" にすることで application/json のリクエストを受け付けます
type jsonCodec struct{}

func (jsonCodec) Name() string { return "json" }

func (jsonCodec) Marshal(msg any) ([]byte, error) {
	return json.Marshal(msg)
}

func (jsonCodec) Unmarshal(data []byte, msg any) error {
	return json.Unmarshal(data, msg)
}
