package onebound

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PropPair props_list 里的一个键值对
// Key 形如 "1627207:28341"，Value 形如 "颜色分类:黑色"
type PropPair struct {
	Key   string
	Value string
}

// orderedPairs 按 JSON 对象的原始键序解析 props_list
// map 解出来会丢失顺序，而属性组顺序必须跟上游展示顺序一致
func orderedPairs(raw json.RawMessage) ([]PropPair, error) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("invalid props_list: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("props_list is not an object")
	}

	var pairs []PropPair
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("invalid props_list key: %w", err)
		}
		key, _ := keyTok.(string)

		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("invalid props_list value for %q: %w", key, err)
		}
		// 非字符串的值直接跳过，上游偶尔混入嵌套对象
		if s, ok := value.(string); ok {
			pairs = append(pairs, PropPair{Key: key, Value: s})
		}
	}

	return pairs, nil
}
