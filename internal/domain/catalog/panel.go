package catalog

import (
	"github.com/bytedance/sonic"
)

// Panel is the opaque content handed to the window manager for an entry.
// Its props are private: window copies returned by the manager share a
// Panel, so every read hands out a fresh deep copy.
type Panel struct {
	AppID string
	Type  string
	props map[string]interface{}
}

type panelJSON struct {
	AppID string                 `json:"app_id"`
	Kind  string                 `json:"kind"`
	Props map[string]interface{} `json:"props,omitempty"`
}

// NewPanel builds a panel holding a deep copy of props
func NewPanel(appID, kind string, props map[string]interface{}) Panel {
	return Panel{AppID: appID, Type: kind, props: cloneProps(props)}
}

// Kind implements types.Content
func (p Panel) Kind() string { return p.Type }

// Props returns a deep copy of the panel props, nil when there are none
func (p Panel) Props() map[string]interface{} {
	return cloneProps(p.props)
}

// MarshalJSON encodes the panel as {"app_id","kind","props"}
func (p Panel) MarshalJSON() ([]byte, error) {
	return sonic.Marshal(panelJSON{AppID: p.AppID, Kind: p.Type, Props: p.props})
}

func cloneProps(props map[string]interface{}) map[string]interface{} {
	if len(props) == 0 {
		return nil
	}
	out := make(map[string]interface{}, len(props))
	for k, v := range props {
		out[k] = cloneValue(v)
	}
	return out
}

// cloneValue copies the containers produced by JSON, YAML and TOML decoding
func cloneValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		return cloneProps(t)
	case []interface{}:
		out := make([]interface{}, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}
