package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Text is a display value the backend may send either as a JSON string or as
// a number. The textual form is kept as received.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*t = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("text value %s: %w", data, err)
	}
	*t = Text(n.String())
	return nil
}

func (t Text) String() string {
	return string(t)
}
