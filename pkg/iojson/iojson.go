// Package iojson writes command output as indented JSON.
package iojson

import (
	"encoding/json"
	"fmt"
	"io"
)

// fallback builds the error document by hand for when obj itself cannot be
// marshaled.
func fallback(msg string, err error) string {
	msgBytes, _ := json.Marshal(msg)
	errBytes, _ := json.Marshal(err.Error())
	return fmt.Sprintf(`{"message":%s,"data":{"json_error":%s}}`, msgBytes, errBytes)
}

// WriteWith writes obj as indented JSON to w. When obj cannot be marshaled
// an error document is written to ew instead and the marshal error is
// returned.
func WriteWith(w io.Writer, ew io.Writer, obj any) error {
	bits, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintln(ew, fallback("error marshaling in iojson.WriteWith", err))
		return fmt.Errorf("marshal json output: %w", err)
	}

	_, err = fmt.Fprintln(w, string(bits))
	return err
}
