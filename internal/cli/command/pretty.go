package command

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/yndnr/reqlog-go/pkg/jsonclean"
)

// writePretty writes doc indented. Encoding goes through jsonclean.Encode
// so numbers keep their original text.
func writePretty(w io.Writer, doc any) error {
	compact, err := jsonclean.Encode(doc)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err = w.Write(buf.Bytes())
	return err
}
