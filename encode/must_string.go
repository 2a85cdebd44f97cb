package encode

import (
	"bytes"
	"strings"

	"github.com/signadot/outtree/tmpl"
)

func MustString(e tmpl.Element, opts ...EncodeOption) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(e, buf, opts...); err != nil {
		panic(err)
	}
	return strings.TrimSpace(buf.String())
}
