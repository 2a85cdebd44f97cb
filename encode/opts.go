package encode

type EncodeOption func(*EncState)

func EncodeIndent(s string) EncodeOption {
	return func(es *EncState) { es.indent = s }
}

// EncodeComments sets whether comment tokens are written. They are by
// default.
func EncodeComments(v bool) EncodeOption {
	return func(es *EncState) { es.dropComments = !v }
}

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}
