package fmtbuf

// Measure returns the exact number of code units of width U the values
// occupy when appended. It touches no buffer, so it can size storage up
// front; the Composer also uses it to produce the advisory count handed to
// overflow callbacks.
func Measure[U CodeUnit](values ...Value) int {
	n := 0
	for _, v := range values {
		n += measureValue[U](v)
	}
	return n
}

func measureValue[U CodeUnit](v Value) int {
	switch v.kind {
	case kindBool:
		if v.b {
			return len("true")
		}
		return len("false")
	case kindChar:
		return runeLen[U](v.r)
	case kindInt:
		return intLen(v.i)
	case kindUint:
		return uintLen(v.u)
	case kindString:
		return stringLen[U](v.s)
	case kindStringer:
		return stringLen[U](v.str.String())
	case kindPointer:
		n := stringLen[U](v.name)
		if v.u == 0 {
			return n + len("(null)")
		}
		return n + len("(0x)") + hexLen(v.u)
	case kindSlice:
		n := stringLen[U](v.name) + len("[]")
		for i, e := range v.elems {
			if i > 0 {
				n += len(", ")
			}
			n += measureValue[U](e)
		}
		return n
	case kindRecord:
		n := stringLen[U](v.name)
		if len(v.fields) == 0 {
			return n + len("{}")
		}
		n += len("{ ") + len(" }")
		for i, f := range v.fields {
			if i > 0 {
				n += len(", ")
			}
			n += stringLen[U](f.Name) + len(": ") + measureValue[U](f.Value)
		}
		return n
	default:
		return len("null")
	}
}

func stringLen[U CodeUnit](s string) int {
	if unitWidth[U]() == 1 {
		return len(s)
	}
	n := 0
	for _, r := range s {
		n += runeLen[U](r)
	}
	return n
}

func uintLen(u uint64) int {
	n := 1
	for u >= 10 {
		u /= 10
		n++
	}
	return n
}

func intLen(i int64) int {
	if i < 0 {
		u := uint64(i)
		return 1 + uintLen(-u)
	}
	return uintLen(uint64(i))
}

func hexLen(u uint64) int {
	n := 1
	for u >= 16 {
		u >>= 4
		n++
	}
	return n
}
