package fmtbuf

// Append serializes values left to right into the view's free space and
// returns the advanced view. The call is all or nothing: if any value (or
// any element or field nested inside one) does not fit, Append returns the
// original view and ErrOverflow, committing no count. Units produced by
// earlier values of the same call may be physically present in the buffer
// past the committed length; the returned view is the only source of truth
// for what was written.
func Append[U CodeUnit](v View[U], values ...Value) (View[U], error) {
	out := v
	for _, val := range values {
		var err error
		out, err = appendValue(out, val)
		if err != nil {
			return v, err
		}
	}
	return out, nil
}

func appendValue[U CodeUnit](v View[U], val Value) (View[U], error) {
	switch val.kind {
	case kindBool:
		if val.b {
			return appendLiteral(v, "true")
		}
		return appendLiteral(v, "false")
	case kindChar:
		return appendRune(v, val.r)
	case kindInt:
		return appendInt(v, val.i)
	case kindUint:
		return appendUint(v, val.u)
	case kindString:
		return appendString(v, val.s)
	case kindStringer:
		return appendString(v, val.str.String())
	case kindPointer:
		return appendPointer(v, val)
	case kindSlice:
		return appendSlice(v, val)
	case kindRecord:
		return appendRecord(v, val)
	default:
		return appendLiteral(v, "null")
	}
}

// appendLiteral copies an ASCII literal, widening each byte to U.
func appendLiteral[U CodeUnit](v View[U], s string) (View[U], error) {
	if len(v.free) < len(s) {
		return v, ErrOverflow
	}
	for i := 0; i < len(s); i++ {
		v.free[i] = U(s[i])
	}
	return v.take(len(s)), nil
}

// appendASCII copies a scratch digit sequence, widening each byte to U.
func appendASCII[U CodeUnit](v View[U], s []byte) (View[U], error) {
	if len(v.free) < len(s) {
		return v, ErrOverflow
	}
	for i, c := range s {
		v.free[i] = U(c)
	}
	return v.take(len(s)), nil
}

func appendRune[U CodeUnit](v View[U], r rune) (View[U], error) {
	n := encodeRune(v.free, r)
	if n == 0 {
		return v, ErrOverflow
	}
	return v.take(n), nil
}

// digitScratch holds the widest supported integer: 20 decimal digits for
// MaxUint64 plus a sign.
const digitScratch = 21

func appendUint[U CodeUnit](v View[U], u uint64) (View[U], error) {
	var scratch [digitScratch]byte
	i := len(scratch)
	for {
		i--
		scratch[i] = byte(u%10) + '0'
		u /= 10
		if u == 0 {
			break
		}
	}
	return appendASCII(v, scratch[i:])
}

func appendInt[U CodeUnit](v View[U], n int64) (View[U], error) {
	var scratch [digitScratch]byte
	u := uint64(n)
	if n < 0 {
		u = -u // two's complement magnitude, correct for MinInt64
	}
	i := len(scratch)
	for {
		i--
		scratch[i] = byte(u%10) + '0'
		u /= 10
		if u == 0 {
			break
		}
	}
	if n < 0 {
		i--
		scratch[i] = '-'
	}
	return appendASCII(v, scratch[i:])
}

const hexDigits = "0123456789ABCDEF"

func appendHex[U CodeUnit](v View[U], u uint64) (View[U], error) {
	var scratch [16]byte
	i := len(scratch)
	for {
		i--
		scratch[i] = hexDigits[u&0xF]
		u >>= 4
		if u == 0 {
			break
		}
	}
	return appendASCII(v, scratch[i:])
}

func appendString[U CodeUnit](v View[U], s string) (View[U], error) {
	if unitWidth[U]() == 1 {
		// Same-width fast path: the source is already UTF-8 code units.
		if len(v.free) < len(s) {
			return v, ErrOverflow
		}
		for i := 0; i < len(s); i++ {
			v.free[i] = U(s[i])
		}
		return v.take(len(s)), nil
	}
	out := v
	for _, r := range s {
		n := encodeRune(out.free, r)
		if n == 0 {
			return v, ErrOverflow
		}
		out = out.take(n)
	}
	return out, nil
}

func appendPointer[U CodeUnit](v View[U], val Value) (View[U], error) {
	out, err := appendString(v, val.name)
	if err != nil {
		return v, err
	}
	if val.u == 0 {
		if out, err = appendLiteral(out, "(null)"); err != nil {
			return v, err
		}
		return out, nil
	}
	if out, err = appendLiteral(out, "(0x"); err != nil {
		return v, err
	}
	if out, err = appendHex(out, val.u); err != nil {
		return v, err
	}
	if out, err = appendLiteral(out, ")"); err != nil {
		return v, err
	}
	return out, nil
}

func appendSlice[U CodeUnit](v View[U], val Value) (View[U], error) {
	out, err := appendString(v, val.name)
	if err != nil {
		return v, err
	}
	if out, err = appendLiteral(out, "["); err != nil {
		return v, err
	}
	for i, e := range val.elems {
		if i > 0 {
			if out, err = appendLiteral(out, ", "); err != nil {
				return v, err
			}
		}
		if out, err = appendValue(out, e); err != nil {
			return v, err
		}
	}
	if out, err = appendLiteral(out, "]"); err != nil {
		return v, err
	}
	return out, nil
}

func appendRecord[U CodeUnit](v View[U], val Value) (View[U], error) {
	out, err := appendString(v, val.name)
	if err != nil {
		return v, err
	}
	if len(val.fields) == 0 {
		if out, err = appendLiteral(out, "{}"); err != nil {
			return v, err
		}
		return out, nil
	}
	if out, err = appendLiteral(out, "{ "); err != nil {
		return v, err
	}
	for i, f := range val.fields {
		if i > 0 {
			if out, err = appendLiteral(out, ", "); err != nil {
				return v, err
			}
		}
		if out, err = appendString(out, f.Name); err != nil {
			return v, err
		}
		if out, err = appendLiteral(out, ": "); err != nil {
			return v, err
		}
		if out, err = appendValue(out, f.Value); err != nil {
			return v, err
		}
	}
	if out, err = appendLiteral(out, " }"); err != nil {
		return v, err
	}
	return out, nil
}
