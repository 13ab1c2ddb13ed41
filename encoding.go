package fmtbuf

import "unsafe"

// CodeUnit is the set of code-unit types a buffer may be built from:
// uint8 for UTF-8, uint16 for UTF-16, int32 (rune) for UTF-32.
type CodeUnit interface {
	~uint8 | ~uint16 | ~int32
}

const (
	surr1    = 0xD800
	surr2    = 0xDC00
	surr3    = 0xE000
	surrSelf = 0x10000

	maxRune         = '\U0010FFFF'
	replacementChar = '�'
)

// unitWidth reports the size of U in bytes. The result is a compile-time
// constant per instantiation, so the switches below fold away.
func unitWidth[U CodeUnit]() int {
	var u U
	return int(unsafe.Sizeof(u))
}

// encodeRune writes r into dst at the width of U and returns the number of
// units written, or 0 when dst cannot hold the full encoding. A rune never
// encodes to zero units, so 0 is unambiguous. Invalid runes and surrogate
// halves encode as U+FFFD.
func encodeRune[U CodeUnit](dst []U, r rune) int {
	if r < 0 || (surr1 <= r && r < surr3) || r > maxRune {
		r = replacementChar
	}
	switch unitWidth[U]() {
	case 1:
		switch {
		case r < 0x80:
			if len(dst) < 1 {
				return 0
			}
			dst[0] = U(r)
			return 1
		case r < 0x800:
			if len(dst) < 2 {
				return 0
			}
			dst[0] = U(0xC0 | r>>6)
			dst[1] = U(0x80 | r&0x3F)
			return 2
		case r < surrSelf:
			if len(dst) < 3 {
				return 0
			}
			dst[0] = U(0xE0 | r>>12)
			dst[1] = U(0x80 | r>>6&0x3F)
			dst[2] = U(0x80 | r&0x3F)
			return 3
		default:
			if len(dst) < 4 {
				return 0
			}
			dst[0] = U(0xF0 | r>>18)
			dst[1] = U(0x80 | r>>12&0x3F)
			dst[2] = U(0x80 | r>>6&0x3F)
			dst[3] = U(0x80 | r&0x3F)
			return 4
		}
	case 2:
		if r < surrSelf {
			if len(dst) < 1 {
				return 0
			}
			dst[0] = U(r)
			return 1
		}
		if len(dst) < 2 {
			return 0
		}
		r -= surrSelf
		dst[0] = U(surr1 + r>>10&0x3FF)
		dst[1] = U(surr2 + r&0x3FF)
		return 2
	default:
		if len(dst) < 1 {
			return 0
		}
		dst[0] = U(r)
		return 1
	}
}

// runeLen reports how many units of width U the rune occupies when encoded.
func runeLen[U CodeUnit](r rune) int {
	if r < 0 || (surr1 <= r && r < surr3) || r > maxRune {
		r = replacementChar
	}
	switch unitWidth[U]() {
	case 1:
		switch {
		case r < 0x80:
			return 1
		case r < 0x800:
			return 2
		case r < surrSelf:
			return 3
		default:
			return 4
		}
	case 2:
		if r < surrSelf {
			return 1
		}
		return 2
	default:
		return 1
	}
}

// decodeUnits transcodes a code-unit sequence back to a Go string.
// Unpaired UTF-16 surrogates decode to U+FFFD. This is a convenience for
// diagnostics and tests; it allocates.
func decodeUnits[U CodeUnit](units []U) string {
	switch unitWidth[U]() {
	case 1:
		b := make([]byte, len(units))
		for i, u := range units {
			b[i] = byte(u)
		}
		return string(b)
	case 2:
		runes := make([]rune, 0, len(units))
		for i := 0; i < len(units); i++ {
			w1 := rune(uint16(units[i]))
			switch {
			case surr1 <= w1 && w1 < surr2:
				if i+1 < len(units) {
					w2 := rune(uint16(units[i+1]))
					if surr2 <= w2 && w2 < surr3 {
						runes = append(runes, surrSelf+(w1-surr1)<<10+(w2-surr2))
						i++
						continue
					}
				}
				runes = append(runes, replacementChar)
			case surr2 <= w1 && w1 < surr3:
				runes = append(runes, replacementChar)
			default:
				runes = append(runes, w1)
			}
		}
		return string(runes)
	default:
		runes := make([]rune, len(units))
		for i, u := range units {
			runes[i] = rune(u)
		}
		return string(runes)
	}
}
