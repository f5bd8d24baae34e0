package gather

import (
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/text/transform"
)

// dropInvalidUTF8 is a transformer that copies valid UTF-8 and removes every
// byte that does not start a valid encoding.
type dropInvalidUTF8 struct{ transform.NopResetter }

func (dropInvalidUTF8) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		if c := src[nSrc]; c < utf8.RuneSelf {
			if nDst >= len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = c
			nDst++
			nSrc++
			continue
		}

		if !atEOF && !utf8.FullRune(src[nSrc:]) {
			return nDst, nSrc, transform.ErrShortSrc
		}

		r, size := utf8.DecodeRune(src[nSrc:])
		if r == utf8.RuneError && size == 1 {
			nSrc++
			continue
		}
		if nDst+size > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += copy(dst[nDst:], src[nSrc:nSrc+size])
		nSrc += size
	}
	return nDst, nSrc, nil
}

// DropInvalidUTF8 returns a transformer that silently removes invalid UTF-8.
func DropInvalidUTF8() transform.Transformer {
	return dropInvalidUTF8{}
}

// ReadText reads the file at path as UTF-8, dropping invalid byte sequences.
func ReadText(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	content, err := io.ReadAll(transform.NewReader(f, DropInvalidUTF8()))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return content, nil
}
